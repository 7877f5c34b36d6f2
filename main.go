// genie - CollegeGenie AI study assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/collegegenie-tui/internal/cli"
	"github.com/jeranaias/collegegenie-tui/internal/config"
	"github.com/jeranaias/collegegenie-tui/internal/session"
	"github.com/jeranaias/collegegenie-tui/internal/storage"
	"github.com/jeranaias/collegegenie-tui/internal/ui/chat"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.Parse(os.Args[1:])

	switch args.Command {
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
		return
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}

	app := cli.NewApp(cfg, args.Anonymous)

	var code int
	switch args.Command {
	case cli.CmdAsk:
		code = cli.RunAsk(app, args)
	case cli.CmdChat:
		code = cli.RunChat(app, args)
	case cli.CmdStatus:
		code = cli.RunStatus(app, args)
	case cli.CmdConfig:
		code = cli.RunConfig(app, args)
	case cli.CmdSessions:
		code = cli.RunSessions(app, args)
	default:
		code = runTUI(app)
	}

	// Close before exiting so pending history writes drain.
	app.Close()
	os.Exit(code)
}

// runTUI starts the full-screen chat interface.
func runTUI(app *cli.App) int {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "genie requires an interactive terminal, try: genie ask \"question\"")
		return 1
	}

	// Keep library log output away from the alternate screen.
	logFile := redirectLogs()
	if logFile != nil {
		defer logFile.Close()
	}

	theme := styles.NewTheme(app.Cfg.UI.Theme)

	sess := session.New(app.Provider, app.Sink, session.Greeting(app.Cfg.User.Name))
	installSaveHook(sess)

	m := chat.New(sess, theme, chat.Options{
		Version:         Version,
		UserName:        app.Cfg.User.Name,
		Saving:          app.Saving(),
		ShowStatsFooter: app.Cfg.UI.ShowStatsFooter,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Pick up config edits made while the TUI is open.
	if path, err := config.Path(); err == nil {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Cfg: next})
		})
		if err == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// installSaveHook wires /save and ctrl+s to the JSON conversation store.
func installSaveHook(sess *session.Session) {
	store, err := storage.NewConversationStore()
	if err != nil {
		log.Printf("save disabled: %v", err)
		return
	}
	sess.Commands().SaveFunc = func() error {
		_, err := store.Save(storage.FromConversation(sess.Conversation()))
		return err
	}
}

// redirectLogs sends the standard logger to ~/.collegegenie/genie.log
// while the TUI owns the terminal.
func redirectLogs() *os.File {
	dir, err := config.Dir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "genie.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	log.SetOutput(f)
	return f
}
