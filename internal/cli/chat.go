// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive line-based chat.
//
// Command: chat
//
// A plain REPL alternative to the full-screen TUI, useful over slow
// connections and inside terminal multiplexers. Supports the same slash
// commands as the TUI plus readline-style history via liner.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/collegegenie-tui/internal/config"
	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/session"
	"github.com/jeranaias/collegegenie-tui/internal/storage"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	replyLabelStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with persistent history at
// ~/.collegegenie/chat_history.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}

	r := &replInput{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *replInput) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *replInput) close() {
	// History carries only what the user typed, still keep it private.
	if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// RunChat handles "genie chat".
func RunChat(app *App, args Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "chat requires an interactive terminal, use: genie ask \"question\"")
		return 1
	}

	sess := session.New(app.Provider, app.Sink, session.Greeting(app.Cfg.User.Name))
	installSaveHook(sess)

	input := newReplInput()
	defer input.close()

	if !args.Quiet {
		fmt.Println(infoStyle.Render(VersionString()))
		if app.Saving() {
			fmt.Println(infoStyle.Render("Conversations are saved. Type /help for commands, /quit to exit."))
		} else {
			fmt.Println(infoStyle.Render("Anonymous session. Type /help for commands, /quit to exit."))
		}
		fmt.Println()
	}

	// Print the seed greeting the same way replies are printed.
	printAssistant(sess.Conversation().Last())

	for {
		text, err := input.read(promptStyle.Render("you> "))
		if err != nil {
			// liner.ErrPromptAborted on ctrl+c, io.EOF on ctrl+d.
			fmt.Println()
			break
		}

		before := sess.Conversation().Len()
		outcome := sess.Submit(context.Background(), text)

		switch outcome {
		case session.OutcomeQuit:
			printSummary(sess)
			return 0

		case session.OutcomeRejected:
			continue

		default:
			// Print everything appended past the user's own line.
			msgs := sess.Conversation().Messages
			for i := before + 1; i < len(msgs); i++ {
				printAssistant(msgs[i])
			}
		}
	}

	printSummary(sess)
	return 0
}

func printAssistant(m *model.Message) {
	if m == nil || m.Role == model.RoleUser {
		return
	}
	label := replyLabelStyle.Render(m.Role.DisplayName() + ">")
	fmt.Println(label + " " + renderMarkdownInline(m.Content))
	fmt.Println()
}

// renderMarkdownInline renders reply markdown without the leading blank
// lines glamour adds.
func renderMarkdownInline(content string) string {
	return strings.TrimSpace(renderMarkdown(content))
}

func printSummary(sess *session.Session) {
	stats := sess.Stats()
	parts := []string{
		"Session: " + sess.Duration().Round(time.Second).String(),
		"Messages: " + util.IntToString(sess.Conversation().Len()),
	}
	if avg, ok := stats.AverageLatencyMs(); ok {
		parts = append(parts, "Avg response: "+util.Int64ToString(int64(avg))+" ms")
	}
	fmt.Println(infoStyle.Render(strings.Join(parts, " | ")))
}

// installSaveHook wires /save to the JSON conversation store.
func installSaveHook(sess *session.Session) {
	store, err := storage.NewConversationStore()
	if err != nil {
		return
	}
	sess.Commands().SaveFunc = func() error {
		_, err := store.Save(storage.FromConversation(sess.Conversation()))
		return err
	}
}
