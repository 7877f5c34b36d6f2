// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question command.
//
// Command: ask [question]
//
// Examples:
//   genie ask "Explain SQL joins"
//   genie ask --quiet "What is Big O notation?" | less
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/collegegenie-tui/internal/session"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// markdownRenderer is the shared glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, falling back to
// the raw text when rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil || !IsStdoutTTY() {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RunAsk handles "genie ask". The question flows through a short-lived
// session so the exchange lands in conversation history like any other.
func RunAsk(app *App, args Args) int {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: genie ask \"question\"")
		return 1
	}

	sess := session.New(app.Provider, app.Sink, session.Greeting(app.Cfg.User.Name))
	if sess.Submit(context.Background(), query) != session.OutcomeAwaiting {
		// A slash command makes no sense here but still resolves locally.
		last := sess.Conversation().Last()
		if last != nil {
			fmt.Println(last.Content)
		}
		return 0
	}

	last := sess.Conversation().Last()
	if last == nil {
		return 1
	}

	fmt.Print(renderMarkdown(last.Content))

	if !args.Quiet {
		if avg, ok := sess.Stats().AverageLatencyMs(); ok {
			fmt.Fprintln(os.Stderr, util.Int64ToString(int64(avg))+" ms")
		}
	}
	return 0
}
