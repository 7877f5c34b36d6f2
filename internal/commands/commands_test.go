// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/telemetry"
)

func testContext() *Context {
	return NewContext(model.NewConversation(), telemetry.NewSessionStats())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		isCommand bool
		cmdName   string
		args      []string
	}{
		{"plain text", "what is recursion?", false, "", nil},
		{"simple command", "/help", true, "help", nil},
		{"uppercase command", "/HELP", true, "help", nil},
		{"command with args", "/help extra text", true, "help", []string{"extra", "text"}},
		{"leading whitespace", "  /subjects  ", true, "subjects", nil},
		{"command token mid-text", "try /help for options", false, "", nil},
		{"quoted args", `/save "spring term notes"`, true, "save", []string{"spring term notes"}},
		{"bare slash", "/", false, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.IsCommand != tt.isCommand {
				t.Fatalf("IsCommand: got %v, want %v", got.IsCommand, tt.isCommand)
			}
			if !tt.isCommand {
				return
			}
			if got.Name != tt.cmdName {
				t.Errorf("Name: got %q, want %q", got.Name, tt.cmdName)
			}
			if len(got.Args) != len(tt.args) {
				t.Fatalf("Args: got %v, want %v", got.Args, tt.args)
			}
			for i := range tt.args {
				if got.Args[i] != tt.args[i] {
					t.Errorf("Args[%d]: got %q, want %q", i, got.Args[i], tt.args[i])
				}
			}
		})
	}
}

func TestRegistry_Interpret_Help(t *testing.T) {
	reg := NewRegistry()
	ctx := testContext()

	res, ok := reg.Interpret(ctx, "/help")
	if !ok {
		t.Fatal("/help should match")
	}
	for _, line := range []string{
		"Available commands:",
		"/help - Show this help message",
		"/subjects - List college subjects I can help with",
	} {
		if !strings.Contains(res.Text, line) {
			t.Errorf("help output missing %q", line)
		}
	}

	// Case-insensitive prefix variants resolve to identical output.
	upper, ok := reg.Interpret(ctx, "/HELP extra text")
	if !ok || upper.Text != res.Text {
		t.Error("/HELP extra text should behave exactly as /help")
	}
	joined, ok := reg.Interpret(ctx, "/helpme")
	if !ok || joined.Text != res.Text {
		t.Error("/helpme should prefix-match /help")
	}
}

func TestRegistry_Interpret_Subjects(t *testing.T) {
	reg := NewRegistry()
	res, ok := reg.Interpret(testContext(), "/subjects")
	if !ok {
		t.Fatal("/subjects should match")
	}
	want := "I can help with the following subjects:\n" + strings.Join(Subjects, "\n")
	if res.Text != want {
		t.Errorf("subjects output:\ngot  %q\nwant %q", res.Text, want)
	}
	for _, subject := range Subjects {
		if !strings.Contains(res.Text, subject) {
			t.Errorf("subjects output missing %q", subject)
		}
	}
}

func TestRegistry_Interpret_Clear(t *testing.T) {
	reg := NewRegistry()
	res, ok := reg.Interpret(testContext(), "/clear")
	if !ok {
		t.Fatal("/clear should match")
	}
	if res.Action != ActionClear {
		t.Errorf("action: got %v, want ActionClear", res.Action)
	}
	if res.Text != "" {
		t.Errorf("clear should carry no text, got %q", res.Text)
	}
}

func TestRegistry_Interpret_Stats(t *testing.T) {
	reg := NewRegistry()
	ctx := testContext()
	ctx.Conversation.AppendAssistant("greeting")

	res, ok := reg.Interpret(ctx, "/stats")
	if !ok {
		t.Fatal("/stats should match")
	}
	if !strings.Contains(res.Text, "Messages: 1") {
		t.Errorf("stats should report one message: %q", res.Text)
	}
	// No samples yet: both estimates are unavailable.
	if got := strings.Count(res.Text, "unavailable"); got != 2 {
		t.Errorf("unavailable markers: got %d, want 2 in %q", got, res.Text)
	}

	ctx.Stats.RecordLatency(500 * time.Millisecond)
	res, _ = reg.Interpret(ctx, "/stats")
	if !strings.Contains(res.Text, "500 ms") {
		t.Errorf("stats should embed the latency average: %q", res.Text)
	}
	if got := strings.Count(res.Text, "unavailable"); got != 1 {
		t.Errorf("typing speed should still be unavailable: %q", res.Text)
	}
}

func TestRegistry_Interpret_NoMatch(t *testing.T) {
	reg := NewRegistry()
	ctx := testContext()

	for _, input := range []string{
		"what is normalization?",
		"tell me about /help",
		"/unknowncommand",
		"",
	} {
		if _, ok := reg.Interpret(ctx, input); ok {
			t.Errorf("%q should not match a command", input)
		}
	}
}

func TestRegistry_Aliases(t *testing.T) {
	reg := NewRegistry()
	ctx := testContext()

	help, _ := reg.Interpret(ctx, "/help")
	for _, alias := range []string{"/h", "/?"} {
		res, ok := reg.Interpret(ctx, alias)
		if !ok || res.Text != help.Text {
			t.Errorf("%s should resolve to help", alias)
		}
	}

	res, ok := reg.Interpret(ctx, "/c")
	if !ok || res.Action != ActionClear {
		t.Error("/c should resolve to clear")
	}
}
