// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/provider"
	"github.com/jeranaias/collegegenie-tui/internal/session"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
)

type fixedResponder struct {
	text string
}

func (r fixedResponder) GetResponse(ctx context.Context, userText, conversationID string) provider.Result {
	return provider.Result{Text: r.text, Latency: 50 * time.Millisecond}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	sess := session.New(fixedResponder{text: "Photosynthesis converts light into energy."}, nil, "")
	m := New(sess, styles.NewTheme("dark"), Options{Version: "test"})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func pressEnter(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestSubmitEmptyInputRejected(t *testing.T) {
	m := newTestModel(t)

	before := m.Session().Conversation().Len()
	m = pressEnter(t, m)

	if got := m.Session().Conversation().Len(); got != before {
		t.Errorf("conversation length changed on empty submit: %d -> %d", before, got)
	}
	if m.Session().IsAwaitingResponse() {
		t.Error("empty submit should not start a turn")
	}
}

func TestSubmitCommandResolvesLocally(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/subjects")
	m = pressEnter(t, m)

	if m.Session().IsAwaitingResponse() {
		t.Error("command turn should be back to idle immediately")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after command, got %q", m.input.Value())
	}

	last := m.Session().Conversation().Last()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatalf("expected assistant reply, got %+v", last)
	}
	if last.Placeholder {
		t.Error("command reply must not be a placeholder")
	}
}

func TestSubmitQuestionAwaitsThenCompletes(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("What is photosynthesis?")
	m = pressEnter(t, m)

	if !m.Session().IsAwaitingResponse() {
		t.Fatal("question submit should move to awaiting")
	}
	last := m.Session().Conversation().Last()
	if last == nil || !last.Placeholder {
		t.Fatalf("expected thinking placeholder, got %+v", last)
	}

	// Second submit while in flight is rejected and keeps the typed text.
	m.input.SetValue("another question")
	m = pressEnter(t, m)
	if m.input.Value() != "another question" {
		t.Errorf("in-flight rejection should keep input, got %q", m.input.Value())
	}

	result := m.Session().Resolve(context.Background(), "What is photosynthesis?")
	updated, _ := m.Update(ResponseMsg{Result: result})
	m = updated.(Model)

	if m.Session().IsAwaitingResponse() {
		t.Error("turn should be idle after response")
	}
	last = m.Session().Conversation().Last()
	if last == nil || last.Placeholder {
		t.Fatal("placeholder should be replaced by the reply")
	}
	if last.Content != "Photosynthesis converts light into energy." {
		t.Errorf("unexpected reply content %q", last.Content)
	}
}

func TestSubmitResetsTypingTracker(t *testing.T) {
	m := newTestModel(t)

	// A single keystroke before the submit leaves only a reference point.
	m.Session().RecordKeystroke(9)

	m.input.SetValue("/subjects")
	m = pressEnter(t, m)

	// The first keystroke of the next message must start a fresh interval
	// rather than being measured against the submitted text.
	m.Session().RecordKeystroke(12)
	if _, ok := m.Session().Stats().TypingSpeedCPM(); ok {
		t.Error("keystroke after submit should not produce a speed sample")
	}
}

func TestQuitCommand(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/quit")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if !m.quitting {
		t.Error("quit command should set quitting")
	}
	if cmd == nil {
		t.Error("quit command should return tea.Quit")
	}
}
