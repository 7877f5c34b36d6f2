// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/collegegenie-tui/internal/session"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.spinner.IsActive() {
			// Keep the elapsed timer in the placeholder fresh.
			m.refreshViewport()
		}
		return m, cmd

	case ResponseMsg:
		return m.handleResponse(msg)

	case ConfigReloadedMsg:
		// Persistence and API wiring are fixed at startup; only the
		// footer toggle is safe to flip mid-session.
		m.showStatsFooter = msg.Cfg.UI.ShowStatsFooter
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case SavedMsg:
		if msg.Err != nil {
			return m.setStatus("Save failed: " + msg.Err.Error())
		}
		return m.setStatus("Conversation saved")

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Everything else, cursor blink included, belongs to the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		return m, m.saveCmd()

	case "enter":
		return m.handleSubmit()

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Everything else goes to the text input. Feed the resulting length
	// to the typing tracker; it ignores deletions and stale gaps itself.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.RecordKeystroke(len([]rune(m.input.Value())))
	return m, cmd
}

// handleSubmit runs one submit attempt through the session.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	switch m.session.Begin(text) {
	case session.OutcomeRejected:
		// Empty input or a turn already in flight. Leave the field alone
		// so in-flight typing is not lost.
		return m, nil

	case session.OutcomeQuit:
		m.quitting = true
		return m, tea.Quit

	case session.OutcomeCommand:
		m.clearInput()
		m.showWelcome = false
		m.refreshViewport()
		return m, nil

	default: // session.OutcomeAwaiting
		m.clearInput()
		m.showWelcome = false

		tickCmd := m.spinner.Start()
		m.refreshViewport()

		return m, tea.Batch(tickCmd, m.resolveCmd(text))
	}
}

// clearInput empties the text field and resets the typing tracker so the
// next keystroke is not measured against the submitted text.
func (m *Model) clearInput() {
	m.input.Reset()
	m.session.Stats().ResetInput()
}

// resolveCmd resolves the provider call off the event loop. The provider
// never returns an error to the UI; failures come back as fallback text.
func (m Model) resolveCmd(text string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return ResponseMsg{Result: sess.Resolve(context.Background(), text)}
	}
}

// handleResponse finishes the in-flight turn.
func (m Model) handleResponse(msg ResponseMsg) (tea.Model, tea.Cmd) {
	m.session.Complete(msg.Result)
	m.spinner.Stop()
	m.refreshViewport()
	return m, nil
}

// saveCmd persists the conversation through the session's save hook.
func (m Model) saveCmd() tea.Cmd {
	save := m.session.Commands().SaveFunc
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		return SavedMsg{Err: save()}
	}
}

// setStatus shows a transient status line for a few seconds.
func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
