// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/collegegenie-tui/internal/ui/components"
)

// =============================================================================
// RENDERING
// =============================================================================

// View renders the complete chat view.
// Layout: messages (viewport) + input (3 lines) + status (1 line). The
// total must equal m.height exactly to avoid scroll jitter.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	if m.showWelcome && m.session.Conversation().Len() <= 1 {
		body = lipgloss.Place(
			m.width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center,
			m.welcome.View(),
		)
	} else {
		body = m.viewport.View()
	}

	input := m.renderInput()

	if !m.showStatsFooter && m.statusMsg == "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, input)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, input, m.renderStatusBar())
}

// renderInput renders the bordered input area. While a response is in
// flight the field is dimmed and submissions are rejected upstream.
func (m Model) renderInput() string {
	container := m.theme.InputContainer.Width(m.width - 2)

	if m.session.IsAwaitingResponse() {
		waiting := m.theme.InputPlaceholder.Render("Waiting for response...")
		return container.Render(waiting)
	}

	return container.Render(m.input.View())
}

// renderStatusBar renders the stats footer, or a transient status line
// when one is active.
func (m Model) renderStatusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Width(m.width).Render(m.statusMsg)
	}

	if m.session.IsAwaitingResponse() {
		m.statusBar.SetStatus(components.StatusThinking)
	} else {
		m.statusBar.SetStatus(components.StatusReady)
	}
	m.statusBar.SetMessageCount(m.session.Conversation().Len())

	return m.statusBar.View()
}
