// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Welcome is the banner shown before the first submission.
type Welcome struct {
	version  string
	userName string
	saving   bool

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetUserName sets the name shown in the greeting line.
func (w *Welcome) SetUserName(name string) {
	w.userName = name
}

// SetSaving sets whether conversations are being persisted.
func (w *Welcome) SetSaving(saving bool) {
	w.saving = saving
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome banner. Responsive down to 80x24.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}

	boxWidth := 56
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 36 {
		boxWidth = 36
	}

	var lines []string
	lines = append(lines, w.theme.WelcomeTitle.Render("CollegeGenie"))
	lines = append(lines, w.theme.BubbleMeta.Render("AI study assistant "+w.version))
	lines = append(lines, "")

	hello := "Ask anything about your coursework."
	if w.userName != "" {
		hello = "Hi " + w.userName + "! " + hello
	}
	lines = append(lines, w.theme.WelcomeHint.Render(hello))

	if w.saving {
		lines = append(lines, w.theme.BubbleMeta.Render("Conversations are saved to your account."))
	} else {
		lines = append(lines, w.theme.BubbleMeta.Render("Anonymous session, nothing is saved."))
	}

	lines = append(lines, "")
	lines = append(lines, w.theme.WelcomeHint.Render("Type /help for commands"))

	box := w.theme.WelcomeBox.
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(box)
}
