// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// =============================================================================
// THINKING SPINNER
// =============================================================================

// ThinkingSpinner animates next to the "Thinking..." placeholder while a
// response is pending. It also tracks elapsed time so the user can see a
// slow request is still alive.
type ThinkingSpinner struct {
	spinner   spinner.Model
	startTime time.Time
	isActive  bool
	showTimer bool
	theme     *styles.Theme
}

// NewThinkingSpinner creates the spinner with ASCII-safe frames.
func NewThinkingSpinner(theme *styles.Theme) ThinkingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return ThinkingSpinner{
		spinner:   s,
		showTimer: true,
		theme:     theme,
	}
}

// Start activates the spinner and records the start time.
func (s *ThinkingSpinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *ThinkingSpinner) Stop() {
	s.isActive = false
}

// IsActive reports whether the spinner is running.
func (s *ThinkingSpinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation. Tick messages are dropped when inactive
// so a stale frame cannot restart the animation loop.
func (s ThinkingSpinner) Update(msg tea.Msg) (ThinkingSpinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders "| Thinking... (3s)".
func (s ThinkingSpinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.spinner.View() + " " + s.theme.ThinkingText.Render(model.ThinkingText)

	if s.showTimer {
		elapsed := int(time.Since(s.startTime).Seconds())
		if elapsed >= 1 {
			out += " " + s.theme.BubbleMeta.Render("("+util.IntToString(elapsed)+"s)")
		}
	}

	return out
}
