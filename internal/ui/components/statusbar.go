// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/collegegenie-tui/internal/telemetry"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the high level state shown at the left of the bar.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	default:
		return "Unknown"
	}
}

// StatusBar is the bottom bar showing session state, telemetry, and
// keyboard shortcuts.
type StatusBar struct {
	Status        Status
	MessageCount  int
	Saving        bool // false when running anonymously
	Width         int
	ShowShortcuts bool

	Stats *telemetry.SessionStats

	theme *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetMessageCount updates the displayed message count.
func (s *StatusBar) SetMessageCount(n int) {
	s.MessageCount = n
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar for narrow terminals.
// Format: Ready | 5 msgs | 843 ms
func (s *StatusBar) viewNarrow() string {
	sep := s.theme.BubbleMeta.Render(" | ")

	parts := []string{s.statusText()}
	parts = append(parts, s.theme.StatusValue.Render(util.IntToString(s.MessageCount)+" msgs"))

	if s.Stats != nil {
		if avg, ok := s.Stats.AverageLatencyMs(); ok {
			parts = append(parts, s.theme.StatusValue.Render(util.IntToString(int(avg+0.5))+" ms"))
		}
	}

	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, sep))
}

// viewWide renders the full bar.
// Format: Ready | Messages: 5 | Avg: 843 ms | Typing: 212 CPM | saving | /help  ctrl+c quit
func (s *StatusBar) viewWide() string {
	sep := s.theme.BubbleMeta.Render(" | ")

	left := []string{s.statusText()}
	left = append(left,
		s.theme.StatusKey.Render("Messages: ")+s.theme.StatusValue.Render(util.IntToString(s.MessageCount)))

	if s.Stats != nil {
		if avg, ok := s.Stats.AverageLatencyMs(); ok {
			left = append(left,
				s.theme.StatusKey.Render("Avg: ")+s.theme.StatusValue.Render(util.IntToString(int(avg+0.5))+" ms"))
		}
		if cpm, ok := s.Stats.TypingSpeedCPM(); ok {
			left = append(left,
				s.theme.StatusKey.Render("Typing: ")+s.theme.StatusValue.Render(util.IntToString(int(cpm+0.5))+" CPM"))
		}
	}

	if s.Saving {
		left = append(left, s.theme.StatusValue.Render("saving"))
	} else {
		left = append(left, s.theme.BubbleMeta.Render("anonymous"))
	}

	leftStr := strings.Join(left, sep)

	rightStr := ""
	if s.ShowShortcuts {
		rightStr = s.renderShortcuts()
	}

	// Pad the gap so shortcuts sit flush right.
	gap := s.Width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		// Not enough room, drop the shortcuts.
		rightStr = ""
		gap = s.Width - lipgloss.Width(leftStr) - 2
		if gap < 0 {
			gap = 0
		}
	}

	return s.theme.StatusBar.Width(s.Width).Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}

func (s *StatusBar) statusText() string {
	if s.Status == StatusThinking {
		return s.theme.ThinkingText.Render(s.Status.String())
	}
	return s.theme.StatusValue.Render(s.Status.String())
}

func (s *StatusBar) renderShortcuts() string {
	shortcuts := []struct {
		key, desc string
	}{
		{"/help", "commands"},
		{"ctrl+c", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
	}
	return strings.Join(parts, "  ")
}
