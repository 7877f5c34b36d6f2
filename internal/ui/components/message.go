// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single conversation message as a styled bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	ShowLatency   bool
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleSystem}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		ShowLatency:   true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderSystemBubble()
	}
}

// ==========================================================================
// USER BUBBLE - blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	header := b.renderHeader(b.Message.Role.DisplayName(), "")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - indigo tones, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	// The thinking placeholder is rendered by the spinner component, not
	// as a bubble, but handle it here too so a stale frame stays sane.
	if b.Message.Placeholder {
		return b.theme.ThinkingText.Render(model.ThinkingText)
	}

	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	// Fenced code blocks get chroma highlighting, the rest wraps on words.
	rendered := ParseCodeBlocks(content, maxContentWidth)
	wrapped := wordWrapPreformatted(rendered, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4).
		Render(wrapped)

	latency := ""
	if b.ShowLatency && b.Message.LatencyMs > 0 {
		latency = util.Int64ToString(b.Message.LatencyMs) + " ms"
	}
	header := b.renderHeader(b.Message.Role.DisplayName(), latency)

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// SYSTEM BUBBLE - muted, centered
// ==========================================================================

func (b *MessageBubble) renderSystemBubble() string {
	content := b.Message.Content
	if content == "" {
		return ""
	}

	maxContentWidth := b.Width - 20
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-16)

	bubble := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	center := lipgloss.NewStyle().Width(b.Width).Align(lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		center.Render(b.renderHeader(b.Message.Role.DisplayName(), "")),
		center.Render(bubble),
	)
}

// ==========================================================================
// HELPERS
// ==========================================================================

// renderHeader renders the "label timestamp meta" line above a bubble.
func (b *MessageBubble) renderHeader(label, meta string) string {
	parts := []string{b.theme.BubbleLabel.Render(label)}

	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		parts = append(parts, b.theme.BubbleMeta.Render(formatClock(b.Message.Timestamp)))
	}
	if meta != "" {
		parts = append(parts, b.theme.BubbleMeta.Render(meta))
	}

	return strings.Join(parts, " ")
}

// formatClock formats a timestamp as "3:04 PM", adding "Jan 5, " when the
// message is from a previous day.
func formatClock(t time.Time) string {
	hour := t.Hour()
	minute := t.Minute()
	ampm := "AM"

	if hour >= 12 {
		ampm = "PM"
		if hour > 12 {
			hour -= 12
		}
	}
	if hour == 0 {
		hour = 12
	}

	minuteStr := util.IntToString(minute)
	if minute < 10 {
		minuteStr = "0" + minuteStr
	}
	clock := util.IntToString(hour) + ":" + minuteStr + " " + ampm

	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return clock
	}

	months := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	return months[t.Month()-1] + " " + util.IntToString(t.Day()) + ", " + clock
}

// wordWrap wraps plain text to fit within the given display width.
// UNICODE: widths are measured in terminal cells, not bytes.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if util.StringWidth(current)+1+util.StringWidth(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}

	return result.String()
}

// wordWrapPreformatted wraps text that may contain ANSI-styled code block
// lines. Lines carrying escape sequences pass through untouched so the
// highlighting stays intact.
func wordWrapPreformatted(text string, width int) string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if strings.ContainsRune(line, '\x1b') || util.StringWidth(line) <= width {
			result = append(result, line)
			continue
		}
		result = append(result, wordWrap(line, width))
	}
	return strings.Join(result, "\n")
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.ContainsRune(line, '\x1b') {
			// Styled lines report inflated widths; use lipgloss which
			// strips ANSI sequences before measuring.
			if w := lipgloss.Width(line); w > maxWidth {
				maxWidth = w
			}
			continue
		}
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the full conversation log as a vertical stack of
// bubbles, skipping the thinking placeholder (the chat model draws that
// separately with an animated spinner).
type MessageList struct {
	Messages      []*model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageList creates an empty message list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return empty.Render("No messages yet. Ask about your coursework!")
	}

	var bubbles []string
	for _, msg := range ml.Messages {
		if msg.Placeholder {
			continue
		}
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamp
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n\n")
}
