// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/collegegenie-tui/internal/session"
	"github.com/jeranaias/collegegenie-tui/internal/ui/components"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Session owns conversation state and the submit cycle.
	session *session.Session

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// UI components
	viewport    viewport.Model
	input       textinput.Model
	spinner     components.ThinkingSpinner
	statusBar   *components.StatusBar
	messageList *components.MessageList
	welcome     components.Welcome

	// Welcome banner shows until the first submission.
	showWelcome bool

	// showStatsFooter mirrors ui.show_stats_footer and can flip at
	// runtime via config reload.
	showStatsFooter bool

	// Transient status line, cleared by timer. The sequence number guards
	// against an old timer clearing a newer message.
	statusMsg string
	statusSeq int

	quitting bool
}

// Options configure presentation details that come from config, not from
// the session itself.
type Options struct {
	Version         string
	UserName        string
	Saving          bool
	ShowStatsFooter bool
}

// New creates a chat model bound to the given session.
func New(sess *session.Session, theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your coursework..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	statusBar := components.NewStatusBar(theme)
	statusBar.Stats = sess.Stats()
	statusBar.Saving = opts.Saving

	welcome := components.NewWelcome(theme)
	welcome.SetVersion(opts.Version)
	welcome.SetUserName(opts.UserName)
	welcome.SetSaving(opts.Saving)

	return Model{
		session:         sess,
		theme:           theme,
		viewport:        vp,
		input:           ti,
		spinner:         components.NewThinkingSpinner(theme),
		statusBar:       statusBar,
		messageList:     components.NewMessageList(theme),
		welcome:         welcome,
		showWelcome:     true,
		showStatsFooter: opts.ShowStatsFooter,
	}
}

// Session returns the underlying session, mainly for tests.
func (m Model) Session() *session.Session {
	return m.session
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// handleResize recalculates the layout for a new terminal size.
// Layout: messages (viewport) + input (3 lines) + status (1 line).
func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.messageList.SetWidth(msg.Width - 2)

	inputHeight := 3
	statusHeight := 0
	if m.showStatsFooter {
		statusHeight = 1
	}
	viewportHeight := msg.Height - inputHeight - statusHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = msg.Width
	m.viewport.Height = viewportHeight
	m.input.Width = msg.Width - 6

	m.refreshViewport()
	return m, nil
}

// refreshViewport re-renders the message log into the viewport and pins
// the scroll position to the bottom so the newest message stays visible.
func (m *Model) refreshViewport() {
	m.messageList.SetMessages(m.session.Conversation().Messages)
	content := m.messageList.View()

	if m.session.IsAwaitingResponse() {
		content += "\n\n" + m.spinner.View()
	}

	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}
