// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/collegegenie-tui/internal/commands"
	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/provider"
	"github.com/jeranaias/collegegenie-tui/internal/telemetry"
)

// DefaultGreeting seeds every fresh or cleared conversation.
const DefaultGreeting = "Hello! I'm CollegeGenie, your AI study assistant. How can I help with your coursework today?"

// Greeting returns the seed message, personalized when a name is set.
func Greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultGreeting
	}
	return "Hello " + name + "! I'm CollegeGenie, your AI study assistant. How can I help with your coursework today?"
}

// State is the submit-cycle state.
type State int

const (
	// StateIdle means no completion request is in flight.
	StateIdle State = iota

	// StateSubmitting means exactly one submit cycle is in flight and new
	// submissions are rejected.
	StateSubmitting
)

// Outcome describes what a Begin call did.
type Outcome int

const (
	// OutcomeRejected means nothing changed: empty input or a cycle was
	// already in flight.
	OutcomeRejected Outcome = iota

	// OutcomeCommand means a command resolved locally and the session is
	// already back to idle. No network call was made.
	OutcomeCommand

	// OutcomeAwaiting means the user message and thinking placeholder are
	// appended and the caller must resolve the turn with the provider,
	// then call Complete.
	OutcomeAwaiting

	// OutcomeQuit means a quit command asked the surface to exit.
	OutcomeQuit
)

// Responder resolves user text to assistant text. *provider.Provider
// implements it.
type Responder interface {
	GetResponse(ctx context.Context, userText, conversationID string) provider.Result
}

// Persister mirrors chat activity to the history database. *storage.Sink
// implements it; nil disables mirroring.
type Persister interface {
	UpsertConversation(conv *model.Conversation, isActive bool)
	AppendMessage(conversationID string, m *model.Message)
}

// Session owns one conversation: the message log, the submit-cycle state,
// and derived statistics. All mutations run on the caller's event loop;
// the lock only guards the state flag against the async completion path.
type Session struct {
	conv     *model.Conversation
	stats    *telemetry.SessionStats
	registry *commands.Registry
	cmdCtx   *commands.Context

	responder Responder
	persister Persister
	greeting  string
	startTime time.Time

	mu    sync.Mutex
	state State
}

// New creates a session seeded with the greeting. responder is required;
// persister may be nil.
func New(responder Responder, persister Persister, greeting string) *Session {
	if greeting == "" {
		greeting = DefaultGreeting
	}

	conv := model.NewConversation()
	stats := telemetry.NewSessionStats()
	s := &Session{
		conv:      conv,
		stats:     stats,
		registry:  commands.NewRegistry(),
		cmdCtx:    commands.NewContext(conv, stats),
		responder: responder,
		persister: persister,
		greeting:  greeting,
		startTime: time.Now(),
		state:     StateIdle,
	}

	seed := conv.AppendAssistant(greeting)
	if persister != nil {
		persister.UpsertConversation(conv, true)
		persister.AppendMessage(conv.ID, seed)
	}
	return s
}

// Conversation returns the live message log.
func (s *Session) Conversation() *model.Conversation {
	return s.conv
}

// Stats returns the session statistics tracker.
func (s *Session) Stats() *telemetry.SessionStats {
	return s.stats
}

// Commands returns the handler context, letting surfaces install a save
// hook.
func (s *Session) Commands() *commands.Context {
	return s.cmdCtx
}

// State returns the current submit-cycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAwaitingResponse reports whether a submit cycle is in flight.
func (s *Session) IsAwaitingResponse() bool {
	return s.State() == StateSubmitting
}

// Duration returns how long the session has been open.
func (s *Session) Duration() time.Duration {
	return time.Since(s.startTime)
}

// Begin starts a submit cycle for the given input.
//
// Empty-after-trim input and input arriving while a cycle is in flight are
// rejected silently with no log change. Commands resolve locally and
// return the session to idle. Anything else appends the user message and
// the thinking placeholder, moves to Submitting, and returns
// OutcomeAwaiting; the caller resolves the turn and calls Complete.
func (s *Session) Begin(text string) Outcome {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return OutcomeRejected
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return OutcomeRejected
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	userMsg := s.conv.AppendUser(trimmed)
	s.persistMessage(userMsg)
	s.conv.Append(model.NewPlaceholderMessage())

	result, matched := s.registry.Interpret(s.cmdCtx, trimmed)
	if !matched {
		// The placeholder stays up while the provider resolves.
		return OutcomeAwaiting
	}

	defer s.setIdle()

	switch result.Action {
	case commands.ActionClear:
		// Reset discards the placeholder along with everything else and
		// reseeds the greeting.
		s.conv.Reset(s.greeting)
		s.persistMessage(s.conv.Last())
		return OutcomeCommand
	case commands.ActionQuit:
		s.conv.RemovePlaceholder()
		return OutcomeQuit
	}

	s.conv.RemovePlaceholder()
	if result.Text != "" {
		reply := s.conv.AppendAssistant(result.Text)
		s.persistMessage(reply)
	}
	return OutcomeCommand
}

// Complete finishes an OutcomeAwaiting cycle with the provider's result:
// the placeholder comes down, the assistant message goes up, and the
// latency sample joins the rolling average. Calls outside a cycle are
// ignored.
func (s *Session) Complete(result provider.Result) *model.Message {
	s.mu.Lock()
	if s.state != StateSubmitting {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.conv.RemovePlaceholder()
	reply := model.NewAssistantMessage(result.Text)
	reply.LatencyMs = result.Latency.Milliseconds()
	s.conv.Append(reply)
	s.persistMessage(reply)

	s.stats.RecordLatency(result.Latency)
	s.setIdle()
	return reply
}

// Submit runs a full submit cycle synchronously: Begin, then the provider
// when needed, then Complete. The terminal REPL and tests use this; the
// TUI splits the phases so its event loop stays responsive.
func (s *Session) Submit(ctx context.Context, text string) Outcome {
	outcome := s.Begin(text)
	if outcome != OutcomeAwaiting {
		return outcome
	}
	s.Complete(s.responder.GetResponse(ctx, strings.TrimSpace(text), s.conv.ID))
	return OutcomeAwaiting
}

// Resolve asks the responder for this session's conversation. The TUI
// calls it from a command goroutine between Begin and Complete.
func (s *Session) Resolve(ctx context.Context, text string) provider.Result {
	return s.responder.GetResponse(ctx, strings.TrimSpace(text), s.conv.ID)
}

// RecordKeystroke folds an input-change event into the typing-speed
// estimate.
func (s *Session) RecordKeystroke(inputLen int) {
	s.stats.RecordKeystroke(inputLen)
}

func (s *Session) setIdle() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Session) persistMessage(m *model.Message) {
	if s.persister != nil && m != nil {
		s.persister.AppendMessage(s.conv.ID, m)
	}
}
