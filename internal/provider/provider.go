// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"log"
	"time"
)

// Completer produces a completion for user text. *Client implements it;
// tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, userText string) (string, error)
}

// Interaction is one query/response pair recorded for diagnostics.
type Interaction struct {
	ConversationID string
	Query          string
	Response       string
	LatencyMs      int64
	Timestamp      time.Time
}

// Recorder receives successful interactions. Implementations must not
// block: recording is fire-and-forget and never affects the chat turn.
type Recorder interface {
	RecordInteraction(Interaction)
}

// Result is the outcome of a GetResponse call. There is no error variant:
// failures degrade to a fallback reply.
type Result struct {
	Text    string
	Latency time.Duration

	// Fallback is true when Text came from the fixed apology set rather
	// than the remote model.
	Fallback bool
}

// Provider turns user text into assistant text. On any remote failure it
// substitutes a canned apology, so callers always receive displayable
// content.
type Provider struct {
	completer Completer
	recorder  Recorder
}

// New creates a provider. recorder may be nil (anonymous mode, nothing to
// persist).
func New(completer Completer, recorder Recorder) *Provider {
	return &Provider{completer: completer, recorder: recorder}
}

// GetResponse resolves user text to assistant text, measuring wall-clock
// latency from dispatch to receipt. conversationID keys the optional
// interaction record; pass "" to skip recording.
//
// Input must be non-empty after trimming; that validation belongs to the
// caller.
func (p *Provider) GetResponse(ctx context.Context, userText, conversationID string) Result {
	start := time.Now()
	text, err := p.completer.Complete(ctx, userText)
	latency := time.Since(start)

	if err != nil {
		log.Printf("provider: completion failed, using fallback: %v", err)
		return Result{Text: FallbackResponse(), Latency: latency, Fallback: true}
	}

	if p.recorder != nil && conversationID != "" {
		p.recorder.RecordInteraction(Interaction{
			ConversationID: conversationID,
			Query:          userText,
			Response:       text,
			LatencyMs:      latency.Milliseconds(),
			Timestamp:      time.Now(),
		})
	}

	return Result{Text: text, Latency: latency}
}
