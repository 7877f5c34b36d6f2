// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"time"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/provider"
	"github.com/jeranaias/collegegenie-tui/internal/tasks"
)

// Sink mirrors chat activity to the history database through the
// background task queue. Every method returns immediately; the write
// happens on a worker, and a failed write is logged by the queue and
// dropped.
//
// With no owner configured the session is anonymous and the sink is a
// complete no-op, leaving the chat path unchanged.
type Sink struct {
	store   *ChatStore
	queue   *tasks.Queue
	ownerID string
}

// NewSink creates a persistence sink. store may be nil when persistence is
// disabled.
func NewSink(store *ChatStore, queue *tasks.Queue, ownerID string) *Sink {
	return &Sink{store: store, queue: queue, ownerID: ownerID}
}

// Enabled reports whether writes will be attempted.
func (s *Sink) Enabled() bool {
	return s != nil && s.store != nil && s.ownerID != ""
}

// UpsertConversation mirrors conversation metadata.
func (s *Sink) UpsertConversation(conv *model.Conversation, isActive bool) {
	if !s.Enabled() {
		return
	}
	id, createdAt := conv.ID, conv.CreatedAt
	s.queue.Submit("conversation upsert", id, func(ctx context.Context) error {
		return s.store.UpsertConversation(ctx, id, s.ownerID, createdAt, isActive)
	})
}

// AppendMessage mirrors one chat message.
func (s *Sink) AppendMessage(conversationID string, m *model.Message) {
	if !s.Enabled() || m == nil || m.Placeholder {
		return
	}
	role, content, ts := string(m.Role), m.Content, m.Timestamp
	s.queue.Submit("chat-message write", conversationID, func(ctx context.Context) error {
		return s.store.AppendMessage(ctx, conversationID, role, content, ts)
	})
}

// RecordInteraction implements provider.Recorder.
func (s *Sink) RecordInteraction(i provider.Interaction) {
	if !s.Enabled() {
		return
	}
	s.queue.Submit("interaction-log write", i.ConversationID, func(ctx context.Context) error {
		ts := i.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		return s.store.AppendInteraction(ctx, s.ownerID, i.Query, i.Response, i.LatencyMs, ts)
	})
}
