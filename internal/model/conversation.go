// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Conversation is the ordered message log for one chat session.
//
// Ordering is append-order; there is no reordering or editing. The log is
// only ever mutated from the UI event loop, so Conversation carries no lock.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []*Message
}

// NewConversation creates an empty conversation with a fresh identifier.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        generateConversationID(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0, 16),
	}
}

// Append adds a message to the end of the log. Messages whose ID is already
// present are dropped, preserving the unique-ID invariant.
func (c *Conversation) Append(m *Message) {
	if m == nil || c.Contains(m.ID) {
		return
	}
	c.Messages = append(c.Messages, m)
	c.UpdatedAt = time.Now()
}

// AppendUser appends a user message and returns it.
func (c *Conversation) AppendUser(content string) *Message {
	m := NewUserMessage(content)
	c.Append(m)
	return m
}

// AppendAssistant appends an assistant message and returns it.
func (c *Conversation) AppendAssistant(content string) *Message {
	m := NewAssistantMessage(content)
	c.Append(m)
	return m
}

// Contains reports whether a message with the given ID is in the log.
func (c *Conversation) Contains(id string) bool {
	for _, m := range c.Messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Remove deletes the message with the given ID, if present.
func (c *Conversation) Remove(id string) bool {
	for i, m := range c.Messages {
		if m.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// RemovePlaceholder deletes the trailing placeholder message, if present.
// The placeholder, when it exists, is always the last element.
func (c *Conversation) RemovePlaceholder() bool {
	if last := c.Last(); last != nil && last.Placeholder {
		return c.Remove(last.ID)
	}
	return false
}

// Last returns the most recent message, or nil for an empty log.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Reset discards the entire log and reseeds it with the given greeting as
// the sole assistant message.
func (c *Conversation) Reset(greeting string) {
	c.Messages = c.Messages[:0]
	c.Append(NewAssistantMessage(greeting))
}

// generateConversationID creates a unique conversation identifier.
func generateConversationID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "conv_" + hex.EncodeToString([]byte(time.Now().Format("150405.000000000")))
	}
	return "conv_" + hex.EncodeToString(bytes)
}
