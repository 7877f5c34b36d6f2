// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Role identifies the sender of a message.
type Role string

const (
	// RoleUser is a message typed by the student.
	RoleUser Role = "user"

	// RoleAssistant is a message produced by the assistant, including
	// canned fallback replies and command output.
	RoleAssistant Role = "assistant"

	// RoleSystem is the persona instruction sent with completion requests.
	// System messages are never appended to a conversation log.
	RoleSystem Role = "system"
)

// DisplayName returns the human-readable label for a role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Genie"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// ThinkingText is the content of the placeholder message shown while a
// completion request is in flight.
const ThinkingText = "Thinking..."

// Message is a single entry in a conversation log.
//
// Messages are immutable once appended. The transient thinking placeholder
// is the lone exception: it is removed and replaced by the final assistant
// message, never edited in place.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time

	// Placeholder marks the transient thinking entry shown while a
	// completion request is outstanding.
	Placeholder bool

	// LatencyMs is the wall-clock duration of the completion request that
	// produced this message, in milliseconds. Zero for user messages,
	// command output, and fallback replies.
	LatencyMs int64
}

// NewMessage creates a message with a fresh ID and timestamp.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a message from the student.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a message from the assistant.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewPlaceholderMessage creates the transient thinking entry.
func NewPlaceholderMessage() *Message {
	m := NewMessage(RoleAssistant, ThinkingText)
	m.Placeholder = true
	return m
}

// generateID creates a unique message identifier.
func generateID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Entropy failure is effectively impossible; fall back to a
		// timestamp so the ID is still usable.
		return "msg_" + hex.EncodeToString([]byte(time.Now().Format("150405.000000000")))
	}
	return "msg_" + hex.EncodeToString(bytes)
}
