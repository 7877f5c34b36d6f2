// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

func TestConversation_Append(t *testing.T) {
	conv := NewConversation()

	m := conv.AppendUser("hello")
	if conv.Len() != 1 {
		t.Fatalf("len: got %d, want 1", conv.Len())
	}
	if conv.Last() != m {
		t.Error("Last should return the appended message")
	}

	// Duplicate IDs are dropped.
	conv.Append(m)
	if conv.Len() != 1 {
		t.Errorf("duplicate append: got %d messages, want 1", conv.Len())
	}
}

func TestConversation_UniqueIDs(t *testing.T) {
	conv := NewConversation()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		m := conv.AppendAssistant("reply")
		if seen[m.ID] {
			t.Fatalf("duplicate message ID %s", m.ID)
		}
		seen[m.ID] = true
	}
	if conv.Len() != 50 {
		t.Errorf("len: got %d, want 50", conv.Len())
	}
}

func TestConversation_RemovePlaceholder(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("what is a b-tree?")
	ph := NewPlaceholderMessage()
	conv.Append(ph)

	if got := conv.Last(); got == nil || !got.Placeholder {
		t.Fatal("placeholder should be the last message")
	}
	if ph.Content != ThinkingText {
		t.Errorf("placeholder content: got %q, want %q", ph.Content, ThinkingText)
	}

	if !conv.RemovePlaceholder() {
		t.Fatal("RemovePlaceholder should report removal")
	}
	if conv.Contains(ph.ID) {
		t.Error("placeholder still present after removal")
	}

	// A second call is a no-op.
	if conv.RemovePlaceholder() {
		t.Error("RemovePlaceholder on a log without one should be false")
	}
}

func TestConversation_Reset(t *testing.T) {
	const greeting = "Hello! How can I help?"

	conv := NewConversation()
	for i := 0; i < 10; i++ {
		conv.AppendUser("q")
		conv.AppendAssistant("a")
	}

	conv.Reset(greeting)

	if conv.Len() != 1 {
		t.Fatalf("after reset: got %d messages, want 1", conv.Len())
	}
	seed := conv.Last()
	if seed.Role != RoleAssistant {
		t.Errorf("seed role: got %s, want %s", seed.Role, RoleAssistant)
	}
	if seed.Content != greeting {
		t.Errorf("seed content: got %q, want %q", seed.Content, greeting)
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Genie"},
		{RoleSystem, "System"},
		{Role("tool"), "tool"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s): got %q, want %q", tt.role, got, tt.want)
		}
	}
}
