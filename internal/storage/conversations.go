// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// ErrConversationNotFound is returned when loading an unknown ID.
var ErrConversationNotFound = errors.New("conversation not found")

// StoredConversation is the JSON form of a saved conversation.
type StoredConversation struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []StoredMessage `json:"messages"`
}

// StoredMessage is the JSON form of one message.
type StoredMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int64     `json:"latency_ms,omitempty"`
}

// ConversationMeta is the listing view of a saved conversation.
type ConversationMeta struct {
	ID           string    `json:"id"`
	Summary      string    `json:"summary"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// ConversationStore persists conversations as JSON files, one per
// conversation, under the base directory.
type ConversationStore struct {
	// BaseDir is the storage directory, default ~/.collegegenie/conversations.
	BaseDir string

	// MaxConversations caps stored conversations; oldest are evicted.
	// Zero means unlimited.
	MaxConversations int
}

// NewConversationStore creates a store under the user's home directory.
func NewConversationStore() (*ConversationStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewConversationStoreWithDir(filepath.Join(homeDir, ".collegegenie", "conversations"))
}

// NewConversationStoreWithDir creates a store with a custom directory.
func NewConversationStoreWithDir(baseDir string) (*ConversationStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &ConversationStore{
		BaseDir:          baseDir,
		MaxConversations: 100,
	}, nil
}

// FromConversation converts a live conversation to its stored form. The
// transient placeholder, if present, is skipped.
func FromConversation(conv *model.Conversation) *StoredConversation {
	stored := &StoredConversation{
		ID:        conv.ID,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
	for _, m := range conv.Messages {
		if m.Placeholder {
			continue
		}
		stored.Messages = append(stored.Messages, StoredMessage{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			LatencyMs: m.LatencyMs,
		})
	}
	return stored
}

// Save persists a conversation and returns its ID.
func (s *ConversationStore) Save(conv *StoredConversation) (string, error) {
	if conv.ID == "" {
		return "", errors.New("conversation has no ID")
	}
	if conv.Summary == "" {
		conv.Summary = summarize(conv)
	}
	conv.UpdatedAt = time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = conv.UpdatedAt
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode conversation: %w", err)
	}

	// RELIABILITY: Atomic write prevents a truncated file on crash.
	if err := util.AtomicWriteFile(s.filePath(conv.ID), data, 0644); err != nil {
		return "", err
	}

	if s.MaxConversations > 0 {
		s.enforceLimit()
	}
	return conv.ID, nil
}

// Load reads a conversation by ID.
func (s *ConversationStore) Load(id string) (*StoredConversation, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
		}
		return nil, err
	}

	var conv StoredConversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

// List returns saved conversation metadata, most recently updated first.
// Corrupted files are skipped rather than failing the listing.
func (s *ConversationStore) List() ([]ConversationMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		return nil, err
	}

	metas := make([]ConversationMeta, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		conv, err := s.Load(id)
		if err != nil {
			continue
		}
		metas = append(metas, ConversationMeta{
			ID:           conv.ID,
			Summary:      conv.Summary,
			UpdatedAt:    conv.UpdatedAt,
			MessageCount: len(conv.Messages),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

// Delete removes a saved conversation.
func (s *ConversationStore) Delete(id string) error {
	err := os.Remove(s.filePath(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return err
}

func (s *ConversationStore) filePath(id string) string {
	// IDs are generated internally; base-name them anyway so a crafted ID
	// cannot escape the store directory.
	return filepath.Join(s.BaseDir, filepath.Base(id)+".json")
}

// summarize derives a listing summary from the first user message.
func summarize(conv *StoredConversation) string {
	for _, msg := range conv.Messages {
		if msg.Role == string(model.RoleUser) && msg.Content != "" {
			line := strings.ReplaceAll(msg.Content, "\n", " ")
			line = strings.ReplaceAll(line, "\r", "")
			return util.TruncateRunes(line, 50)
		}
	}
	return "New conversation"
}

// enforceLimit evicts the oldest conversations beyond the cap.
func (s *ConversationStore) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxConversations {
		return
	}
	// List is newest-first; everything past the cap goes.
	for _, meta := range metas[s.MaxConversations:] {
		s.Delete(meta.ID)
	}
}
