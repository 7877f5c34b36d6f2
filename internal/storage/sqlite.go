// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ChatStore is the hosted-history mirror: a write-only SQLite sink for
// conversation records, chat messages, and interaction logs. The chat core
// never reads these back.
type ChatStore struct {
	db *sql.DB
}

// OpenChatStore opens (and if needed creates) the history database.
func OpenChatStore(dbPath string) (*ChatStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY churn from the concurrent write workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &ChatStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *ChatStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		is_active  INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL,
		content         TEXT NOT NULL,
		role            TEXT NOT NULL,
		timestamp       TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation
		ON chat_messages(conversation_id);

	CREATE TABLE IF NOT EXISTS interaction_logs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id   TEXT NOT NULL,
		query      TEXT NOT NULL,
		response   TEXT NOT NULL,
		latency_ms INTEGER NOT NULL,
		timestamp  TIMESTAMP NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// UpsertConversation inserts or refreshes a conversation record.
func (s *ChatStore) UpsertConversation(ctx context.Context, id, ownerID string, createdAt time.Time, isActive bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, owner_id, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			is_active  = excluded.is_active`,
		id, ownerID, createdAt, time.Now(), boolToInt(isActive))
	if err != nil {
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}
	return nil
}

// AppendMessage records one chat message.
func (s *ChatStore) AppendMessage(ctx context.Context, conversationID, role, content string, timestamp time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (conversation_id, content, role, timestamp)
		VALUES (?, ?, ?, ?)`,
		conversationID, content, role, timestamp)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// AppendInteraction records one query/response pair with its latency.
func (s *ChatStore) AppendInteraction(ctx context.Context, ownerID, query, response string, latencyMs int64, timestamp time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interaction_logs (owner_id, query, response, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		ownerID, query, response, latencyMs, timestamp)
	if err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *ChatStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
