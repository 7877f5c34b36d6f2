// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for genie.
//
// Two independent surfaces live here. ConversationStore saves whole
// conversations as JSON files under ~/.collegegenie/conversations/ for the
// /save and /sessions commands. ChatStore plus Sink form the write-only
// history mirror: conversation records, chat messages, and interaction
// logs flushed to SQLite through the background task queue, fire-and-
// forget, disabled entirely in anonymous sessions.
package storage
