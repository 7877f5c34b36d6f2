// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the completion side of a chat turn.
//
// Client speaks the chat-completions wire format to the remote endpoint
// with retries and typed errors. Provider wraps it with the policy the
// chat surface depends on: any failure, after retries, degrades to one of
// a fixed set of apology replies instead of an error, and successful
// turns are mirrored to a Recorder without ever blocking the caller.
package provider
