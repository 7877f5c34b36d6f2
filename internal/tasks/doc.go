// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs fire-and-forget persistence writes off the chat turn.
//
// The queue accepts writes without ever blocking the caller: a full buffer
// drops the write and logs it. Failures are terminal, never retried, and
// reach the rest of the application only as log lines and non-blocking
// notifications. Multiple writes may be in flight at once; they carry no
// ordering guarantee relative to each other or to the chat turn that
// spawned them.
package tasks
