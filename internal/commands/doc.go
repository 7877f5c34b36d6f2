// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the slash-command interpreter.
//
// Input starting with "/" is matched case-insensitively by prefix against
// the registered command set, first match wins; anything else falls
// through to the completion provider. Matched commands resolve
// synchronously and locally: they produce response text, request a
// session action such as clearing the log, or both. No command ever makes
// a network call.
package commands
