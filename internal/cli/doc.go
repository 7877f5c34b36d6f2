// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the genie command line surface: argument
// parsing, the one-shot ask command, the line-based chat REPL, and the
// status and config commands. The full-screen TUI lives in ui/chat and
// is launched from main.
package cli
