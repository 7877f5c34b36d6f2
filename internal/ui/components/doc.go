// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks for the
// CollegeGenie TUI: message bubbles, the thinking spinner, the stats
// footer, and the welcome screen. Components are pure renderers; they
// hold no session state beyond what the chat model hands them each
// frame.
package components
