// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the genie TUI:
// an adaptive color palette and a Theme of prebuilt Lip Gloss styles
// keyed to the terminal's detected capabilities.
package styles
