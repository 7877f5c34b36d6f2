// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the genie application.
//
// This package contains common helper functions used throughout the
// application for width-aware string handling, numeric formatting, and
// crash-safe file writes.
//
// # Usage
//
//	// Truncate long strings safely for terminal display
//	display := util.TruncateWidth(longText, 50)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
