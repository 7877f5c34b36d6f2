// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry tracks per-session conversation statistics.
//
// SessionStats maintains two incrementally updated estimates without
// storing sample history: the rolling average completion latency
// (previous average and new sample combined at equal weight) and the
// typing-speed estimate in characters per minute (weighted 0.7 toward the
// newest sample, with keystroke gaps of five seconds or more discarded as
// pauses). The asymmetry between the two formulas is intentional and
// load-bearing for the /stats output.
package telemetry
