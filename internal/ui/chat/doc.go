// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the interactive chat
// view. The model owns the presentation only; conversation state, the
// submit cycle, and telemetry live in the session package. A turn flows
// as: key enter -> session.Begin -> async tea.Cmd resolves the provider
// call -> ResponseMsg -> session.Complete -> re-render.
package chat
