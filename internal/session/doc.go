// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the conversational state machine.
//
// A session moves Idle -> Submitting -> Idle. Begin guards the cycle:
// empty input and double submits are rejected silently, commands resolve
// locally without touching the network, and everything else raises the
// thinking placeholder until Complete swaps it for the final assistant
// message. Failures never reach the log as errors; the provider has
// already degraded them to apology text by the time Complete runs.
//
// At most one completion request is in flight per session. The
// fire-and-forget history writes are exempt from that guard and carry no
// ordering guarantee.
package session
