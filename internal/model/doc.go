// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core chat data types: messages, roles, and the
// ordered conversation log.
//
// These types carry no UI or network concerns. The conversation log is an
// append-only sequence with a unique-ID invariant; the only removal paths
// are the transient thinking placeholder and a full reset back to the seed
// greeting.
package model
