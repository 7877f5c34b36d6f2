// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates, and watches the genie configuration.
//
// The config lives at ~/.collegegenie/config.toml. Precedence is
// environment variables over file values over defaults. The file is kept
// at 0600 and written atomically because it may hold an API key; the
// optional Watcher reloads it on change, keeping the last good config
// when a reload fails to parse.
package config
