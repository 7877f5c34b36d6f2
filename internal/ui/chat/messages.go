// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/collegegenie-tui/internal/config"
	"github.com/jeranaias/collegegenie-tui/internal/provider"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// ResponseMsg delivers the resolved provider result for an in-flight turn.
// The fallback path arrives through the same message; by the time the
// provider returns, the result is always displayable text.
type ResponseMsg struct {
	Result provider.Result
}

// SavedMsg reports the outcome of an async conversation save triggered by
// the ctrl+s shortcut.
type SavedMsg struct {
	Err error
}

// ConfigReloadedMsg carries a fresh config after the file changed on
// disk. Only live-tunable presentation settings are applied mid-session.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// statusClearMsg clears a transient status line after its timer fires.
type statusClearMsg struct {
	seq int
}
