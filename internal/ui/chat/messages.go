// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/exchange"
)

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// exchangeResultMsg carries the outcome of a request back to Update.
type exchangeResultMsg struct {
	ex  *exchange.Exchange
	out exchange.Outcome
}

// =============================================================================
// SETTINGS MESSAGES
// =============================================================================

// SettingsReloadedMsg is sent when the settings file changed on disk.
type SettingsReloadedMsg struct {
	Config *config.Config
	Err    error
}

// settingsSavedMsg reports the result of writing settings.
type settingsSavedMsg struct {
	err    error
	silent bool
}

// =============================================================================
// ACTION MESSAGES
// =============================================================================

// exportDoneMsg reports where the conversation was written.
type exportDoneMsg struct {
	path string
	err  error
}

// scrollTickMsg advances the scroll animation.
type scrollTickMsg struct{}
