// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat interface.
//
// Model wires an exchange.Controller to Bubble Tea. Pressing Enter runs
// Begin inside Update, so the user's bubble and the typing placeholder
// appear at once; the network call runs as a tea.Cmd and its outcome comes
// back as a message that Update hands to Resolve. Several exchanges may be
// in flight at once, each against its own placeholder.
//
// The Transcript is the controller's View. It holds what is drawn (bubbles,
// placeholders and failure notices) while the session holds only real turns.
//
// Settings changes from the panel or the theme shortcut are saved straight
// away; edits made to the settings file while the app runs arrive as
// SettingsReloadedMsg.
package chat
