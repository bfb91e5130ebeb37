// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the building blocks of the chat screen:
// message bubbles, the typing indicator, toasts, the welcome screen, the
// confirm dialog, the settings panel and the header.
//
// Components render against a *styles.Theme and hold no reference to the
// conversation; the chat model owns all state and passes what each one needs.
package components
