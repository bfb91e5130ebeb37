// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides colors, themes and animation settings for the chat
interface.

Colors are lipgloss.AdaptiveColor pairs. A Theme binds them to its own
renderer with the background forced light or dark, so the same palette serves
both modes and "auto" follows the terminal:

	theme := styles.NewTheme(cfg.UI.Theme)
	box := theme.UserBubble.Width(40).Render(text)

	// Ctrl+T
	theme = styles.NewTheme(theme.Toggled())

TypingSpinner and ScrollStep honour the reduce-motion preference.
*/
package styles
