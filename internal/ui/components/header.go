// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/ui/styles"
	"github.com/jeranaias/chatline/internal/util"
)

// =============================================================================
// HEADER
// =============================================================================

// HeaderActions are the shortcuts advertised on the right of the header.
var HeaderActions = []string{"^T theme", "^N new", "^E export", "^O settings", "^Q quit"}

// RenderHeader draws the title bar. Shortcut hints are dropped from the right
// until the line fits.
func RenderHeader(th *styles.Theme, title, status string, width int) string {
	left := th.HeaderTitle.Render("✦ " + title)
	if status != "" {
		left += "  " + th.HeaderHint.Render(status)
	}

	// padding
	avail := width - 2 - lipgloss.Width(left)
	actions := append([]string{th.Icon()}, HeaderActions...)
	right := ""
	for n := len(actions); n > 0; n-- {
		candidate := strings.Join(actions[:n], "  ")
		if util.Width(candidate)+2 <= avail {
			right = th.HeaderHint.Render(candidate)
			break
		}
	}

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return th.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
