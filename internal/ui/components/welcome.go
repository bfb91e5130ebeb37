// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Card is one capability shown on the welcome screen.
type Card struct {
	Icon  string
	Title string
	Body  string
}

// Cards are the capabilities advertised on an empty conversation.
var Cards = []Card{
	{"💡", "Creative Ideas", "Brainstorm and explore new concepts"},
	{"💻", "Code Assistant", "Debug, explain, and write code"},
	{"📝", "Writing Help", "Compose, edit, and refine text"},
	{"🎓", "Learn Anything", "Explain complex topics simply"},
}

// PromptChips are the suggested first messages, picked with keys 1-4.
var PromptChips = []string{
	"Explain quantum computing simply",
	"Write a Python function for sorting",
	"Create a morning routine plan",
	"Help me brainstorm app ideas",
}

// Chip returns the prompt for a 1-based chip number.
func Chip(n int) (string, bool) {
	if n < 1 || n > len(PromptChips) {
		return "", false
	}
	return PromptChips[n-1], true
}

// ChipForKey maps the key "1".."4" to its prompt.
func ChipForKey(key string) (string, bool) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return "", false
	}
	return Chip(n)
}

// RenderWelcome draws the welcome screen centred in width. Cards go two per
// row when there is room and stack otherwise.
func RenderWelcome(th *styles.Theme, p *locale.Printer, width int) string {
	if width < 30 {
		width = 30
	}

	title := th.WelcomeTitle.Render(p.T(locale.WelcomeTitle))
	subtitle := th.WelcomeSubtitle.Render(p.T(locale.WelcomeSubtitle))

	perRow := 1
	if width >= 64 {
		perRow = 2
	}
	cardWidth := clamp((width-4)/perRow-2, 20, 36)

	var rows []string
	for i := 0; i < len(Cards); i += perRow {
		var row []string
		for _, c := range Cards[i:min(i+perRow, len(Cards))] {
			content := th.CardTitle.Render(c.Icon+" "+c.Title) + "\n" +
				th.CardBody.Render(wordWrap(c.Body, cardWidth-2))
			row = append(row, th.Card.Width(cardWidth).Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	chips := make([]string, 0, len(PromptChips))
	for i, prompt := range PromptChips {
		chips = append(chips, th.ChipKey.Render("["+strconv.Itoa(i+1)+"] ")+th.Chip.Render(prompt))
	}

	block := lipgloss.JoinVertical(lipgloss.Center,
		title,
		subtitle,
		"",
		strings.Join(rows, "\n"),
		"",
		th.WelcomeSubtitle.Render(p.T(locale.WelcomeTry)),
		lipgloss.JoinVertical(lipgloss.Left, chips...),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
