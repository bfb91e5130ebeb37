// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/ui/components"
	"github.com/jeranaias/chatline/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	headerHeight = 1
	footerHeight = 1
	// textarea rows plus the input box border
	inputChrome = 2
)

// layout sizes the viewport and input for the current window.
func (m *Model) layout() {
	width := max(m.width, 20)
	m.input.SetWidth(width - 4)
	m.help.Width = width

	bodyHeight := m.height - headerHeight - footerHeight - m.input.Height() - inputChrome
	m.viewport.Width = width
	m.viewport.Height = max(bodyHeight, 3)
	m.refresh()
}

// refresh re-renders the message log into the viewport. The welcome screen
// stands in for an empty log.
func (m *Model) refresh() {
	entries := m.transcript.Entries()
	if len(entries) == 0 {
		m.viewport.SetContent(components.RenderWelcome(m.theme, m.printer, m.viewport.Width))
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(components.RenderLog(m.theme, entries, components.BubbleOptions{
		Width:          m.viewport.Width,
		ShowTimestamps: m.cfg.UI.ShowTimestamps,
		UserLabel:      model.RoleUser.DisplayName(),
		ModelLabel:     model.RoleModel.DisplayName(),
		ThinkingLabel:  m.printer.T(locale.Thinking),
		Frame:          m.typing.Frame(),
	}))
	if atBottom && m.cfg.UI.AutoScroll && !m.scrolling {
		m.viewport.GotoBottom()
	}
}

// applyTheme restyles the bubbles components.
func (m *Model) applyTheme() {
	m.input.FocusedStyle.Placeholder = m.theme.Muted
	m.input.BlurredStyle.Placeholder = m.theme.Muted
	m.input.FocusedStyle.CursorLine = m.theme.NewStyle()
	m.help.Styles.ShortKey = m.theme.KeyHint.Bold(true)
	m.help.Styles.ShortDesc = m.theme.KeyHint
	m.help.Styles.ShortSeparator = m.theme.KeyHint
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	width := max(m.width, 20)

	header := components.RenderHeader(m.theme, model.RoleModel.DisplayName(), endpointHost(m.cfg), width)

	var body string
	switch m.overlay {
	case overlayConfirm:
		body = lipgloss.Place(width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			m.confirm.View(m.theme, width))
	case overlaySettings:
		body = lipgloss.Place(width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			m.settings.View(m.theme, m.printer.T(locale.SettingsTitle), width))
	default:
		body = m.viewport.View()
	}
	if toasts := m.toasts.Active(); len(toasts) > 0 {
		body = overlayBottom(body, components.RenderToastStack(m.theme, toasts, width))
	}

	input := m.theme.InputBox.Width(width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, m.footer(width))
}

// footer shows the character counter and key hints.
func (m Model) footer(width int) string {
	n := util.RuneLen(m.input.Value())
	counter := fmt.Sprintf("%d / %d", n, exchange.MaxInputLength)
	if n > DangerThreshold {
		counter = m.theme.CharCountDanger.Render(counter)
	} else {
		counter = m.theme.CharCount.Render(counter)
	}

	hints := m.help.View(m.keys)
	gap := width - lipgloss.Width(counter) - lipgloss.Width(hints) - 1
	if gap < 1 {
		return counter
	}
	return counter + strings.Repeat(" ", gap) + hints
}

// overlayBottom replaces the last lines of base with top.
func overlayBottom(base, top string) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	if len(topLines) > len(baseLines) {
		topLines = topLines[len(topLines)-len(baseLines):]
	}
	copy(baseLines[len(baseLines)-len(topLines):], topLines)
	return strings.Join(baseLines, "\n")
}
