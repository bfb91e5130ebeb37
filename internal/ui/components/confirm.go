// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmResult is the outcome of a key press in a Confirm dialog.
type ConfirmResult int

const (
	ConfirmOpen ConfirmResult = iota
	ConfirmAccepted
	ConfirmRejected
)

// Confirm is a modal yes/no dialog. Focus starts on the cancel button.
type Confirm struct {
	Title        string
	Body         string
	CancelLabel  string
	ConfirmLabel string

	onConfirm bool
}

// NewConfirm creates a dialog.
func NewConfirm(title, body, cancel, confirm string) Confirm {
	return Confirm{Title: title, Body: body, CancelLabel: cancel, ConfirmLabel: confirm}
}

// HandleKey applies a key press. Enter picks the focused button; y and n
// answer directly; Esc cancels.
func (c *Confirm) HandleKey(msg tea.KeyMsg) ConfirmResult {
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.onConfirm = !c.onConfirm
	case "enter", " ", "space":
		if c.onConfirm {
			return ConfirmAccepted
		}
		return ConfirmRejected
	case "y", "Y":
		return ConfirmAccepted
	case "n", "N", "esc", "ctrl+c":
		return ConfirmRejected
	}
	return ConfirmOpen
}

// View draws the dialog centred in width.
func (c Confirm) View(th *styles.Theme, width int) string {
	boxWidth := clamp(width-8, 30, 56)

	cancel, confirm := th.Button, th.ButtonActive
	if !c.onConfirm {
		cancel, confirm = th.ButtonActive, th.Button
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		cancel.Render(c.CancelLabel),
		"  ",
		confirm.Render(c.ConfirmLabel),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		th.DialogTitle.Render(c.Title),
		th.DialogBody.Render(wordWrap(c.Body, boxWidth-6)),
		"",
		lipgloss.PlaceHorizontal(boxWidth-6, lipgloss.Right, buttons),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, th.DialogBox.Width(boxWidth).Render(content))
}
