// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatline/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// Typing is the "thinking" animation shown in pending bubbles. With reduce
// motion it shows a single still frame and never schedules ticks.
type Typing struct {
	spinner spinner.Model
	static  bool
}

// NewTyping creates an indicator for the motion preference.
func NewTyping(reduceMotion bool) Typing {
	cfg := styles.TypingSpinner(reduceMotion)
	s := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: cfg.Frames,
		FPS:    cfg.Duration(),
	}))
	return Typing{spinner: s, static: cfg.Static()}
}

// Static reports whether the indicator is still.
func (t Typing) Static() bool {
	return t.static
}

// Tick starts the animation. It returns nil when static.
func (t Typing) Tick() tea.Cmd {
	if t.static {
		return nil
	}
	return t.spinner.Tick
}

// Update advances the animation on its own tick messages.
func (t Typing) Update(msg tea.Msg) (Typing, tea.Cmd) {
	if t.static {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// Frame returns the current frame.
func (t Typing) Frame() string {
	return t.spinner.View()
}
