// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// =============================================================================
// SETTINGS PANEL
// =============================================================================

// SettingsAction is the outcome of a key press in the settings panel.
type SettingsAction int

const (
	SettingsNone SettingsAction = iota
	SettingsChanged
	SettingsClosed
)

type settingRow struct {
	key     string
	label   string
	options []string
}

var onOff = []string{"true", "false"}

var settingRows = []settingRow{
	{"ui.theme", "Theme", []string{config.ThemeAuto, config.ThemeLight, config.ThemeDark}},
	{"ui.show_timestamps", "Show timestamps", onOff},
	{"ui.sound_effects", "Sound effects", onOff},
	{"ui.auto_scroll", "Auto-scroll", onOff},
	{"ui.reduce_motion", "Reduce motion", onOff},
	{"ui.language", "Language", []string{"", "en", "es", "de"}},
}

// Settings edits the UI section of a config copy.
type Settings struct {
	cfg    config.Config
	cursor int
}

// NewSettings opens the panel on a copy of cfg.
func NewSettings(cfg *config.Config) Settings {
	return Settings{cfg: *cfg}
}

// Config returns the edited copy.
func (s Settings) Config() *config.Config {
	c := s.cfg
	return &c
}

// HandleKey applies a key press. Up and down move between rows; left, right,
// space and enter cycle the value; Esc closes.
func (s *Settings) HandleKey(msg tea.KeyMsg) SettingsAction {
	switch msg.String() {
	case "up", "k", "shift+tab":
		s.cursor = (s.cursor + len(settingRows) - 1) % len(settingRows)
	case "down", "j", "tab":
		s.cursor = (s.cursor + 1) % len(settingRows)
	case "right", "l", " ", "space", "enter":
		if s.cycle(1) {
			return SettingsChanged
		}
	case "left", "h":
		if s.cycle(-1) {
			return SettingsChanged
		}
	case "esc", "q", "ctrl+o":
		return SettingsClosed
	}
	return SettingsNone
}

func (s *Settings) cycle(step int) bool {
	row := settingRows[s.cursor]
	cur, err := s.cfg.Get(row.key)
	if err != nil {
		return false
	}
	idx := 0
	for i, opt := range row.options {
		if opt == cur {
			idx = i
			break
		}
	}
	next := row.options[(idx+step+len(row.options))%len(row.options)]
	return s.cfg.Set(row.key, next) == nil
}

func displayValue(v string) string {
	switch v {
	case "true":
		return "on"
	case "false":
		return "off"
	case "":
		return "system"
	}
	return v
}

// View draws the panel.
func (s Settings) View(th *styles.Theme, title string, width int) string {
	boxWidth := clamp(width-8, 34, 50)
	labelWidth := 0
	for _, row := range settingRows {
		labelWidth = max(labelWidth, len(row.label))
	}

	lines := []string{th.DialogTitle.Render(title)}
	for i, row := range settingRows {
		v, _ := s.cfg.Get(row.key)
		text := row.label + strings.Repeat(" ", labelWidth-len(row.label)+2) + th.PanelValue.Render("‹ "+displayValue(v)+" ›")
		if i == s.cursor {
			lines = append(lines, th.PanelRowFocus.Render("> "+text))
		} else {
			lines = append(lines, th.PanelRow.Render("  "+text))
		}
	}
	lines = append(lines, "", th.KeyHint.Render("↑/↓ select  ←/→ change  esc close"))

	box := th.DialogBox.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
