// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/chatline/internal/config"
)

// =============================================================================
// THEME RESOLUTION TESTS
// =============================================================================

func TestNewTheme_Explicit(t *testing.T) {
	dark := NewTheme(config.ThemeDark)
	assert.True(t, dark.IsDark)
	assert.Equal(t, config.ThemeDark, dark.Name)

	light := NewTheme(config.ThemeLight)
	assert.False(t, light.IsDark)
	assert.Equal(t, config.ThemeLight, light.Name)
}

func TestNewTheme_AutoFollowsTerminal(t *testing.T) {
	orig := detectDark
	defer func() { detectDark = orig }()

	detectDark = func() bool { return false }
	assert.False(t, NewTheme(config.ThemeAuto).IsDark)

	detectDark = func() bool { return true }
	th := NewTheme("")
	assert.True(t, th.IsDark)
	assert.Equal(t, config.ThemeAuto, th.Name)
}

func TestToggled(t *testing.T) {
	assert.Equal(t, config.ThemeLight, NewTheme(config.ThemeDark).Toggled())
	assert.Equal(t, config.ThemeDark, NewTheme(config.ThemeLight).Toggled())

	assert.Equal(t, Icons.Sun, NewTheme(config.ThemeDark).Icon())
	assert.Equal(t, Icons.Moon, NewTheme(config.ThemeLight).Icon())
}

func TestStylesRender(t *testing.T) {
	th := NewTheme(config.ThemeDark)
	for name, out := range map[string]string{
		"user":   th.UserBubble.Render("hi"),
		"model":  th.ModelBubble.Render("hi"),
		"error":  th.ErrorBubble.Render("hi"),
		"toast":  th.ToastInfo.Render("hi"),
		"dialog": th.DialogBox.Render("hi"),
		"chip":   th.Chip.Render("hi"),
	} {
		assert.Contains(t, out, "hi", name)
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestTypingSpinner(t *testing.T) {
	assert.False(t, TypingSpinner(false).Static())
	assert.True(t, TypingSpinner(true).Static())
	assert.Greater(t, TypingSpinner(false).Duration().Milliseconds(), int64(0))
}

func TestScrollStep(t *testing.T) {
	tests := []struct {
		name      string
		reduce    bool
		remaining int
		want      int
	}{
		{"reduce jumps", true, 40, 40},
		{"animated step", false, 40, scrollStep},
		{"short tail", false, 2, 2},
		{"nothing left", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrollStep(tt.reduce, tt.remaining))
		})
	}
}
