// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/chatline/internal/config"
)

// detectDark reports whether the terminal background is dark. Replaced in tests.
var detectDark = termenv.HasDarkBackground

// Theme holds the styled components for one light/dark mode.
type Theme struct {
	// Name is the configured theme: auto, light or dark.
	Name   string
	IsDark bool

	renderer *lipgloss.Renderer

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// Message log
	UserBubble  lipgloss.Style
	ModelBubble lipgloss.Style
	ErrorBubble lipgloss.Style
	BubbleLabel lipgloss.Style
	Timestamp   lipgloss.Style
	Thinking    lipgloss.Style

	// Input area
	InputBox         lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style
	KeyHint          lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style

	// Dialogs and panels
	DialogBox     lipgloss.Style
	DialogTitle   lipgloss.Style
	DialogBody    lipgloss.Style
	Button        lipgloss.Style
	ButtonActive  lipgloss.Style
	PanelRow      lipgloss.Style
	PanelRowFocus lipgloss.Style
	PanelValue    lipgloss.Style

	// Welcome screen
	WelcomeTitle    lipgloss.Style
	WelcomeSubtitle lipgloss.Style
	Card            lipgloss.Style
	CardTitle       lipgloss.Style
	CardBody        lipgloss.Style
	Chip            lipgloss.Style
	ChipKey         lipgloss.Style

	Muted lipgloss.Style
}

// NewTheme builds the theme for a configured name. "light" and "dark" force
// the palette; anything else follows the terminal background.
func NewTheme(name string) *Theme {
	var isDark bool
	switch name {
	case config.ThemeDark:
		isDark = true
	case config.ThemeLight:
		isDark = false
	default:
		name = config.ThemeAuto
		isDark = detectDark()
	}

	r := lipgloss.NewRenderer(os.Stdout)
	r.SetHasDarkBackground(isDark)

	t := &Theme{Name: name, IsDark: isDark, renderer: r}
	t.initStyles()
	return t
}

// Toggled returns the opposite explicit theme name. Auto resolves to the
// mode it is currently showing first.
func (t *Theme) Toggled() string {
	if t.IsDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}

// Icon is the header glyph for the mode the toggle would switch to.
func (t *Theme) Icon() string {
	if t.IsDark {
		return Icons.Sun
	}
	return Icons.Moon
}

// NewStyle returns a blank style bound to this theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.Header = s().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.HeaderTitle = s().Bold(true).Foreground(Indigo)
	t.HeaderHint = s().Foreground(TextSecondary)

	t.UserBubble = s().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.ModelBubble = s().
		Foreground(ModelBubbleFg).
		Background(ModelBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ModelBubbleBorder).
		Padding(0, 1)
	t.ErrorBubble = s().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Danger).
		Padding(0, 1)
	t.BubbleLabel = s().Bold(true).Foreground(TextSecondary)
	t.Timestamp = s().Foreground(TextMuted).Italic(true)
	t.Thinking = s().Foreground(Violet).Italic(true)

	t.InputBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)
	t.CharCount = s().Foreground(TextMuted)
	t.CharCountWarning = s().Foreground(Warning)
	t.CharCountDanger = s().Foreground(Danger).Bold(true)
	t.KeyHint = s().Foreground(TextMuted)

	toast := s().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Bold(true)
	t.ToastSuccess = toast.BorderForeground(Success).Foreground(Success)
	t.ToastError = toast.BorderForeground(Danger).Foreground(Danger)
	t.ToastInfo = toast.BorderForeground(Info).Foreground(Info)

	t.DialogBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Background(SurfaceRaised).
		Padding(1, 2)
	t.DialogTitle = s().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.DialogBody = s().Foreground(TextSecondary)
	t.Button = s().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	t.ButtonActive = t.Button.
		Foreground(TextInverse).
		Background(Indigo).
		BorderForeground(Indigo).
		Bold(true)
	t.PanelRow = s().Foreground(TextPrimary).PaddingLeft(2)
	t.PanelRowFocus = s().Foreground(Indigo).Bold(true).PaddingLeft(2)
	t.PanelValue = s().Foreground(TextSecondary)

	t.WelcomeTitle = s().Bold(true).Foreground(Indigo)
	t.WelcomeSubtitle = s().Foreground(TextSecondary)
	t.Card = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.CardTitle = s().Bold(true).Foreground(TextPrimary)
	t.CardBody = s().Foreground(TextSecondary)
	t.Chip = s().
		Foreground(Violet).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ModelBubbleBorder).
		Padding(0, 1)
	t.ChipKey = s().Foreground(TextMuted)

	t.Muted = s().Foreground(TextMuted)
}
