// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo is the brand accent: header, focus ring, send hint.
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// Violet marks the model side of the conversation.
var Violet = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

var (
	Success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	Danger  = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	Warning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	Info    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
)

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

var (
	Surface       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceDim    = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#181825"}
	SurfaceRaised = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#313244"}
	Border        = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#45475A"}

	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

// User bubbles sit on the right in the brand gradient's blue.
var (
	UserBubbleBg     = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
	UserBubbleFg     = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
	UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}
)

// Model bubbles sit on the left in a muted violet.
var (
	ModelBubbleBg     = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#3B3655"}
	ModelBubbleFg     = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"}
	ModelBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"}
)

// Error bubbles replace a pending indicator when an exchange fails.
var (
	ErrorBubbleBg = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#881337"}
	ErrorBubbleFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}
)

// =============================================================================
// ICONS
// =============================================================================

// Icons shown next to toasts and status lines.
var Icons = struct {
	Success string
	Error   string
	Info    string
	Send    string
	Sun     string
	Moon    string
}{
	Success: "✓",
	Error:   "✕",
	Info:    "ⓘ",
	Send:    "➤",
	Sun:     "☀",
	Moon:    "☾",
}
