// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/sanitize"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// =============================================================================
// MESSAGE LOG ENTRIES
// =============================================================================

// EntryKind is what a message log entry shows.
type EntryKind int

const (
	EntryUser EntryKind = iota
	EntryModel
	EntryPending
	EntryError
)

// Entry is one rendered element of the message log. Pending and error
// entries are never part of the conversation.
type Entry struct {
	ID   string
	Kind EntryKind
	Text string
	At   time.Time
}

// BubbleOptions controls how entries are drawn.
type BubbleOptions struct {
	Width          int
	ShowTimestamps bool
	UserLabel      string
	ModelLabel     string
	ThinkingLabel  string
	// Frame is the current typing indicator frame.
	Frame string
}

// bubbleShare is the widest a bubble may be, as a fraction of the log.
const bubbleShare = 0.8

// RenderEntry draws one entry. User bubbles are right-aligned, everything
// else sits on the left. User and model text is stripped of markdown markers
// before display.
func RenderEntry(th *styles.Theme, e Entry, opts BubbleOptions) string {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	// border (2) + padding (2)
	inner := clamp(int(float64(width)*bubbleShare)-4, 8, width-4)

	var (
		label string
		body  string
		align = lipgloss.Left
	)
	switch e.Kind {
	case EntryUser:
		label = opts.UserLabel
		body = th.UserBubble.Render(wordWrap(sanitize.Strip(e.Text), inner))
		align = lipgloss.Right
	case EntryModel:
		label = opts.ModelLabel
		body = th.ModelBubble.Render(wordWrap(sanitize.Strip(e.Text), inner))
	case EntryPending:
		label = opts.ModelLabel
		body = th.ModelBubble.Render(th.Thinking.Render(strings.TrimSpace(opts.Frame + " " + opts.ThinkingLabel)))
	case EntryError:
		label = opts.ModelLabel
		body = th.ErrorBubble.Render(wordWrap(e.Text, inner))
	}

	parts := make([]string, 0, 3)
	if label != "" {
		parts = append(parts, th.BubbleLabel.Render(label))
	}
	parts = append(parts, body)
	if opts.ShowTimestamps && e.Kind != EntryPending && !e.At.IsZero() {
		parts = append(parts, th.Timestamp.Render(e.At.Format("3:04 PM")))
	}

	block := lipgloss.JoinVertical(align, parts...)
	return lipgloss.PlaceHorizontal(width, align, block)
}

// RenderLog draws entries separated by blank lines.
func RenderLog(th *styles.Theme, entries []Entry, opts BubbleOptions) string {
	rendered := make([]string, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, RenderEntry(th, e, opts))
	}
	return strings.Join(rendered, "\n\n")
}
