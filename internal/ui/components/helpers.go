// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// wordWrap wraps text to width terminal cells, keeping existing line breaks.
// Words wider than width are split.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}

		cur, curWidth := "", 0
		for _, word := range strings.Fields(line) {
			for runewidth.StringWidth(word) > width {
				if cur != "" {
					out.WriteString(cur + "\n")
					cur, curWidth = "", 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				out.WriteString(head + "\n")
				word = word[len(head):]
			}
			w := runewidth.StringWidth(word)
			switch {
			case word == "":
			case cur == "":
				cur, curWidth = word, w
			case curWidth+1+w <= width:
				cur += " " + word
				curWidth += 1 + w
			default:
				out.WriteString(cur + "\n")
				cur, curWidth = word, w
			}
		}
		out.WriteString(cur)
	}
	return out.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
