// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sanitize strips markdown syntax from message text before display.
//
// Stripping is a rendering concern only. Stored turns and the conversation
// sent back to the endpoint keep the raw text.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`#{1,6}[\s\v\x{00A0}\x{2028}\x{2029}\x{FEFF}\p{Zs}]*`)
	emphasisRe = regexp.MustCompile("[*_`]{1,2}")
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Strip removes heading markers, emphasis and code markers, reduces links to
// their label and collapses three or more newlines to two. The passes run in
// that order, so emphasis inside a link label is removed before the link is
// reduced.
func Strip(text string) string {
	text = headingRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
