// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a copy of the conversation to a file.
//
// # Supported Formats
//
//   - txt: "You: ..." / "Gemini AI: ..." blocks separated by blank lines
//   - md: Markdown with a YAML front matter header
//   - json: machine-readable, the same turn shape the service receives
//   - yaml: the same document as json, in YAML
//
// # Usage
//
//	conv := export.FromSession(sess)
//	exporter, _ := export.ForFormat("txt")
//	path, err := export.ToFile(conv, exporter, export.DefaultOptions())
//
// Files are named gemini-chat-YYYY-MM-DD with the format's extension; an
// existing file is never overwritten, a numeric suffix is added instead.
package export
