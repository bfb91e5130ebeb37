// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/util"
)

// ErrEmptyConversation is returned when there is nothing to export.
var ErrEmptyConversation = errors.New("no conversation to export")

// ErrUnknownFormat is returned by ForFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// FilePrefix starts every export file name.
const FilePrefix = "gemini-chat-"

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Conversation is the exported view of a session.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	Turns     []model.Turn
}

// FromSession takes a snapshot of sess.
func FromSession(sess *model.Session) *Conversation {
	return &Conversation{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Turns:     sess.Snapshot(),
	}
}

// Exporter renders a conversation in one format.
type Exporter interface {
	Export(conv *Conversation) ([]byte, error)
	FileExtension() string
	MimeType() string
}

// Formats lists the names accepted by ForFormat.
func Formats() []string {
	return []string{"txt", "md", "json", "yaml"}
}

// ForFormat returns the exporter for a format name.
func ForFormat(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "txt", "text":
		return TextExporter{}, nil
	case "md", "markdown":
		return MarkdownExporter{}, nil
	case "json":
		return JSONExporter{}, nil
	case "yaml", "yml":
		return YAMLExporter{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures ToFile.
type Options struct {
	// OutputDir is where the file is written. Default: current directory.
	OutputDir string
	// Now stamps the file name. Default: time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: ".", Now: time.Now}
}

// ToFile exports conv with exporter and returns the path written.
func ToFile(conv *Conversation, exporter Exporter, opts *Options) (string, error) {
	if conv == nil || len(conv.Turns) == 0 {
		return "", ErrEmptyConversation
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	path := availablePath(filepath.Join(dir, FileName(now(), "")), exporter.FileExtension())
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// FileName returns the export file name for a date, e.g.
// gemini-chat-2025-01-31.txt.
func FileName(t time.Time, ext string) string {
	return FilePrefix + t.Format("2006-01-02") + ext
}

// availablePath returns base+ext, or base-N+ext for the first N that does not
// exist yet.
func availablePath(base, ext string) string {
	candidate := base + ext
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
}
