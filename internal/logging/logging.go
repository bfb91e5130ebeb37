// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the global zerolog logger.
//
// While the full-screen UI owns the terminal, diagnostics go to a JSON log
// file. Line-mode commands can log to stderr instead with a console writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatline/internal/util"
)

// Options selects where and how much to log.
type Options struct {
	Level string
	// File is the JSON log path. Empty means ~/.chatline/chatline.log.
	File string
	// Console sends human-readable output to stderr instead of the file.
	Console bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// DefaultFile returns ~/.chatline/chatline.log.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatline", "chatline.log"), nil
}

// Setup replaces the global logger. The returned closer releases the log
// file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	level := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	if opts.Console {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return nopCloser{}, nil
	}

	path := util.ExpandHome(opts.File)
	if path == "" {
		p, err := DefaultFile()
		if err != nil {
			log.Logger = zerolog.Nop()
			return nopCloser{}, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.Logger = zerolog.Nop()
		return nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// SetupWriter points the global logger at w. Used by tests.
func SetupWriter(w io.Writer, level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
