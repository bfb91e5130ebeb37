// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sound plays short feedback tones through the terminal bell.
package sound

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Effect names a feedback sound.
type Effect string

const (
	Send    Effect = "send"
	Receive Effect = "receive"
	Pop     Effect = "pop"
	Clear   Effect = "clear"
	Export  Effect = "export"
)

// Frequency returns the tone of an effect in Hz, or 0 if unknown.
func (e Effect) Frequency() int {
	switch e {
	case Send:
		return 440
	case Receive:
		return 523
	case Pop:
		return 659
	case Clear:
		return 349
	case Export:
		return 587
	}
	return 0
}

// toneMillis is how long each tone lasts.
const toneMillis = 100

// Player plays effects.
type Player interface {
	Play(Effect)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Effect) {}

// Bell rings the terminal bell. On the Linux virtual console it first sets
// the bell pitch and length, so each effect keeps its own tone; elsewhere all
// effects share the terminal's bell.
type Bell struct {
	mu      sync.Mutex
	out     io.Writer
	pitched bool
	enabled func() bool
}

// NewBell creates a bell writing to out. enabled is consulted on every Play,
// so toggling sound in settings takes effect immediately.
func NewBell(out io.Writer, enabled func() bool) *Bell {
	if out == nil {
		out = os.Stdout
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Bell{
		out:     out,
		pitched: os.Getenv("TERM") == "linux",
		enabled: enabled,
	}
}

// Play rings the bell for e if sound is enabled and e is known.
func (b *Bell) Play(e Effect) {
	freq := e.Frequency()
	if freq == 0 || !b.enabled() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pitched {
		fmt.Fprintf(b.out, "\x1b[10;%d]\x1b[11;%d]\a", freq, toneMillis)
		return
	}
	io.WriteString(b.out, "\a")
}
