// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"time"

	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/ui/components"
)

// Transcript is the message log as shown on screen. It implements
// exchange.View; placeholders and error notices live here and never in the
// session. Use it as a pointer so Bubble Tea's model copies share it.
type Transcript struct {
	mu      sync.Mutex
	entries []components.Entry
	scroll  bool
	now     func() time.Time
}

var _ exchange.View = (*Transcript)(nil)

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{now: time.Now}
}

// OnUserTurn appends the user's bubble.
func (t *Transcript) OnUserTurn(turn model.Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, components.Entry{
		ID: turn.ID, Kind: components.EntryUser, Text: turn.Text, At: turn.At,
	})
}

// OnPending appends a typing placeholder.
func (t *Transcript) OnPending(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, components.Entry{
		ID: id, Kind: components.EntryPending, At: t.now(),
	})
}

// OnModelTurn replaces the placeholder with the reply.
func (t *Transcript) OnModelTurn(placeholderID string, turn model.Turn) {
	t.replace(placeholderID, components.Entry{
		ID: turn.ID, Kind: components.EntryModel, Text: turn.Text, At: turn.At,
	})
}

// OnError replaces the placeholder with a failure notice.
func (t *Transcript) OnError(placeholderID string, _ exchange.ErrorKind, message string) {
	t.replace(placeholderID, components.Entry{
		ID: placeholderID, Kind: components.EntryError, Text: message, At: t.now(),
	})
}

// OnScroll records a request to show the newest entry.
func (t *Transcript) OnScroll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scroll = true
}

// OnClear empties the log.
func (t *Transcript) OnClear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
	t.scroll = false
}

// replace swaps the entry with id for e, appending e if the placeholder is
// gone.
func (t *Transcript) replace(id string, e components.Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].ID == id {
			t.entries[i] = e
			return
		}
	}
	t.entries = append(t.entries, e)
}

// Entries returns a copy of the log.
func (t *Transcript) Entries() []components.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]components.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Has reports whether an entry with id is shown.
func (t *Transcript) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Pending returns how many placeholders are shown.
func (t *Transcript) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if e.Kind == components.EntryPending {
			n++
		}
	}
	return n
}

// TakeScroll reports and resets a pending scroll request.
func (t *Transcript) TakeScroll() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.scroll
	t.scroll = false
	return s
}
