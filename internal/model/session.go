// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTurn is returned by Append for a turn with empty text or an
// unknown role.
var ErrInvalidTurn = errors.New("invalid turn")

// =============================================================================
// SESSION
// =============================================================================

// Session is the in-memory ordered log of turns for one conversation.
// Turns are only ever appended; the only removal is Clear.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.RWMutex
	turns []Turn
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		turns:     make([]Turn, 0, 16),
	}
}

// Append adds a turn at the end of the sequence.
func (s *Session) Append(t Turn) error {
	if !t.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidTurn, t.Role)
	}
	if t.Text == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidTurn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
	return nil
}

// Clear empties the session. It cannot be undone.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = make([]Turn, 0, 16)
}

// Snapshot returns a copy of all turns, oldest first.
func (s *Session) Snapshot() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// IsEmpty returns true if the session has no turns.
func (s *Session) IsEmpty() bool {
	return s.Len() == 0
}

// Last returns the most recent turn, if any.
func (s *Session) Last() (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// LastOf returns the most recent turn with the given role.
func (s *Session) LastOf(role Role) (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == role {
			return s.turns[i], true
		}
	}
	return Turn{}, false
}
