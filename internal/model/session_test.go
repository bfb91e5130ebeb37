// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

// =============================================================================
// TURN TESTS
// =============================================================================

func TestTurn_WireFormat(t *testing.T) {
	turn := NewUserTurn("hi")
	data, err := json.Marshal(turn)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(data), `{"role":"user","text":"hi"}`; got != want {
		t.Errorf("wire format = %s, want %s", got, want)
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleModel, "Gemini AI"},
		{Role("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("%q.DisplayName() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSession_AppendPreservesOrder(t *testing.T) {
	s := NewSession()
	if !s.IsEmpty() {
		t.Fatal("new session should be empty")
	}

	_ = s.Append(NewUserTurn("one"))
	_ = s.Append(NewModelTurn("two"))
	_ = s.Append(NewUserTurn("three"))

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	want := []string{"one", "two", "three"}
	for i, turn := range snap {
		if turn.Text != want[i] {
			t.Errorf("turn %d = %q, want %q", i, turn.Text, want[i])
		}
	}
}

func TestSession_AppendRejectsInvalid(t *testing.T) {
	s := NewSession()

	if err := s.Append(NewUserTurn("")); !errors.Is(err, ErrInvalidTurn) {
		t.Errorf("empty text: err = %v, want ErrInvalidTurn", err)
	}
	if err := s.Append(NewTurn(Role("system"), "x")); !errors.Is(err, ErrInvalidTurn) {
		t.Errorf("bad role: err = %v, want ErrInvalidTurn", err)
	}
	if s.Len() != 0 {
		t.Errorf("rejected turns were stored: len = %d", s.Len())
	}
}

func TestSession_AppendKeepsWhitespaceText(t *testing.T) {
	s := NewSession()

	if err := s.Append(NewModelTurn(" \n")); err != nil {
		t.Fatalf("whitespace text: err = %v", err)
	}
	if last, _ := s.Last(); last.Text != " \n" {
		t.Errorf("stored %q, want %q", last.Text, " \n")
	}
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := NewSession()
	_ = s.Append(NewUserTurn("original"))

	snap := s.Snapshot()
	snap[0].Text = "mutated"

	if got := s.Snapshot()[0].Text; got != "original" {
		t.Errorf("stored text = %q, snapshot mutation leaked", got)
	}
}

func TestSession_Clear(t *testing.T) {
	s := NewSession()
	_ = s.Append(NewUserTurn("a"))
	_ = s.Append(NewModelTurn("b"))

	s.Clear()

	if s.Len() != 0 || len(s.Snapshot()) != 0 {
		t.Errorf("session not empty after Clear")
	}
	if _, ok := s.Last(); ok {
		t.Error("Last() should report nothing after Clear")
	}
}

func TestSession_LastOf(t *testing.T) {
	s := NewSession()
	_ = s.Append(NewUserTurn("q1"))
	_ = s.Append(NewModelTurn("a1"))
	_ = s.Append(NewUserTurn("q2"))

	last, ok := s.LastOf(RoleModel)
	if !ok || last.Text != "a1" {
		t.Errorf("LastOf(model) = %q, %v; want a1, true", last.Text, ok)
	}
	last, ok = s.Last()
	if !ok || last.Text != "q2" {
		t.Errorf("Last() = %q, %v; want q2, true", last.Text, ok)
	}
}

// Run with: go test -race ./internal/model/
func TestSession_ConcurrentSnapshot(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Append(NewUserTurn("x"))
		}()
		go func() {
			defer wg.Done()
			for _, turn := range s.Snapshot() {
				if turn.Text != "x" {
					t.Errorf("partial turn observed: %+v", turn)
				}
			}
		}()
	}
	wg.Wait()

	if s.Len() != 20 {
		t.Errorf("len = %d, want 20", s.Len())
	}
}
