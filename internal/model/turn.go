// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the speaker of a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// DisplayName returns the label used in transcripts and exports.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "Gemini AI"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one message in a conversation. Only Role and Text go over the wire;
// ID and At exist for rendering and export.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`

	ID string    `json:"-"`
	At time.Time `json:"-"`
}

// NewTurn creates a turn stamped with a fresh ID and the current time.
func NewTurn(role Role, text string) Turn {
	return Turn{
		Role: role,
		Text: text,
		ID:   uuid.NewString(),
		At:   time.Now(),
	}
}

// NewUserTurn creates a user turn.
func NewUserTurn(text string) Turn {
	return NewTurn(RoleUser, text)
}

// NewModelTurn creates a model turn.
func NewModelTurn(text string) Turn {
	return NewTurn(RoleModel, text)
}

// IsUser returns true if the turn was written by the user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}

// FormatTime renders the turn timestamp the way message bubbles show it.
func (t Turn) FormatTime() string {
	if t.At.IsZero() {
		return ""
	}
	return t.At.Format("3:04 PM")
}
