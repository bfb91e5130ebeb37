// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import "github.com/jeranaias/chatline/internal/model"

// View receives notifications about the conversation. Implementations own
// all presentation: sanitizing model text, sounds, toasts and scrolling.
//
// Placeholders are view-only. A placeholder announced by OnPending is later
// passed to exactly one of OnModelTurn or OnError, unless OnClear removes it
// first.
type View interface {
	OnUserTurn(turn model.Turn)
	OnPending(placeholderID string)
	OnModelTurn(placeholderID string, turn model.Turn)
	OnError(placeholderID string, kind ErrorKind, message string)
	OnScroll()
	OnClear()
}

// NopView ignores every notification.
type NopView struct{}

func (NopView) OnUserTurn(model.Turn)             {}
func (NopView) OnPending(string)                  {}
func (NopView) OnModelTurn(string, model.Turn)    {}
func (NopView) OnError(string, ErrorKind, string) {}
func (NopView) OnScroll()                         {}
func (NopView) OnClear()                          {}
