// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange drives one round of conversation: a user turn goes in,
// the full session goes to the completion service, and the reply (or a fixed
// error message) comes back out through a View.
//
// An exchange runs in three phases so that a UI event loop can keep the
// optimistic part synchronous and push only the network call to a goroutine:
//
//	ex, err := ctrl.Begin(raw)        // validate, show + store user turn, show placeholder
//	out := ctrl.Send(ctx, ex)         // network only, safe off the UI goroutine
//	ctrl.Resolve(ex, out)             // replace placeholder, store reply
//
// SubmitUserText runs all three inline. Each exchange carries its own
// placeholder ID, so several may be in flight at once and each resolves
// against its own placeholder.
package exchange
