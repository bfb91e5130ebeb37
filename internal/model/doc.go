// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation data structures.
//
// # Key Types
//
//   - Turn: one message, tagged with its speaker role and text
//   - Session: the ordered, in-memory sequence of Turns for one conversation
//   - Role: speaker enumeration (user, model)
//
// # Usage
//
//	sess := model.NewSession()
//	_ = sess.Append(model.NewUserTurn("Hello!"))
//	for _, t := range sess.Snapshot() {
//	    fmt.Println(t.Role.DisplayName(), t.Text)
//	}
//
// A Session lives only as long as the process. It is never written to disk;
// export works from a Snapshot copy.
package model
