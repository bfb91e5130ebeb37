// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across chatline.
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - Truncate, Width, RuneLen: display-width aware string helpers
//   - ExpandHome: "~/" expansion for paths taken from config
package util
