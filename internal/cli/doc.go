// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the chatline command line.
//
// Commands:
//
//	chatline                 Full-screen chat
//	chatline chat            Line-mode chat with history
//	chatline ask TEXT        Send one message and print the reply
//	chatline settings ...    Show or change settings
//	chatline version         Print the version
//
// Every command reads ~/.chatline/config.toml (or --config), then .env and
// CHATLINE_* environment variables, then flags.
package cli
