// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates, saves and watches the chatline settings
// file.
//
// # Configuration Precedence
//
// Values are resolved from (highest first):
//   - command-line flags (applied by the cli package)
//   - environment variables (CHATLINE_*), including ones set in ./.env
//   - the TOML file (~/.chatline/config.toml, or --config / CHATLINE_CONFIG)
//   - built-in defaults
//
// Keys absent from the file keep their defaults, so a file only needs the
// values a user changed. Invalid values fall back to defaults with a warning.
//
// # Usage
//
//	cfg, err := config.Load(config.Path())
//	if err != nil {
//	    return err
//	}
//	cfg.UI.Theme = config.ThemeDark
//	_ = config.Save(cfg, config.Path())
package config
