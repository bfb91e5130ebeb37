// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatline/internal/util"
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the full chatline configuration. It is a plain value type so
// two configs can be compared with ==.
type Config struct {
	Endpoint EndpointConfig `toml:"endpoint"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// EndpointConfig locates the completion service.
type EndpointConfig struct {
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each request. Zero means no timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig holds the user-facing settings shown in the settings panel.
type UIConfig struct {
	Theme          string `toml:"theme"`
	ShowTimestamps bool   `toml:"show_timestamps"`
	SoundEffects   bool   `toml:"sound_effects"`
	AutoScroll     bool   `toml:"auto_scroll"`
	ReduceMotion   bool   `toml:"reduce_motion"`
	Language       string `toml:"language"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			BaseURL:     "http://127.0.0.1:3000",
			TimeoutSecs: 0,
		},
		UI: UIConfig{
			Theme:          ThemeAuto,
			ShowTimestamps: true,
			SoundEffects:   true,
			AutoScroll:     true,
			ReduceMotion:   false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the chatline state directory (~/.chatline).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatline"), nil
}

// Path returns the config file path, honouring CHATLINE_CONFIG. If the home
// directory cannot be found it falls back to ./chatline.toml.
func Path() string {
	if p := os.Getenv("CHATLINE_CONFIG"); p != "" {
		return p
	}
	dir, err := Dir()
	if err != nil {
		return "chatline.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// LoadDotEnv loads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config at path on top of the defaults, applies environment
// overrides and repairs invalid values. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	for _, verr := range cfg.Repair() {
		log.Warn().Str("field", verr.Field).Msg(verr.Message + "; using default")
	}
	return cfg, nil
}

// LoadFile is Load without environment overrides: the defaults plus what the
// file says. It is the base that changes are written back onto.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	for _, verr := range cfg.Repair() {
		log.Warn().Str("field", verr.Field).Msg(verr.Message + "; using default")
	}
	return cfg, nil
}

// Save writes cfg to path atomically with owner-only permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatline configuration\n")
	buf.WriteString("# Edited from the settings panel; manual edits are picked up live.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveChanges writes the keys whose values differ between before and after
// into the file at path. Everything else keeps the value the file has, so
// flag and environment overrides in effect are not persisted.
func SaveChanges(path string, before, after *Config) error {
	changed := Changed(before, after)
	if len(changed) == 0 {
		return nil
	}
	file, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, key := range changed {
		value, err := after.Get(key)
		if err != nil {
			return err
		}
		if err := file.Set(key, value); err != nil {
			return err
		}
	}
	return Save(file, path)
}

// ApplyEnvOverrides applies environment variable overrides:
//   - CHATLINE_ENDPOINT: endpoint.base_url
//   - CHATLINE_THEME: ui.theme
//   - CHATLINE_LANG: ui.language
//   - CHATLINE_LOG_LEVEL: log.level
//   - CHATLINE_NO_SOUND: disables ui.sound_effects when truthy
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHATLINE_ENDPOINT"); v != "" {
		c.Endpoint.BaseURL = v
	}
	if v := os.Getenv("CHATLINE_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("CHATLINE_LANG"); v != "" {
		c.UI.Language = v
	}
	if v := os.Getenv("CHATLINE_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CHATLINE_NO_SOUND"); v == "1" || strings.EqualFold(v, "true") {
		c.UI.SoundEffects = false
	}
}
