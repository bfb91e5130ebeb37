// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists every settable key in dot notation, in file order.
func Keys() []string {
	return []string{
		"endpoint.base_url",
		"endpoint.timeout_secs",
		"ui.theme",
		"ui.show_timestamps",
		"ui.sound_effects",
		"ui.auto_scroll",
		"ui.reduce_motion",
		"ui.language",
		"log.level",
		"log.file",
	}
}

// Changed returns the keys whose values differ between before and after, in
// Keys order.
func Changed(before, after *Config) []string {
	var keys []string
	for _, key := range Keys() {
		b, _ := before.Get(key)
		a, _ := after.Get(key)
		if a != b {
			keys = append(keys, key)
		}
	}
	return keys
}

// Get returns the value of a dot-notation key as a string.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "endpoint.base_url":
		return c.Endpoint.BaseURL, nil
	case "endpoint.timeout_secs":
		return strconv.Itoa(c.Endpoint.TimeoutSecs), nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.show_timestamps":
		return strconv.FormatBool(c.UI.ShowTimestamps), nil
	case "ui.sound_effects":
		return strconv.FormatBool(c.UI.SoundEffects), nil
	case "ui.auto_scroll":
		return strconv.FormatBool(c.UI.AutoScroll), nil
	case "ui.reduce_motion":
		return strconv.FormatBool(c.UI.ReduceMotion), nil
	case "ui.language":
		return c.UI.Language, nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value and assigns it to a dot-notation key. The result is
// validated; on failure c is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	var err error

	switch strings.ToLower(key) {
	case "endpoint.base_url":
		next.Endpoint.BaseURL = value
	case "endpoint.timeout_secs":
		next.Endpoint.TimeoutSecs, err = strconv.Atoi(value)
	case "ui.theme":
		next.UI.Theme = strings.ToLower(value)
	case "ui.show_timestamps":
		next.UI.ShowTimestamps, err = strconv.ParseBool(value)
	case "ui.sound_effects":
		next.UI.SoundEffects, err = strconv.ParseBool(value)
	case "ui.auto_scroll":
		next.UI.AutoScroll, err = strconv.ParseBool(value)
	case "ui.reduce_motion":
		next.UI.ReduceMotion, err = strconv.ParseBool(value)
	case "ui.language":
		next.UI.Language = value
	case "log.level":
		next.Log.Level = strings.ToLower(value)
	case "log.file":
		next.Log.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	*c = next
	return nil
}
