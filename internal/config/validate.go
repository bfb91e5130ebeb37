// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Validate checks the configuration and returns ValidateErrors, or nil.
func (c *Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validate() ValidateErrors {
	var errs ValidateErrors

	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "endpoint.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Endpoint.BaseURL),
		})
	}
	if c.Endpoint.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "endpoint.timeout_secs",
			Message: fmt.Sprintf("must not be negative, got %d", c.Endpoint.TimeoutSecs),
		})
	}

	switch c.UI.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, light, dark", c.UI.Theme),
		})
	}

	if !validLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	return errs
}

// Repair resets every invalid field to its default and returns what it
// changed.
func (c *Config) Repair() ValidateErrors {
	errs := c.validate()
	if len(errs) == 0 {
		return nil
	}
	def := Default()
	for _, e := range errs {
		switch e.Field {
		case "endpoint.base_url":
			c.Endpoint.BaseURL = def.Endpoint.BaseURL
		case "endpoint.timeout_secs":
			c.Endpoint.TimeoutSecs = def.Endpoint.TimeoutSecs
		case "ui.theme":
			c.UI.Theme = def.UI.Theme
		case "log.level":
			c.Log.Level = def.Log.Level
		}
	}
	return errs
}
