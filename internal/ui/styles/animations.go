// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// SpinnerConfig holds the frames of a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration of each frame. A zero FPS means the spinner
// never advances.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Hour
	}
	return time.Second / time.Duration(s.FPS)
}

// Static reports whether the spinner has a single frame.
func (s SpinnerConfig) Static() bool {
	return len(s.Frames) <= 1
}

// TypingDots bounces three dots while the model is thinking.
var TypingDots = SpinnerConfig{
	Frames: []string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"},
	FPS:    5,
}

// StillDots replaces TypingDots when reduce motion is on.
var StillDots = SpinnerConfig{
	Frames: []string{"•••"},
}

// TypingSpinner picks the typing indicator for the motion preference.
func TypingSpinner(reduceMotion bool) SpinnerConfig {
	if reduceMotion {
		return StillDots
	}
	return TypingDots
}

// Scroll animation steps for the message log. With reduce motion the log
// jumps straight to the bottom.
const (
	scrollStep     = 3
	ScrollInterval = 16 * time.Millisecond
)

// ScrollStep returns how many lines to move per animation tick.
func ScrollStep(reduceMotion bool, remaining int) int {
	if reduceMotion || remaining <= scrollStep {
		return remaining
	}
	return scrollStep
}
