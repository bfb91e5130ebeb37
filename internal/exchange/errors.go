// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"errors"
	"fmt"
)

// Input validation errors. Callers absorb these silently; nothing reaches the
// session or the network.
var (
	ErrEmptyInput   = errors.New("input is empty")
	ErrInputTooLong = fmt.Errorf("input exceeds %d characters", MaxInputLength)
)

// ErrEmptyResult is returned by SubmitUserText when the service answered
// without usable text.
var ErrEmptyResult = errors.New("completion service returned no result")

// TransportError wraps a network failure or a non-2xx response.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is one of the validation errors that
// callers should ignore.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrInputTooLong)
}

// =============================================================================
// OUTCOMES
// =============================================================================

// ErrorKind tells a View which fixed message it is being given.
type ErrorKind int

const (
	// KindEmptyResult means the service was reached but returned no text.
	KindEmptyResult ErrorKind = iota
	// KindTransport means the service could not be reached or answered non-2xx.
	KindTransport
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindEmptyResult:
		return "empty_result"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies how Send ended.
type OutcomeKind int

const (
	OutcomeReply OutcomeKind = iota
	OutcomeEmptyResult
	OutcomeTransportError
)

// Outcome is the result of Send. Text is set for OutcomeReply; Err is set
// otherwise.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Err  error
}
