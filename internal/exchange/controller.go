// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatline/internal/endpoint"
	"github.com/jeranaias/chatline/internal/model"
)

// MaxInputLength is the longest accepted user input, in characters, after
// trimming.
const MaxInputLength = 2000

// Completer sends a conversation to the completion service.
// *endpoint.Client implements it.
type Completer interface {
	Complete(ctx context.Context, conversation []model.Turn) (*endpoint.ChatResponse, error)
}

// Messages are the fixed texts shown in place of a placeholder on failure.
type Messages struct {
	NoResponse      string
	ConnectionError string
}

// DefaultMessages returns the English fixed messages.
func DefaultMessages() Messages {
	return Messages{
		NoResponse:      "Sorry, I couldn't generate a response.",
		ConnectionError: "⚠️ Unable to connect. Please try again.",
	}
}

// Exchange is one in-flight round, created by Begin.
type Exchange struct {
	PlaceholderID string
	Input         string
	// Conversation is the session as it stood right after the user turn
	// was appended. It is what Send transmits.
	Conversation []model.Turn
	StartedAt    time.Time

	generation uint64
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller coordinates a Session, a Completer and a View.
type Controller struct {
	session    *model.Session
	completer  Completer
	view       View
	messages   Messages
	autoScroll func() bool

	// generation changes on every clear so that replies to exchanges begun
	// before the clear are dropped.
	generation atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMessages sets the fixed failure texts.
func WithMessages(m Messages) Option {
	return func(c *Controller) {
		if m.NoResponse != "" {
			c.messages.NoResponse = m.NoResponse
		}
		if m.ConnectionError != "" {
			c.messages.ConnectionError = m.ConnectionError
		}
	}
}

// WithAutoScroll sets the function consulted after each resolution. The
// current setting is read every time, so live settings changes apply.
func WithAutoScroll(fn func() bool) Option {
	return func(c *Controller) {
		if fn != nil {
			c.autoScroll = fn
		}
	}
}

// NewController creates a controller. A nil view is replaced with NopView.
func NewController(session *model.Session, completer Completer, view View, opts ...Option) *Controller {
	if view == nil {
		view = NopView{}
	}
	c := &Controller{
		session:    session,
		completer:  completer,
		view:       view,
		messages:   DefaultMessages(),
		autoScroll: func() bool { return true },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the controller writes to.
func (c *Controller) Session() *model.Session {
	return c.session
}

// SetView replaces the view. Used when the UI is built after the controller.
func (c *Controller) SetView(v View) {
	if v == nil {
		v = NopView{}
	}
	c.view = v
}

// SetMessages replaces the fixed failure texts, for a language change.
func (c *Controller) SetMessages(m Messages) {
	WithMessages(m)(c)
}

// Begin validates raw input and, if it is acceptable, shows and stores the
// user turn and announces a placeholder. On a validation error nothing is
// touched.
func (c *Controller) Begin(raw string) (*Exchange, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if utf8.RuneCountInString(text) > MaxInputLength {
		return nil, ErrInputTooLong
	}

	turn := model.NewUserTurn(text)
	c.view.OnUserTurn(turn)
	if err := c.session.Append(turn); err != nil {
		return nil, err
	}

	ex := &Exchange{
		PlaceholderID: uuid.NewString(),
		Input:         text,
		StartedAt:     time.Now(),
		generation:    c.generation.Load(),
	}
	c.view.OnPending(ex.PlaceholderID)
	ex.Conversation = c.session.Snapshot()
	return ex, nil
}

// Send performs the single network request for ex. It touches neither the
// session nor the view.
func (c *Controller) Send(ctx context.Context, ex *Exchange) Outcome {
	resp, err := c.completer.Complete(ctx, ex.Conversation)
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Err: &TransportError{Err: err}}
	}
	if resp == nil || resp.Result == "" {
		return Outcome{Kind: OutcomeEmptyResult, Err: ErrEmptyResult}
	}
	return Outcome{Kind: OutcomeReply, Text: resp.Result}
}

// Resolve replaces the placeholder of ex according to out. Only a reply is
// stored, and it is stored raw.
func (c *Controller) Resolve(ex *Exchange, out Outcome) {
	logger := log.With().Str("placeholder", ex.PlaceholderID).Dur("elapsed", time.Since(ex.StartedAt)).Logger()

	if ex.generation != c.generation.Load() {
		logger.Debug().Msg("dropping outcome of exchange begun before clear")
		return
	}

	switch out.Kind {
	case OutcomeReply:
		turn := model.NewModelTurn(out.Text)
		c.view.OnModelTurn(ex.PlaceholderID, turn)
		if err := c.session.Append(turn); err != nil {
			logger.Error().Err(err).Msg("failed to store reply")
		}
	case OutcomeEmptyResult:
		logger.Warn().Msg("completion service returned no result")
		c.view.OnError(ex.PlaceholderID, KindEmptyResult, c.messages.NoResponse)
	default:
		logger.Error().Err(out.Err).Msg("completion request failed")
		c.view.OnError(ex.PlaceholderID, KindTransport, c.messages.ConnectionError)
	}

	if c.autoScroll() {
		c.view.OnScroll()
	}
}

// SubmitUserText runs a whole exchange inline. It returns a validation
// error, ErrEmptyResult, a *TransportError, or nil for a stored reply.
func (c *Controller) SubmitUserText(ctx context.Context, raw string) error {
	ex, err := c.Begin(raw)
	if err != nil {
		return err
	}
	out := c.Send(ctx, ex)
	c.Resolve(ex, out)
	return out.Err
}

// RequestClear empties the session and tells the view. Callers confirm with
// the user first.
func (c *Controller) RequestClear() {
	c.generation.Add(1)
	c.session.Clear()
	c.view.OnClear()
}

// IsTransportError reports whether err came from a failed request.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
