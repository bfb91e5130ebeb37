// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatline/internal/endpoint"
	"github.com/jeranaias/chatline/internal/model"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type event struct {
	kind        string
	placeholder string
	text        string
	errKind     ErrorKind
}

type recordingView struct {
	mu     sync.Mutex
	events []event
}

func (v *recordingView) add(e event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

func (v *recordingView) OnUserTurn(t model.Turn) { v.add(event{kind: "user", text: t.Text}) }
func (v *recordingView) OnPending(id string)     { v.add(event{kind: "pending", placeholder: id}) }
func (v *recordingView) OnModelTurn(id string, t model.Turn) {
	v.add(event{kind: "model", placeholder: id, text: t.Text})
}
func (v *recordingView) OnError(id string, kind ErrorKind, msg string) {
	v.add(event{kind: "error", placeholder: id, text: msg, errKind: kind})
}
func (v *recordingView) OnScroll() { v.add(event{kind: "scroll"}) }
func (v *recordingView) OnClear()  { v.add(event{kind: "clear"}) }

func (v *recordingView) kinds() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.events))
	for i, e := range v.events {
		out[i] = e.kind
	}
	return out
}

type completerFunc func(ctx context.Context, conv []model.Turn) (*endpoint.ChatResponse, error)

func (f completerFunc) Complete(ctx context.Context, conv []model.Turn) (*endpoint.ChatResponse, error) {
	return f(ctx, conv)
}

func replyWith(result string) completerFunc {
	return func(context.Context, []model.Turn) (*endpoint.ChatResponse, error) {
		return &endpoint.ChatResponse{Result: result}, nil
	}
}

func failWith(err error) completerFunc {
	return func(context.Context, []model.Turn) (*endpoint.ChatResponse, error) {
		return nil, err
	}
}

func texts(turns []model.Turn) []string {
	out := make([]string, len(turns))
	for i, t := range turns {
		out[i] = string(t.Role) + ":" + t.Text
	}
	return out
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestBegin_RejectsEmptyAndWhitespace(t *testing.T) {
	var calls atomic.Int32
	counting := completerFunc(func(context.Context, []model.Turn) (*endpoint.ChatResponse, error) {
		calls.Add(1)
		return &endpoint.ChatResponse{Result: "x"}, nil
	})
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, counting, view)

	for _, raw := range []string{"", "   ", "\n\t  \n"} {
		err := ctrl.SubmitUserText(context.Background(), raw)
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", raw)
	}

	assert.Equal(t, 0, sess.Len())
	assert.Equal(t, int32(0), calls.Load())
	assert.Empty(t, view.kinds())
}

func TestBegin_RejectsOverLength(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("x"), view)

	_, err := ctrl.Begin(strings.Repeat("a", MaxInputLength+1))
	assert.ErrorIs(t, err, ErrInputTooLong)
	assert.True(t, IsInputError(err))
	assert.Equal(t, 0, sess.Len())
	assert.Empty(t, view.kinds())

	// Exactly at the limit is accepted, counted in characters not bytes.
	_, err = ctrl.Begin(strings.Repeat("é", MaxInputLength))
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Len())
}

func TestBegin_TrimsBeforeStoring(t *testing.T) {
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("x"), nil)

	_, err := ctrl.Begin("  hello \n")
	require.NoError(t, err)
	last, _ := sess.Last()
	assert.Equal(t, "hello", last.Text)
}

// =============================================================================
// EXCHANGE OUTCOMES
// =============================================================================

func TestSubmit_AppendsUserTurnBeforeNetworkResolves(t *testing.T) {
	sess := model.NewSession()
	_ = sess.Append(model.NewUserTurn("earlier"))
	_ = sess.Append(model.NewModelTurn("reply"))

	entered := make(chan []model.Turn, 1)
	release := make(chan struct{})
	blocking := completerFunc(func(ctx context.Context, conv []model.Turn) (*endpoint.ChatResponse, error) {
		entered <- conv
		<-release
		return &endpoint.ChatResponse{Result: "later"}, nil
	})
	ctrl := NewController(sess, blocking, &recordingView{})

	done := make(chan error, 1)
	go func() { done <- ctrl.SubmitUserText(context.Background(), "now") }()

	sent := <-entered
	// The network call is in flight: the user turn is already stored and
	// was part of the transmitted snapshot.
	assert.Equal(t, 3, sess.Len())
	assert.Equal(t, []string{"user:earlier", "model:reply", "user:now"}, texts(sent))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 4, sess.Len())
}

func TestSubmit_SuccessAppendsModelTurn(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("hello"), view)

	require.NoError(t, ctrl.SubmitUserText(context.Background(), "hi"))

	assert.Equal(t, []string{"user:hi", "model:hello"}, texts(sess.Snapshot()))
	assert.Equal(t, []string{"user", "pending", "model", "scroll"}, view.kinds())

	// The reply replaces the placeholder that was announced.
	assert.Equal(t, view.events[1].placeholder, view.events[2].placeholder)
}

func TestSubmit_StoresRawResult(t *testing.T) {
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("**bold** [link](http://x)\n\n\n\nend"), nil)

	require.NoError(t, ctrl.SubmitUserText(context.Background(), "hi"))
	last, _ := sess.Last()
	assert.Equal(t, "**bold** [link](http://x)\n\n\n\nend", last.Text)
}

func TestSubmit_EmptyResult(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith(""), view)

	err := ctrl.SubmitUserText(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyResult)

	assert.Equal(t, []string{"user:hi"}, texts(sess.Snapshot()))
	require.Equal(t, []string{"user", "pending", "error", "scroll"}, view.kinds())
	assert.Equal(t, KindEmptyResult, view.events[2].errKind)
	assert.Equal(t, DefaultMessages().NoResponse, view.events[2].text)
}

func TestSubmit_WhitespaceResultIsReply(t *testing.T) {
	for _, result := range []string{"   ", " \n"} {
		t.Run(fmt.Sprintf("%q", result), func(t *testing.T) {
			view := &recordingView{}
			sess := model.NewSession()
			ctrl := NewController(sess, replyWith(result), view)

			require.NoError(t, ctrl.SubmitUserText(context.Background(), "hi"))

			assert.Equal(t, []string{"user:hi", "model:" + result}, texts(sess.Snapshot()))
			assert.NotContains(t, view.kinds(), "error")
		})
	}
}

func TestSubmit_NilResponseIsEmptyResult(t *testing.T) {
	nilResp := completerFunc(func(context.Context, []model.Turn) (*endpoint.ChatResponse, error) {
		return nil, nil
	})
	ctrl := NewController(model.NewSession(), nilResp, nil)
	assert.ErrorIs(t, ctrl.SubmitUserText(context.Background(), "hi"), ErrEmptyResult)
}

func TestSubmit_TransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	view := &recordingView{}
	sess := model.NewSession()
	_ = sess.Append(model.NewUserTurn("a"))
	_ = sess.Append(model.NewModelTurn("b"))
	ctrl := NewController(sess, failWith(cause), view)

	err := ctrl.SubmitUserText(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, cause)

	// No rollback: the dangling user turn stays.
	assert.Equal(t, []string{"user:a", "model:b", "user:hi"}, texts(sess.Snapshot()))
	require.Equal(t, []string{"user", "pending", "error", "scroll"}, view.kinds())
	assert.Equal(t, KindTransport, view.events[2].errKind)
	assert.Equal(t, DefaultMessages().ConnectionError, view.events[2].text)
}

func TestSubmit_AgainstHTTPServer(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantTurns []string
		wantErr   func(error) bool
	}{
		{"reply", 200, `{"result":"hello"}`, []string{"user:hi", "model:hello"}, func(err error) bool { return err == nil }},
		{"whitespace result", 200, `{"result":" \n"}`, []string{"user:hi", "model: \n"}, func(err error) bool { return err == nil }},
		{"missing result", 200, `{}`, []string{"user:hi"}, func(err error) bool { return errors.Is(err, ErrEmptyResult) }},
		{"server error", 500, `oops`, []string{"user:hi"}, IsTransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := model.NewSession()
			ctrl := NewController(sess, endpoint.NewClient(server.URL), nil)
			err := ctrl.SubmitUserText(context.Background(), "hi")

			assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
			assert.Equal(t, tt.wantTurns, texts(sess.Snapshot()))
		})
	}
}

// =============================================================================
// SETTINGS, CLEAR, CONCURRENCY
// =============================================================================

func TestResolve_AutoScrollOff(t *testing.T) {
	view := &recordingView{}
	ctrl := NewController(model.NewSession(), replyWith("x"), view, WithAutoScroll(func() bool { return false }))

	require.NoError(t, ctrl.SubmitUserText(context.Background(), "hi"))
	assert.NotContains(t, view.kinds(), "scroll")
}

func TestWithMessages(t *testing.T) {
	view := &recordingView{}
	ctrl := NewController(model.NewSession(), failWith(errors.New("x")), view,
		WithMessages(Messages{ConnectionError: "sin conexión"}))

	_ = ctrl.SubmitUserText(context.Background(), "hi")
	assert.Equal(t, "sin conexión", view.events[2].text)
	assert.Equal(t, DefaultMessages().NoResponse, ctrl.messages.NoResponse)
}

func TestRequestClear(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("x"), view)
	require.NoError(t, ctrl.SubmitUserText(context.Background(), "one"))
	require.NoError(t, ctrl.SubmitUserText(context.Background(), "two"))

	ctrl.RequestClear()

	assert.Empty(t, sess.Snapshot())
	assert.Equal(t, "clear", view.kinds()[len(view.kinds())-1])
}

func TestResolve_DropsOutcomeBegunBeforeClear(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	ctrl := NewController(sess, replyWith("late"), view)

	ex, err := ctrl.Begin("hi")
	require.NoError(t, err)
	out := ctrl.Send(context.Background(), ex)

	ctrl.RequestClear()
	ctrl.Resolve(ex, out)

	assert.Empty(t, sess.Snapshot())
	assert.Equal(t, []string{"user", "pending", "clear"}, view.kinds())
}

func TestConcurrentExchanges_ResolveOwnPlaceholders(t *testing.T) {
	view := &recordingView{}
	sess := model.NewSession()
	echo := completerFunc(func(_ context.Context, conv []model.Turn) (*endpoint.ChatResponse, error) {
		return &endpoint.ChatResponse{Result: "re:" + conv[len(conv)-1].Text}, nil
	})
	ctrl := NewController(sess, echo, view)

	first, err := ctrl.Begin("first")
	require.NoError(t, err)
	second, err := ctrl.Begin("second")
	require.NoError(t, err)
	require.NotEqual(t, first.PlaceholderID, second.PlaceholderID)

	// The second request resolves first.
	ctrl.Resolve(second, ctrl.Send(context.Background(), second))
	ctrl.Resolve(first, ctrl.Send(context.Background(), first))

	assert.Equal(t, []string{"user:first", "user:second", "model:re:second", "model:re:first"}, texts(sess.Snapshot()))

	resolved := map[string]string{}
	for _, e := range view.events {
		if e.kind == "model" {
			resolved[e.placeholder] = e.text
		}
	}
	assert.Equal(t, "re:first", resolved[first.PlaceholderID])
	assert.Equal(t, "re:second", resolved[second.PlaceholderID])
}
