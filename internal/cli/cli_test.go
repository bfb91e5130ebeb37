// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/endpoint"
	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/components"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points HOME and the environment at a temp dir and returns a config
// path inside it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CHATLINE_CONFIG", "")
	t.Setenv("CHATLINE_ENDPOINT", "")
	t.Setenv("CHATLINE_THEME", "dark")
	t.Setenv("CHATLINE_LANG", "en")
	t.Setenv("CHATLINE_LOG_LEVEL", "")
	t.Setenv("CHATLINE_NO_SOUND", "1")
	return filepath.Join(home, ".chatline", "config.toml")
}

// run executes the command line and returns stdout, stderr and the error.
func run(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// chatServer answers every request with status and body and records the
// last conversation it received.
type chatServer struct {
	*httptest.Server
	mu   sync.Mutex
	last []model.Turn
}

func newChatServer(t *testing.T, status int, body string) *chatServer {
	t.Helper()
	s := &chatServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req endpoint.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			s.mu.Lock()
			s.last = req.Conversation
			s.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *chatServer) conversation() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_PrintsSanitizedReply(t *testing.T) {
	cfgPath := isolate(t)
	srv := newChatServer(t, http.StatusOK, `{"result":"## Hi **there**"}`)

	out, _, err := run(t, nil, "--config", cfgPath, "--endpoint", srv.URL, "ask", "hello", "world")
	require.NoError(t, err)

	assert.Equal(t, "Hi there\n", out)
	conv := srv.conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, model.RoleUser, conv[0].Role)
	assert.Equal(t, "hello world", conv[0].Text)
}

func TestAsk_ReadsPipedStdin(t *testing.T) {
	cfgPath := isolate(t)
	srv := newChatServer(t, http.StatusOK, `{"result":"ok"}`)

	_, _, err := run(t, strings.NewReader("  from a pipe\n"), "--config", cfgPath, "--endpoint", srv.URL, "ask")
	require.NoError(t, err)

	conv := srv.conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, "from a pipe", conv[0].Text)
}

func TestAsk_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "Unable to connect"},
		{"empty result", http.StatusOK, `{"result":""}`, "Sorry, I couldn't generate a response."},
		{"invalid json", http.StatusOK, `not json`, "Unable to connect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := isolate(t)
			srv := newChatServer(t, tt.status, tt.body)

			out, errOut, err := run(t, nil, "--config", cfgPath, "--endpoint", srv.URL, "ask", "hi")

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "want *ExitError, got %v", err)
			assert.Equal(t, 1, exitErr.Code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestAsk_EmptyMessageIsUsageError(t *testing.T) {
	cfgPath := isolate(t)
	srv := newChatServer(t, http.StatusOK, `{"result":"never"}`)

	_, _, err := run(t, strings.NewReader("   \n"), "--config", cfgPath, "--endpoint", srv.URL, "ask")
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Nil(t, srv.conversation(), "no request should be sent")
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettings_SetThenGet(t *testing.T) {
	cfgPath := isolate(t)

	out, _, err := run(t, nil, "--config", cfgPath, "settings", "set", "ui.show_timestamps", "false")
	require.NoError(t, err)
	assert.Equal(t, "ui.show_timestamps = false\n", out)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "show_timestamps = false")

	out, _, err = run(t, nil, "--config", cfgPath, "settings", "get", "ui.show_timestamps")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestSettings_Rejections(t *testing.T) {
	cfgPath := isolate(t)

	_, _, err := run(t, nil, "--config", cfgPath, "settings", "set", "ui.nope", "1")
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	_, _, err = run(t, nil, "--config", cfgPath, "settings", "set", "ui.auto_scroll", "maybe")
	assert.Error(t, err)

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr), "a rejected value must not create the file")
}

func TestSettings_ListAndPath(t *testing.T) {
	cfgPath := isolate(t)

	out, _, err := run(t, nil, "--config", cfgPath, "settings")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key+" = ")
	}

	out, _, err = run(t, nil, "--config", cfgPath, "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)
}

func TestSettings_OverridesAreNotSaved(t *testing.T) {
	cfgPath := isolate(t)

	_, _, err := run(t, nil, "--config", cfgPath, "--endpoint", "http://flag.example", "settings", "set", "ui.theme", "light")
	require.NoError(t, err)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "flag.example")
	assert.NotContains(t, string(data), "sound_effects = false", "CHATLINE_NO_SOUND must stay out of the file")

	saved, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.ThemeLight, saved.UI.Theme)
}

func TestVersion(t *testing.T) {
	cfgPath := isolate(t)

	out, _, err := run(t, nil, "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "chatline "+Version+"\n"), out)
}

// =============================================================================
// REPL
// =============================================================================

type fakeCompleter struct {
	mu     sync.Mutex
	reply  string
	err    error
	inputs []string
}

func (f *fakeCompleter) Complete(_ context.Context, conversation []model.Turn) (*endpoint.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, conversation[len(conversation)-1].Text)
	if f.err != nil {
		return nil, f.err
	}
	return &endpoint.ChatResponse{Result: f.reply}, nil
}

type replHarness struct {
	r      *repl
	fake   *fakeCompleter
	out    *bytes.Buffer
	errOut *bytes.Buffer
	saved  []*config.Config
	dir    string
}

func newReplHarness(t *testing.T) *replHarness {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Theme = config.ThemeDark
	cfg.UI.Language = "en"

	h := &replHarness{
		fake:   &fakeCompleter{reply: "**Hi!**"},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		dir:    t.TempDir(),
	}
	a := newApp()
	a.cfg = cfg
	a.configPath = filepath.Join(h.dir, "config.toml")
	a.newCompleter = func(*config.Config) exchange.Completer { return h.fake }

	h.r = a.newRepl(h.out, h.errOut, sound.Nop{})
	h.r.exportOpts.OutputDir = h.dir
	h.r.saveConfig = func(_, after *config.Config) error {
		h.saved = append(h.saved, after.Clone())
		return nil
	}
	return h
}

func (h *replHarness) line(input string) bool {
	return h.r.handleLine(context.Background(), input)
}

func TestRepl_SendsAndPrintsReply(t *testing.T) {
	h := newReplHarness(t)

	assert.False(t, h.line("hello"))

	assert.Equal(t, []string{"hello"}, h.fake.inputs)
	assert.Contains(t, h.out.String(), "Gemini AI:")
	assert.Contains(t, h.out.String(), "Hi!")
	assert.NotContains(t, h.out.String(), "**")
	assert.Equal(t, 2, h.r.ctrl.Session().Len())
}

func TestRepl_IgnoresBlankInput(t *testing.T) {
	h := newReplHarness(t)

	h.line("   ")
	assert.Empty(t, h.fake.inputs)
	assert.Zero(t, h.r.ctrl.Session().Len())
}

func TestRepl_ConnectionErrorGoesToStderr(t *testing.T) {
	h := newReplHarness(t)
	h.fake.err = errors.New("dial tcp: refused")

	h.line("hello")

	assert.Contains(t, h.errOut.String(), "Unable to connect")
	assert.Equal(t, 1, h.r.ctrl.Session().Len(), "only the user turn is stored")
}

func TestRepl_ChipNumberOnEmptyConversation(t *testing.T) {
	h := newReplHarness(t)

	h.line("2")
	h.line("2")

	require.Len(t, h.fake.inputs, 2)
	assert.Equal(t, components.PromptChips[1], h.fake.inputs[0])
	assert.Equal(t, "2", h.fake.inputs[1], "chips only apply to an empty conversation")
}

func TestRepl_Clear(t *testing.T) {
	h := newReplHarness(t)
	h.line("hello")

	var asked string
	h.r.confirm = func(q string) bool { asked = q; return false }
	h.line("/clear")
	assert.Contains(t, asked, "Are you sure")
	assert.Equal(t, 2, h.r.ctrl.Session().Len())

	h.r.confirm = func(string) bool { return true }
	h.line("/clear")
	assert.True(t, h.r.ctrl.Session().IsEmpty())
	assert.Contains(t, h.out.String(), "Conversation cleared")
}

func TestRepl_Export(t *testing.T) {
	h := newReplHarness(t)

	h.line("/export")
	assert.Contains(t, h.errOut.String(), "No conversation to export")

	h.line("hello")
	h.line("/export md")

	matches, err := filepath.Glob(filepath.Join(h.dir, "gemini-chat-*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, h.out.String(), "Chat exported successfully")

	h.errOut.Reset()
	h.line("/export pdf")
	assert.Contains(t, h.errOut.String(), "unknown export format")
}

func TestRepl_ThemeToggleSaves(t *testing.T) {
	h := newReplHarness(t)

	h.line("/theme")

	assert.Equal(t, config.ThemeLight, h.r.cfg.UI.Theme)
	require.Len(t, h.saved, 1)
	assert.Equal(t, config.ThemeLight, h.saved[0].UI.Theme)
	assert.Contains(t, h.out.String(), "Theme: light")
}

func TestRepl_ThemeToggleKeepsOverridesOutOfFile(t *testing.T) {
	cfgPath := isolate(t)

	a := newApp()
	cmd := newRootCommand(a)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfgPath, "--endpoint", "http://flag.example", "version"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "http://flag.example", a.cfg.Endpoint.BaseURL)

	var out bytes.Buffer
	r := a.newRepl(&out, &out, sound.Nop{})
	r.handleLine(context.Background(), "/theme")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "flag.example")
	assert.NotContains(t, string(data), "sound_effects = false")

	saved, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.ThemeLight, saved.UI.Theme)
	assert.Equal(t, config.Default().Endpoint.BaseURL, saved.Endpoint.BaseURL)
	assert.Equal(t, "http://flag.example", a.cfg.Endpoint.BaseURL, "the override stays live")
}

func TestRepl_Commands(t *testing.T) {
	h := newReplHarness(t)

	assert.False(t, h.line("/help"))
	assert.Contains(t, h.out.String(), "/export")

	assert.False(t, h.line("/bogus"))
	assert.Contains(t, h.errOut.String(), "Unknown command /bogus")

	assert.True(t, h.line("/quit"))
	assert.True(t, h.line("  /Q  "))
	assert.Empty(t, h.fake.inputs)
}

func TestIsYes(t *testing.T) {
	for answer, want := range map[string]bool{
		"y": true, "Yes": true, " Y ": true,
		"": false, "n": false, "no": false, "yep": false,
	} {
		assert.Equal(t, want, isYes(answer), "isYes(%q)", answer)
	}
}
