// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"math/rand/v2"
	"net/url"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/export"
	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/components"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// Emojis are appended to the input by the emoji shortcut.
var Emojis = []string{"😊", "👍", "❤️", "🎉", "🤔", "💡", "✨", "🚀"}

// DangerThreshold is the character count past which the counter turns red.
const DangerThreshold = 1800

// overlay is the modal currently covering the message log.
type overlay int

const (
	overlayNone overlay = iota
	overlayConfirm
	overlaySettings
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options wires a Model to its collaborators. Only Config and Completer are
// required.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Completer  exchange.Completer

	Session *model.Session
	Player  sound.Player
	// CopyText defaults to the system clipboard.
	CopyText func(string) error
	// SaveConfig persists a settings change from before to after. It
	// defaults to config.SaveChanges on ConfigPath.
	SaveConfig func(before, after *config.Config) error
	Export     *export.Options
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	// Settings. cfg is shared with the controller's auto-scroll check and is
	// only ever updated in place.
	cfg        *config.Config
	saveConfig func(before, after *config.Config) error

	theme   *styles.Theme
	printer *locale.Printer
	keys    KeyMap

	// Conversation
	controller *exchange.Controller
	transcript *Transcript
	inflight   *inflight

	// UI components
	viewport viewport.Model
	input    textarea.Model
	typing   components.Typing
	help     help.Model
	toasts   *components.ToastManager

	overlay  overlay
	confirm  components.Confirm
	settings components.Settings

	// Collaborators
	player     sound.Player
	copyText   func(string) error
	exportOpts *export.Options
	pick       func(n int) int

	// Dimensions
	width  int
	height int
	ready  bool

	// Animation state
	typingActive bool
	toastTicking bool
	scrolling    bool
}

// New creates the chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sess := opts.Session
	if sess == nil {
		sess = model.NewSession()
	}
	player := opts.Player
	if player == nil {
		player = sound.Nop{}
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	save := opts.SaveConfig
	if save == nil {
		path := opts.ConfigPath
		save = func(before, after *config.Config) error { return config.SaveChanges(path, before, after) }
	}
	exportOpts := opts.Export
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}

	printer := locale.New(languageOf(cfg))
	transcript := NewTranscript()
	controller := exchange.NewController(sess, opts.Completer, transcript,
		exchange.WithMessages(messagesFor(printer)),
		exchange.WithAutoScroll(func() bool { return cfg.UI.AutoScroll }),
	)

	ta := textarea.New()
	ta.Placeholder = printer.T(locale.InputHint)
	ta.ShowLineNumbers = false
	ta.CharLimit = exchange.MaxInputLength
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetKeys("ctrl+j")
	ta.Focus()

	m := Model{
		cfg:        cfg,
		saveConfig: save,
		theme:      styles.NewTheme(cfg.UI.Theme),
		printer:    printer,
		keys:       DefaultKeyMap(),
		controller: controller,
		transcript: transcript,
		inflight:   newInflight(),
		viewport:   viewport.New(80, 20),
		input:      ta,
		typing:     components.NewTyping(cfg.UI.ReduceMotion),
		help:       help.New(),
		toasts:     components.NewToastManager(),
		player:     player,
		copyText:   copyText,
		exportOpts: exportOpts,
		pick:       rand.IntN,
		width:      80,
		height:     24,
	}
	m.applyTheme()
	m.layout()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Session returns the conversation being shown.
func (m Model) Session() *model.Session {
	return m.controller.Session()
}

// Controller returns the exchange controller, for callers that submit text
// outside the key handler.
func (m Model) Controller() *exchange.Controller {
	return m.controller
}

// Close aborts any running requests.
func (m Model) Close() {
	m.inflight.cancelAll()
}

func languageOf(cfg *config.Config) string {
	if cfg.UI.Language != "" {
		return cfg.UI.Language
	}
	return locale.Detect()
}

func messagesFor(p *locale.Printer) exchange.Messages {
	return exchange.Messages{
		NoResponse:      p.T(locale.NoResponse),
		ConnectionError: p.T(locale.ConnectionError),
	}
}

// endpointHost is the header status: where messages are sent.
func endpointHost(cfg *config.Config) string {
	u, err := url.Parse(cfg.Endpoint.BaseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
