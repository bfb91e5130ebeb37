// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/export"
	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/model"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/components"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case exchangeResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if m.transcript.Pending() == 0 {
			m.typingActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		m.refresh()
		return m, cmd

	case components.ToastTickMsg:
		if !m.toasts.Tick() {
			m.toastTicking = false
			return m, nil
		}
		return m, components.ToastTickCmd()

	case scrollTickMsg:
		return m.handleScrollTick()

	case exportDoneMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("export failed")
			return m.notify(components.ToastError, m.printer.T(locale.ToastExportFailed, msg.err))
		}
		log.Info().Str("path", msg.path).Msg("conversation exported")
		m.player.Play(sound.Export)
		return m.notify(components.ToastSuccess, m.printer.T(locale.ToastExported))

	case settingsSavedMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("failed to save settings")
			return m.notify(components.ToastError, m.printer.T(locale.ToastSettingsFailed, msg.err))
		}
		if msg.silent {
			return m, nil
		}
		return m.notify(components.ToastSuccess, m.printer.T(locale.ToastSettingsSaved))

	case SettingsReloadedMsg:
		return m.handleReload(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayConfirm:
		return m.handleConfirmKey(msg)
	case overlaySettings:
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.inflight.cancelAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.New):
		m.confirm = components.NewConfirm(
			m.printer.T(locale.ConfirmTitle),
			m.printer.T(locale.ConfirmBody),
			m.printer.T(locale.ConfirmCancel),
			m.printer.T(locale.ConfirmConfirm),
		)
		m.overlay = overlayConfirm
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m.exportConversation()

	case key.Matches(msg, m.keys.Settings):
		m.settings = components.NewSettings(m.cfg)
		m.overlay = overlaySettings
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()

	case key.Matches(msg, m.keys.Voice):
		return m.notify(components.ToastInfo, m.printer.T(locale.ToastVoice))

	case key.Matches(msg, m.keys.Attach):
		return m.notify(components.ToastInfo, m.printer.T(locale.ToastAttach))

	case key.Matches(msg, m.keys.Emoji):
		m.input.SetValue(m.input.Value() + Emojis[m.pick(len(Emojis))])
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Number keys pick a prompt chip while the welcome screen is showing.
	if m.transcript.Len() == 0 && m.input.Value() == "" {
		if prompt, ok := components.ChipForKey(msg.String()); ok {
			m.input.SetValue(prompt)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.confirm.HandleKey(msg) {
	case components.ConfirmAccepted:
		m.overlay = overlayNone
		m.inflight.cancelAll()
		m.controller.RequestClear()
		m.typingActive = false
		m.player.Play(sound.Clear)
		m.refresh()
		m.viewport.GotoTop()
		return m.notify(components.ToastSuccess, m.printer.T(locale.ToastCleared))
	case components.ConfirmRejected:
		m.overlay = overlayNone
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.settings.HandleKey(msg) {
	case components.SettingsChanged:
		before := m.cfg.Clone()
		cmd := m.applySettings(m.settings.Config())
		return m, tea.Batch(cmd, m.saveCmd(before, true))
	case components.SettingsClosed:
		m.overlay = overlayNone
		return m.notify(components.ToastSuccess, m.printer.T(locale.ToastSettingsSaved))
	}
	return m, nil
}

// =============================================================================
// EXCHANGE
// =============================================================================

// submit begins an exchange with the current input. Validation failures
// leave everything untouched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	ex, err := m.controller.Begin(m.input.Value())
	if err != nil {
		if !exchange.IsInputError(err) {
			log.Error().Err(err).Msg("failed to start exchange")
		}
		return m, nil
	}

	m.input.Reset()
	m.player.Play(sound.Send)
	m.refresh()
	if m.cfg.UI.AutoScroll {
		m.viewport.GotoBottom()
	}

	ctx := m.inflight.start(ex.PlaceholderID)
	ctrl := m.controller
	send := func() tea.Msg {
		return exchangeResultMsg{ex: ex, out: ctrl.Send(ctx, ex)}
	}

	cmds := []tea.Cmd{send}
	if !m.typingActive {
		m.typingActive = true
		cmds = append(cmds, m.typing.Tick())
	}
	return m, tea.Batch(cmds...)
}

// handleResult resolves a finished exchange. Outcomes of exchanges whose
// placeholder was cleared are dropped by the controller and make no noise.
func (m Model) handleResult(msg exchangeResultMsg) (tea.Model, tea.Cmd) {
	id := msg.ex.PlaceholderID
	m.inflight.done(id)
	shown := m.transcript.Has(id)
	m.controller.Resolve(msg.ex, msg.out)
	if !shown {
		return m, nil
	}

	var cmd tea.Cmd
	switch msg.out.Kind {
	case exchange.OutcomeReply:
		m.player.Play(sound.Receive)
	case exchange.OutcomeTransportError:
		cmd = m.toast(components.ToastError, m.printer.T(locale.ToastConnection))
	}

	m.refresh()
	if m.transcript.TakeScroll() {
		cmd = tea.Batch(cmd, m.scrollToBottom())
	}
	return m, cmd
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	before := m.cfg.Clone()
	next := m.cfg.Clone()
	next.UI.Theme = m.theme.Toggled()
	m.player.Play(sound.Pop)
	cmds := []tea.Cmd{m.applySettings(next), m.saveCmd(before, true)}
	cmds = append(cmds, m.toast(components.ToastInfo, m.printer.T(locale.ToastThemeChanged, next.UI.Theme)))
	return m, tea.Batch(cmds...)
}

func (m Model) exportConversation() (tea.Model, tea.Cmd) {
	sess := m.controller.Session()
	if sess.IsEmpty() {
		return m.notify(components.ToastInfo, m.printer.T(locale.ToastNothingToExport))
	}
	conv := export.FromSession(sess)
	opts := m.exportOpts
	return m, func() tea.Msg {
		path, err := export.ToFile(conv, export.TextExporter{}, opts)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	turn, ok := m.controller.Session().LastOf(model.RoleModel)
	if !ok {
		return m.notify(components.ToastInfo, m.printer.T(locale.ToastNothingToCopy))
	}
	if err := m.copyText(turn.Text); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
		return m.notify(components.ToastError, m.printer.T(locale.ToastCopyFailed))
	}
	return m.notify(components.ToastSuccess, m.printer.T(locale.ToastCopied))
}

// =============================================================================
// SETTINGS
// =============================================================================

// applySettings makes next the live configuration.
func (m *Model) applySettings(next *config.Config) tea.Cmd {
	prev := *m.cfg
	*m.cfg = *next

	if prev.UI.Theme != next.UI.Theme {
		m.theme = styles.NewTheme(next.UI.Theme)
		m.applyTheme()
	}
	if prev.UI.Language != next.UI.Language {
		m.printer = locale.New(languageOf(next))
		m.controller.SetMessages(messagesFor(m.printer))
		m.input.Placeholder = m.printer.T(locale.InputHint)
	}

	var cmd tea.Cmd
	if prev.UI.ReduceMotion != next.UI.ReduceMotion {
		m.typing = components.NewTyping(next.UI.ReduceMotion)
		m.typingActive = false
		if m.transcript.Pending() > 0 {
			m.typingActive = true
			cmd = m.typing.Tick()
		}
	}
	m.refresh()
	return cmd
}

// saveCmd persists the change from before to the live settings.
func (m Model) saveCmd(before *config.Config, silent bool) tea.Cmd {
	after := m.cfg.Clone()
	save := m.saveConfig
	return func() tea.Msg {
		return settingsSavedMsg{err: save(before, after), silent: silent}
	}
}

// handleReload applies settings edited outside the app. Reloads caused by
// our own saves carry the values already in effect and are ignored.
func (m Model) handleReload(msg SettingsReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Warn().Err(msg.Err).Msg("settings reload failed")
		return m, nil
	}
	if msg.Config == nil || *msg.Config == *m.cfg {
		return m, nil
	}
	cmd := m.applySettings(msg.Config)
	if m.overlay == overlaySettings {
		m.settings = components.NewSettings(m.cfg)
	}
	toast := m.toast(components.ToastInfo, m.printer.T(locale.ToastSettingsLoaded))
	return m, tea.Batch(cmd, toast)
}

// =============================================================================
// HELPERS
// =============================================================================

// toast shows a notification, starting the expiry ticker if needed.
func (m *Model) toast(kind components.ToastKind, message string) tea.Cmd {
	m.toasts.Add(kind, message)
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

// notify shows a toast and returns the updated model.
func (m Model) notify(kind components.ToastKind, message string) (tea.Model, tea.Cmd) {
	cmd := m.toast(kind, message)
	return m, cmd
}

// scrollToBottom jumps, or starts the scroll animation.
func (m *Model) scrollToBottom() tea.Cmd {
	if m.cfg.UI.ReduceMotion {
		m.viewport.GotoBottom()
		return nil
	}
	if m.scrolling {
		return nil
	}
	m.scrolling = true
	return scrollTick()
}

func (m Model) handleScrollTick() (tea.Model, tea.Cmd) {
	remaining := m.maxOffset() - m.viewport.YOffset
	if remaining <= 0 {
		m.scrolling = false
		return m, nil
	}
	m.viewport.SetYOffset(m.viewport.YOffset + styles.ScrollStep(m.cfg.UI.ReduceMotion, remaining))
	return m, scrollTick()
}

func scrollTick() tea.Cmd {
	return tea.Tick(styles.ScrollInterval, func(time.Time) tea.Msg { return scrollTickMsg{} })
}

func (m Model) maxOffset() int {
	return max(0, m.viewport.TotalLineCount()-m.viewport.Height)
}
