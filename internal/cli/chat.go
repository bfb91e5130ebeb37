// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/export"
	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/components"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

const replPrompt = "> "

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start a line-mode chat session with input history.

Commands during chat:
  /clear           Start a new conversation
  /export [FMT]    Save the conversation (txt, md, json, yaml)
  /theme           Switch between light and dark
  /help            Show commands
  /quit            Exit (or Ctrl+D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd)
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// historyPath returns ~/.chatline/history.
func historyPath() string {
	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "history")
}

func loadHistory(line *liner.State, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		log.Debug().Err(err).Msg("failed to read history")
	}
}

// saveHistory writes the history owner-only.
func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.Debug().Err(err).Msg("failed to save history")
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

// =============================================================================
// REPL
// =============================================================================

// repl is a line-mode chat session. It is driven one line at a time by
// handleLine, so it can run without a terminal.
type repl struct {
	cfg     *config.Config
	ctrl    *exchange.Controller
	view    *lineView
	theme   *styles.Theme
	printer *locale.Printer
	player  sound.Player

	out    io.Writer
	errOut io.Writer

	exportOpts *export.Options
	// saveConfig persists a settings change from before to after.
	saveConfig func(before, after *config.Config) error
	// confirm asks a yes/no question; the default answer is no.
	confirm func(question string) bool
}

func (a *app) newRepl(out, errOut io.Writer, player sound.Player) *repl {
	theme := styles.NewTheme(a.cfg.UI.Theme)
	printer := a.printer()
	view := newLineView(out, errOut, theme, player)
	view.labels = true
	path := a.configPath

	return &repl{
		cfg:        a.cfg,
		ctrl:       a.controller(view, printer),
		view:       view,
		theme:      theme,
		printer:    printer,
		player:     player,
		out:        out,
		errOut:     errOut,
		exportOpts: export.DefaultOptions(),
		saveConfig: func(before, after *config.Config) error { return config.SaveChanges(path, before, after) },
		confirm:    func(string) bool { return false },
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	player := sound.NewBell(out, func() bool { return a.cfg.UI.SoundEffects })
	r := a.newRepl(out, cmd.ErrOrStderr(), player)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyPath()
	loadHistory(line, hist)
	defer saveHistory(line, hist)

	r.confirm = func(question string) bool {
		answer, err := line.Prompt(question + " [y/N] ")
		if err != nil {
			return false
		}
		return isYes(answer)
	}

	r.printWelcome()
	for {
		input, err := line.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out, r.theme.Muted.Render("Type /quit or press Ctrl+D to exit."))
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if r.handleLine(cmd.Context(), input) {
			return nil
		}
	}
}

// handleLine processes one line of input and reports whether to exit.
func (r *repl) handleLine(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "/") {
		return r.handleCommand(trimmed)
	}

	if r.ctrl.Session().IsEmpty() {
		if prompt, ok := components.ChipForKey(trimmed); ok {
			fmt.Fprintln(r.out, r.theme.Muted.Render(replPrompt+prompt))
			input = prompt
		}
	}
	r.submit(ctx, input)
	return false
}

// submit runs one exchange. Ctrl+C while waiting cancels the request.
func (r *repl) submit(ctx context.Context, input string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ex, err := r.ctrl.Begin(input)
	if err != nil {
		// Empty and over-long input are ignored, as in the full-screen chat.
		return
	}
	r.player.Play(sound.Send)

	thinking := isTerminal(r.errOut)
	if thinking {
		fmt.Fprint(r.errOut, r.theme.Thinking.Render(r.printer.T(locale.Thinking)+"..."))
	}
	out := r.ctrl.Send(ctx, ex)
	if thinking {
		fmt.Fprint(r.errOut, "\r\x1b[K")
	}
	r.ctrl.Resolve(ex, out)
}

// handleCommand runs a slash command and reports whether to exit.
func (r *repl) handleCommand(input string) bool {
	fields := strings.Fields(input)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/q", "/exit":
		return true
	case "/help", "/h", "/?":
		r.printHelp()
	case "/clear", "/c", "/new":
		r.clear()
	case "/export", "/e":
		format := "txt"
		if len(args) > 0 {
			format = args[0]
		}
		r.export(format)
	case "/theme", "/t":
		r.toggleTheme()
	default:
		fmt.Fprintf(r.errOut, "Unknown command %s. Type /help for commands.\n", fields[0])
	}
	return false
}

func (r *repl) clear() {
	if !r.confirm(r.printer.T(locale.ConfirmBody)) {
		return
	}
	r.ctrl.RequestClear()
	r.player.Play(sound.Clear)
	r.notice(r.printer.T(locale.ToastCleared))
}

func (r *repl) export(format string) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		fmt.Fprintln(r.errOut, err)
		return
	}

	path, err := export.ToFile(export.FromSession(r.ctrl.Session()), exporter, r.exportOpts)
	switch {
	case errors.Is(err, export.ErrEmptyConversation):
		fmt.Fprintln(r.errOut, r.printer.T(locale.ToastNothingToExport))
	case err != nil:
		fmt.Fprintln(r.errOut, r.printer.T(locale.ToastExportFailed, err))
	default:
		r.player.Play(sound.Export)
		r.notice(r.printer.T(locale.ToastExported) + ": " + path)
	}
}

func (r *repl) toggleTheme() {
	before := r.cfg.Clone()
	next := r.theme.Toggled()
	r.cfg.UI.Theme = next
	r.theme = styles.NewTheme(next)
	r.view.setTheme(r.theme)

	if err := r.saveConfig(before, r.cfg); err != nil {
		fmt.Fprintln(r.errOut, r.printer.T(locale.ToastSettingsFailed, err))
	}
	r.notice(r.printer.T(locale.ToastThemeChanged, next))
}

func (r *repl) notice(msg string) {
	style := r.theme.NewStyle().Foreground(styles.Success)
	fmt.Fprintln(r.out, style.Render(styles.Icons.Success+" "+msg))
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *repl) printWelcome() {
	fmt.Fprintln(r.out, r.theme.WelcomeTitle.Render(r.printer.T(locale.WelcomeTitle)))
	fmt.Fprintln(r.out, r.theme.WelcomeSubtitle.Render(r.printer.T(locale.WelcomeSubtitle)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.printer.T(locale.WelcomeTry))
	for i, prompt := range components.PromptChips {
		fmt.Fprintf(r.out, "  %s %s\n", r.theme.ChipKey.Render(fmt.Sprintf("[%d]", i+1)), prompt)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.theme.Muted.Render("Type /help for commands."))
	fmt.Fprintln(r.out)
}

func (r *repl) printHelp() {
	commands := []struct{ name, desc string }{
		{"/clear, /c", "Start a new conversation"},
		{"/export [FMT]", "Save the conversation (" + strings.Join(export.Formats(), ", ") + ")"},
		{"/theme, /t", "Switch between light and dark"},
		{"/help, /h", "Show this help"},
		{"/quit, /q", "Exit chat"},
		{"Ctrl+C", "Cancel the request in flight"},
		{"Ctrl+D", "Exit chat"},
	}
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s %s\n", r.theme.ChipKey.Render(fmt.Sprintf("%-16s", c.name)), c.desc)
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
