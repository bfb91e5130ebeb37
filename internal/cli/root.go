// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/endpoint"
	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/locale"
	"github.com/jeranaias/chatline/internal/logging"
	"github.com/jeranaias/chatline/internal/model"
)

// Build information, set by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ExitError ends the process with Code. The message, if any, has already
// been shown to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app is the state shared by all commands once flags are parsed.
type app struct {
	// Flags
	configPath  string
	endpointURL string
	logLevel    string
	verbose     bool

	cfg       *config.Config
	logCloser io.Closer

	// newCompleter builds the completion client; replaced in tests.
	newCompleter func(cfg *config.Config) exchange.Completer
}

func newApp() *app {
	return &app{newCompleter: defaultCompleter}
}

func defaultCompleter(cfg *config.Config) exchange.Completer {
	return endpoint.NewClient(cfg.Endpoint.BaseURL).
		WithTimeout(time.Duration(cfg.Endpoint.TimeoutSecs) * time.Second)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatline",
		Short: "Chat with a remote assistant from the terminal",
		Long: `chatline is a terminal chat client for services that expose POST /api/chat.

Run without a command for the full-screen chat. Use "chatline chat" for a
plain line-mode session or "chatline ask" for a single question.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
		RunE:              a.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file path (default ~/.chatline/config.toml)")
	flags.StringVar(&a.endpointURL, "endpoint", "", "completion service base URL")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr (line-mode commands)")

	rootCmd.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newSettingsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	endpoint.Version = Version

	err := NewRootCommand().Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration and starts logging. Order of precedence, lowest
// first: defaults, config file, .env and environment, flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	if a.configPath == "" {
		a.configPath = config.Path()
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	a.cfg = cfg

	// The full-screen UI owns the terminal, so it always logs to the file.
	console := a.verbose && cmd.Name() != "chatline"
	closer, err := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
	}
	a.logCloser = closer

	log.Debug().
		Str("command", cmd.Name()).
		Str("config", a.configPath).
		Str("endpoint", cfg.Endpoint.BaseURL).
		Msg("chatline starting")
	return nil
}

// applyFlags puts the command-line overrides on top of cfg. They are only
// ever applied to the live config, never saved.
func (a *app) applyFlags(cfg *config.Config) {
	if a.endpointURL != "" {
		cfg.Endpoint.BaseURL = a.endpointURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
}

func (a *app) teardown() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// printer returns the localized strings for the configured language.
func (a *app) printer() *locale.Printer {
	lang := a.cfg.UI.Language
	if lang == "" {
		lang = locale.Detect()
	}
	return locale.New(lang)
}

// controller builds an exchange controller reporting to view.
func (a *app) controller(view exchange.View, p *locale.Printer) *exchange.Controller {
	return exchange.NewController(model.NewSession(), a.newCompleter(a.cfg), view,
		exchange.WithMessages(exchange.Messages{
			NoResponse:      p.T(locale.NoResponse),
			ConnectionError: p.T(locale.ConnectionError),
		}),
		exchange.WithAutoScroll(func() bool { return a.cfg.UI.AutoScroll }),
	)
}
