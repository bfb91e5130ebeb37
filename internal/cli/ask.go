// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatline/internal/exchange"
	"github.com/jeranaias/chatline/internal/ui/styles"
)

// maxStdinBytes bounds how much piped input ask reads.
const maxStdinBytes = 1 << 20

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [text...]",
		Short: "Send one message and print the reply",
		Long: `Send a single message and print the reply to stdout.

With no arguments the message is read from stdin, so it can be piped:

  git diff | chatline ask

The exit status is 1 if the service cannot be reached or returns nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, args)
		},
	}
}

func (a *app) runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		in := cmd.InOrStdin()
		if isTerminal(in) {
			return errors.New("nothing to ask: pass the message as arguments or pipe it on stdin")
		}
		data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes))
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	view := newLineView(cmd.OutOrStdout(), cmd.ErrOrStderr(), styles.NewTheme(a.cfg.UI.Theme), nil)
	ctrl := a.controller(view, a.printer())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err := ctrl.SubmitUserText(ctx, text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exchange.ErrEmptyInput):
		return errors.New("nothing to ask: the message is empty")
	case errors.Is(err, exchange.ErrInputTooLong):
		return fmt.Errorf("message is longer than %d characters", exchange.MaxInputLength)
	default:
		// The view has already printed the fixed failure message.
		return &ExitError{Code: 1}
	}
}
