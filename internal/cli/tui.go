// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/sound"
	"github.com/jeranaias/chatline/internal/ui/chat"
)

// runTUI runs the full-screen chat alongside a watcher that feeds config file
// changes into it. Either one ending stops the other.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if !IsTTY() || !IsStdoutTTY() {
		return errors.New(`the full-screen chat needs a terminal; use "chatline chat" or "chatline ask" instead`)
	}

	cfg := a.cfg
	m := chat.New(chat.Options{
		Config:     cfg,
		ConfigPath: a.configPath,
		Completer:  a.newCompleter(cfg),
		Player:     sound.NewBell(os.Stdout, func() bool { return cfg.UI.SoundEffects }),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	eg, groupCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		final, err := program.Run()
		if fm, ok := final.(chat.Model); ok {
			fm.Close()
		}
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("chat UI failed: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		err := config.Watch(groupCtx, a.configPath, config.DefaultDebounce, func(next *config.Config, err error) {
			if next != nil {
				a.applyFlags(next)
			}
			program.Send(chat.SettingsReloadedMsg{Config: next, Err: err})
		})
		if err != nil {
			// Live reload is a convenience; the chat keeps running without it.
			log.Warn().Err(err).Msg("config watcher stopped")
		}
		return nil
	})

	return eg.Wait()
}
