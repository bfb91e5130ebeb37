// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatline/internal/config"
)

func newSettingsCmd(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Show or change settings",
		Long: `Show or change the settings stored in the config file.

Keys use dot notation, for example ui.theme or endpoint.base_url.
A running chatline picks up changes immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listSettings(cmd)
		},
	}

	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show all settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.listSettings(cmd)
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Show one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := a.cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting and save it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.setSetting(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
			},
		},
	)
	return settingsCmd
}

func (a *app) listSettings(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, key := range config.Keys() {
		value, err := a.cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s = %s\n", key, value)
	}
	return nil
}

// setSetting changes one key in the file. The file is read without
// environment or flag overrides, so only the named key changes on disk.
func (a *app) setSetting(cmd *cobra.Command, key, value string) error {
	file, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if err := file.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(file, a.configPath); err != nil {
		return err
	}
	if err := a.cfg.Set(key, value); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}
