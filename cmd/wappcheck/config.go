// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/invowk/wappcheck/internal/config"
	"github.com/invowk/wappcheck/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `wappcheck config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage wappcheck configuration",
		Long: `Manage wappcheck configuration.

Configuration is stored in:
  - Linux: ~/.config/wappcheck/config.cue
  - macOS: ~/Library/Application Support/wappcheck/config.cue
  - Windows: %APPDATA%\wappcheck\config.cue

Every key can be overridden with a WAPPCHECK_* environment variable, for
example WAPPCHECK_FRAMEWORK_VERSION=3.6.0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, cfgPath, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.abort(cmd, err, app.verbose, issue.Get(issue.ConfigLoadFailedId), "auto")
	}

	out := cmd.OutOrStdout()
	if cfgPath != "" {
		fmt.Fprintf(out, "// Config file: %s\n", cfgPath)
	} else {
		fmt.Fprintln(out, "// Config file: (using defaults)")
	}
	fmt.Fprint(out, config.GenerateCUE(cfg))
	return nil
}

func initConfig(cmd *cobra.Command) error {
	cfgPath, err := config.CreateDefaultConfig("")
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file: %s\n", successIcon, CmdStyle.Render(cfgPath))
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
