// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/invowk/wappcheck/internal/issue"
	"github.com/invowk/wappcheck/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the wappcheck command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wappcheck",
		Short: "Validate wapp installation packages",
		Long: TitleStyle.Render("wappcheck") + SubtitleStyle.Render(" - Validate wapp installation packages") + `

wappcheck checks a wapp installation package before it is installed into
WarriorFramework: the wf_config.json manifest, the route module it names,
framework version compatibility, database settings and the static asset
layout.

` + SubtitleStyle.Render("Examples:") + `
  wappcheck validate ./demo-wapp --framework-version 3.6.0
  wappcheck validate ./a ./b --format json
  wappcheck versions --range "3.4.0:, [3.5.0:3.5.2]"
  wappcheck config init`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/wappcheck/config.cue)")

	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newVersionsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors include their suggestions, and the full chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// abort prints err to stderr, followed by the rendered guide when non-nil,
// and returns an ExitError with ExitUsage.
func (a *App) abort(cmd *cobra.Command, err error, verbose bool, guide *issue.Issue, style string) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if guide != nil {
		if rendered, renderErr := guide.Render(style); renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
	}

	cmd.SilenceErrors = true
	return &ExitError{Code: types.ExitUsage}
}
