// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/wappcheck/internal/issue"
	"github.com/invowk/wappcheck/pkg/wappversion"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// newVersionsCommand creates the `wappcheck versions` command.
func newVersionsCommand(app *App) *cobra.Command {
	opts := validateOptions{}
	var rangeExpr string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List known framework versions",
		Long: `List the framework versions compatibility ranges are resolved against.

The current version is marked with ★. With --range, versions matched by the
expression are marked with ✓, using the same grammar as
warrior-compatibility and warrior-incompatibility:

  "3.2.0, 3.4.0:3.6.0"     exact versions plus one inclusive range
  "[3.5.0:]"               open upper bound
  ""                       matches nothing

Examples:
  wappcheck versions --framework-version 3.6.0
  wappcheck versions --registry versions.toml --range "3.4.0:"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(cmd, app, opts, rangeExpr, cmd.Flags().Changed("range"))
		},
	}

	cmd.Flags().StringVar(&opts.frameworkVersion, "framework-version", "", "running framework version (overrides framework.version)")
	cmd.Flags().StringVar(&opts.registryFile, "registry", "", "YAML or TOML file listing framework versions")
	cmd.Flags().StringVar(&rangeExpr, "range", "", "version range expression to resolve")

	return cmd
}

func runVersions(cmd *cobra.Command, app *App, opts validateOptions, rangeExpr string, hasRange bool) error {
	cfg, _, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.abort(cmd, err, app.verbose, nil, "")
	}

	framework := frameworkWithOverrides(cfg.Framework, opts)
	registry, err := framework.Registry()
	if err != nil {
		return app.abort(cmd, issue.WrapWithContext(err, "determine the framework version", framework.RegistryFile), app.isVerbose(cfg), nil, "")
	}

	current, err := registry.Current()
	if err != nil {
		return app.abort(cmd, err, app.isVerbose(cfg), nil, "")
	}
	known, err := registry.Known()
	if err != nil {
		return app.abort(cmd, err, app.isVerbose(cfg), nil, "")
	}

	var resolution wappversion.Resolution
	if hasRange {
		resolution = wappversion.NewResolver().Resolve(rangeExpr, known)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render(framework.Name+" Versions"))
	fmt.Fprintln(out)

	for _, v := range known {
		marker := " "
		if v.Equal(current) {
			marker = currentIcon
		}
		match := ""
		if hasRange && resolution.Contains(v) {
			match = " " + successIcon
		}
		fmt.Fprintf(out, "%s %s%s\n", marker, CmdStyle.Render(v.Original()), match)
	}

	if hasRange {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s Range %q matches %d known version(s)\n", infoIcon, rangeExpr, countMatches(resolution, known))
		if resolution.Failed() {
			fmt.Fprintf(out, "%s %s\n", WarningStyle.Render("!"), resolution.Err)
		}
	}

	return nil
}

func countMatches(r wappversion.Resolution, known []*semver.Version) int {
	n := 0
	for _, v := range known {
		if r.Contains(v) {
			n++
		}
	}
	return n
}
