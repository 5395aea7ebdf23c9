// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/invowk/wappcheck/internal/config"
	"github.com/invowk/wappcheck/internal/issue"
	"github.com/invowk/wappcheck/internal/watch"
	"github.com/invowk/wappcheck/pkg/types"
	"github.com/invowk/wappcheck/pkg/wapp"
	"github.com/invowk/wappcheck/pkg/wappversion"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type (
	// validateOptions holds the flags of `wappcheck validate`.
	validateOptions struct {
		format           string
		frameworkName    string
		frameworkVersion string
		registryFile     string
		explain          bool
		watch            bool
		debounce         time.Duration
	}

	// packageReport is the outcome for one path argument. Error is set when
	// the package could not be opened; Result otherwise.
	packageReport struct {
		Path   string                 `json:"path"`
		App    string                 `json:"app,omitempty"`
		Result *wapp.ValidationResult `json:"result,omitempty"`
		Error  string                 `json:"error,omitempty"`

		err error
	}

	// validateReport is the document written by --format json.
	validateReport struct {
		Framework        string          `json:"framework"`
		FrameworkVersion string          `json:"framework_version"`
		Valid            bool            `json:"valid"`
		Packages         []packageReport `json:"packages"`
	}
)

// newValidateCommand creates the `wappcheck validate` command.
func newValidateCommand(app *App) *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate wapp installation packages",
		Long: `Validate one or more wapp installation packages.

Each path is the root of an extracted package holding exactly one app under
warriorframework_py3/katana/katana.wapps/. Checks run in order and stop at the
first failure:
  - wf_config.json exists, is valid JSON and has the mandatory keys
  - app.include names a route module shipped with the app
  - the framework version satisfies warrior-compatibility and avoids
    warrior-incompatibility
  - database settings are namespaced by the app name
  - static assets follow static/<app>/js/ layout

The exit status is 1 when any package is invalid and 2 when validation could
not run. With --watch the packages are validated again whenever their files
change, until interrupted.

Examples:
  wappcheck validate ./demo-wapp --framework-version 3.6.0
  wappcheck validate ./a ./b --registry versions.yaml --format json
  wappcheck validate ./demo-wapp --explain
  wappcheck validate ./demo-wapp --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().StringVar(&opts.frameworkName, "framework-name", "", "framework name used in messages (overrides framework.name)")
	cmd.Flags().StringVar(&opts.frameworkVersion, "framework-version", "", "running framework version (overrides framework.version)")
	cmd.Flags().StringVar(&opts.registryFile, "registry", "", "YAML or TOML file listing framework versions (overrides framework.registry_file)")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print remediation guidance for failures")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-validate packages when their files change")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "quiet period before re-validating in --watch mode (default 500ms)")

	return cmd
}

func runValidate(cmd *cobra.Command, app *App, paths []string, opts validateOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("invalid --format %q (valid: %s, %s)", opts.format, formatText, formatJSON)
	}

	cfg, cfgPath, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.abort(cmd, err, app.verbose, explainIssue(opts.explain, issue.ConfigLoadFailedId), "auto")
	}
	verbose := app.isVerbose(cfg)
	style := glamourStyle(cfg.UI.ColorScheme)
	applyColorScheme(cfg.UI.ColorScheme)

	logger := app.newLogger(cfg)
	if cfgPath != "" {
		logger.Debug("loaded configuration", "path", cfgPath)
	}

	framework := frameworkWithOverrides(cfg.Framework, opts)
	registry, err := framework.Registry()
	if err != nil {
		err = issue.NewErrorContext().
			WithOperation("determine the framework version").
			WithResource(framework.RegistryFile).
			WithSuggestion("Pass --framework-version or set framework.version in the config file").
			WithSuggestion("Check that the --registry file lists 'current' and 'versions'").
			Wrap(err).
			BuildError()
		return app.abort(cmd, err, verbose, explainIssue(opts.explain, issue.RegistryUnavailableId), style)
	}

	validatorOpts := []wapp.Option{wapp.WithFrameworkName(framework.Name)}
	if verbose {
		validatorOpts = append(validatorOpts, wapp.WithLogger(logger))
	}

	out := cmd.OutOrStdout()
	check := func(paths []string) (bool, error) {
		report := buildReport(framework.Name, registry, paths, validatorOpts)
		switch opts.format {
		case formatJSON:
			if err := writeJSONReport(out, report); err != nil {
				return false, err
			}
		default:
			renderTextReport(out, report, opts.explain, style)
		}
		return report.Valid, nil
	}

	valid, err := check(paths)
	if err != nil {
		return err
	}

	if opts.watch {
		return watchPackages(cmd, paths, opts.debounce, logger, func(changed []string) error {
			_, checkErr := check(changed)
			return checkErr
		})
	}

	if !valid {
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitInvalid}
	}
	return nil
}

// buildReport validates every path against the same registry.
func buildReport(frameworkName string, registry wappversion.Registry, paths []string, opts []wapp.Option) validateReport {
	report := validateReport{Framework: frameworkName, Valid: true}
	if current, err := registry.Current(); err == nil {
		report.FrameworkVersion = current.Original()
	}

	for _, path := range paths {
		pr := validatePackage(path, registry, opts)
		if pr.Result == nil || !pr.Result.Status {
			report.Valid = false
		}
		report.Packages = append(report.Packages, pr)
	}
	return report
}

// watchPackages blocks until the command context is cancelled, calling
// recheck with the package roots whose files changed.
func watchPackages(cmd *cobra.Command, paths []string, debounce time.Duration, logger *log.Logger, recheck func([]string) error) error {
	w, err := watch.New(watch.Config{
		Roots:    paths,
		Debounce: debounce,
		Logger:   logger,
		OnChange: func(_ context.Context, roots []string) error {
			logger.Info("re-validating", "packages", len(roots))
			return recheck(roots)
		},
	})
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("watch packages").
			WithSuggestion("Check that every path is an existing directory").
			WithSuggestion("On Linux, raise fs.inotify.max_user_watches for large packages").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %d package(s) for changes (Ctrl+C to stop)\n", infoIcon, len(w.Roots()))
	return w.Run(cmd.Context())
}

// frameworkWithOverrides applies the command-line flags to the configured
// framework. An explicit --framework-version drops a configured registry
// file, and --registry wins over both.
func frameworkWithOverrides(fw config.FrameworkConfig, opts validateOptions) config.FrameworkConfig {
	if opts.frameworkName != "" {
		fw.Name = opts.frameworkName
	}
	if opts.frameworkVersion != "" {
		fw.Version = opts.frameworkVersion
		fw.RegistryFile = ""
	}
	if opts.registryFile != "" {
		fw.RegistryFile = opts.registryFile
	}
	return fw
}

// validatePackage runs the validator over one package root.
func validatePackage(path string, registry wappversion.Registry, opts []wapp.Option) packageReport {
	pr := packageReport{Path: path}
	if abs, err := filepath.Abs(path); err == nil {
		pr.Path = abs
	}

	v, err := wapp.New(path, registry, opts...)
	if err != nil {
		pr.err = err
		pr.Error = err.Error()
		return pr
	}

	result := v.IsValid()
	pr.App = v.AppName()
	pr.Result = &result
	return pr
}

func writeJSONReport(w io.Writer, report validateReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderTextReport(w io.Writer, report validateReport, explain bool, style string) {
	fmt.Fprintln(w, TitleStyle.Render("Wapp Validation"))
	if report.FrameworkVersion != "" {
		fmt.Fprintf(w, "%s Framework: %s %s\n", infoIcon, report.Framework, CmdStyle.Render(report.FrameworkVersion))
	}

	invalid := 0
	for _, pr := range report.Packages {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s Path: %s\n", infoIcon, CmdStyle.Render(pr.Path))

		if pr.Result == nil {
			invalid++
			fmt.Fprintf(w, "%s %s\n", errorIcon, pr.Error)
			if explain && isAppDirectoryError(pr.err) {
				writeGuide(w, issue.Get(issue.AppDirectoryId), style)
			}
			continue
		}

		fmt.Fprintf(w, "%s App: %s\n", infoIcon, pr.App)
		if pr.Result.Status {
			fmt.Fprintf(w, "%s Package is valid\n", successIcon)
			if route := pr.Result.Route; route != nil {
				fmt.Fprintf(w, "  Route: %s -> %s\n", CmdStyle.Render(route.MountPath), route.Module)
			}
			continue
		}

		invalid++
		fmt.Fprintf(w, "%s %s %s\n", errorIcon, pr.Result.Message, kindStyle.Render("["+string(pr.Result.Kind)+"]"))
		if explain {
			writeGuide(w, issue.ForKind(pr.Result.Kind), style)
		}
	}

	fmt.Fprintln(w)
	if invalid == 0 {
		fmt.Fprintf(w, "%s %d package(s) valid\n", successIcon, len(report.Packages))
		return
	}
	fmt.Fprintf(w, "%s %d of %d package(s) invalid\n", errorIcon, invalid, len(report.Packages))
}

func writeGuide(w io.Writer, guide *issue.Issue, style string) {
	if guide == nil {
		return
	}
	rendered, err := guide.Render(style)
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// explainIssue returns the catalog entry for id when explain is set.
func explainIssue(explain bool, id issue.Id) *issue.Issue {
	if !explain {
		return nil
	}
	return issue.Get(id)
}

// isAppDirectoryError reports whether err is a package layout problem rather
// than an I/O failure.
func isAppDirectoryError(err error) bool {
	return errors.Is(err, wapp.ErrNoAppDirectory) || errors.Is(err, wapp.ErrMultipleAppDirectories)
}
