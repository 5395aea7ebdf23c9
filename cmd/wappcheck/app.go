// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/wappcheck/internal/config"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App reference and reads configuration through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		// persistent flag values
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration honoring the --config flag and returns the
// path of the file it came from.
func (a *App) loadConfig(ctx context.Context) (*config.Config, string, error) {
	return a.Config.Resolve(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
}

// isVerbose reports whether --verbose was passed or ui.verbose is set.
func (a *App) isVerbose(cfg *config.Config) bool {
	return a.verbose || (cfg != nil && cfg.UI.Verbose)
}

// newLogger builds the stderr diagnostic logger. --verbose lowers the level
// to debug; otherwise log_level applies.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})

	level := log.WarnLevel
	if cfg != nil {
		if parsed, err := log.ParseLevel(cfg.LogLevel.String()); err == nil {
			level = parsed
		}
	}
	if a.isVerbose(cfg) {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	return logger
}
