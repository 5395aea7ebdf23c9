// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/wappcheck/pkg/wapp"
	"github.com/invowk/wappcheck/pkg/wappversion"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidFrameworkConfig is the sentinel error wrapped by InvalidFrameworkConfigError.
	ErrInvalidFrameworkConfig = errors.New("invalid framework config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of diagnostics written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidFrameworkConfigError collects field-level errors of a FrameworkConfig.
	InvalidFrameworkConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field-level errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Framework describes the host framework wapps are validated against.
		Framework FrameworkConfig `json:"framework" mapstructure:"framework"`
		// LogLevel sets the diagnostic log level
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// FrameworkConfig describes the host framework.
	FrameworkConfig struct {
		// Name appears in incompatibility messages.
		Name string `json:"name" mapstructure:"name"`
		// Version is the running framework version.
		Version string `json:"version" mapstructure:"version"`
		// KnownVersions lists every released framework version.
		KnownVersions []string `json:"known_versions" mapstructure:"known_versions"`
		// RegistryFile, when set, replaces Version and KnownVersions.
		RegistryFile string `json:"registry_file" mapstructure:"registry_file"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file or environment
// override is present. The framework version is left empty on purpose: it
// has to come from the operator.
func DefaultConfig() *Config {
	return &Config{
		Framework: FrameworkConfig{
			Name:          wapp.DefaultFrameworkName,
			KnownVersions: []string{},
		},
		LogLevel: LogLevelWarn,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid checks that the framework has a name. Version problems are
// reported by Registry, where they can be attributed to their source.
func (f FrameworkConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, errors.New("framework name must be non-empty"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidFrameworkConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFrameworkConfigError.
func (e *InvalidFrameworkConfigError) Error() string {
	return fmt.Sprintf("invalid framework config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidFrameworkConfig for errors.Is() compatibility.
func (e *InvalidFrameworkConfigError) Unwrap() error { return ErrInvalidFrameworkConfig }

// Registry builds the version registry the framework section describes.
func (f FrameworkConfig) Registry() (wappversion.Registry, error) {
	var (
		reg *wappversion.StaticRegistry
		err error
	)
	if f.RegistryFile != "" {
		reg, err = wappversion.LoadRegistryFile(f.RegistryFile)
	} else {
		reg, err = wappversion.NewStaticRegistry(f.Version, f.KnownVersions)
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Framework.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both the
// umbrella sentinel and the field sentinels match with errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
