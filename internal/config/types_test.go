// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/wappcheck/pkg/wappversion"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"AUTO", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Fatalf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidColorScheme) {
				t.Errorf("expected ErrInvalidColorScheme, got %v", errs[0])
			}
		})
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if valid, errs := level.IsValid(); !valid {
			t.Errorf("LogLevel(%q).IsValid() = false: %v", level, errs)
		}
	}

	valid, errs := LogLevel("fatal").IsValid()
	if valid {
		t.Fatal("LogLevel(fatal).IsValid() = true, want false")
	}
	var levelErr *InvalidLogLevelError
	if !errors.As(errs[0], &levelErr) || levelErr.Value != "fatal" {
		t.Errorf("expected *InvalidLogLevelError{fatal}, got %v", errs[0])
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Framework.Name = " "
	cfg.UI.ColorScheme = "neon"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", errs[0])
	}
	if !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("expected wrapped ErrInvalidColorScheme via field errors, got %v", errs[0])
	}
}

func TestFrameworkConfig_Registry(t *testing.T) {
	t.Parallel()

	t.Run("static", func(t *testing.T) {
		t.Parallel()

		fw := FrameworkConfig{Name: "WarriorFramework", Version: "3.6.0", KnownVersions: []string{"3.5.0"}}
		reg, err := fw.Registry()
		if err != nil {
			t.Fatalf("Registry() error: %v", err)
		}
		known, err := reg.Known()
		if err != nil {
			t.Fatal(err)
		}
		if len(known) != 2 {
			t.Errorf("Known() = %v, want current appended to known", known)
		}
	})

	t.Run("missing version", func(t *testing.T) {
		t.Parallel()

		_, err := FrameworkConfig{Name: "WarriorFramework"}.Registry()
		if !errors.Is(err, wappversion.ErrNoCurrentVersion) {
			t.Errorf("expected ErrNoCurrentVersion, got %v", err)
		}
	})

	t.Run("registry file wins", func(t *testing.T) {
		t.Parallel()

		fw := FrameworkConfig{
			Name:         "WarriorFramework",
			Version:      "3.6.0",
			RegistryFile: filepath.Join(t.TempDir(), "missing.yaml"),
		}
		if _, err := fw.Registry(); err == nil {
			t.Error("expected error from missing registry file")
		}
	})
}
