// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "open installation package",
				Resource:  "./demo-wapp",
			},
			expected: "failed to open installation package: ./demo-wapp",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "load configuration",
				Cause:     errors.New("log_level: conflicting values"),
			},
			expected: "failed to load configuration: log_level: conflicting values",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "open installation package",
				Resource:  "./demo-wapp",
				Cause:     errors.New("no app directory"),
			},
			expected: "failed to open installation package: ./demo-wapp: no app directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	outer := &wrapErr{msg: "read katana.wapps", err: inner}

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "simple error non-verbose",
			err:      &ActionableError{Operation: "load configuration"},
			contains: []string{"failed to load configuration"},
			excludes: []string{"•", "Error chain"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load configuration",
				Resource:    "config.cue",
				Suggestions: []string{"Run 'wappcheck config init'", "Check file permissions"},
			},
			contains: []string{
				"failed to load configuration: config.cue",
				"• Run 'wappcheck config init'",
				"• Check file permissions",
			},
		},
		{
			name:     "non-verbose hides chain",
			err:      &ActionableError{Operation: "open installation package", Cause: outer},
			contains: []string{"permission denied"},
			excludes: []string{"Error chain"},
		},
		{
			name:    "verbose shows chain",
			err:     &ActionableError{Operation: "open installation package", Cause: outer},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. read katana.wapps: permission denied",
				"2. permission denied",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, missing %q", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Format() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

type wrapErr struct {
	msg string
	err error
}

func (e *wrapErr) Error() string { return e.msg + ": " + e.err.Error() }
func (e *wrapErr) Unwrap() error { return e.err }

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("load registry").
		WithResource("versions.yaml").
		WithSuggestion("Check YAML syntax").
		WithSuggestions("Use .yaml or .toml", "Run 'wappcheck versions'").
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "load registry" || ae.Resource != "versions.yaml" {
		t.Errorf("unexpected context: %+v", ae)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false")
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() lost the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() = %v, want nil without operation", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("missing")
	ae := WrapWithContext(cause, "open installation package", "/tmp/pkg")
	if ae.Operation != "open installation package" || ae.Resource != "/tmp/pkg" || !errors.Is(ae, cause) {
		t.Errorf("unexpected error: %+v", ae)
	}
	if ae.HasSuggestions() {
		t.Error("WrapWithContext should not add suggestions")
	}
}

func TestActionableError_FormatJoinedChain(t *testing.T) {
	t.Parallel()

	first := errors.New("framework.version is empty")
	second := errors.New("framework.known_versions is empty")
	ae := &ActionableError{Operation: "validate configuration", Cause: errors.Join(first, second)}

	got := ae.Format(true)
	for _, want := range []string{"2. framework.version is empty", "3. framework.known_versions is empty"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() = %q, missing %q", got, want)
		}
	}
}
