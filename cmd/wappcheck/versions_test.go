// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/invowk/wappcheck/internal/config"
	"github.com/invowk/wappcheck/pkg/types"
)

func TestVersions(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "versions")
	if err != nil {
		t.Fatalf("versions error: %v", err)
	}

	for _, v := range []string{"3.3.0", "3.4.0", "3.5.0", "3.6.0"} {
		if !strings.Contains(stdout, v) {
			t.Errorf("output missing %s:\n%s", v, stdout)
		}
	}
	if !strings.Contains(stdout, "★ 3.6.0") {
		t.Errorf("current version not marked:\n%s", stdout)
	}
	if strings.Contains(stdout, "Range") {
		t.Errorf("range summary printed without --range:\n%s", stdout)
	}
}

func TestVersions_Range(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expr      string
		wantCount string
		wantErr   bool
	}{
		{name: "open upper bound", expr: "3.4.0:", wantCount: "matches 3 known version(s)"},
		{name: "exact and bound", expr: "3.3.0, [3.5.0:3.5.0]", wantCount: "matches 2 known version(s)"},
		{name: "empty", expr: "", wantCount: "matches 0 known version(s)"},
		{name: "unknown exact version", expr: "3.9.0", wantCount: "matches 0 known version(s)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "versions", "--range", tt.expr)
			if err != nil {
				t.Fatalf("versions error: %v", err)
			}
			if !strings.Contains(stdout, tt.wantCount) {
				t.Errorf("output missing %q:\n%s", tt.wantCount, stdout)
			}
			if got := strings.Contains(stdout, "not a known framework version"); got != tt.wantErr {
				t.Errorf("resolution error shown = %v, want %v:\n%s", got, tt.wantErr, stdout)
			}
		})
	}
}

func TestVersions_NoFrameworkVersion(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, staticProvider{cfg: config.DefaultConfig()}, "versions")
	assertExitCode(t, err, types.ExitUsage)
	if !strings.Contains(stderr, "current framework version is not set") {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}
