// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/wappcheck/internal/config"
	"github.com/invowk/wappcheck/internal/testutil"
	"github.com/invowk/wappcheck/pkg/types"
	"github.com/invowk/wappcheck/pkg/wapp"

	json "github.com/goccy/go-json"
)

func TestValidate_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		wantCode types.ExitCode
		contains []string
	}{
		{
			name:     "valid package",
			manifest: validManifestJSON,
			contains: []string{
				"Package is valid",
				"Route: /katana/demo/ -> katana.wapps.demo.urls",
				"1 package(s) valid",
			},
		},
		{
			name:     "missing manifest",
			wantCode: types.ExitInvalid,
			contains: []string{wapp.MsgManifestMissing, "[manifest_missing]", "1 of 1 package(s) invalid"},
		},
		{
			name:     "malformed manifest",
			manifest: `{"app": `,
			wantCode: types.ExitInvalid,
			contains: []string{wapp.MsgManifestFormat, "[manifest_format]"},
		},
		{
			name:     "incompatible framework",
			manifest: strings.Replace(validManifestJSON, `"warrior-incompatibility": ""`, `"warrior-incompatibility": "3.6.0"`, 1),
			wantCode: types.ExitInvalid,
			contains: []string{"incompatible with the current WarriorFramework (Version: 3.6.0)", "[compatibility]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := writePackage(t, tt.manifest)
			stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate", root)

			assertExitCode(t, err, tt.wantCode)
			for _, want := range tt.contains {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestValidate_JSON(t *testing.T) {
	t.Parallel()

	valid := writePackage(t, validManifestJSON)
	invalid := writePackage(t, "")
	empty := t.TempDir()

	stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate", "--format", "json", valid, invalid, empty)
	assertExitCode(t, err, types.ExitInvalid)

	var report validateReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}

	if report.Valid {
		t.Error("report.Valid = true, want false")
	}
	if report.Framework != "WarriorFramework" || report.FrameworkVersion != "3.6.0" {
		t.Errorf("framework = %q %q", report.Framework, report.FrameworkVersion)
	}
	if len(report.Packages) != 3 {
		t.Fatalf("got %d packages, want 3", len(report.Packages))
	}

	first := report.Packages[0]
	if first.App != "demo" || first.Result == nil || !first.Result.Status {
		t.Errorf("first package = %+v, want valid demo", first)
	}
	if first.Result.Route == nil || first.Result.Route.Module != "katana.wapps.demo.urls" {
		t.Errorf("first package route = %+v", first.Result.Route)
	}

	second := report.Packages[1]
	if second.Result == nil || second.Result.Kind != wapp.FailureManifestMissing {
		t.Errorf("second package = %+v, want manifest_missing", second)
	}

	third := report.Packages[2]
	if third.Result != nil || third.Error == "" {
		t.Errorf("third package = %+v, want open error", third)
	}
}

func TestValidate_Explain(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate", "--explain", t.TempDir())
	assertExitCode(t, err, types.ExitInvalid)

	if !strings.Contains(stdout, "Could not find the app directory") {
		t.Errorf("expected app directory guidance, got:\n%s", stdout)
	}
}

func TestValidate_FrameworkOverrides(t *testing.T) {
	t.Parallel()

	root := writePackage(t, validManifestJSON)

	// 3.3.0 is below the compatibility range.
	stdout, _, err := runCLI(t, staticProvider{cfg: testConfig()},
		"validate", "--framework-version", "3.3.0", "--framework-name", "Katana", root)
	assertExitCode(t, err, types.ExitInvalid)
	if !strings.Contains(stdout, "incompatible with the current Katana (Version: 3.3.0)") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestValidate_RegistryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	registry := filepath.Join(dir, "versions.yaml")
	testutil.MustWriteFile(t, registry, "current: 3.5.0\nversions: [3.4.0, 3.5.0]\n")

	cfg := config.DefaultConfig()
	stdout, _, err := runCLI(t, staticProvider{cfg: cfg}, "validate", "--registry", registry, writePackage(t, validManifestJSON))
	assertExitCode(t, err, 0)
	if !strings.Contains(stdout, "Framework: WarriorFramework 3.5.0") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestValidate_NoFrameworkVersion(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, staticProvider{cfg: config.DefaultConfig()}, "validate", "--explain", writePackage(t, validManifestJSON))
	assertExitCode(t, err, types.ExitUsage)

	if !strings.Contains(stderr, "failed to determine the framework version") {
		t.Errorf("stderr missing error:\n%s", stderr)
	}
	if !strings.Contains(stderr, "--framework-version") {
		t.Errorf("stderr missing suggestion:\n%s", stderr)
	}
	if !strings.Contains(stderr, "The framework version is unknown") {
		t.Errorf("stderr missing guidance:\n%s", stderr)
	}
}

func TestValidate_ConfigError(t *testing.T) {
	t.Parallel()

	provider := staticProvider{err: errors.New("config.cue: log_level: conflicting values")}
	_, stderr, err := runCLI(t, provider, "validate", t.TempDir())
	assertExitCode(t, err, types.ExitUsage)

	if !strings.Contains(stderr, "log_level") {
		t.Errorf("stderr missing config error:\n%s", stderr)
	}
}

func TestValidate_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate", "--format", "yaml", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("invalid format should be a plain usage error")
	}
}

func TestValidate_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, _, err := runCLI(t, staticProvider{cfg: testConfig()}, "validate"); err == nil {
		t.Fatal("expected error without path arguments")
	}
}

func TestFrameworkWithOverrides(t *testing.T) {
	t.Parallel()

	base := config.FrameworkConfig{Name: "WarriorFramework", Version: "3.5.0", RegistryFile: "versions.yaml"}

	tests := []struct {
		name string
		opts validateOptions
		want config.FrameworkConfig
	}{
		{
			name: "no flags",
			want: base,
		},
		{
			name: "version drops registry file",
			opts: validateOptions{frameworkVersion: "3.6.0"},
			want: config.FrameworkConfig{Name: "WarriorFramework", Version: "3.6.0"},
		},
		{
			name: "registry flag wins",
			opts: validateOptions{frameworkVersion: "3.6.0", registryFile: "other.toml"},
			want: config.FrameworkConfig{Name: "WarriorFramework", Version: "3.6.0", RegistryFile: "other.toml"},
		},
		{
			name: "name",
			opts: validateOptions{frameworkName: "Katana"},
			want: config.FrameworkConfig{Name: "Katana", Version: "3.5.0", RegistryFile: "versions.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := frameworkWithOverrides(base, tt.opts)
			if got.Name != tt.want.Name || got.Version != tt.want.Version || got.RegistryFile != tt.want.RegistryFile {
				t.Errorf("frameworkWithOverrides() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func assertExitCode(t *testing.T, err error, want types.ExitCode) {
	t.Helper()

	if want.IsSuccess() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError with code %d, got %v", want, err)
	}
	if exitErr.Code != want {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, want)
	}
}
