// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
)

func TestNewValidPackage(t *testing.T) {
	t.Parallel()

	p := NewValidPackage(t)

	wantApp := filepath.Join(p.Root, "warriorframework_py3", "katana", "katana.wapps", DemoApp)
	if p.AppPath != wantApp {
		t.Errorf("AppPath = %q, want %q", p.AppPath, wantApp)
	}

	data, err := os.ReadFile(p.Path("wf_config.json"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if fields["warrior-compatibility"] != "3.4.0:" {
		t.Errorf("warrior-compatibility = %v", fields["warrior-compatibility"])
	}

	if _, err := os.Stat(p.Path("demo/urls.py")); err != nil {
		t.Errorf("route module not written: %v", err)
	}
}

func TestPackage_AddApp(t *testing.T) {
	t.Parallel()

	p := NewPackage(t, "alpha")
	p.AddApp(t, "beta")

	entries, err := os.ReadDir(filepath.Dir(p.AppPath))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d app directories, want 2", len(entries))
	}
}

func TestMustChdir(t *testing.T) {
	dir := t.TempDir()
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("changes directory", func(t *testing.T) {
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		resolved, _ := filepath.EvalSymlinks(dir)
		if wd != dir && wd != resolved {
			t.Errorf("Getwd() = %q, want %q", wd, dir)
		}
	})

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if wd != original {
		t.Errorf("directory not restored: %q, want %q", wd, original)
	}
}
