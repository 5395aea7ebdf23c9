// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
)

// AppsDirSegments is the path of the app directory container below a
// package root.
var AppsDirSegments = []string{"warriorframework_py3", "katana", "katana.wapps"}

// DemoApp is the app name used by ValidManifest and NewValidPackage.
const DemoApp = "demo"

// Package is an installation package tree rooted in a temp directory.
type Package struct {
	Root    string
	AppPath string
}

// NewPackage creates an empty package holding a single app directory.
func NewPackage(t testing.TB, appName string) Package {
	t.Helper()
	root := t.TempDir()
	appPath := filepath.Join(append(append([]string{root}, AppsDirSegments...), appName)...)
	MustMkdirAll(t, appPath)
	return Package{Root: root, AppPath: appPath}
}

// NewValidPackage creates a DemoApp package that passes validation against
// framework 3.4.0 or later.
func NewValidPackage(t testing.TB) Package {
	t.Helper()
	p := NewPackage(t, DemoApp)
	p.WriteManifest(t, ValidManifest())
	p.WriteFile(t, "demo/urls.py", "urlpatterns = []\n")
	return p
}

// Path returns the slash-separated rel joined to the app directory.
func (p Package) Path(rel string) string {
	return filepath.Join(p.AppPath, filepath.FromSlash(rel))
}

// WriteFile creates a file relative to the app directory.
func (p Package) WriteFile(t testing.TB, rel, content string) {
	t.Helper()
	MustWriteFile(t, p.Path(rel), content)
}

// Mkdir creates a directory relative to the app directory.
func (p Package) Mkdir(t testing.TB, rel string) {
	t.Helper()
	MustMkdirAll(t, p.Path(rel))
}

// AddApp creates a sibling app directory, making the package ambiguous.
func (p Package) AddApp(t testing.TB, appName string) {
	t.Helper()
	MustMkdirAll(t, filepath.Join(filepath.Dir(p.AppPath), appName))
}

// WriteManifest marshals fields into wf_config.json.
func (p Package) WriteManifest(t testing.TB, fields map[string]any) {
	t.Helper()
	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("failed to encode manifest: %v", err)
	}
	p.WriteFile(t, "wf_config.json", string(data))
}

// ValidManifest returns manifest fields that pass every check for DemoApp
// with the route module demo/urls.py.
func ValidManifest() map[string]any {
	return map[string]any{
		"app": map[string]any{
			"name":    "Demo",
			"url":     "/katana/demo/",
			"include": "katana.wapps.demo.urls",
		},
		"version":                 "1.0.0",
		"warrior-compatibility":   "3.4.0:",
		"warrior-incompatibility": "",
	}
}
