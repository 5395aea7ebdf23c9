// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// checkStatic validates the layout of the optional static/ directory:
// no loose files at its top level, a sub-directory named after the app, and
// (for legacy apps only) every script under static/<app>/js.
func (v *Validator) checkStatic() ValidationResult {
	staticDir := filepath.Join(v.appPath, StaticDirName)
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return Pass()
	}

	entries, err := os.ReadDir(staticDir)
	if err != nil {
		return v.fail("static", Fail(FailureStaticLayout, MsgStaticLayout), "error", err)
	}
	for _, entry := range entries {
		if !isDir(filepath.Join(staticDir, entry.Name()), entry) {
			return v.fail("static", Fail(FailureStaticLayout, MsgStaticLayout), "file", entry.Name())
		}
	}

	appStatic := filepath.Join(staticDir, v.appName)
	if info, err := os.Stat(appStatic); err != nil || !info.IsDir() {
		return v.fail("static", Fail(FailureStaticLayout, MsgStaticLayout), "missing", filepath.Join(StaticDirName, v.appName))
	}

	scripts, err := findScripts(appStatic)
	if err != nil {
		return v.fail("static", Fail(FailureStaticLayout, MsgStaticLayout), "error", err)
	}

	if v.djangoBased {
		return Pass()
	}

	var misplaced []string
	for _, script := range scripts {
		if !inScriptDir(appStatic, script) {
			misplaced = append(misplaced, script)
		}
	}
	if len(misplaced) > 0 {
		msg := "A .js file cannot be outside the 'js' folder. List of files in non-compliance: " + strings.Join(misplaced, ", ")
		return v.fail("static", Fail(FailureStaticLayout, msg), "count", len(misplaced))
	}
	return Pass()
}

// findScripts returns every script file beneath dir in lexical walk order.
// dir itself may be a symlink; the returned paths stay rooted at dir.
func findScripts(dir string) ([]string, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}

	var scripts []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ScriptExt) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		scripts = append(scripts, filepath.Join(dir, rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scripts, nil
}

// inScriptDir reports whether script lives under <appStatic>/js.
func inScriptDir(appStatic, script string) bool {
	rel, err := filepath.Rel(appStatic, script)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first == ScriptDirName
}
