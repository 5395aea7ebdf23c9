// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/invowk/wappcheck/pkg/wappversion"

	"github.com/charmbracelet/log"
)

type (
	// Validator checks one installation package. Build it with New, call
	// IsValid, then discard it.
	Validator struct {
		root         string
		appName      string
		appPath      string
		manifestPath string
		manifest     *Manifest
		manifestErr  error
		djangoBased  bool

		registry      wappversion.Registry
		resolver      wappversion.Resolver
		logger        *log.Logger
		frameworkName string
	}

	// Option configures a Validator.
	Option func(*Validator)
)

// WithLogger sets the sink failures are reported to. By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithResolver replaces the range-expression resolver.
func WithResolver(resolver wappversion.Resolver) Option {
	return func(v *Validator) {
		if resolver != nil {
			v.resolver = resolver
		}
	}
}

// WithFrameworkName sets the host framework name used in incompatibility messages.
func WithFrameworkName(name string) Option {
	return func(v *Validator) {
		if name != "" {
			v.frameworkName = name
		}
	}
}

// New prepares a Validator for the installation package rooted at root.
// It locates the single app directory and loads its manifest. A missing or
// malformed manifest is not an error here; IsValid reports it.
func New(root string, registry wappversion.Registry, opts ...Option) (*Validator, error) {
	if registry == nil {
		return nil, errors.New("wapp: nil version registry")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	appName, err := FindAppName(absRoot)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		root:          absRoot,
		appName:       appName,
		appPath:       filepath.Join(AppsDir(absRoot), appName),
		registry:      registry,
		resolver:      wappversion.NewResolver(),
		logger:        log.New(io.Discard),
		frameworkName: DefaultFrameworkName,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.manifestPath = filepath.Join(v.appPath, ManifestFileName)
	v.manifest, v.manifestErr = LoadManifest(v.manifestPath)
	if v.manifest != nil {
		v.djangoBased = v.manifest.PureDjango()
	}

	return v, nil
}

// FindAppName returns the name of the only directory inside the package's
// app directory container.
func FindAppName(root string) (string, error) {
	dir := AppsDir(root)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &AppDirectoryError{Dir: dir}
		}
		return "", fmt.Errorf("failed to list app directories in %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if isDir(filepath.Join(dir, entry.Name()), entry) {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Strings(candidates)

	if len(candidates) != 1 {
		return "", &AppDirectoryError{Dir: dir, Candidates: candidates}
	}
	return candidates[0], nil
}

// AppsDir returns the app directory container of the package rooted at root.
func AppsDir(root string) string {
	return filepath.Join(append([]string{root}, AppsDirSegments...)...)
}

// AppName returns the name of the app directory.
func (v *Validator) AppName() string { return v.appName }

// AppPath returns the absolute path to the app directory.
func (v *Validator) AppPath() string { return v.appPath }

// ManifestPath returns the absolute path to wf_config.json.
func (v *Validator) ManifestPath() string { return v.manifestPath }

// Manifest returns the loaded manifest, or nil if it was missing or malformed.
func (v *Validator) Manifest() *Manifest { return v.manifest }

// ManifestErr returns why the manifest could not be loaded, if it could not.
func (v *Validator) ManifestErr() error { return v.manifestErr }

// DjangoBased reports whether the app targets the newer framework API.
func (v *Validator) DjangoBased() bool { return v.djangoBased }

// IsValid runs the validation pipeline and returns the first failure, or a
// passing result carrying the app's route inclusion.
func (v *Validator) IsValid() ValidationResult {
	if _, err := os.Stat(v.manifestPath); err != nil {
		return v.fail("manifest", Fail(FailureManifestMissing, MsgManifestMissing), "error", err)
	}

	if v.manifest == nil {
		return v.fail("manifest", Fail(FailureManifestFormat, MsgManifestFormat), "error", v.manifestErr)
	}

	if missing := v.manifest.MissingKeys(); len(missing) > 0 {
		return v.fail("manifest", Fail(FailureManifestFormat, MsgManifestFormat), "missing", missing[0])
	}

	route, result := v.checkApp(v.manifest.App())
	if !result.Status {
		return result
	}

	if result = v.checkCompatibility(v.manifest); !result.Status {
		return result
	}

	if descriptors, ok := v.manifest.Databases(); ok {
		for i, db := range descriptors {
			if result = v.checkDatabase(i, db); !result.Status {
				return result
			}
		}
	}

	if result = v.checkStatic(); !result.Status {
		return result
	}

	result.Route = &route
	return result
}

// fail logs a failed result and returns it unchanged.
func (v *Validator) fail(check string, result ValidationResult, keyvals ...any) ValidationResult {
	v.logger.Error(result.Message, append([]any{"app", v.appName, "check", check}, keyvals...)...)
	return result
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
