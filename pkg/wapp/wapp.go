// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ManifestFileName is the manifest file at the root of every app directory.
	ManifestFileName = "wf_config.json"

	// StaticDirName is the optional asset directory under the app root.
	StaticDirName = "static"
	// ScriptDirName is the directory legacy apps must keep their scripts in.
	ScriptDirName = "js"
	// ScriptExt is the extension of front-end script files.
	ScriptExt = ".js"
	// RouteModuleExt is the extension of the routing module named by app.include.
	RouteModuleExt = ".py"
	// includePrefixSegments is the number of leading app.include segments
	// that name the app's own package rather than a path inside it.
	includePrefixSegments = 2

	// DefaultFrameworkName is used in incompatibility messages.
	DefaultFrameworkName = "WarriorFramework"

	// MsgManifestMissing is reported when wf_config.json does not exist.
	MsgManifestMissing = "wf_config.json does not exist."
	// MsgManifestFormat is reported for any malformed manifest content.
	MsgManifestFormat = "wf_config.json is not in the correct format."
	// MsgCompatibleUnverified is reported when the compatibility range cannot be resolved.
	MsgCompatibleUnverified = "Compatible versions could not be verified."
	// MsgIncompatibleUnverified is reported when the incompatibility range cannot be resolved.
	MsgIncompatibleUnverified = "Incompatible versions could not be verified."
	// MsgStaticLayout is reported when static/ does not follow the required layout.
	MsgStaticLayout = "static directory does not follow the required directory structure."

	// FailureManifestMissing through FailureStaticLayout classify failed results.
	FailureManifestMissing FailureKind = "manifest_missing"
	FailureManifestFormat  FailureKind = "manifest_format"
	FailureRouteModule     FailureKind = "route_module"
	FailureCompatibility   FailureKind = "compatibility"
	FailureDatabase        FailureKind = "database"
	FailureStaticLayout    FailureKind = "static_layout"
)

// AppsDirSegments is the location of the app directory container relative to
// the installation package root.
var AppsDirSegments = []string{"warriorframework_py3", "katana", "katana.wapps"}

var (
	// ErrNoAppDirectory is returned when the package has no app directory.
	ErrNoAppDirectory = errors.New("no app directory found")
	// ErrMultipleAppDirectories is returned when the package has more than one app directory.
	ErrMultipleAppDirectories = errors.New("multiple app directories found")
)

type (
	// FailureKind classifies why a validation failed.
	FailureKind string

	// RouteInclusion is the routing entry the host framework registers for an
	// app: its url patterns mounted at MountPath, taken from Module.
	RouteInclusion struct {
		MountPath string `json:"mount_path"`
		Module    string `json:"module"`
	}

	// ValidationResult is the outcome of a validation run or a single check.
	// A failed result always carries a non-empty Message; a passing one never does.
	ValidationResult struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Kind    FailureKind `json:"kind,omitempty"`
		// Route is set on a passing IsValid result.
		Route *RouteInclusion `json:"route,omitempty"`
	}

	// AppDirectoryError is returned when the app directory container does not
	// hold exactly one directory. It wraps ErrNoAppDirectory or
	// ErrMultipleAppDirectories.
	AppDirectoryError struct {
		Dir        string
		Candidates []string
	}
)

// Pass returns a passing result.
func Pass() ValidationResult {
	return ValidationResult{Status: true}
}

// Fail returns a failed result of the given kind.
func Fail(kind FailureKind, message string) ValidationResult {
	return ValidationResult{Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *AppDirectoryError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no app directory found in %s", e.Dir)
	}
	return fmt.Sprintf("expected exactly one app directory in %s, found %d: %s",
		e.Dir, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Unwrap returns ErrNoAppDirectory or ErrMultipleAppDirectories.
func (e *AppDirectoryError) Unwrap() error {
	if len(e.Candidates) == 0 {
		return ErrNoAppDirectory
	}
	return ErrMultipleAppDirectories
}
