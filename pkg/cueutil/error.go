// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FieldIssue is one problem reported by CUE, located by a JSON path such
	// as "app.include" or "database[1]". Path is empty for syntax errors.
	FieldIssue struct {
		Path    string
		Message string
	}

	// ValidationError collects the issues CUE reported for one file.
	ValidationError struct {
		File   string
		Issues []FieldIssue
		cause  error
	}

	// FileTooLargeError reports input rejected before parsing.
	FileTooLargeError struct {
		File string
		Size int64
		Max  int64
	}
)

// Error renders a single issue inline and several as an indented list.
func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			lines = append(lines, is.Message)
			continue
		}
		lines = append(lines, is.Path+": "+is.Message)
	}

	switch len(lines) {
	case 0:
		return fmt.Sprintf("%s: %v", e.File, e.cause)
	case 1:
		return e.File + ": " + lines[0]
	default:
		return e.File + ": validation failed:\n  " + strings.Join(lines, "\n  ")
	}
}

// Unwrap returns the underlying CUE error.
func (e *ValidationError) Unwrap() error { return e.cause }

// Paths returns the JSON path of every issue that has one.
func (e *ValidationError) Paths() []string {
	var paths []string
	for _, is := range e.Issues {
		if is.Path != "" {
			paths = append(paths, is.Path)
		}
	}
	return paths
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.File, e.Size, e.Max)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts a CUE error into a *ValidationError naming the file
// and the JSON path of each offending value, e.g.
//
//	wf_config.json: app.include: conflicting values 3 and string (mismatched types int and string)
//
// nil stays nil.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	verr := &ValidationError{File: file, cause: err}
	for _, e := range cueerrors.Errors(err) {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path in the message.
		if path != "" {
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		verr.Issues = append(verr.Issues, FieldIssue{Path: path, Message: msg})
	}
	return verr
}

// formatPath joins CUE path selectors in JSON-path notation: list indices
// become "[n]", everything else is dot separated.
func formatPath(selectors []string) string {
	var b strings.Builder
	for i, sel := range selectors {
		if _, err := strconv.Atoi(sel); err == nil && i > 0 {
			b.WriteString("[" + sel + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sel)
	}
	return b.String()
}

// CheckFileSize returns a *FileTooLargeError when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, file string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{File: file, Size: size, Max: maxSize}
	}
	return nil
}
