// SPDX-License-Identifier: MPL-2.0

package wappversion

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrUnknownVersion is the sentinel error wrapped by UnknownVersionError.
	ErrUnknownVersion = errors.New("unknown version")
	// ErrDuplicateBounds is returned when a range expression contains more than one bound item.
	ErrDuplicateBounds = errors.New("range expression has more than one bound")
)

type (
	// InvalidVersionError is returned when a string is not a semantic version.
	InvalidVersionError struct {
		Value string
		Err   error
	}

	// UnknownVersionError is returned when a range expression names an exact
	// version the registry does not know about.
	UnknownVersionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// Error implements the error interface.
func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("version %q is not a known framework version", e.Value)
}

// Unwrap returns ErrUnknownVersion so callers can use errors.Is for programmatic detection.
func (e *UnknownVersionError) Unwrap() error { return ErrUnknownVersion }

// ParseVersion parses a semantic version, accepting a leading "v" and
// missing minor/patch components.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, &InvalidVersionError{Value: s, Err: err}
	}
	return v, nil
}

// ParseVersions parses every entry of list, de-duplicates equal versions and
// returns them sorted ascending.
func ParseVersions(list []string) ([]*semver.Version, error) {
	out := make([]*semver.Version, 0, len(list))
	for _, s := range list {
		v, err := ParseVersion(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return normalize(out), nil
}

func normalize(versions []*semver.Version) []*semver.Version {
	slices.SortFunc(versions, func(a, b *semver.Version) int { return a.Compare(b) })
	return slices.CompactFunc(versions, func(a, b *semver.Version) bool { return a.Equal(b) })
}
