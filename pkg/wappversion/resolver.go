// SPDX-License-Identifier: MPL-2.0

package wappversion

import (
	"errors"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type (
	// Bounds is an inclusive version interval. A nil side is open.
	Bounds struct {
		Lower *semver.Version
		Upper *semver.Version
	}

	// Resolution is a range expression resolved against the known versions.
	Resolution struct {
		// Versions are the exact versions listed in the expression that the
		// registry knows about.
		Versions []*semver.Version
		// Bounds is nil when the expression has no bound item.
		Bounds *Bounds
		// Err collects everything that could not be resolved. A non-nil Err
		// does not discard Versions or Bounds.
		Err error
	}

	// Resolver turns a range expression into a Resolution.
	Resolver interface {
		Resolve(expr string, known []*semver.Version) Resolution
	}

	rangeResolver struct{}
)

// NewResolver returns the default range-expression resolver.
func NewResolver() Resolver {
	return rangeResolver{}
}

// Resolve implements Resolver.
func (rangeResolver) Resolve(expr string, known []*semver.Version) Resolution {
	var (
		res  Resolution
		errs []error
	)

	for item := range strings.SplitSeq(expr, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if strings.Contains(item, ":") {
			bounds, err := parseBounds(item)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if res.Bounds != nil {
				errs = append(errs, ErrDuplicateBounds)
				continue
			}
			res.Bounds = bounds
			continue
		}

		v, err := ParseVersion(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !slices.ContainsFunc(known, v.Equal) {
			errs = append(errs, &UnknownVersionError{Value: item})
			continue
		}
		res.Versions = append(res.Versions, v)
	}

	res.Err = errors.Join(errs...)
	return res
}

// Failed reports whether any part of the expression could not be resolved.
func (r Resolution) Failed() bool {
	return r.Err != nil
}

// Contains reports whether v is covered by the resolution.
func (r Resolution) Contains(v *semver.Version) bool {
	return InRange(v, r.Versions, r.Bounds)
}

// InRange reports whether v equals one of versions or lies inside bounds.
func InRange(v *semver.Version, versions []*semver.Version, bounds *Bounds) bool {
	if v == nil {
		return false
	}
	if slices.ContainsFunc(versions, v.Equal) {
		return true
	}
	return bounds.contains(v)
}

func (b *Bounds) contains(v *semver.Version) bool {
	if b == nil {
		return false
	}
	if b.Lower != nil && v.LessThan(b.Lower) {
		return false
	}
	if b.Upper != nil && v.GreaterThan(b.Upper) {
		return false
	}
	return true
}

func parseBounds(item string) (*Bounds, error) {
	item = strings.TrimSuffix(strings.TrimPrefix(item, "["), "]")
	lower, upper, _ := strings.Cut(item, ":")

	var (
		b   Bounds
		err error
	)
	if lower = strings.TrimSpace(lower); lower != "" {
		if b.Lower, err = ParseVersion(lower); err != nil {
			return nil, err
		}
	}
	if upper = strings.TrimSpace(upper); upper != "" {
		if b.Upper, err = ParseVersion(upper); err != nil {
			return nil, err
		}
	}
	return &b, nil
}
