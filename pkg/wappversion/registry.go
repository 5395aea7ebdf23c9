// SPDX-License-Identifier: MPL-2.0

package wappversion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoCurrentVersion is returned when a registry has no current framework version.
	ErrNoCurrentVersion = errors.New("current framework version is not set")
	// ErrUnsupportedRegistryFormat is returned for registry files that are neither YAML nor TOML.
	ErrUnsupportedRegistryFormat = errors.New("unsupported registry file format")
)

type (
	// Registry exposes the host framework's running version and every
	// version it has ever released.
	Registry interface {
		Current() (*semver.Version, error)
		Known() ([]*semver.Version, error)
	}

	// StaticRegistry is a Registry backed by fixed values.
	StaticRegistry struct {
		current *semver.Version
		known   []*semver.Version
	}

	// registryDocument is the on-disk shape of a registry file:
	//
	//	current: 3.6.0
	//	versions: [3.4.0, 3.5.0, 3.6.0]
	registryDocument struct {
		Current  string   `yaml:"current" toml:"current"`
		Versions []string `yaml:"versions" toml:"versions"`
	}
)

// NewStaticRegistry builds a registry from a current version and the known
// version list. The current version is added to the known list if missing.
func NewStaticRegistry(current string, known []string) (*StaticRegistry, error) {
	if strings.TrimSpace(current) == "" {
		return nil, ErrNoCurrentVersion
	}
	cur, err := ParseVersion(current)
	if err != nil {
		return nil, fmt.Errorf("current version: %w", err)
	}
	versions, err := ParseVersions(known)
	if err != nil {
		return nil, fmt.Errorf("known versions: %w", err)
	}
	if !slices.ContainsFunc(versions, cur.Equal) {
		versions = normalize(append(versions, cur))
	}
	return &StaticRegistry{current: cur, known: versions}, nil
}

// LoadRegistryFile reads a registry document from a .yaml, .yml or .toml file.
func LoadRegistryFile(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	var doc registryDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedRegistryFormat, ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}

	reg, err := NewStaticRegistry(doc.Current, doc.Versions)
	if err != nil {
		return nil, fmt.Errorf("registry file %s: %w", path, err)
	}
	return reg, nil
}

// Current implements Registry.
func (r *StaticRegistry) Current() (*semver.Version, error) {
	return r.current, nil
}

// Known implements Registry. The returned slice is a copy, sorted ascending.
func (r *StaticRegistry) Known() ([]*semver.Version, error) {
	return slices.Clone(r.known), nil
}
