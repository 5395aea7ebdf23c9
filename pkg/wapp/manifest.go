// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/invowk/wappcheck/pkg/cueutil"

	json "github.com/goccy/go-json"
)

const (
	// KeyApp is the manifest key holding the app descriptor.
	KeyApp = "app"
	// KeyVersion is the manifest key holding the app's own version.
	KeyVersion = "version"
	// KeyCompatibility holds the range of framework versions the app supports.
	KeyCompatibility = "warrior-compatibility"
	// KeyIncompatibility holds the range of framework versions the app rejects.
	KeyIncompatibility = "warrior-incompatibility"
	// KeyDatabase holds one database descriptor or a list of them.
	KeyDatabase = "database"
	// KeyPureDjango marks an app built against the newer framework API.
	KeyPureDjango = "pure_django"

	// AppKeyName, AppKeyURL and AppKeyInclude are the required app descriptor keys.
	AppKeyName    = "name"
	AppKeyURL     = "url"
	AppKeyInclude = "include"
)

var (
	//go:embed manifest_schema.cue
	manifestSchema string

	// MandatoryKeys lists the manifest keys every wapp must define, in the
	// order they are checked.
	MandatoryKeys = []string{KeyApp, KeyVersion, KeyCompatibility, KeyIncompatibility}

	// ErrManifestNotFound is returned by LoadManifest when the file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestFormat is the sentinel error wrapped by ManifestFormatError.
	ErrManifestFormat = errors.New("manifest is not in the correct format")
)

type (
	// ManifestFormatError is returned when wf_config.json cannot be parsed or
	// does not match the manifest schema.
	ManifestFormatError struct {
		Path string
		Err  error
	}

	// Manifest is a parsed wf_config.json. It is immutable after loading.
	Manifest struct {
		// Path is the file the manifest was loaded from.
		Path string
		raw  map[string]any
		// versionText is the literal JSON text of a numeric version, so
		// 1.0 is reported as written rather than as 1.
		versionText string
	}

	// AppDescriptor is the value of the manifest's "app" key.
	AppDescriptor map[string]any

	// DatabaseDescriptor is one entry of the manifest's "database" key.
	DatabaseDescriptor map[string]any
)

// Error implements the error interface.
func (e *ManifestFormatError) Error() string {
	return fmt.Sprintf("manifest %s is not in the correct format: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestFormat and the parse error, which is a
// *cueutil.ValidationError for schema and syntax problems.
func (e *ManifestFormatError) Unwrap() []error { return []error{ErrManifestFormat, e.Err} }

// LoadManifest reads and parses the wf_config.json at path.
// Returns ErrManifestNotFound if the file does not exist and a
// *ManifestFormatError if it is not valid.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("failed to read manifest at %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest content. path is only used in error messages.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	result, err := cueutil.ParseJSONAndDecode[map[string]any](
		[]byte(manifestSchema),
		data,
		"#Manifest",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, &ManifestFormatError{Path: path, Err: err}
	}
	m := &Manifest{Path: path, raw: *result.Value}
	if _, isString := m.raw[KeyVersion].(string); m.Has(KeyVersion) && !isString {
		m.versionText = numberLiteral(data)
	}
	return m, nil
}

// numberLiteral returns the JSON text of a numeric "version" value, or "".
func numberLiteral(data []byte) string {
	var doc struct {
		Version json.Number `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Version.String()
}

// Has reports whether the manifest defines key.
func (m *Manifest) Has(key string) bool {
	_, ok := m.raw[key]
	return ok
}

// MissingKeys returns the mandatory keys the manifest lacks, in check order.
func (m *Manifest) MissingKeys() []string {
	var missing []string
	for _, key := range MandatoryKeys {
		if !m.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// App returns the app descriptor, or nil if absent.
func (m *Manifest) App() AppDescriptor {
	app, _ := m.raw[KeyApp].(map[string]any)
	return app
}

// Version returns the app's own version as written in the manifest.
func (m *Manifest) Version() string {
	if m.versionText != "" {
		return m.versionText
	}
	return scalarString(m.raw[KeyVersion])
}

// Compatibility returns the warrior-compatibility range expression.
func (m *Manifest) Compatibility() string {
	return scalarString(m.raw[KeyCompatibility])
}

// Incompatibility returns the warrior-incompatibility range expression.
func (m *Manifest) Incompatibility() string {
	return scalarString(m.raw[KeyIncompatibility])
}

// PureDjango reports whether the app targets the newer framework API.
// Any JSON value that is truthy (true, non-zero number, non-empty string,
// list or object) counts.
func (m *Manifest) PureDjango() bool {
	return truthy(m.raw[KeyPureDjango])
}

// Databases returns the database descriptors in declaration order. A single
// object is returned as a one-element list. Elements that are not objects are
// returned as nil descriptors. ok is false when the manifest has no database key.
func (m *Manifest) Databases() (descriptors []DatabaseDescriptor, ok bool) {
	value, ok := m.raw[KeyDatabase]
	if !ok {
		return nil, false
	}
	switch db := value.(type) {
	case map[string]any:
		return []DatabaseDescriptor{db}, true
	case []any:
		descriptors = make([]DatabaseDescriptor, 0, len(db))
		for _, item := range db {
			d, _ := item.(map[string]any)
			descriptors = append(descriptors, d)
		}
		return descriptors, true
	default:
		return []DatabaseDescriptor{nil}, true
	}
}

// Missing returns the first required app key that is absent, or "".
func (a AppDescriptor) Missing() string {
	for _, key := range []string{AppKeyName, AppKeyURL, AppKeyInclude} {
		if _, ok := a[key]; !ok {
			return key
		}
	}
	return ""
}

// Name returns the app's display name.
func (a AppDescriptor) Name() string { return scalarString(a[AppKeyName]) }

// URL returns the mount point the app's routes are included under.
func (a AppDescriptor) URL() string { return scalarString(a[AppKeyURL]) }

// Include returns the dotted module path of the app's routing module.
func (a AppDescriptor) Include() string { return scalarString(a[AppKeyInclude]) }

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
