// Package dictionary loads and serves the static hover documentation table.
package dictionary

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// EnvVar overrides the location of the hover docs file.
	EnvVar = "ALLOY_HOVER_DOCS"

	// DefaultPath is used when EnvVar is unset, relative to the working directory.
	DefaultPath = "docs/alloy-hover.toml"
)

// Dictionary is an immutable mapping from lookup key to markdown payload.
// It is built once at startup and never mutated afterwards.
type Dictionary struct {
	entries map[string]string
}

// DocsPath returns the hover docs location from the environment, or the default.
func DocsPath() string {
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}

	return DefaultPath
}

// Load reads a TOML file containing a flat string-to-string table.
// Read failures, malformed TOML, duplicate keys, and non-string values
// all surface as errors.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hover docs %s: %w", path, err)
	}

	var entries map[string]string
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hover docs %s: %w", path, err)
	}

	return &Dictionary{entries: entries}, nil
}

// FromMap builds a Dictionary from an existing table, copying the entries.
func FromMap(entries map[string]string) *Dictionary {
	copied := make(map[string]string, len(entries))
	for key, value := range entries {
		copied[key] = value
	}

	return &Dictionary{entries: copied}
}

// Lookup returns the payload for an exact, case-sensitive key match.
func (d *Dictionary) Lookup(key string) (string, bool) {
	payload, ok := d.entries[key]

	return payload, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
