// Package config creates and discovers commitizen configuration files.
//
// A configuration lives in one of a fixed set of files (see Files). New
// selects the document kind from the file name; every kind offers the same
// Document capability so callers never branch on the format again.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Section is the key that holds commitizen settings in JSON and YAML
// files, and the last component of the TOML table name.
const Section = "commitizen"

// Kind identifies the serialization format of a configuration file.
type Kind string

// Supported configuration kinds.
const (
	KindTOML Kind = "toml"
	KindJSON Kind = "json"
	KindYAML Kind = "yaml"
)

// Files lists the configuration files commitizen reads, in lookup order.
// The first entry is the default offered by the init wizard.
var Files = []string{
	"pyproject.toml",
	".cz.toml",
	".cz.json",
	"cz.json",
	".cz.yaml",
	"cz.yaml",
}

// ErrUnsupportedFormat is returned when a path does not name a TOML, JSON
// or YAML file.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Document is a commitizen configuration being written. Keys keep the
// order in which they were first set.
type Document interface {
	// Path returns the file the document persists to.
	Path() string

	// Kind returns the document's format. It never changes.
	Kind() Kind

	// InitEmpty prepares an empty commitizen section.
	InitEmpty() error

	// SetKey sets a key in the commitizen section.
	SetKey(key string, value any) error

	// Persist writes the document to Path.
	Persist() error
}

// KindOf returns the kind a path maps to.
func KindOf(path string) (Kind, error) {
	base := filepath.Base(path)
	switch {
	case strings.Contains(base, "toml"):
		return KindTOML, nil
	case strings.Contains(base, "json"):
		return KindJSON, nil
	case strings.Contains(base, "yaml"):
		return KindYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// New creates an empty, not yet initialised document for path.
func New(path string) (Document, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindTOML:
		return &TOMLDocument{path: path}, nil
	case KindJSON:
		return &JSONDocument{path: path}, nil
	default:
		return &YAMLDocument{path: path}, nil
	}
}

// values is an insertion-ordered key/value list.
type values struct {
	keys  []string
	items map[string]any
}

func (v *values) set(key string, value any) error {
	if key == "" {
		return errors.New("configuration key must not be empty")
	}
	if v.items == nil {
		v.items = make(map[string]any)
	}
	if _, ok := v.items[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.items[key] = value
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
