package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings is the part of an existing configuration the init wizard reads.
type Settings struct {
	// Path is the file the configuration was found in.
	Path string
}

// Discover returns the first file in dir, following Files order, that
// holds a commitizen section. A pyproject.toml without [tool.commitizen]
// does not count. The boolean is false when no configuration exists.
func Discover(dir string) (*Settings, bool, error) {
	for _, name := range Files {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, false, fmt.Errorf("reading config file: %w", err)
		}

		_, ok, err := LoadSection(path, data)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}

		return &Settings{Path: path}, true, nil
	}
	return nil, false, nil
}

// LoadSection parses the commitizen section out of raw file content. The
// boolean reports whether the section is present at all.
func LoadSection(path string, data []byte) (map[string]any, bool, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, false, err
	}

	switch kind {
	case KindTOML:
		var raw struct {
			Tool struct {
				Commitizen map[string]any `toml:"commitizen"`
			} `toml:"tool"`
		}
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, false, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if !md.IsDefined("tool", Section) {
			return nil, false, nil
		}
		return nonNil(raw.Tool.Commitizen), true, nil

	case KindJSON:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, false, fmt.Errorf("parsing config %s: %w", path, err)
		}
		msg, ok := raw[Section]
		if !ok {
			return nil, false, nil
		}
		var section map[string]any
		if err := json.Unmarshal(msg, &section); err != nil {
			return nil, false, fmt.Errorf("parsing config %s: %w", path, err)
		}
		return nonNil(section), true, nil

	default:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, false, fmt.Errorf("parsing config %s: %w", path, err)
		}
		value, ok := raw[Section]
		if !ok {
			return nil, false, nil
		}
		section, _ := value.(map[string]any)
		return nonNil(section), true, nil
	}
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
