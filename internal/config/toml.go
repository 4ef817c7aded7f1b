package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

const tomlTable = "[tool." + Section + "]"

// Compile-time check that TOMLDocument implements Document.
var _ Document = (*TOMLDocument)(nil)

// TOMLDocument writes a [tool.commitizen] table. Content already present
// in the file (a pyproject.toml, typically) is kept byte for byte and the
// table is appended after it.
type TOMLDocument struct {
	path     string
	existing []byte
	values   values
}

func (d *TOMLDocument) Path() string { return d.path }

func (d *TOMLDocument) Kind() Kind { return KindTOML }

func (d *TOMLDocument) InitEmpty() error {
	data, err := os.ReadFile(d.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file: %w", err)
	}
	d.existing = data
	d.values = values{}
	return nil
}

func (d *TOMLDocument) SetKey(key string, value any) error {
	return d.values.set(key, value)
}

func (d *TOMLDocument) Persist() error {
	data, err := d.render()
	if err != nil {
		return err
	}
	return writeFile(d.path, data)
}

func (d *TOMLDocument) render() ([]byte, error) {
	var buf bytes.Buffer

	if len(d.existing) > 0 {
		buf.Write(d.existing)
		if !bytes.HasSuffix(d.existing, []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString(tomlTable + "\n")
	enc := toml.NewEncoder(&buf)
	for _, key := range d.values.keys {
		// One single-key map per value keeps insertion order.
		if err := enc.Encode(map[string]any{key: d.values.items[key]}); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
	}

	return buf.Bytes(), nil
}
