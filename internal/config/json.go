package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Compile-time check that JSONDocument implements Document.
var _ Document = (*JSONDocument)(nil)

// JSONDocument writes {"commitizen": {...}} with keys in insertion order.
type JSONDocument struct {
	path   string
	values values
}

func (d *JSONDocument) Path() string { return d.path }

func (d *JSONDocument) Kind() Kind { return KindJSON }

func (d *JSONDocument) InitEmpty() error {
	d.values = values{}
	return nil
}

func (d *JSONDocument) SetKey(key string, value any) error {
	return d.values.set(key, value)
}

func (d *JSONDocument) Persist() error {
	data, err := d.render()
	if err != nil {
		return err
	}
	return writeFile(d.path, data)
}

func (d *JSONDocument) render() ([]byte, error) {
	// encoding/json sorts map keys, so the object is assembled by hand
	// from individually marshaled members.
	var compact bytes.Buffer
	compact.WriteString(`{"` + Section + `":{`)
	for i, key := range d.values.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %s: %w", key, err)
		}
		v, err := json.Marshal(d.values.items[key])
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		compact.Write(k)
		compact.WriteByte(':')
		compact.Write(v)
	}
	compact.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
