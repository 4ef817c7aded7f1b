package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Compile-time check that YAMLDocument implements Document.
var _ Document = (*YAMLDocument)(nil)

// YAMLDocument writes a "commitizen:" mapping with keys in insertion order.
type YAMLDocument struct {
	path   string
	values values
}

func (d *YAMLDocument) Path() string { return d.path }

func (d *YAMLDocument) Kind() Kind { return KindYAML }

func (d *YAMLDocument) InitEmpty() error {
	d.values = values{}
	return nil
}

func (d *YAMLDocument) SetKey(key string, value any) error {
	return d.values.set(key, value)
}

func (d *YAMLDocument) Persist() error {
	data, err := d.render()
	if err != nil {
		return err
	}
	return writeFile(d.path, data)
}

func (d *YAMLDocument) render() ([]byte, error) {
	section := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range d.values.keys {
		var value yaml.Node
		if err := value.Encode(d.values.items[key]); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		section.Content = append(section.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&value,
		)
	}

	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: Section},
			section,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}
