package precommit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// State describes what was found on disk before merging.
type State int

const (
	// StateAbsent means the file does not exist.
	StateAbsent State = iota
	// StateEmpty means the file exists but holds no data.
	StateEmpty
	// StatePopulated means the file holds a mapping.
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Document is a pre-commit configuration held as a YAML node tree, so
// keys, ordering and comments that the merge does not touch survive a
// round trip.
type Document struct {
	State State
	root  *yaml.Node // document node; nil unless populated
}

// Load reads the configuration at path. A missing file is not an error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Document{State: StateAbsent}, nil
		}
		return nil, fmt.Errorf("reading pre-commit config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration content. Blank, comment-only and null
// documents are empty. Any root other than a mapping is rejected rather
// than overwritten, and so is a stream of more than one document.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{State: StateEmpty}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{State: StateEmpty}, nil
		}
		return nil, fmt.Errorf("parsing pre-commit config: %w", err)
	}
	var next yaml.Node
	switch err := dec.Decode(&next); {
	case err == nil:
		return nil, errors.New("parsing pre-commit config: expected a single document, found more")
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("parsing pre-commit config: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return &Document{State: StateEmpty}, nil
	}

	top := root.Content[0]
	switch {
	case top.Kind == yaml.MappingNode:
		return &Document{State: StatePopulated, root: &root}, nil
	case isNull(top):
		return &Document{State: StateEmpty}, nil
	default:
		return nil, fmt.Errorf("parsing pre-commit config: top level must be a mapping, got %s", kindName(top.Kind))
	}
}

// Entries decodes the repository list. Fields other than repo, rev and
// hooks are not reported.
func (d *Document) Entries() ([]Entry, error) {
	repos := d.lookup(ReposKey)
	if repos == nil || isNull(repos) {
		return nil, nil
	}
	var entries []Entry
	if err := repos.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ReposKey, err)
	}
	return entries, nil
}

// Bytes serializes the document with two-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	if d.root == nil {
		return nil, nil
	}
	root := cloneNode(d.root)
	untagMergeKeys(root)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding pre-commit config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding pre-commit config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the whole document to path.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing pre-commit config: %w", err)
	}
	return nil
}

func (d *Document) mapping() *yaml.Node {
	if d.root == nil || len(d.root.Content) == 0 {
		return nil
	}
	return d.root.Content[0]
}

func (d *Document) lookup(key string) *yaml.Node {
	return mappingValue(d.mapping(), key)
}

func (d *Document) clone() *Document {
	return &Document{State: d.State, root: cloneNode(d.root)}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child)
		}
	}
	// Alias targets still point into the source tree; the encoder only
	// reads the anchor name.
	return &c
}

// untagMergeKeys drops the resolved !!merge tag from "<<" keys so they are
// written back plain instead of as "!!merge <<".
func untagMergeKeys(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				k.Tag = ""
			}
		}
	}
	for _, child := range n.Content {
		untagMergeKeys(child)
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
