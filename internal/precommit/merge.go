package precommit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Merge returns a copy of doc in which entry is registered exactly once.
// When an entry whose repo contains Identifier is already listed, the
// copy is left as it was and found is true; the existing revision is not
// updated. Otherwise entry is appended after all other repositories, or a
// repos list holding only entry is created. doc itself is never modified.
func Merge(doc *Document, entry Entry) (merged *Document, found bool, err error) {
	entryNode, err := entry.node()
	if err != nil {
		return nil, false, err
	}

	if doc == nil || doc.State != StatePopulated {
		return newDocument(entryNode), false, nil
	}

	out := doc.clone()
	top := out.mapping()
	repos := mappingValue(top, ReposKey)

	switch {
	case repos == nil:
		top.Content = append(top.Content, scalarNode(ReposKey), sequenceNode(entryNode))
		return out, false, nil
	case isNull(repos):
		*repos = *sequenceNode(entryNode)
		return out, false, nil
	case repos.Kind != yaml.SequenceNode:
		return nil, false, fmt.Errorf("%s must be a list, got %s", ReposKey, kindName(repos.Kind))
	}

	for _, item := range repos.Content {
		repo := mappingValue(item, "repo")
		if repo != nil && repo.Kind == yaml.ScalarNode && strings.Contains(repo.Value, Identifier) {
			return out, true, nil
		}
	}

	repos.Content = append(repos.Content, entryNode)
	return out, false, nil
}

func newDocument(entryNode *yaml.Node) *Document {
	top := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalarNode(ReposKey), sequenceNode(entryNode)},
	}
	return &Document{
		State: StatePopulated,
		root:  &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}},
	}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequenceNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// Register merges entry into the pre-commit configuration at path and
// writes it back. A file that already lists commitizen is left untouched
// and found is true.
func Register(path string, entry Entry) (state State, found bool, err error) {
	doc, err := Load(path)
	if err != nil {
		return 0, false, err
	}

	merged, found, err := Merge(doc, entry)
	if err != nil {
		return doc.State, false, err
	}
	if found {
		return doc.State, true, nil
	}
	return doc.State, false, merged.Save(path)
}
