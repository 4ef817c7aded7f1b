// Package precommit registers commitizen with the pre-commit hook manager:
// it merges commitizen's repository entry into .pre-commit-config.yaml and
// runs "pre-commit install".
package precommit

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the pre-commit configuration file, relative to the
	// project root.
	ConfigFile = ".pre-commit-config.yaml"

	// ReposKey is the top-level key holding the list of hook repositories.
	ReposKey = "repos"

	// Identifier marks commitizen's own entry: any repository URL that
	// contains it counts as already registered.
	Identifier = "commitizen"

	// RepoURL is the canonical source of commitizen's hooks.
	RepoURL = "https://github.com/commitizen-tools/commitizen"
)

// Hook types offered by the init wizard.
const (
	HookTypeCommitMsg = "commit-msg"
	HookTypePrePush   = "pre-push"
)

// Hook is a single hook id and the stages it runs in.
type Hook struct {
	ID     string   `yaml:"id"`
	Stages []string `yaml:"stages,omitempty"`
}

// Entry is one repository in the pre-commit configuration.
type Entry struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev"`
	Hooks []Hook `yaml:"hooks"`
}

// CanonicalEntry returns commitizen's entry pinned at rev: the message
// check runs on commit-msg, the branch check on push.
func CanonicalEntry(rev string) Entry {
	return Entry{
		Repo: RepoURL,
		Rev:  rev,
		Hooks: []Hook{
			{ID: "commitizen"},
			{ID: "commitizen-branch", Stages: []string{HookTypePrePush}},
		},
	}
}

func (e Entry) node() (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(e); err != nil {
		return nil, fmt.Errorf("encoding hook entry: %w", err)
	}
	return &n, nil
}
