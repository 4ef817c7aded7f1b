// Package rules is the registry of commit rules a project can be
// configured with. A rule is looked up by the name stored in the
// configuration's "name" key.
package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/huh"
)

// Default is the rule offered first by the init wizard and used to style
// prompts when no configuration names one.
const Default = "cz_conventional_commits"

// Rule is a commit convention. Message validation lives elsewhere; the
// registry only needs what the init wizard uses.
type Rule interface {
	// Name is the identifier written to the configuration.
	Name() string

	// Theme styles interactive prompts shown while this rule is active.
	Theme() *huh.Theme
}

type builtin struct {
	name  string
	theme func() *huh.Theme
}

func (b builtin) Name() string      { return b.name }
func (b builtin) Theme() *huh.Theme { return b.theme() }

var (
	mu       sync.RWMutex
	registry = map[string]Rule{}
)

func init() {
	Register(builtin{name: Default, theme: huh.ThemeCharm})
	Register(builtin{name: "cz_jira", theme: huh.ThemeBase16})
	Register(builtin{name: "cz_customize", theme: huh.ThemeBase})
}

// Register adds a rule, replacing any rule with the same name.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name()] = r
}

// Get returns the rule registered under name.
func Get(name string) (Rule, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown commit rule %q", name)
	}
	return r, nil
}

// Names returns the registered rule names with Default first and the rest
// sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		if name != Default {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if _, ok := registry[Default]; ok {
		names = append([]string{Default}, names...)
	}
	return names
}

// ThemeFor returns the prompt theme of the named rule, falling back to
// the default rule when name is empty or unknown.
func ThemeFor(name string) *huh.Theme {
	if name != "" {
		if r, err := Get(name); err == nil {
			return r.Theme()
		}
	}
	if r, err := Get(Default); err == nil {
		return r.Theme()
	}
	return huh.ThemeCharm()
}
