// Package e2e contains end-to-end tests that run the full init wizard
// against real (temporary) git repositories and project directories.
//
// Each test builds a purpose-made project, scripts the user's answers,
// runs the wizard, and asserts on the files left behind. This tests all
// layers together: git tags → prompts → configuration → pre-commit.
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/config"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/git"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/output"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/precommit"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/wizard"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

// script holds the answers a user gives to the wizard.
type script struct {
	configFile   string
	rule         string
	confirmTag   bool
	chosenTag    string
	confirmV     bool
	tagFormat    string
	hookTypes    []string
	promptTitles []string
}

func (s *script) prompter() *wizard.MockPrompter {
	return &wizard.MockPrompter{
		SelectFunc: func(title string, options []string, def string) (string, error) {
			s.promptTitles = append(s.promptTitles, title)
			switch {
			case strings.Contains(title, "config file"):
				return s.configFile, nil
			case strings.Contains(title, "commit rule"):
				if s.rule == "" {
					return def, nil
				}
				return s.rule, nil
			default:
				return s.chosenTag, nil
			}
		},
		ConfirmFunc: func(title string, _ bool) (bool, error) {
			s.promptTitles = append(s.promptTitles, title)
			if strings.HasSuffix(title, "the latest tag?") {
				return s.confirmTag, nil
			}
			return s.confirmV, nil
		},
		TextFunc: func(title string) (string, error) {
			s.promptTitles = append(s.promptTitles, title)
			return s.tagFormat, nil
		},
		MultiSelectFunc: func(title string, _ []wizard.Choice) ([]string, error) {
			s.promptTitles = append(s.promptTitles, title)
			return s.hookTypes, nil
		},
	}
}

// recordingInstaller records hook installs without running pre-commit.
type recordingInstaller struct {
	calls [][]string
	err   error
}

func (r *recordingInstaller) Install(_ context.Context, hookTypes []string) error {
	r.calls = append(r.calls, hookTypes)
	return r.err
}

// runWizard runs the wizard in dir, reading tags from the repository there
// when it is one.
func runWizard(t *testing.T, dir string, s *script, installer wizard.HookInstaller, revision string) (wizard.State, error) {
	t.Helper()

	tags := git.NewTagStore(nil)
	if repo, err := git.Open(dir); err == nil {
		tags = git.NewTagStore(repo)
	}

	w := &wizard.Wizard{
		Dir:          dir,
		Prompter:     s.prompter(),
		Tags:         tags,
		Printer:      output.NewPrinter(&strings.Builder{}, &strings.Builder{}),
		Installer:    installer,
		Log:          logr.Discard(),
		HookRevision: func(context.Context) string { return revision },
	}
	return w.Run(context.Background())
}

func readSection(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	section, ok, err := config.LoadSection(path, data)
	require.NoError(t, err)
	require.True(t, ok, "commitizen section missing from %s", path)
	return section
}

func hookEntries(t *testing.T, dir string) []precommit.Entry {
	t.Helper()
	doc, err := precommit.Load(filepath.Join(dir, precommit.ConfigFile))
	require.NoError(t, err)
	entries, err := doc.Entries()
	require.NoError(t, err)
	return entries
}
