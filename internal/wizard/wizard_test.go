package wizard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/config"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/precommit"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/rules"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeInstaller builds a precommit.Installer that records invocations.
func fakeInstaller(found bool, res precommit.Result, calls *[]call) *precommit.Installer {
	return &precommit.Installer{
		LookPath: func(file string) (string, error) {
			if !found {
				return "", errors.New("executable file not found in $PATH")
			}
			return "/usr/bin/" + file, nil
		},
		Run: func(_ context.Context, name string, args ...string) (precommit.Result, error) {
			*calls = append(*calls, call{name: name, args: args})
			return res, nil
		},
	}
}

// answering returns a MockPrompter that picks path and rule, confirms the
// latest tag when confirmTag is set, and selects hookTypes.
func answering(path string, confirmTag bool, format string, hookTypes []string) *MockPrompter {
	return &MockPrompter{
		SelectFunc: func(title string, options []string, def string) (string, error) {
			switch {
			case strings.HasPrefix(title, "Please choose a supported config file"):
				return path, nil
			case strings.HasPrefix(title, "Please choose a cz"):
				return def, nil
			}
			return "", nil
		},
		ConfirmFunc: func(title string, def bool) (bool, error) {
			if strings.HasSuffix(title, "the latest tag?") {
				return confirmTag, nil
			}
			return def, nil
		},
		TextFunc: func(string) (string, error) { return format, nil },
		MultiSelectFunc: func(_ string, _ []Choice) ([]string, error) {
			return hookTypes, nil
		},
	}
}

func newWizard(t *testing.T, p Prompter, tags TagSource, installer HookInstaller) (*Wizard, *recordingPrinter) {
	t.Helper()
	out := &recordingPrinter{}
	return &Wizard{
		Dir:          t.TempDir(),
		Prompter:     p,
		Tags:         tags,
		Printer:      out,
		Installer:    installer,
		Log:          logr.Discard(),
		HookRevision: func(context.Context) string { return "v4.1.0" },
	}, out
}

func readSection(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	section, ok, err := config.LoadSection(path, data)
	require.NoError(t, err)
	require.True(t, ok)
	return section
}

func TestRun_ExistingConfigShortCircuits(t *testing.T) {
	w, out := newWizard(t, failOnPrompt(), staticTags{}, nil)
	path := filepath.Join(w.Dir, ".cz.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"commitizen": {"name": "cz_jira"}}`), 0o644))

	state, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateAborted, state)
	require.Equal(t, []string{"Config file " + path + " already exists"}, out.texts("line"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"commitizen": {"name": "cz_jira"}}`, string(data))
}

func TestRun_NoTagsNoHooks(t *testing.T) {
	w, out := newWizard(t, answering(".cz.toml", false, "", nil), staticTags{}, nil)

	state, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateDone, state)
	require.Equal(t, StateDone, w.State())

	section := readSection(t, filepath.Join(w.Dir, ".cz.toml"))
	require.Equal(t, rules.Default, section["name"])
	require.Equal(t, "0.0.1", section["version"])
	require.Equal(t, "$version", section["tag_format"])

	require.NoFileExists(t, filepath.Join(w.Dir, precommit.ConfigFile))
	require.Equal(t, []string{"cz bump --changelog"}, out.texts("info"))
	require.Equal(t, []string{"The configuration are all set."}, out.texts("success"))
}

func TestRun_ConfirmedVTag(t *testing.T) {
	tags := staticTags{latest: "v2.3.0", all: []string{"v2.3.0"}}
	w, _ := newWizard(t, answering("cz.yaml", true, "", nil), tags, nil)

	state, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateDone, state)

	section := readSection(t, filepath.Join(w.Dir, "cz.yaml"))
	require.Equal(t, "2.3.0", section["version"])
	require.Equal(t, "v$version", section["tag_format"])
}

func TestRun_PyprojectKeepsExistingContent(t *testing.T) {
	w, _ := newWizard(t, answering("pyproject.toml", false, "", nil), staticTags{}, nil)
	path := filepath.Join(w.Dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte("[project]\nname = \"demo\"\n"), 0o644))

	_, err := w.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "[project]\nname = \"demo\"\n"))
	require.Equal(t, "0.0.1", readSection(t, path)["version"])
}

func TestRun_PreReleaseTags(t *testing.T) {
	tests := []struct {
		tag         string
		wantVersion string
		wantFormat  string
	}{
		{"1.2.0rc1", "1.2.0rc1", "$version"},
		{"v1.0.0a0", "1.0.0a0", "v$version"},
		{"1.2.3.dev1", "1.2.3.dev1", "$version"},
		{"1.2.3.post2", "1.2.3.post2", "$version"},
		{"1.0.0-beta.1", "1.0.0b1", "$version"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			tags := staticTags{latest: tt.tag, all: []string{tt.tag}}
			w, _ := newWizard(t, answering(".cz.json", true, "", nil), tags, nil)

			state, err := w.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, StateDone, state)

			section := readSection(t, filepath.Join(w.Dir, ".cz.json"))
			require.Equal(t, tt.wantVersion, section["version"])
			require.Equal(t, tt.wantFormat, section["tag_format"])
		})
	}
}

func TestRun_MalformedTagWritesNothing(t *testing.T) {
	for _, tag := range []string{"release-candidate", "1.2.3-!!", "1.2.3-"} {
		t.Run(tag, func(t *testing.T) {
			tags := staticTags{latest: tag, all: []string{tag}}
			w, _ := newWizard(t, answering(".cz.json", true, "", nil), tags, nil)

			state, err := w.Run(context.Background())
			require.Error(t, err)
			require.Equal(t, StateAborted, state)
			require.NoFileExists(t, filepath.Join(w.Dir, ".cz.json"))
		})
	}
}

func TestRun_TagRequired(t *testing.T) {
	p := answering(".cz.json", false, "", nil)
	tags := staticTags{latest: "v1.0.0", all: []string{"v1.0.0"}}
	w, _ := newWizard(t, p, tags, nil)

	state, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrTagRequired)
	require.Equal(t, StateAborted, state)
}

func TestRun_NoConfigPathAnswer(t *testing.T) {
	w, _ := newWizard(t, &MockPrompter{}, staticTags{}, nil)

	state, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrNoAnswer)
	require.Equal(t, StateAborted, state)
}

func TestRun_InstallsHooksIntoAbsentFile(t *testing.T) {
	var calls []call
	installer := fakeInstaller(true, precommit.Result{}, &calls)
	hookTypes := []string{precommit.HookTypeCommitMsg, precommit.HookTypePrePush}
	w, out := newWizard(t, answering(".cz.toml", false, "", hookTypes), staticTags{}, installer)

	state, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateDone, state)

	doc, err := precommit.Load(filepath.Join(w.Dir, precommit.ConfigFile))
	require.NoError(t, err)
	entries, err := doc.Entries()
	require.NoError(t, err)
	require.Equal(t, []precommit.Entry{precommit.CanonicalEntry("v4.1.0")}, entries)

	require.Len(t, calls, 1)
	require.Equal(t, "/usr/bin/pre-commit", calls[0].name)
	require.Equal(t, []string{"install", "--hook-type", "commit-msg", "--hook-type", "pre-push"}, calls[0].args)
	require.Contains(t, out.texts("line"), "commitizen pre-commit hook is now installed in your '.git'")
}

func TestRun_ExistingHookEntryStillInstalls(t *testing.T) {
	var calls []call
	installer := fakeInstaller(true, precommit.Result{}, &calls)
	w, out := newWizard(t, answering(".cz.toml", false, "", []string{precommit.HookTypeCommitMsg}), staticTags{}, installer)

	original := `# shared hooks
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: trailing-whitespace
  - repo: https://github.com/commitizen-tools/commitizen
    rev: v3.0.0
    hooks:
      - id: commitizen
`
	path := filepath.Join(w.Dir, precommit.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	_, err := w.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, string(data))
	require.Contains(t, out.texts("line"), "commitizen already in pre-commit config")
	require.Len(t, calls, 1)
}

func TestRun_HookManagerNotInstalled(t *testing.T) {
	var calls []call
	installer := fakeInstaller(false, precommit.Result{}, &calls)
	w, out := newWizard(t, answering(".cz.toml", false, "", []string{precommit.HookTypeCommitMsg}), staticTags{}, installer)

	state, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrInitFailed)
	require.ErrorIs(t, err, precommit.ErrHookManagerNotInstalled)
	require.Equal(t, StateAborted, state)
	require.Empty(t, calls)
	require.Equal(t, []string{"pre-commit is not installed in current environment."}, out.texts("error"))

	// The configuration and the hook file are kept.
	require.FileExists(t, filepath.Join(w.Dir, ".cz.toml"))
	require.FileExists(t, filepath.Join(w.Dir, precommit.ConfigFile))
}

func TestRun_HookInstallFails(t *testing.T) {
	var calls []call
	res := precommit.Result{ExitCode: 1, Stdout: "some output", Stderr: "not a git repository"}
	installer := fakeInstaller(true, res, &calls)
	w, out := newWizard(t, answering(".cz.toml", false, "", []string{precommit.HookTypePrePush}), staticTags{}, installer)

	state, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrInitFailed)
	require.Equal(t, StateAborted, state)

	var invocationErr *precommit.InvocationError
	require.ErrorAs(t, err, &invocationErr)
	require.Equal(t, []string{
		"Error running pre-commit install --hook-type pre-push. Outputs are attached below:",
		"stdout: some output",
		"stderr: not a git repository",
	}, out.texts("error"))
}

func TestRun_MalformedHookFile(t *testing.T) {
	var calls []call
	installer := fakeInstaller(true, precommit.Result{}, &calls)
	w, _ := newWizard(t, answering(".cz.toml", false, "", []string{precommit.HookTypeCommitMsg}), staticTags{}, installer)
	path := filepath.Join(w.Dir, precommit.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("repos: [unclosed\n"), 0o644))

	_, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrInitFailed)
	require.Empty(t, calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "repos: [unclosed\n", string(data))
}

func TestRun_DefaultHookRevision(t *testing.T) {
	var calls []call
	installer := fakeInstaller(true, precommit.Result{}, &calls)
	w, _ := newWizard(t, answering(".cz.toml", false, "", []string{precommit.HookTypeCommitMsg}), staticTags{}, installer)
	w.HookRevision = nil

	_, err := w.Run(context.Background())
	require.NoError(t, err)

	doc, err := precommit.Load(filepath.Join(w.Dir, precommit.ConfigFile))
	require.NoError(t, err)
	entries, err := doc.Entries()
	require.NoError(t, err)
	require.Equal(t, "master", entries[0].Rev)
}

func TestRun_OffersDefaultChoices(t *testing.T) {
	var configOptions, ruleOptions []string
	var hookChoices []Choice
	p := &MockPrompter{
		SelectFunc: func(title string, options []string, def string) (string, error) {
			if strings.HasPrefix(title, "Please choose a supported config file") {
				configOptions = options
				require.Equal(t, "pyproject.toml", def)
			} else {
				ruleOptions = options
				require.Equal(t, rules.Default, def)
			}
			return def, nil
		},
		MultiSelectFunc: func(_ string, choices []Choice) ([]string, error) {
			hookChoices = choices
			return nil, nil
		},
	}
	w, _ := newWizard(t, p, staticTags{}, nil)

	_, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, config.Files, configOptions)
	require.Equal(t, rules.Names(), ruleOptions)
	require.Equal(t, []Choice{
		{Value: "commit-msg", Selected: true},
		{Value: "pre-push", Selected: true},
	}, hookChoices)
}

type themedPrompter struct {
	MockPrompter
	rule string
}

func (p *themedPrompter) UseRule(r rules.Rule) { p.rule = r.Name() }

func TestRun_AppliesChosenRuleTheme(t *testing.T) {
	p := &themedPrompter{MockPrompter: *answering(".cz.json", false, "", nil)}
	p.SelectFunc = func(title string, _ []string, _ string) (string, error) {
		if strings.HasPrefix(title, "Please choose a cz") {
			return "cz_jira", nil
		}
		return ".cz.json", nil
	}
	w, _ := newWizard(t, p, staticTags{}, nil)

	_, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cz_jira", p.rule)
}

func TestHuhPrompter_UseRule(t *testing.T) {
	p := &HuhPrompter{}
	rule, err := rules.Get("cz_jira")
	require.NoError(t, err)

	p.UseRule(rule)
	require.NotNil(t, p.Theme)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "NotStarted", StateNotStarted.String())
	require.Equal(t, "HookInstalling", StateHookInstalling.String())
	require.Equal(t, "Aborted", StateAborted.String())
	require.Equal(t, "State(42)", State(42).String())
}
