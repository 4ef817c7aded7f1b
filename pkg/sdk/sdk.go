// Package sdk provides a public Go API for setting up commitizen in a
// project without interactive prompts. Answers the interactive "cz init"
// would ask for are taken from InitOptions, and every option left empty
// gets the answer a user accepting all defaults would give.
//
// Basic usage:
//
//	result, err := sdk.Init(ctx, sdk.InitOptions{
//	    Path:       "/path/to/project",
//	    ConfigFile: ".cz.toml",
//	})
//	fmt.Println(result.ConfigPath, result.Version) // ".../.cz.toml" "1.2.3"
package sdk

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/config"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/git"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/output"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/precommit"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/rules"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/version"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/wizard"

	ghprovider "github.com/MyCarrier-DevOps/go-commitizen/internal/github"
)

// Hook types that can be installed.
const (
	HookTypeCommitMsg = precommit.HookTypeCommitMsg
	HookTypePrePush   = precommit.HookTypePrePush
)

// InitOptions configures Init.
type InitOptions struct {
	// Path to the project root. Defaults to "." if empty.
	Path string

	// ConfigFile is one of the supported configuration file names.
	// Defaults to "pyproject.toml".
	ConfigFile string

	// Rule is the commit rule name. Defaults to "cz_conventional_commits".
	Rule string

	// Tag marks the current version. Empty means the tag nearest to HEAD,
	// or "0.0.1" when the project has no tags.
	Tag string

	// TagFormat is the tag format template. Empty means "v$version" for
	// tags starting with "v" and "$version" otherwise.
	TagFormat string

	// HookTypes lists pre-commit hook types to install. Empty installs none.
	HookTypes []string

	// HookRevision pins the pre-commit entry. Empty means "master".
	HookRevision string

	// Installer runs "pre-commit install". Defaults to the pre-commit
	// executable found on PATH.
	Installer wizard.HookInstaller

	// Stdout and Stderr receive the messages "cz init" would print.
	// Both default to io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

// InitResult is the outcome of Init.
type InitResult struct {
	// ConfigPath is the configuration file written, or the one that
	// already existed.
	ConfigPath string

	// AlreadyConfigured is true when an existing configuration was found
	// and nothing was changed.
	AlreadyConfigured bool

	// Version and TagFormat are the values written.
	Version   string
	TagFormat string

	// HooksInstalled is true when pre-commit hooks were installed.
	HooksInstalled bool
}

// Init writes a commitizen configuration for the project and optionally
// installs the pre-commit hooks. An existing configuration is reported and
// left alone.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	opts = withDefaults(opts)

	dir, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	existing, found, err := config.Discover(dir)
	if err != nil {
		return nil, err
	}
	if found {
		return &InitResult{ConfigPath: existing.Path, AlreadyConfigured: true}, nil
	}

	if !slices.Contains(config.Files, opts.ConfigFile) {
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, opts.ConfigFile)
	}
	if _, err := rules.Get(opts.Rule); err != nil {
		return nil, err
	}

	printer := output.NewPrinter(opts.Stdout, opts.Stderr)
	defaults := acceptDefaults{}

	tag := opts.Tag
	if tag == "" {
		tag, err = wizard.ResolveTag(ctx, tagSource(dir), defaults, printer)
		if err != nil {
			return nil, err
		}
	}
	ver, err := version.Public(tag)
	if err != nil {
		return nil, err
	}

	tagFormat := opts.TagFormat
	if tagFormat == "" {
		tagFormat, err = wizard.InferTagFormat(ctx, tag, defaults)
		if err != nil {
			return nil, err
		}
	}

	doc, err := wizard.Bootstrap(filepath.Join(dir, opts.ConfigFile), opts.Rule, ver, tagFormat)
	if err != nil {
		return nil, err
	}
	if err := doc.Persist(); err != nil {
		return nil, err
	}

	result := &InitResult{
		ConfigPath: doc.Path(),
		Version:    ver,
		TagFormat:  tagFormat,
	}
	if len(opts.HookTypes) == 0 {
		return result, nil
	}

	installer := opts.Installer
	if installer == nil {
		installer = precommit.NewInstaller(dir)
	}
	hookPath := filepath.Join(dir, precommit.ConfigFile)
	if _, _, err := precommit.Register(hookPath, precommit.CanonicalEntry(opts.HookRevision)); err != nil {
		return result, fmt.Errorf("%w: %w", wizard.ErrInitFailed, err)
	}
	if err := installer.Install(ctx, opts.HookTypes); err != nil {
		return result, fmt.Errorf("%w: %w", wizard.ErrInitFailed, err)
	}
	result.HooksInstalled = true
	return result, nil
}

func withDefaults(opts InitOptions) InitOptions {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.ConfigFile == "" {
		opts.ConfigFile = config.Files[0]
	}
	if opts.Rule == "" {
		opts.Rule = rules.Default
	}
	if opts.HookRevision == "" {
		opts.HookRevision = ghprovider.FallbackRevision
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	return opts
}

// tagSource reads tags from the repository at dir, or none when dir is
// not a git repository.
func tagSource(dir string) wizard.TagSource {
	repo, err := git.Open(dir)
	if err != nil {
		return git.NewTagStore(nil)
	}
	return git.NewTagStore(repo)
}

// acceptDefaults answers every prompt the way a user pressing enter would,
// except that the latest tag is always confirmed.
type acceptDefaults struct{}

func (acceptDefaults) Select(_ context.Context, _ string, _ []string, def string) (string, error) {
	return def, nil
}

func (acceptDefaults) Confirm(_ context.Context, _ string, _ bool) (bool, error) {
	return true, nil
}

func (acceptDefaults) Text(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (acceptDefaults) MultiSelect(_ context.Context, _ string, choices []wizard.Choice) ([]string, error) {
	var selected []string
	for _, c := range choices {
		if c.Selected {
			selected = append(selected, c.Value)
		}
	}
	return selected, nil
}
