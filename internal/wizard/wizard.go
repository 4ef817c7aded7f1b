// Package wizard runs the interactive "cz init" flow: it picks a
// configuration file, commit rule, starting tag and tag format, writes the
// configuration, and optionally registers commitizen with pre-commit.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/config"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/github"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/precommit"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/rules"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/version"

	"github.com/go-logr/logr"
)

var (
	// ErrInitFailed wraps failures of the hook installation phase. The
	// configuration written before it is kept.
	ErrInitFailed = errors.New("installation failed, see error outputs for more information")

	// ErrNoAnswer is returned when a required question is left unanswered.
	ErrNoAnswer = errors.New("no answer given")
)

const (
	configPathTitle = "Please choose a supported config file: (default: %s)"
	ruleTitle       = "Please choose a cz (commit rule): (default: %s)"
	hookTypesTitle  = "What types of pre-commit hook you want to install? (Leave blank if you don't want to install)"
)

// State is a step of the wizard.
type State int

const (
	StateNotStarted State = iota
	StateConfigSelection
	StateBootstrapping
	StateHookPrompt
	StateHookInstalling
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateConfigSelection:
		return "ConfigSelection"
	case StateBootstrapping:
		return "Bootstrapping"
	case StateHookPrompt:
		return "HookPrompt"
	case StateHookInstalling:
		return "HookInstalling"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Printer writes user-facing messages.
type Printer interface {
	Line(msg string)
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// HookInstaller installs pre-commit hooks of the given types.
type HookInstaller interface {
	Install(ctx context.Context, hookTypes []string) error
}

// Wizard holds the collaborators of one init run.
type Wizard struct {
	// Dir is the project root.
	Dir string

	Prompter  Prompter
	Tags      TagSource
	Printer   Printer
	Installer HookInstaller
	Log       logr.Logger

	// HookRevision returns the revision pinned in the pre-commit entry.
	// github.FallbackRevision is used when nil.
	HookRevision func(ctx context.Context) string

	state State
}

// State returns the step the wizard is at.
func (w *Wizard) State() State {
	return w.state
}

// Run executes the wizard. It stops with StateAborted and a nil error when
// a configuration already exists. Every error leaves the wizard in
// StateAborted.
func (w *Wizard) Run(ctx context.Context) (State, error) {
	w.state = StateNotStarted

	existing, found, err := config.Discover(w.Dir)
	if err != nil {
		return w.abort(err)
	}
	if found {
		w.Printer.Line(fmt.Sprintf("Config file %s already exists", existing.Path))
		return w.transition(StateAborted), nil
	}

	w.transition(StateConfigSelection)
	answers, err := w.ask(ctx)
	if err != nil {
		return w.abort(err)
	}

	w.transition(StateBootstrapping)
	doc, err := Bootstrap(filepath.Join(w.Dir, answers.path), answers.rule, answers.version, answers.tagFormat)
	if err != nil {
		return w.abort(err)
	}
	if err := doc.Persist(); err != nil {
		return w.abort(err)
	}
	w.Log.V(1).Info("configuration written", "path", doc.Path(), "kind", doc.Kind())

	w.transition(StateHookPrompt)
	hookTypes, err := w.Prompter.MultiSelect(ctx, hookTypesTitle, []Choice{
		{Value: precommit.HookTypeCommitMsg, Selected: true},
		{Value: precommit.HookTypePrePush, Selected: true},
	})
	if err != nil {
		return w.abort(err)
	}

	if len(hookTypes) > 0 {
		w.transition(StateHookInstalling)
		if err := w.installHooks(ctx, hookTypes); err != nil {
			return w.abort(fmt.Errorf("%w: %w", ErrInitFailed, err))
		}
	}

	w.Printer.Line("You can bump the version and create changelog running:")
	w.Printer.Info("cz bump --changelog")
	w.Printer.Success("The configuration are all set.")
	return w.transition(StateDone), nil
}

type answers struct {
	path      string
	rule      string
	version   string
	tagFormat string
}

func (w *Wizard) ask(ctx context.Context) (answers, error) {
	var a answers

	path, err := w.Prompter.Select(ctx, fmt.Sprintf(configPathTitle, config.Files[0]), config.Files, config.Files[0])
	if err != nil {
		return a, err
	}
	if path == "" {
		return a, fmt.Errorf("%w: config file", ErrNoAnswer)
	}
	a.path = path

	rule, err := w.Prompter.Select(ctx, fmt.Sprintf(ruleTitle, rules.Default), rules.Names(), rules.Default)
	if err != nil {
		return a, err
	}
	if rule == "" {
		return a, fmt.Errorf("%w: commit rule", ErrNoAnswer)
	}
	if err := w.useRule(rule); err != nil {
		return a, err
	}
	a.rule = rule

	tag, err := ResolveTag(ctx, w.Tags, w.Prompter, w.Printer)
	if err != nil {
		return a, err
	}
	a.version, err = version.Public(tag)
	if err != nil {
		return a, err
	}

	a.tagFormat, err = InferTagFormat(ctx, tag, w.Prompter)
	if err != nil {
		return a, err
	}

	w.Log.V(1).Info("answers collected", "path", a.path, "rule", a.rule, "tag", tag, "version", a.version, "tagFormat", a.tagFormat)
	return a, nil
}

func (w *Wizard) useRule(name string) error {
	rule, err := rules.Get(name)
	if err != nil {
		return err
	}
	if styler, ok := w.Prompter.(RuleStyler); ok {
		styler.UseRule(rule)
	}
	return nil
}

func (w *Wizard) installHooks(ctx context.Context, hookTypes []string) error {
	path := filepath.Join(w.Dir, precommit.ConfigFile)

	state, found, err := precommit.Register(path, precommit.CanonicalEntry(w.hookRevision(ctx)))
	if err != nil {
		w.Printer.Error(err.Error())
		return err
	}
	w.Log.V(1).Info("pre-commit config merged", "path", path, "state", state.String(), "found", found)
	if found {
		w.Printer.Line("commitizen already in pre-commit config")
	}

	if err := w.Installer.Install(ctx, hookTypes); err != nil {
		w.reportInstallError(err)
		return err
	}

	w.Printer.Line("commitizen pre-commit hook is now installed in your '.git'")
	return nil
}

func (w *Wizard) reportInstallError(err error) {
	var invocationErr *precommit.InvocationError
	switch {
	case errors.Is(err, precommit.ErrHookManagerNotInstalled):
		w.Printer.Error(precommit.ErrHookManagerNotInstalled.Error() + ".")
	case errors.As(err, &invocationErr):
		w.Printer.Error(fmt.Sprintf("Error running %s. Outputs are attached below:", invocationErr.Command))
		w.Printer.Error("stdout: " + invocationErr.Result.Stdout)
		w.Printer.Error("stderr: " + invocationErr.Result.Stderr)
	default:
		w.Printer.Error(err.Error())
	}
}

func (w *Wizard) hookRevision(ctx context.Context) string {
	if w.HookRevision == nil {
		return github.FallbackRevision
	}
	return w.HookRevision(ctx)
}

func (w *Wizard) transition(to State) State {
	w.Log.V(1).Info("wizard state", "from", w.state.String(), "to", to.String())
	w.state = to
	return to
}

func (w *Wizard) abort(err error) (State, error) {
	w.Log.V(1).Info("wizard aborted", "state", w.state.String(), "error", err.Error())
	w.transition(StateAborted)
	return StateAborted, err
}
