package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/rules"

	"github.com/charmbracelet/huh"
)

// Choice is an option of a multi-select prompt.
type Choice struct {
	Value    string
	Selected bool
}

// Prompter asks the user questions. Every method blocks until the user
// answers. A prompt the user aborts yields the zero value and a nil error,
// leaving it to the caller to decide whether a missing answer is fatal.
type Prompter interface {
	// Select asks for one of options, starting at def.
	Select(ctx context.Context, title string, options []string, def string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, title string, def bool) (bool, error)

	// Text asks for free-form input.
	Text(ctx context.Context, title string) (string, error)

	// MultiSelect asks for any number of choices.
	MultiSelect(ctx context.Context, title string, choices []Choice) ([]string, error)
}

// RuleStyler is implemented by prompters whose look follows the chosen
// commit rule.
type RuleStyler interface {
	UseRule(r rules.Rule)
}

// HuhPrompter is a Prompter rendering each question as a single-field huh
// form.
type HuhPrompter struct {
	Theme *huh.Theme

	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer

	// Accessible replaces the interactive UI with plain line prompts.
	Accessible bool
}

var _ Prompter = (*HuhPrompter)(nil)

// UseRule switches the theme to the rule's.
func (p *HuhPrompter) UseRule(r rules.Rule) {
	p.Theme = r.Theme()
}

// Select implements Prompter.
func (p *HuhPrompter) Select(ctx context.Context, title string, options []string, def string) (string, error) {
	value := def
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value)
	if err := p.run(ctx, field); err != nil {
		return "", ignoreAbort(err)
	}
	return value, nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, title string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(title).
		Value(&value)
	if err := p.run(ctx, field); err != nil {
		return false, ignoreAbort(err)
	}
	return value, nil
}

// Text implements Prompter.
func (p *HuhPrompter) Text(ctx context.Context, title string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if err := p.run(ctx, field); err != nil {
		return "", ignoreAbort(err)
	}
	return value, nil
}

// MultiSelect implements Prompter.
func (p *HuhPrompter) MultiSelect(ctx context.Context, title string, choices []Choice) ([]string, error) {
	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Value, c.Value).Selected(c.Selected))
	}

	var values []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Options(options...).
		Value(&values)
	if err := p.run(ctx, field); err != nil {
		return nil, ignoreAbort(err)
	}
	return values, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithAccessible(p.Accessible)
	if p.Theme != nil {
		form = form.WithTheme(p.Theme)
	}
	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("running prompt: %w", err)
	}
	return nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
