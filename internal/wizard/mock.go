package wizard

import "context"

// MockPrompter is a test double for Prompter. Unset functions answer with
// the zero value, as an aborted prompt would.
type MockPrompter struct {
	SelectFunc      func(title string, options []string, def string) (string, error)
	ConfirmFunc     func(title string, def bool) (bool, error)
	TextFunc        func(title string) (string, error)
	MultiSelectFunc func(title string, choices []Choice) ([]string, error)
}

var _ Prompter = (*MockPrompter)(nil)

func (m *MockPrompter) Select(_ context.Context, title string, options []string, def string) (string, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(title, options, def)
	}
	return "", nil
}

func (m *MockPrompter) Confirm(_ context.Context, title string, def bool) (bool, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(title, def)
	}
	return false, nil
}

func (m *MockPrompter) Text(_ context.Context, title string) (string, error) {
	if m.TextFunc != nil {
		return m.TextFunc(title)
	}
	return "", nil
}

func (m *MockPrompter) MultiSelect(_ context.Context, title string, choices []Choice) ([]string, error) {
	if m.MultiSelectFunc != nil {
		return m.MultiSelectFunc(title, choices)
	}
	return nil, nil
}
