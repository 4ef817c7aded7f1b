package wizard

import (
	"errors"
	"fmt"
)

type message struct {
	level string
	text  string
}

// recordingPrinter keeps every message in order.
type recordingPrinter struct {
	messages []message
}

func (p *recordingPrinter) add(level, msg string) {
	p.messages = append(p.messages, message{level: level, text: msg})
}

func (p *recordingPrinter) Line(msg string)    { p.add("line", msg) }
func (p *recordingPrinter) Info(msg string)    { p.add("info", msg) }
func (p *recordingPrinter) Success(msg string) { p.add("success", msg) }
func (p *recordingPrinter) Warn(msg string)    { p.add("warn", msg) }
func (p *recordingPrinter) Error(msg string)   { p.add("error", msg) }

func (p *recordingPrinter) texts(level string) []string {
	var out []string
	for _, m := range p.messages {
		if m.level == level {
			out = append(out, m.text)
		}
	}
	return out
}

// staticTags is a TagSource over fixed data.
type staticTags struct {
	latest string
	all    []string
	err    error
}

func (s staticTags) LatestTagName() (string, error) { return s.latest, s.err }
func (s staticTags) TagNames() ([]string, error)    { return s.all, s.err }

// failOnPrompt returns a MockPrompter that fails the test through the
// returned error if any question is asked.
func failOnPrompt() *MockPrompter {
	unexpected := func(title string) error { return fmt.Errorf("unexpected prompt %q", title) }
	return &MockPrompter{
		SelectFunc:  func(title string, _ []string, _ string) (string, error) { return "", unexpected(title) },
		ConfirmFunc: func(title string, _ bool) (bool, error) { return false, unexpected(title) },
		TextFunc:    func(title string) (string, error) { return "", unexpected(title) },
		MultiSelectFunc: func(title string, _ []Choice) ([]string, error) {
			return nil, unexpected(title)
		},
	}
}

var errBoom = errors.New("boom")
