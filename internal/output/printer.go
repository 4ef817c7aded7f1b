// Package output writes the init wizard's user-facing messages and
// diagnostic logs.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")

	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// Printer writes styled messages. Plain, info and success messages go to
// the standard stream, warnings and errors to the error stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter creates a Printer writing to the given streams.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Line writes an unstyled message.
func (p *Printer) Line(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Info writes a highlighted hint, such as a command to run next.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, infoStyle.Render(msg))
}

// Success writes a completion message.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, successStyle.Render(msg))
}

// Warn writes a recoverable problem.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.errOut, warnStyle.Render(msg))
}

// Error writes a failure.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut, errorStyle.Render(msg))
}
