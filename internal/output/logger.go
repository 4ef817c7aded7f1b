package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Verbosity levels accepted by the --verbosity flag.
const (
	VerbosityQuiet = "quiet"
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
)

// NewLogger creates a logr.Logger writing to w. "info" enables V(0)
// messages, "debug" also enables V(1), and "quiet" discards everything.
func NewLogger(w io.Writer, verbosity string) (logr.Logger, error) {
	var level int
	switch strings.ToLower(verbosity) {
	case VerbosityQuiet:
		return logr.Discard(), nil
	case VerbosityInfo, "":
		level = 0
	case VerbosityDebug:
		level = 1
	default:
		return logr.Discard(), fmt.Errorf("unknown verbosity %q: expected quiet, info, or debug", verbosity)
	}

	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: level}), nil
}
