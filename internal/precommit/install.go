package precommit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executable is the name of the pre-commit binary looked up on PATH.
const Executable = "pre-commit"

// ErrHookManagerNotInstalled is returned when pre-commit cannot be found
// on PATH.
var ErrHookManagerNotInstalled = errors.New("pre-commit is not installed in current environment")

// Result is the outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs a command to completion. A non-zero exit is reported in
// Result, not as an error; errors mean the command could not run at all.
type Runner func(ctx context.Context, name string, args ...string) (Result, error)

// LookPathFunc resolves an executable name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// InvocationError reports a pre-commit run that exited non-zero.
type InvocationError struct {
	Command string
	Result  Result
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Result.ExitCode)
}

// Installer runs "pre-commit install" for a set of hook types.
type Installer struct {
	LookPath LookPathFunc
	Run      Runner
}

// NewInstaller returns an Installer that searches PATH and runs pre-commit
// in dir.
func NewInstaller(dir string) *Installer {
	return &Installer{
		LookPath: exec.LookPath,
		Run:      ExecRunner(dir),
	}
}

// Command returns the command line used to install the given hook types.
func Command(hookTypes []string) []string {
	args := []string{Executable, "install"}
	for _, ty := range hookTypes {
		args = append(args, "--hook-type", ty)
	}
	return args
}

// Install runs a single "pre-commit install --hook-type <type>..." command.
func (i *Installer) Install(ctx context.Context, hookTypes []string) error {
	if len(hookTypes) == 0 {
		return errors.New("at least 1 hook type should be provided")
	}

	path, err := i.LookPath(Executable)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHookManagerNotInstalled, err)
	}

	cmdLine := Command(hookTypes)
	res, err := i.Run(ctx, path, cmdLine[1:]...)
	if err != nil {
		return fmt.Errorf("running %s: %w", strings.Join(cmdLine, " "), err)
	}
	if res.ExitCode != 0 {
		return &InvocationError{Command: strings.Join(cmdLine, " "), Result: res}
	}
	return nil
}

// ExecRunner returns a Runner backed by os/exec that runs commands in dir
// and captures both output streams.
func ExecRunner(dir string) Runner {
	return func(ctx context.Context, name string, args ...string) (Result, error) {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Dir = dir

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if err != nil {
			return res, err
		}
		return res, nil
	}
}
