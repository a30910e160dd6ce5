// Package runner wraps external process execution behind a narrow interface
// so hooks can be tested without spawning real subprocesses.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the executable cannot be located in PATH.
var ErrNotFound = errors.New("executable not found")

// Cmd describes a single external command invocation.
type Cmd struct {
	Name string   // Executable name or path
	Args []string // Arguments, not including Name
	Env  []string // Extra KEY=VALUE pairs appended to the process environment
	Dir  string   // Working directory, empty for the current one
}

// Command builds a Cmd for name and args.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// WithEnv returns a copy of c with extra environment entries.
func (c Cmd) WithEnv(env ...string) Cmd {
	c.Env = append(append([]string{}, c.Env...), env...)
	return c
}

// Argv returns the full argument vector, name first.
func (c Cmd) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command the way a shell user would type it.
func (c Cmd) String() string {
	return strings.Join(c.Argv(), " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Lines splits Stdout into lines, dropping a trailing empty line.
func (r Result) Lines() []string {
	if r.Stdout == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(r.Stdout, "\n"), "\n")
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Cmd    string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Cmd, e.Code, msg)
	}
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.Code)
}

// IsExitError reports whether err is (or wraps) an *ExitError.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// Runner executes external commands.
//
// Run returns the captured Result together with an *ExitError when the
// command exits non-zero, so callers can still inspect its output.
type Runner interface {
	Run(ctx context.Context, c Cmd) (Result, error)
	LookPath(file string) (string, error)
}
