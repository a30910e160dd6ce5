// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// Fake records every command and answers with RunFunc.
type Fake struct {
	RunFunc      func(ctx context.Context, c runner.Cmd) (runner.Result, error)
	LookPathFunc func(file string) (string, error)

	mu    sync.Mutex
	Calls []runner.Cmd
}

// Run records c and delegates to RunFunc, succeeding with no output by default.
func (f *Fake) Run(ctx context.Context, c runner.Cmd) (runner.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, c)
	f.mu.Unlock()
	if f.RunFunc != nil {
		return f.RunFunc(ctx, c)
	}
	return runner.Result{}, nil
}

// LookPath delegates to LookPathFunc, resolving to /usr/bin by default.
func (f *Fake) LookPath(file string) (string, error) {
	if f.LookPathFunc != nil {
		return f.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Commands returns the argv of every recorded call.
func (f *Fake) Commands() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Argv())
	}
	return out
}

// Stdout returns a RunFunc that answers every command with out.
func Stdout(out string) func(context.Context, runner.Cmd) (runner.Result, error) {
	return func(context.Context, runner.Cmd) (runner.Result, error) {
		return runner.Result{Stdout: out}, nil
	}
}

// Exit returns a RunFunc that fails every command with the given exit code.
func Exit(code int) func(context.Context, runner.Cmd) (runner.Result, error) {
	return func(_ context.Context, c runner.Cmd) (runner.Result, error) {
		return runner.Result{ExitCode: code}, &runner.ExitError{Cmd: c.Name, Code: code}
	}
}

// FailOn returns a RunFunc that fails commands whose argv contains any of
// the given words and succeeds otherwise.
func FailOn(words ...string) func(context.Context, runner.Cmd) (runner.Result, error) {
	return func(_ context.Context, c runner.Cmd) (runner.Result, error) {
		argv := " " + strings.Join(c.Argv(), " ") + " "
		for _, w := range words {
			if strings.Contains(argv, " "+w+" ") {
				return runner.Result{ExitCode: 1}, &runner.ExitError{Cmd: c.Name, Code: 1, Stderr: "target not found: " + w}
			}
		}
		return runner.Result{}, nil
	}
}

// ErrBoom is a generic failure for tests that need a non-exit error.
var ErrBoom = errors.New("boom")
