package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	gocmd "github.com/go-cmd/cmd"
)

// Exec runs commands on the local system.
type Exec struct{}

// NewExec creates the default local runner.
func NewExec() *Exec {
	return &Exec{}
}

// LookPath finds the path to an executable.
func (e *Exec) LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, file)
	}
	return path, nil
}

// Run executes c and waits for it to finish or for ctx to be cancelled.
func (e *Exec) Run(ctx context.Context, c Cmd) (Result, error) {
	if _, err := e.LookPath(c.Name); err != nil {
		return Result{ExitCode: -1}, err
	}

	proc := gocmd.NewCmdOptions(gocmd.Options{Buffered: true}, c.Name, c.Args...)
	proc.Dir = c.Dir
	if len(c.Env) > 0 {
		proc.Env = append(os.Environ(), c.Env...)
	}

	var status gocmd.Status
	select {
	case status = <-proc.Start():
	case <-ctx.Done():
		_ = proc.Stop()
		<-proc.Done()
		return Result{ExitCode: -1}, fmt.Errorf("%s: %w", c.Name, ctx.Err())
	}

	result := Result{
		Stdout:   joinLines(status.Stdout),
		Stderr:   joinLines(status.Stderr),
		ExitCode: status.Exit,
	}

	if status.Error != nil {
		return result, fmt.Errorf("failed to run %s: %w", c.Name, status.Error)
	}
	if status.Exit != 0 {
		return result, &ExitError{Cmd: c.Name, Code: status.Exit, Stderr: result.Stderr}
	}

	return result, nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
