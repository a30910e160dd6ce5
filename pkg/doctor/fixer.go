package doctor

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/pacman"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// ErrNoFix is returned when a check has no fix command.
var ErrNoFix = errors.New("no fix command available")

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Fixer runs or copies fix commands.
type Fixer struct {
	runner   runner.Runner
	escalate string
}

// NewFixer creates a Fixer that installs packages through escalate
// (usually "sudo"). An empty escalate runs pacman directly.
func NewFixer(r runner.Runner, escalate string) *Fixer {
	return &Fixer{runner: r, escalate: escalate}
}

// RunFix installs the package named by fix.
func (f *Fixer) RunFix(ctx context.Context, fix *FixCommand) error {
	if fix == nil || fix.Package == "" {
		return ErrNoFix
	}
	var r runner.Runner = f.runner
	if fix.Sudo {
		r = runner.NewEscalated(f.runner, f.escalate)
	}
	return pacman.New(r).Install(ctx, fix.Package)
}

// CopyToClipboard copies the fix command to the system clipboard.
func (f *Fixer) CopyToClipboard(fix *FixCommand) error {
	if fix == nil {
		return ErrNoFix
	}
	return writeClipboard(fix.Command)
}
