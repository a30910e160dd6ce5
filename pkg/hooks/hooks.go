// Package hooks implements the installer hook entry points. Each hook
// reads and writes facts through the decision store and returns nil on
// success or a *Failure the host shows to the user.
package hooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/logging"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/probe"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// Failure is a hook result the host reports as a failed step.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// AsFailure returns the *Failure in err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Messages reported to the host.
const (
	MsgNoInstallPath = "No install path specified"
	MsgNoDesktop     = "Failed to determine desktop environment"
)

// Deps carries everything a hook needs.
type Deps struct {
	Store    *store.Store
	Runner   runner.Runner // Host runner; package actions wrap it in a chroot
	Prober   *probe.Prober
	Detector *edition.Detector

	DesktopEnv     string // Raw XDG_CURRENT_DESKTOP value
	RequireDesktop bool
	Actions        actions.Options

	Log     zerolog.Logger
	OnEvent actions.Callback // Optional, receives every action outcome
}

// Hook is a named entry point.
type Hook struct {
	Name string
	Run  func(ctx context.Context, d Deps) error
}

// Sequence lists the hooks in the order the host runs them.
var Sequence = []Hook{
	{Name: "hardware", Run: Hardware},
	{Name: "edition", Run: Edition},
	{Name: "packages", Run: Packages},
}

// RunAll runs every hook of Sequence and stops at the first error.
func RunAll(ctx context.Context, d Deps) error {
	base := d.Log
	for _, h := range Sequence {
		d.Log = logging.ForHook(base, h.Name)
		if err := h.Run(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func save(s *store.Store) error {
	if s.Path() == "" {
		return nil
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}
