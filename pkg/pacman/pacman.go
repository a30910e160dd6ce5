// Package pacman drives the Arch package manager through a runner.Runner.
package pacman

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// Binary is the package manager executable.
const Binary = "pacman"

// namePattern matches valid Arch package names.
var namePattern = regexp.MustCompile(`^[a-z0-9@_+][a-z0-9@._+-]*$`)

// ValidName reports whether name is a well-formed package name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Manager installs, removes and queries packages.
type Manager struct {
	runner runner.Runner
}

// New creates a Manager. Pass a runner.Chroot to act on a target root.
func New(r runner.Runner) *Manager {
	return &Manager{runner: r}
}

// Remove uninstalls pkgs with their unneeded dependencies in one call.
func (m *Manager) Remove(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-Rns", "--noconfirm"}, pkgs...)
	if _, err := m.runner.Run(ctx, runner.Command(Binary, args...)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", strings.Join(pkgs, ", "), err)
	}
	return nil
}

// Install installs pkgs in one transaction.
func (m *Manager) Install(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-S", "--noconfirm"}, pkgs...)
	if _, err := m.runner.Run(ctx, runner.Command(Binary, args...)); err != nil {
		return fmt.Errorf("failed to install %s: %w", strings.Join(pkgs, ", "), err)
	}
	return nil
}

// IsInstalled queries the local database. A non-zero exit from
// `pacman -Q` means the package is absent.
func (m *Manager) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	_, err := m.runner.Run(ctx, runner.Command(Binary, "-Q", pkg))
	if err == nil {
		return true, nil
	}
	if runner.IsExitError(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to query %s: %w", pkg, err)
}

// InstalledVersion returns the version reported by `pacman -Q`, or an empty
// string when the package is absent.
func (m *Manager) InstalledVersion(ctx context.Context, pkg string) (string, error) {
	res, err := m.runner.Run(ctx, runner.Command(Binary, "-Q", pkg))
	if err != nil {
		if runner.IsExitError(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query %s: %w", pkg, err)
	}
	fields := strings.Fields(res.Stdout)
	if len(fields) < 2 {
		return "", nil
	}
	return fields[1], nil
}
