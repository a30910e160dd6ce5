package edition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

const (
	gnomeInterfaceSchema = "org.gnome.desktop.interface"
	gnomeUserThemeSchema = "org.gnome.shell.extensions.user-theme"
	gnomeUserThemeUUID   = "user-theme@gnome-shell-extensions.gcampax.github.com"
)

// GNOMEBackend queries and sets GNOME appearance through gsettings.
type GNOMEBackend struct {
	runner runner.Runner
	opts   Options
	log    zerolog.Logger
}

// NewGNOME creates the GNOME backend.
func NewGNOME(r runner.Runner, opts Options, log zerolog.Logger) *GNOMEBackend {
	return &GNOMEBackend{runner: r, opts: opts, log: log}
}

func (b *GNOMEBackend) Name() Desktop { return GNOME }

// Detect reads the user-theme shell theme name.
func (b *GNOMEBackend) Detect(ctx context.Context) Edition {
	res, err := b.runner.Run(ctx, runner.Command("gsettings", "get", gnomeUserThemeSchema, "name"))
	if err != nil {
		b.log.Warn().Err(err).Msg("Error checking GNOME theme")
		return Pure
	}
	if b.opts.GNOMEMarker != "" && strings.Contains(res.Stdout, b.opts.GNOMEMarker) {
		return Themed
	}
	return Pure
}

// Apply sets the color scheme and GTK theme, then the shell theme. A pure
// edition resets the shell theme to the default.
func (b *GNOMEBackend) Apply(ctx context.Context, e Edition, cfg ThemeConfig) error {
	scheme := "default"
	if cfg.Dark {
		scheme = "prefer-dark"
	}

	steps := []runner.Cmd{
		runner.Command("gsettings", "set", gnomeInterfaceSchema, "color-scheme", scheme),
		runner.Command("gsettings", "set", gnomeInterfaceSchema, "gtk-theme", b.opts.GNOMEGtk.For(e, cfg.Dark)),
	}
	if e == Themed {
		steps = append(steps,
			runner.Command("gnome-extensions", "enable", gnomeUserThemeUUID),
			runner.Command("gsettings", "set", gnomeUserThemeSchema, "name", b.opts.GNOMEShell.Pick(cfg.Dark)),
		)
	} else {
		steps = append(steps, runner.Command("gsettings", "reset", gnomeUserThemeSchema, "name"))
	}

	var errs []error
	for _, step := range steps {
		if _, err := b.runner.Run(ctx, step); err != nil {
			errs = append(errs, fmt.Errorf("failed to run %s: %w", step, err))
		}
	}
	return errors.Join(errs...)
}
