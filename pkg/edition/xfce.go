package edition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// XFCEBackend queries and sets XFCE themes through xfconf-query.
type XFCEBackend struct {
	runner runner.Runner
	opts   Options
	log    zerolog.Logger
}

// NewXFCE creates the XFCE backend.
func NewXFCE(r runner.Runner, opts Options, log zerolog.Logger) *XFCEBackend {
	return &XFCEBackend{runner: r, opts: opts, log: log}
}

func (b *XFCEBackend) Name() Desktop { return XFCE }

// Detect reads the active GTK theme name.
func (b *XFCEBackend) Detect(ctx context.Context) Edition {
	res, err := b.runner.Run(ctx, runner.Command("xfconf-query", "-c", "xsettings", "-p", "/Net/ThemeName"))
	if err != nil {
		b.log.Warn().Err(err).Msg("Error checking XFCE theme")
		return Pure
	}
	if b.opts.XFCEMarker != "" && strings.Contains(res.Stdout, b.opts.XFCEMarker) {
		return Themed
	}
	return Pure
}

// Apply sets the GTK and window manager themes.
func (b *XFCEBackend) Apply(ctx context.Context, e Edition, cfg ThemeConfig) error {
	steps := []runner.Cmd{
		runner.Command("xfconf-query", "-c", "xsettings", "-p", "/Net/ThemeName", "-s", b.opts.XFCEGtk.For(e, cfg.Dark)),
		runner.Command("xfconf-query", "-c", "xfwm4", "-p", "/general/theme", "-s", b.opts.XFCEWindow.For(e, cfg.Dark)),
	}

	var errs []error
	for _, step := range steps {
		if _, err := b.runner.Run(ctx, step); err != nil {
			errs = append(errs, fmt.Errorf("failed to set %s: %w", step.Args[3], err))
		}
	}
	return errors.Join(errs...)
}
