package edition

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// KDEBackend inspects kdeglobals and drives the Plasma look-and-feel tools.
type KDEBackend struct {
	runner runner.Runner
	opts   Options
	log    zerolog.Logger
}

// NewKDE creates the KDE backend.
func NewKDE(r runner.Runner, opts Options, log zerolog.Logger) *KDEBackend {
	return &KDEBackend{runner: r, opts: opts, log: log}
}

func (b *KDEBackend) Name() Desktop { return KDE }

// Detect scans the kdeglobals candidates in order. The first file holding a
// marker decides; files without either marker are skipped.
func (b *KDEBackend) Detect(_ context.Context) Edition {
	for _, candidate := range b.opts.KDEConfigPaths {
		path := os.ExpandEnv(candidate)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			b.log.Warn().Err(err).Str("path", path).Msg("Error checking KDE theme")
			return Pure
		}

		content := string(data)
		switch {
		case b.opts.KDEPureMarker != "" && strings.Contains(content, b.opts.KDEPureMarker):
			return Pure
		case b.opts.KDEThemedMarker != "" && strings.Contains(content, b.opts.KDEThemedMarker):
			return Themed
		}
	}
	return Pure
}

// Apply sets LookAndFeelPackage and asks Plasma to apply it.
func (b *KDEBackend) Apply(ctx context.Context, e Edition, cfg ThemeConfig) error {
	pkg := b.opts.KDELookAndFeel.For(e, cfg.Dark)

	var errs []error
	steps := []runner.Cmd{
		runner.Command("kwriteconfig5", "--file", "kdeglobals", "--group", "KDE", "--key", "LookAndFeelPackage", pkg),
		runner.Command("plasma-apply-lookandfeel", "--apply", pkg),
	}
	for _, step := range steps {
		if _, err := b.runner.Run(ctx, step); err != nil {
			errs = append(errs, fmt.Errorf("failed to run %s: %w", step.Name, err))
		}
	}
	return errors.Join(errs...)
}
