package edition

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
)

// Backends builds the backend registry for all supported desktops.
func Backends(r runner.Runner, opts Options, log zerolog.Logger) map[Desktop]ThemeBackend {
	return map[Desktop]ThemeBackend{
		KDE:   NewKDE(r, opts, log),
		GNOME: NewGNOME(r, opts, log),
		XFCE:  NewXFCE(r, opts, log),
	}
}

// Detector dispatches detection and theme application to the backend of
// the current desktop.
type Detector struct {
	backends map[Desktop]ThemeBackend
	log      zerolog.Logger
}

// NewDetector creates a Detector over the given backends.
func NewDetector(backends map[Desktop]ThemeBackend, log zerolog.Logger) *Detector {
	return &Detector{backends: backends, log: log}
}

// Backend returns the backend registered for desktop.
func (d *Detector) Backend(desktop Desktop) (ThemeBackend, bool) {
	b, ok := d.backends[desktop]
	return b, ok
}

// Detect returns the edition for desktop, Pure when undetermined. The
// unsupported desktop itself is reported by DesktopFromEnv.
func (d *Detector) Detect(ctx context.Context, desktop Desktop) Edition {
	b, ok := d.backends[desktop]
	if !ok {
		d.log.Debug().Str("desktop", string(desktop)).Msg("No theme backend, assuming pure edition")
		return Pure
	}
	return b.Detect(ctx)
}

// Apply applies the theme for e on desktop.
func (d *Detector) Apply(ctx context.Context, desktop Desktop, e Edition, cfg ThemeConfig) error {
	b, ok := d.backends[desktop]
	if !ok {
		return fmt.Errorf("no theme backend for desktop %q", desktop)
	}
	return b.Apply(ctx, e, cfg)
}
