// Package edition detects which distribution edition (pure or themed) the
// live session runs and applies matching desktop themes.
package edition

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Edition is the product variant of the running session.
type Edition string

const (
	Pure   Edition = "pure"
	Themed Edition = "themed"
)

// ParseEdition converts a stored or user-supplied value to an Edition.
func ParseEdition(s string) (Edition, error) {
	switch Edition(strings.ToLower(strings.TrimSpace(s))) {
	case Pure:
		return Pure, nil
	case Themed:
		return Themed, nil
	default:
		return "", fmt.Errorf("unknown edition %q (expected pure or themed)", s)
	}
}

// Desktop identifies a supported desktop environment.
type Desktop string

const (
	KDE   Desktop = "kde"
	GNOME Desktop = "gnome"
	XFCE  Desktop = "xfce"
	None  Desktop = "none"
)

// Desktops lists the desktops with a theme backend.
var Desktops = []Desktop{KDE, GNOME, XFCE}

// DesktopEnvVar names the variable the session identity is read from.
const DesktopEnvVar = "XDG_CURRENT_DESKTOP"

// DesktopFromEnv maps an XDG_CURRENT_DESKTOP value to a Desktop. Values such
// as "ubuntu:GNOME" are split on ':' and the first supported entry wins.
func DesktopFromEnv(value string, log zerolog.Logger) Desktop {
	for _, part := range strings.Split(strings.ToLower(value), ":") {
		switch d := Desktop(strings.TrimSpace(part)); d {
		case KDE, GNOME, XFCE:
			return d
		}
	}
	log.Warn().Str("desktop", value).Msg("Unsupported desktop environment")
	return None
}

// ThemeConfig holds the user's appearance options.
type ThemeConfig struct {
	Dark bool `yaml:"dark" json:"dark"`
}

// Map renders the config for the decision store.
func (c ThemeConfig) Map() map[string]any {
	return map[string]any{"dark": c.Dark}
}

// ThemeBackend detects and applies the edition theme of one desktop.
type ThemeBackend interface {
	Name() Desktop
	// Detect never fails; any probe error yields Pure.
	Detect(ctx context.Context) Edition
	Apply(ctx context.Context, e Edition, cfg ThemeConfig) error
}

// Theme is a light/dark pair of theme names.
type Theme struct {
	Light string `koanf:"light"`
	Dark  string `koanf:"dark"`
}

// Pick returns the variant for the dark flag.
func (t Theme) Pick(dark bool) string {
	if dark {
		return t.Dark
	}
	return t.Light
}

// Themes holds the theme pairs of both editions.
type Themes struct {
	Pure   Theme `koanf:"pure"`
	Themed Theme `koanf:"themed"`
}

// For returns the theme name for an edition and dark flag.
func (t Themes) For(e Edition, dark bool) string {
	if e == Themed {
		return t.Themed.Pick(dark)
	}
	return t.Pure.Pick(dark)
}
