package hooks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// ActionTheme is the report name of theme application.
const ActionTheme = "theme"

// Edition detects the desktop and edition, records them and applies the
// theme. An edition already chosen in the store takes precedence over the
// detected one. An edition the hook detected on an earlier run is
// detected again.
func Edition(ctx context.Context, d Deps) error {
	log := d.Log

	desktop := edition.DesktopFromEnv(d.DesktopEnv, log)
	if desktop == edition.None && d.RequireDesktop {
		return &Failure{Message: MsgNoDesktop}
	}

	detected := d.Detector.Detect(ctx, desktop)
	chosen, source := chosenEdition(d.Store, detected, log)
	log.Debug().
		Str("desktop", string(desktop)).
		Str("detected", string(detected)).
		Str("edition", string(chosen)).
		Str("source", source).
		Msg("Edition detected")

	if err := d.Store.Insert(store.KeyDesktop, string(desktop)); err != nil {
		return fmt.Errorf("edition: %w", err)
	}
	if err := d.Store.Insert(store.KeyEditionType, string(chosen)); err != nil {
		return fmt.Errorf("edition: %w", err)
	}
	if err := d.Store.Insert(store.KeyEditionSource, source); err != nil {
		return fmt.Errorf("edition: %w", err)
	}

	cfg := ThemeConfigFrom(d.Store, log)
	plan := actions.NewPlan(log, d.OnEvent)
	plan.Run(ctx, ActionTheme, func(ctx context.Context) error {
		if desktop == edition.None {
			return actions.Skip("no supported desktop")
		}
		return d.Detector.Apply(ctx, desktop, chosen, cfg)
	})

	if err := save(d.Store); err != nil {
		return fmt.Errorf("edition: %w", err)
	}
	return nil
}

// chosenEdition returns the stored edition when the theme command chose it,
// otherwise the detected one.
func chosenEdition(s *store.Store, detected edition.Edition, log zerolog.Logger) (edition.Edition, string) {
	source, err := s.String(store.KeyEditionSource)
	if err != nil {
		if !store.IsMissing(err) {
			log.Warn().Err(err).Msg("Ignoring stored edition source")
		}
		return detected, store.EditionDetected
	}
	if source != store.EditionChosen {
		return detected, store.EditionDetected
	}

	raw, err := s.String(store.KeyEditionType)
	if err != nil {
		if !store.IsMissing(err) {
			log.Warn().Err(err).Msg("Ignoring stored edition")
		}
		return detected, store.EditionDetected
	}
	e, err := edition.ParseEdition(raw)
	if err != nil {
		return detected, store.EditionDetected
	}
	return e, store.EditionChosen
}

// ThemeConfigFrom reads theme_config, defaulting to a light theme.
func ThemeConfigFrom(s *store.Store, log zerolog.Logger) edition.ThemeConfig {
	var cfg edition.ThemeConfig

	m, err := s.Map(store.KeyThemeConfig)
	if err != nil {
		if !store.IsMissing(err) {
			log.Warn().Err(err).Msg("Ignoring malformed theme config")
		}
		return cfg
	}

	switch dark := m["dark"].(type) {
	case bool:
		cfg.Dark = dark
	case nil:
	default:
		log.Warn().Interface("dark", dark).Msg("theme_config.dark is not a boolean")
	}
	return cfg
}
