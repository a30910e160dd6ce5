package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/config"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/hooks"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/logging"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/probe"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/runner"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
)

// Swapped out in tests.
var (
	newRunner = func() runner.Runner { return runner.NewExec() }
	getenv    = os.Getenv
)

// app is the wiring shared by the subcommands.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	runner runner.Runner
}

// newApp loads configuration and builds the logger for one invocation.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(cmd.Flags(), opts.configFile)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    logging.WithRun(log, logging.NewRunID()),
		runner: newRunner(),
	}, nil
}

// loadStore opens the configured decision store.
func (a *app) loadStore() (*store.Store, error) {
	return store.Load(a.cfg.Store)
}

// deps assembles the hook dependencies around s.
func (a *app) deps(s *store.Store, onEvent actions.Callback) hooks.Deps {
	return hooks.Deps{
		Store:          s,
		Runner:         a.runner,
		Prober:         probe.New(a.runner, a.cfg.Probe, a.log),
		Detector:       edition.NewDetector(edition.Backends(a.runner, a.cfg.Edition, a.log), a.log),
		DesktopEnv:     getenv(edition.DesktopEnvVar),
		RequireDesktop: a.cfg.Edition.RequireDesktop,
		Actions:        a.cfg.Actions,
		Log:            a.log,
		OnEvent:        onEvent,
	}
}
