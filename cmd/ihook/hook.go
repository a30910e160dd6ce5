package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/actions"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/hooks"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/logging"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/tui"
)

// newHookCmd creates the subcommand for a single hook.
func newHookCmd(opts *rootOptions, hook hooks.Hook, short string) *cobra.Command {
	return &cobra.Command{
		Use:   hook.Name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooks(cmd, opts, hook)
		},
	}
}

// newRunCmd creates the run subcommand
func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run hardware, edition and packages in order",
		Long:  `Run every hook in installer order, stopping at the first failure.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooks(cmd, opts, hooks.Sequence...)
		},
	}
}

// runHooks runs the given hooks against the configured store and prints
// the action report.
func runHooks(cmd *cobra.Command, opts *rootOptions, list ...hooks.Hook) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}

	s, err := a.loadStore()
	if err != nil {
		return err
	}

	report := actions.NewReport()
	d := a.deps(s, report.Callback())
	defer printReport(cmd.OutOrStdout(), report)

	for _, h := range list {
		d.Log = logging.ForHook(a.log, h.Name)
		d.Log.Info().Msg("Running hook")
		if err := h.Run(cmd.Context(), d); err != nil {
			return err
		}
	}
	return nil
}

// printReport prints one line per action outcome.
func printReport(w io.Writer, report *actions.Report) {
	events := report.Events()
	if len(events) == 0 {
		return
	}

	for _, e := range events {
		status := e.Status.String()
		line := fmt.Sprintf("  %s %-14s %s", tui.StatusStyle(status).Render(tui.StatusIcon(status)), e.Action, e.Status.DisplayName())
		if e.Message != "" {
			line += " " + tui.DimStyle.Render("("+e.Message+")")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%d done, %d skipped, %d failed\n",
		report.Count(actions.StatusOK), report.Count(actions.StatusSkipped), report.Count(actions.StatusFailed))
}
