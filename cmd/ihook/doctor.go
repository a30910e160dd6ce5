package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/doctor"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/tui"
)

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the tools the hooks depend on",
		Long: `Check that the probe, desktop and target tools the hooks call are installed.

Missing tools are listed with the pacman command that installs them. With
--interactive a navigable view offers to copy or run the fix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			checker := doctor.NewChecker(a.runner, a.cfg.Probe.ProcRoot, getenv(edition.DesktopEnvVar))
			if interactive {
				return tui.RunDoctor(cmd.Context(), checker, doctor.NewFixer(a.runner, a.cfg.Actions.Escalate))
			}

			groups := checker.CheckAllAsync(cmd.Context())
			printChecks(cmd.OutOrStdout(), groups)

			if doctor.HasIssues(groups) {
				s := doctor.GetSummary(groups)
				return fmt.Errorf("%d missing, %d failed", s.Missing, s.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive view")
	return cmd
}

// printChecks prints every group with its check results and fix hints.
func printChecks(w io.Writer, groups []doctor.CheckGroup) {
	for _, g := range groups {
		fmt.Fprintln(w, tui.KeyStyle.Bold(true).Render(g.Name))
		for _, c := range g.Checks {
			status := c.Status.String()
			fmt.Fprintf(w, "  %s %-26s %s\n",
				tui.StatusStyle(status).Render(tui.StatusIcon(status)), c.Name, tui.DimStyle.Render(c.Message))
			if c.Status == doctor.StatusMissing && c.FixCommand != nil {
				fmt.Fprintf(w, "    %s\n", tui.CommandStyle.Render(c.FixCommand.Command))
			}
		}
		fmt.Fprintln(w)
	}

	s := doctor.GetSummary(groups)
	fmt.Fprintf(w, "%d checks: %d ok, %d missing, %d warnings, %d errors\n", s.Total, s.OK, s.Missing, s.Warnings, s.Errors)
}
