package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/validation"
)

// newValidateCmd creates the validate subcommand
func newValidateCmd(opts *rootOptions) *cobra.Command {
	var requireRoot bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the decision store",
		Long: `Validate the decision store document: value types, allowed values,
the target root mount point and selected package names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			result := validation.NewValidator(requireRoot).ValidateFile(a.cfg.Store)
			out := cmd.OutOrStdout()

			for _, issue := range result.Issues {
				prefix := "WARNING"
				if issue.Severity == validation.SeverityError {
					prefix = "ERROR"
				}

				if issue.Field != "" {
					fmt.Fprintf(out, "[%s] %s: %s (%s)\n", prefix, issue.File, issue.Message, issue.Field)
				} else {
					fmt.Fprintf(out, "[%s] %s: %s\n", prefix, issue.File, issue.Message)
				}
			}

			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
			}

			if len(result.Issues) == 0 {
				fmt.Fprintln(out, "Decision store is valid.")
			} else {
				fmt.Fprintf(out, "\nValidation passed with %d warning(s).\n", result.WarningCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&requireRoot, "require-root", false, "Treat a missing rootMountPoint as an error")
	return cmd
}
