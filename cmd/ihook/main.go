// Package main provides the ihook CLI, the entry point the installer runs
// for each hook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/config"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/hooks"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints hook failures as the bare message the host shows and
// anything else with an error prefix.
func reportError(cmd *cobra.Command, err error) {
	if f, ok := hooks.AsFailure(err); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configFile string
}

// newRootCmd creates the root command for ihook
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "ihook",
		Short: "Installer hooks for hardware, edition and package decisions",
		Long: `ihook runs the installer's custom steps against a shared decision store.

The hooks run in order:
  hardware   probe CPU, GPU and boot mode and record them
  edition    detect the desktop and edition and apply the theme
  packages   adjust the installed packages of the target root`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default "+config.DefaultFile+" when present)")
	flags.String("store", defaults.Store, "Decision store document (yaml or json)")
	flags.String("log-level", defaults.Log.Level, "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "Log format (console or json)")

	rootCmd.AddCommand(
		newHookCmd(opts, hooks.Sequence[0], "Probe hardware and record CPU, GPU and boot mode"),
		newHookCmd(opts, hooks.Sequence[1], "Detect desktop and edition and apply the theme"),
		newHookCmd(opts, hooks.Sequence[2], "Adjust packages in the target root"),
		newRunCmd(opts),
		newShowCmd(opts),
		newThemeCmd(opts),
		newDoctorCmd(opts),
		newValidateCmd(opts),
	)

	return rootCmd
}
