package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/hooks"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/tui"
)

// runThemeForm is swapped out in tests.
var runThemeForm = tui.RunThemeForm

// newThemeCmd creates the theme subcommand
func newThemeCmd(opts *rootOptions) *cobra.Command {
	var editionFlag string
	var dark bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Choose the edition and dark mode",
		Long: `Record the edition and dark mode the edition hook applies.

Without flags an interactive form is shown. With --edition or --dark the
choice is written without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			return store.Update(a.cfg.Store, func(s *store.Store) error {
				choice := storedChoice(s, a.log)

				if cmd.Flags().Changed("edition") || cmd.Flags().Changed("dark") {
					if cmd.Flags().Changed("edition") {
						e, err := edition.ParseEdition(editionFlag)
						if err != nil {
							return err
						}
						choice.Edition = e
					}
					if cmd.Flags().Changed("dark") {
						choice.Dark = dark
					}
				} else {
					choice, err = runThemeForm(choice)
					if err != nil {
						return err
					}
				}

				if err := s.Insert(store.KeyEditionType, string(choice.Edition)); err != nil {
					return err
				}
				if err := s.Insert(store.KeyEditionSource, store.EditionChosen); err != nil {
					return err
				}
				if err := s.Insert(store.KeyThemeConfig, edition.ThemeConfig{Dark: choice.Dark}.Map()); err != nil {
					return err
				}

				a.log.Info().
					Str("edition", string(choice.Edition)).
					Bool("dark", choice.Dark).
					Msg("Theme choice saved")
				fmt.Fprintf(cmd.OutOrStdout(), "Edition %s, dark mode %t\n", choice.Edition, choice.Dark)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&editionFlag, "edition", "e", "", "Edition to record (pure or themed)")
	cmd.Flags().BoolVar(&dark, "dark", false, "Use the dark theme variant")
	return cmd
}

// storedChoice reads the current choice, falling back to pure and light.
func storedChoice(s *store.Store, log zerolog.Logger) tui.ThemeChoice {
	choice := tui.ThemeChoice{
		Edition: edition.Pure,
		Dark:    hooks.ThemeConfigFrom(s, log).Dark,
	}
	if v, err := s.String(store.KeyEditionType); err == nil {
		if e, err := edition.ParseEdition(v); err == nil {
			choice.Edition = e
		}
	}
	return choice
}
