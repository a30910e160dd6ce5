package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/edition"
)

// ThemeChoice is the result of the theme chooser.
type ThemeChoice struct {
	Edition edition.Edition
	Dark    bool
}

// buildThemeForm creates the edition and dark mode form bound to choice.
func buildThemeForm(choice *ThemeChoice) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[edition.Edition]().
				Title("Edition").
				Description("Which look should the installed system get?").
				Options(
					huh.NewOption("Pure - upstream desktop themes", edition.Pure),
					huh.NewOption("Themed - distribution themes", edition.Themed),
				).
				Value(&choice.Edition),

			huh.NewConfirm().
				Title("Dark mode").
				Description("Use the dark variant of the theme").
				Affirmative("Dark").
				Negative("Light").
				Value(&choice.Dark),
		).Title("Theme").Description("Applied by the edition hook"),
	).
		WithTheme(Theme()).
		WithShowHelp(true)
}

// RunThemeForm asks for the edition and dark mode, starting from initial.
func RunThemeForm(initial ThemeChoice) (ThemeChoice, error) {
	choice := initial
	if choice.Edition == "" {
		choice.Edition = edition.Pure
	}
	if err := buildThemeForm(&choice).Run(); err != nil {
		return initial, err
	}
	return choice, nil
}
