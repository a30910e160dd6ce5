// Package tui provides the interactive terminal surfaces of ihook: the theme
// chooser form, the doctor view and shared styles.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the custom theme for the TUI forms.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	// Customize colors
	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color("39"))            // Cyan
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color("8")) // Gray
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(lipgloss.Color("40")).Bold(true)

	return t
}

// Styles for various TUI components
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237"))

	CommandStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// StatusStyle returns the style for an outcome name such as "ok",
// "skipped", "missing", "warning" or "failed".
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "ok":
		return SuccessStyle
	case "skipped", "warning":
		return WarningStyle
	case "failed", "missing", "error":
		return ErrorStyle
	default:
		return DimStyle
	}
}

// StatusIcon returns the glyph shown next to an outcome.
func StatusIcon(status string) string {
	switch status {
	case "ok":
		return "✓"
	case "missing", "failed":
		return "✗"
	case "warning", "skipped":
		return "⚠"
	case "error":
		return "!"
	default:
		return "?"
	}
}
