package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/store"
	"github.com/jaspreet-dot-casa/install-hooks/pkg/tui"
)

// newShowCmd creates the show subcommand
func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the decision store",
		Long: `Show every known decision store key with its value.

Values that do not match the expected type are flagged. Use --format yaml or
--format json to dump the raw document instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			s, err := a.loadStore()
			if err != nil {
				return err
			}

			switch format {
			case "table":
				renderStore(cmd.OutOrStdout(), s)
				return nil
			case string(store.FormatYAML), string(store.FormatJSON):
				data, err := s.Marshal(store.Format(format))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return fmt.Errorf("invalid format %q (expected table, yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, yaml, json)")
	return cmd
}

var titler = cases.Title(language.English, cases.NoLower)

// renderStore prints the schema keys followed by any other keys.
func renderStore(w io.Writer, s *store.Store) {
	title := tui.TitleStyle.Render("Decision store")
	if s.Path() != "" {
		title += " " + tui.DimStyle.Render(s.Path())
	}
	fmt.Fprintln(w, title)

	width := 0
	for _, f := range store.Schema {
		width = max(width, lipgloss.Width(titler.String(f.Description)))
	}
	label := tui.KeyStyle.Width(width + 2)

	for _, f := range store.Schema {
		value, ok := s.Value(f.Key)
		fmt.Fprintln(w, label.Render(titler.String(f.Description))+renderValue(f.Key, value, ok))
	}

	var other []string
	for _, key := range s.Keys() {
		if _, known := store.Lookup(key); !known {
			other = append(other, key)
		}
	}
	if len(other) > 0 {
		fmt.Fprintln(w, "\n"+tui.DimStyle.Render("Other keys: "+strings.Join(other, ", ")))
	}
}

func renderValue(key string, value any, ok bool) string {
	if !ok || value == nil {
		return tui.DimStyle.Render("(unset)")
	}
	if err := store.Check(key, value); err != nil {
		return tui.ErrorStyle.Render(err.Error())
	}
	return formatValue(value)
}

// formatValue renders decoded document values on one line.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return tui.DimStyle.Render(`""`)
		}
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}
		if len(parts) == 0 {
			return tui.DimStyle.Render("(none)")
		}
		return strings.Join(parts, ", ")
	case []map[string]any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+formatValue(v[k]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}
