package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List syntax highlight themes and UI presets",
	Long: `List the names accepted by highlight.theme and theme.preset.
The configured ones are marked with '*'.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Highlight themes (highlight.theme):")
	current := cfg.Highlight.Theme
	if current == "" {
		current = highlight.DefaultTheme
	}
	for _, name := range highlight.Themes() {
		fmt.Fprintf(out, "  %s %s\n", mark(name == current), name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "UI presets (theme.preset):")
	preset := cfg.Theme.Preset
	if preset == "" {
		preset = "default"
	}
	for _, name := range styles.PresetNames() {
		fmt.Fprintf(out, "  %s %-14s %s\n", mark(name == preset), name, styles.Presets[name].Description)
	}
	return nil
}

func mark(on bool) string {
	if on {
		return "*"
	}
	return " "
}
