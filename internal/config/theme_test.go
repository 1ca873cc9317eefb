package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/mlv/internal/ui/styles"
)

func applyTheme(t *testing.T, cfg Config) error {
	t.Helper()
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	})
}

func TestThemeConfig_WithPreset(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: catppuccin-mocha
`)

	require.Equal(t, "catppuccin-mocha", cfg.Theme.Preset)
	require.NoError(t, applyTheme(t, cfg))
	require.Equal(t, "#CDD6F4", styles.TextPrimaryColor.Dark)
}

func TestThemeConfig_DottedColorsFromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  colors:
    quote.depth1: "#FF0000"
    diff.added: "#00FF00"
    diff.word.deleted: "#0000FF"
`)

	require.Equal(t, "#FF0000", cfg.Theme.FlattenedColors()["quote.depth1"])
	require.NoError(t, applyTheme(t, cfg))
	require.Equal(t, "#FF0000", styles.QuoteDepth1Color.Dark)
	require.Equal(t, "#00FF00", styles.DiffAddedColor.Dark)
	require.Equal(t, "#0000FF", styles.DiffWordDeletedColor.Dark)
}

func TestThemeConfig_NestedColorsFromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  colors:
    quote:
      depth2: "#123456"
    diff:
      word:
        added: "#654321"
`)

	require.NoError(t, applyTheme(t, cfg))
	require.Equal(t, "#123456", styles.QuoteDepth2Color.Dark)
	require.Equal(t, "#654321", styles.DiffWordAddedColor.Dark)
}

func TestThemeConfig_PresetWithOverrides(t *testing.T) {
	cfg := Config{
		Theme: ThemeConfig{
			Preset: "dracula",
			Colors: map[string]any{"text.primary": "#123456"},
		},
	}

	require.NoError(t, applyTheme(t, cfg))
	require.Equal(t, "#123456", styles.TextPrimaryColor.Dark)
	require.Equal(t, "#FF5555", styles.StatusErrorColor.Dark)
}

func TestThemeConfig_InvalidPreset(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nonexistent-theme
`)

	err := applyTheme(t, cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")
}

func TestThemeConfig_InvalidColorToken(t *testing.T) {
	cfg := Config{Theme: ThemeConfig{Colors: map[string]any{"invalid.token.name": "#FF0000"}}}

	err := applyTheme(t, cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")
}

func TestThemeConfig_EmptyConfig(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
ui:
  wrap: true
`)

	require.Empty(t, cfg.Theme.Preset)
	require.Nil(t, cfg.Theme.Colors)
	require.NoError(t, applyTheme(t, cfg))
	require.Equal(t, styles.DefaultPreset.Colors[styles.TokenTextPrimary], styles.TextPrimaryColor.Dark)
}
