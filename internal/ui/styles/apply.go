package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	switch cfg.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

// colorTargets maps each token onto the variables it drives.
func colorTargets() map[ColorToken][]*lipgloss.AdaptiveColor {
	return map[ColorToken][]*lipgloss.AdaptiveColor{
		TokenTextPrimary:   {&TextPrimaryColor},
		TokenTextSecondary: {&TextSecondaryColor},
		TokenTextMuted:     {&TextMutedColor},

		TokenBorderDefault: {&BorderDefaultColor},
		TokenBorderFocus:   {&BorderFocusColor},

		TokenStatusSuccess: {&StatusSuccessColor},
		TokenStatusWarning: {&StatusWarningColor},
		TokenStatusError:   {&StatusErrorColor},

		TokenSelectionIndicator:  {&SelectionIndicatorColor},
		TokenSelectionBackground: {&SelectionBackgroundColor},

		TokenHeaderFrom:    {&HeaderFromColor},
		TokenHeaderSubject: {&HeaderSubjectColor},
		TokenHeaderDate:    {&HeaderDateColor},

		TokenQuoteDepth1:    {&QuoteDepth1Color},
		TokenQuoteDepth2:    {&QuoteDepth2Color},
		TokenQuoteDepth3:    {&QuoteDepth3Color},
		TokenQuoteDepth4:    {&QuoteDepth4Color},
		TokenQuoteCollapsed: {&QuoteCollapsedColor},

		TokenDiffAdded:       {&DiffAddedColor},
		TokenDiffDeleted:     {&DiffDeletedColor},
		TokenDiffHunk:        {&DiffHunkColor},
		TokenDiffGutter:      {&DiffGutterColor},
		TokenDiffFile:        {&DiffFileColor},
		TokenDiffWordAdded:   {&DiffWordAddedColor},
		TokenDiffWordDeleted: {&DiffWordDeletedColor},

		TokenThreadPatch: {&ThreadPatchColor},

		TokenToastSuccess: {&ToastBorderSuccessColor},
		TokenToastError:   {&ToastBorderErrorColor},
		TokenToastInfo:    {&ToastBorderInfoColor},

		TokenSpinner: {&SpinnerColor},
	}
}

func applyColors(colors map[ColorToken]string) {
	targets := colorTargets()
	for token, hex := range colors {
		for _, target := range targets[token] {
			*target = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// lipgloss.Style values capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	HeaderFromStyle = lipgloss.NewStyle().Foreground(HeaderFromColor)
	HeaderSubjectStyle = lipgloss.NewStyle().Foreground(HeaderSubjectColor).Bold(true)
	HeaderDateStyle = lipgloss.NewStyle().Foreground(HeaderDateColor)

	QuoteCollapsedStyle = lipgloss.NewStyle().Foreground(QuoteCollapsedColor).Italic(true)

	DiffAddedStyle = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffDeletedStyle = lipgloss.NewStyle().Foreground(DiffDeletedColor)
	DiffHunkStyle = lipgloss.NewStyle().Foreground(DiffHunkColor)
	DiffGutterStyle = lipgloss.NewStyle().Foreground(DiffGutterColor)
	DiffFileStyle = lipgloss.NewStyle().Foreground(DiffFileColor).Bold(true)
	DiffWordAddedStyle = lipgloss.NewStyle().Background(DiffWordAddedColor)
	DiffWordDeletedStyle = lipgloss.NewStyle().Background(DiffWordDeletedColor)

	ThreadPatchStyle = lipgloss.NewStyle().Foreground(ThreadPatchColor).Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
