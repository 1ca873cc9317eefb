package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset is the mlv color scheme. Every token has a value here.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default mlv theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#2D3436",

		TokenHeaderFrom:    "#89B4FA",
		TokenHeaderSubject: "#FFFFFF",
		TokenHeaderDate:    "#888888",

		TokenQuoteDepth1:    "#94E2D5",
		TokenQuoteDepth2:    "#CBA6F7",
		TokenQuoteDepth3:    "#F9E2AF",
		TokenQuoteDepth4:    "#FAB387",
		TokenQuoteCollapsed: "#6C7086",

		TokenDiffAdded:       "#73F59F",
		TokenDiffDeleted:     "#FF8787",
		TokenDiffHunk:        "#89B4FA",
		TokenDiffGutter:      "#585B70",
		TokenDiffFile:        "#FFFFFF",
		TokenDiffWordAdded:   "#1E4D2B",
		TokenDiffWordDeleted: "#5C1F1F",

		TokenThreadPatch: "#FAB387",

		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",

		TokenSpinner: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBorderDefault: "#45475A", // surface1
		TokenBorderFocus:   "#B4BEFE", // lavender

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator:  "#F5E0DC", // rosewater
		TokenSelectionBackground: "#313244", // surface0

		TokenHeaderFrom:    "#89B4FA", // blue
		TokenHeaderSubject: "#CDD6F4",
		TokenHeaderDate:    "#7F849C", // overlay1

		TokenQuoteDepth1:    "#94E2D5", // teal
		TokenQuoteDepth2:    "#CBA6F7", // mauve
		TokenQuoteDepth3:    "#F9E2AF", // yellow
		TokenQuoteDepth4:    "#FAB387", // peach
		TokenQuoteCollapsed: "#6C7086",

		TokenDiffAdded:       "#A6E3A1",
		TokenDiffDeleted:     "#F38BA8",
		TokenDiffHunk:        "#74C7EC", // sapphire
		TokenDiffGutter:      "#585B70", // surface2
		TokenDiffFile:        "#CDD6F4",
		TokenDiffWordAdded:   "#2E4A38",
		TokenDiffWordDeleted: "#5A2A3A",

		TokenThreadPatch: "#FAB387",

		TokenToastSuccess: "#A6E3A1",
		TokenToastError:   "#F38BA8",
		TokenToastInfo:    "#89B4FA",

		TokenSpinner: "#F5C2E7", // pink
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - soft light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#4C4F69", // text
		TokenTextSecondary: "#5C5F77", // subtext1
		TokenTextMuted:     "#9CA0B0", // overlay0

		TokenBorderDefault: "#BCC0CC", // surface1
		TokenBorderFocus:   "#7287FD", // lavender

		TokenStatusSuccess: "#40A02B",
		TokenStatusWarning: "#DF8E1D",
		TokenStatusError:   "#D20F39",

		TokenSelectionIndicator:  "#DC8A78", // rosewater
		TokenSelectionBackground: "#CCD0DA", // surface0

		TokenHeaderFrom:    "#1E66F5",
		TokenHeaderSubject: "#4C4F69",
		TokenHeaderDate:    "#8C8FA1",

		TokenQuoteDepth1:    "#179299",
		TokenQuoteDepth2:    "#8839EF",
		TokenQuoteDepth3:    "#DF8E1D",
		TokenQuoteDepth4:    "#FE640B",
		TokenQuoteCollapsed: "#9CA0B0",

		TokenDiffAdded:       "#40A02B",
		TokenDiffDeleted:     "#D20F39",
		TokenDiffHunk:        "#209FB5",
		TokenDiffGutter:      "#ACB0BE",
		TokenDiffFile:        "#4C4F69",
		TokenDiffWordAdded:   "#D2EBCB",
		TokenDiffWordDeleted: "#F3C9D1",

		TokenThreadPatch: "#FE640B",

		TokenToastSuccess: "#40A02B",
		TokenToastError:   "#D20F39",
		TokenToastInfo:    "#1E66F5",

		TokenSpinner: "#EA76CB",
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2", // foreground
		TokenTextSecondary: "#E2E2DC",
		TokenTextMuted:     "#6272A4", // comment

		TokenBorderDefault: "#44475A", // current line
		TokenBorderFocus:   "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenSelectionIndicator:  "#FF79C6", // pink
		TokenSelectionBackground: "#44475A",

		TokenHeaderFrom:    "#8BE9FD", // cyan
		TokenHeaderSubject: "#F8F8F2",
		TokenHeaderDate:    "#6272A4",

		TokenQuoteDepth1:    "#8BE9FD",
		TokenQuoteDepth2:    "#BD93F9",
		TokenQuoteDepth3:    "#F1FA8C",
		TokenQuoteDepth4:    "#FFB86C", // orange
		TokenQuoteCollapsed: "#6272A4",

		TokenDiffAdded:       "#50FA7B",
		TokenDiffDeleted:     "#FF5555",
		TokenDiffHunk:        "#BD93F9",
		TokenDiffGutter:      "#6272A4",
		TokenDiffFile:        "#F8F8F2",
		TokenDiffWordAdded:   "#245C34",
		TokenDiffWordDeleted: "#6B2525",

		TokenThreadPatch: "#FFB86C",

		TokenToastSuccess: "#50FA7B",
		TokenToastError:   "#FF5555",
		TokenToastInfo:    "#8BE9FD",

		TokenSpinner: "#FF79C6",
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // nord6
		TokenTextSecondary: "#E5E9F0", // nord5
		TokenTextMuted:     "#4C566A", // nord3

		TokenBorderDefault: "#434C5E", // nord2
		TokenBorderFocus:   "#88C0D0", // nord8

		TokenStatusSuccess: "#A3BE8C", // nord14
		TokenStatusWarning: "#EBCB8B", // nord13
		TokenStatusError:   "#BF616A", // nord11

		TokenSelectionIndicator:  "#88C0D0",
		TokenSelectionBackground: "#3B4252", // nord1

		TokenHeaderFrom:    "#81A1C1", // nord9
		TokenHeaderSubject: "#ECEFF4",
		TokenHeaderDate:    "#4C566A",

		TokenQuoteDepth1:    "#8FBCBB", // nord7
		TokenQuoteDepth2:    "#B48EAD", // nord15
		TokenQuoteDepth3:    "#EBCB8B",
		TokenQuoteDepth4:    "#D08770", // nord12
		TokenQuoteCollapsed: "#4C566A",

		TokenDiffAdded:       "#A3BE8C",
		TokenDiffDeleted:     "#BF616A",
		TokenDiffHunk:        "#5E81AC", // nord10
		TokenDiffGutter:      "#4C566A",
		TokenDiffFile:        "#ECEFF4",
		TokenDiffWordAdded:   "#3C4F3A",
		TokenDiffWordDeleted: "#5A3538",

		TokenThreadPatch: "#D08770",

		TokenToastSuccess: "#A3BE8C",
		TokenToastError:   "#BF616A",
		TokenToastInfo:    "#81A1C1",

		TokenSpinner: "#88C0D0",
	},
}

// HighContrastPreset is a high-contrast theme for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast theme for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#AAAAAA",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator:  "#FFFF00",
		TokenSelectionBackground: "#0000AA",

		TokenHeaderFrom:    "#00FFFF",
		TokenHeaderSubject: "#FFFFFF",
		TokenHeaderDate:    "#AAAAAA",

		TokenQuoteDepth1:    "#00FFFF",
		TokenQuoteDepth2:    "#FF00FF",
		TokenQuoteDepth3:    "#FFFF00",
		TokenQuoteDepth4:    "#FF8800",
		TokenQuoteCollapsed: "#AAAAAA",

		TokenDiffAdded:       "#00FF00",
		TokenDiffDeleted:     "#FF0000",
		TokenDiffHunk:        "#00FFFF",
		TokenDiffGutter:      "#AAAAAA",
		TokenDiffFile:        "#FFFFFF",
		TokenDiffWordAdded:   "#005500",
		TokenDiffWordDeleted: "#550000",

		TokenThreadPatch: "#FF8800",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",

		TokenSpinner: "#FFFF00",
	},
}
