// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Body text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Message ids, counts
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"} // Hints, help text, footers

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in the thread list)
	SelectionIndicatorColor  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#2D3436"}

	// Message headers
	HeaderFromColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	HeaderSubjectColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}
	HeaderDateColor    = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"}

	// Quote depth colors
	QuoteDepth1Color    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}
	QuoteDepth2Color    = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	QuoteDepth3Color    = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
	QuoteDepth4Color    = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}
	QuoteCollapsedColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	// Diff colors
	DiffAddedColor       = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDeletedColor     = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	DiffHunkColor        = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	DiffGutterColor      = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#585B70"}
	DiffFileColor        = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}
	DiffWordAddedColor   = lipgloss.AdaptiveColor{Light: "#C8F0D0", Dark: "#1E4D2B"}
	DiffWordDeletedColor = lipgloss.AdaptiveColor{Light: "#F8CFCF", Dark: "#5C1F1F"}

	// Thread list
	ThreadPatchColor = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle        = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	HeaderFromStyle    = lipgloss.NewStyle().Foreground(HeaderFromColor)
	HeaderSubjectStyle = lipgloss.NewStyle().Foreground(HeaderSubjectColor).Bold(true)
	HeaderDateStyle    = lipgloss.NewStyle().Foreground(HeaderDateColor)

	QuoteCollapsedStyle = lipgloss.NewStyle().Foreground(QuoteCollapsedColor).Italic(true)

	DiffAddedStyle       = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffDeletedStyle     = lipgloss.NewStyle().Foreground(DiffDeletedColor)
	DiffHunkStyle        = lipgloss.NewStyle().Foreground(DiffHunkColor)
	DiffGutterStyle      = lipgloss.NewStyle().Foreground(DiffGutterColor)
	DiffFileStyle        = lipgloss.NewStyle().Foreground(DiffFileColor).Bold(true)
	DiffWordAddedStyle   = lipgloss.NewStyle().Background(DiffWordAddedColor)
	DiffWordDeletedStyle = lipgloss.NewStyle().Background(DiffWordDeletedColor)

	ThreadPatchStyle = lipgloss.NewStyle().Foreground(ThreadPatchColor).Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)
)

// QuoteDepthColor returns the color for a quote at depth d. Depth 0 is body
// text; deeper levels cycle through the four quote colors.
func QuoteDepthColor(d int) lipgloss.AdaptiveColor {
	if d <= 0 {
		return TextPrimaryColor
	}
	switch (d - 1) % 4 {
	case 0:
		return QuoteDepth1Color
	case 1:
		return QuoteDepth2Color
	case 2:
		return QuoteDepth3Color
	default:
		return QuoteDepth4Color
	}
}

// QuoteStyle returns the foreground style for text at depth d.
func QuoteStyle(d int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(QuoteDepthColor(d))
}
