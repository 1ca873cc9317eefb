// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"

	// Message headers
	TokenHeaderFrom    ColorToken = "header.from"
	TokenHeaderSubject ColorToken = "header.subject"
	TokenHeaderDate    ColorToken = "header.date"

	// Quote depth colors cycle after depth 4
	TokenQuoteDepth1    ColorToken = "quote.depth1"
	TokenQuoteDepth2    ColorToken = "quote.depth2"
	TokenQuoteDepth3    ColorToken = "quote.depth3"
	TokenQuoteDepth4    ColorToken = "quote.depth4"
	TokenQuoteCollapsed ColorToken = "quote.collapsed"

	// Diff rendering
	TokenDiffAdded       ColorToken = "diff.added"
	TokenDiffDeleted     ColorToken = "diff.deleted"
	TokenDiffHunk        ColorToken = "diff.hunk"
	TokenDiffGutter      ColorToken = "diff.gutter"
	TokenDiffFile        ColorToken = "diff.file"
	TokenDiffWordAdded   ColorToken = "diff.word.added"
	TokenDiffWordDeleted ColorToken = "diff.word.deleted"

	// Thread list
	TokenThreadPatch ColorToken = "thread.patch"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"

	// Misc
	TokenSpinner ColorToken = "spinner"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,
		TokenSelectionBackground,

		TokenHeaderFrom,
		TokenHeaderSubject,
		TokenHeaderDate,

		TokenQuoteDepth1,
		TokenQuoteDepth2,
		TokenQuoteDepth3,
		TokenQuoteDepth4,
		TokenQuoteCollapsed,

		TokenDiffAdded,
		TokenDiffDeleted,
		TokenDiffHunk,
		TokenDiffGutter,
		TokenDiffFile,
		TokenDiffWordAdded,
		TokenDiffWordDeleted,

		TokenThreadPatch,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,

		TokenSpinner,
	}
}
