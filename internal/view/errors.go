// Package view renders quote trees, diff summaries and messages as styled
// terminal lines. It holds no terminal state; the app and the show command
// both feed its output to their own writers.
package view

import (
	"errors"
	"os"
	"strings"

	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

// ErrorCategory represents the category of a user-facing error.
type ErrorCategory int

const (
	// ErrCategoryParse indicates a diff that could not be parsed - show raw diff.
	ErrCategoryParse ErrorCategory = iota
	// ErrCategoryArchive indicates an archive that could not be read.
	ErrCategoryArchive
	// ErrCategoryNotFound indicates a message reference that matched nothing.
	ErrCategoryNotFound
	// ErrCategoryHighlight indicates an unknown theme or language.
	ErrCategoryHighlight
	// ErrCategoryOther is everything else.
	ErrCategoryOther
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryParse:
		return "Parse Error"
	case ErrCategoryArchive:
		return "Archive Error"
	case ErrCategoryNotFound:
		return "Not Found"
	case ErrCategoryHighlight:
		return "Highlight Error"
	default:
		return "Error"
	}
}

// Error is an error with a category and optional guidance for the user.
type Error struct {
	Category ErrorCategory
	Message  string
	HelpText string
	Err      error
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Err
}

// Classify wraps err in an Error whose category follows the sentinel it
// carries.
func Classify(err error) Error {
	e := Error{Category: ErrCategoryOther, Err: err}
	if err != nil {
		e.Message = err.Error()
	}

	switch {
	case err == nil:
	case errors.Is(err, diff.ErrUnparsable):
		e.Category = ErrCategoryParse
		e.Message = diff.ErrUnparsable.Error()
		e.HelpText = "The raw diff is shown below."
	case errors.Is(err, archive.ErrNotFound):
		e.Category = ErrCategoryNotFound
		e.HelpText = "Messages are addressed by 1-based index or Message-ID."
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		e.Category = ErrCategoryArchive
		e.HelpText = "Check the archive path."
	case errors.Is(err, highlight.ErrUnknownTheme), errors.Is(err, highlight.ErrUnknownLanguage):
		e.Category = ErrCategoryHighlight
		e.HelpText = "Run `mlv themes` to list the available themes."
	}
	return e
}

// RenderError renders e as a title line, the message and its help text.
func RenderError(e Error) []string {
	lines := []string{
		styles.ErrorStyle.Render("✗ " + e.Category.String()),
		e.Message,
	}
	if e.HelpText != "" {
		lines = append(lines, styles.MutedStyle.Render(e.HelpText))
	}
	return lines
}

// ErrorString is RenderError joined into one block.
func ErrorString(err error) string {
	return strings.Join(RenderError(Classify(err)), "\n")
}
