package view

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
)

func TestErrorCategory_String(t *testing.T) {
	require.Equal(t, "Parse Error", ErrCategoryParse.String())
	require.Equal(t, "Archive Error", ErrCategoryArchive.String())
	require.Equal(t, "Not Found", ErrCategoryNotFound.String())
	require.Equal(t, "Highlight Error", ErrCategoryHighlight.String())
	require.Equal(t, "Error", ErrCategoryOther.String())
	require.Equal(t, "Error", ErrorCategory(99).String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"parse", fmt.Errorf("%w: bad hunk", diff.ErrUnparsable), ErrCategoryParse},
		{"not found", fmt.Errorf("%w: index 9", archive.ErrNotFound), ErrCategoryNotFound},
		{"missing file", fmt.Errorf("opening archive: %w", os.ErrNotExist), ErrCategoryArchive},
		{"theme", fmt.Errorf("%w: nope", highlight.ErrUnknownTheme), ErrCategoryHighlight},
		{"other", errors.New("boom"), ErrCategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.err)
			require.Equal(t, tt.want, e.Category)
			require.ErrorIs(t, e, tt.err)
			require.NotEmpty(t, e.Message)
		})
	}
}

func TestClassify_ParseUsesUserFacingMessage(t *testing.T) {
	e := Classify(fmt.Errorf("%w: gitdiff: fragment header", diff.ErrUnparsable))

	require.Equal(t, "unable to parse diff", e.Error())
	require.NotEmpty(t, e.HelpText)
}

func TestClassify_Nil(t *testing.T) {
	e := Classify(nil)

	require.Equal(t, ErrCategoryOther, e.Category)
	require.Empty(t, e.Message)
	require.NoError(t, e.Unwrap())
}
