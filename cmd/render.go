package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/view"
)

// defaultWidth is used by the non-interactive commands.
const defaultWidth = 100

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// lineMarkup highlights every content line of res up front and returns a
// lookup for view.RenderDiff. Lines carrying word-diff segments keep their
// emphasis and are skipped.
func lineMarkup(ctx context.Context, hl *highlight.Service, res diff.Result) view.MarkupFunc {
	markup := make(map[string]string)
	for _, f := range res.Files {
		if f.Language == "" {
			continue
		}
		for _, l := range f.Lines {
			if l.Kind.Structural() || len(l.Segments) > 0 || l.Text == "" {
				continue
			}
			r := hl.HighlightInline(ctx, l.Text, f.Language)
			if r.Fallback {
				continue
			}
			markup[f.Key+"\x00"+l.Key] = r.Markup
		}
	}
	return func(fileKey, lineKey string) (string, bool) {
		s, ok := markup[fileKey+"\x00"+lineKey]
		return s, ok
	}
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
