package cmd

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/view"
)

var (
	diffHTML  bool
	diffWidth int
)

var diffCmd = &cobra.Command{
	Use:   "diff [file|-]",
	Short: "Render a diff or a patch email",
	Long: `Render a unified diff (or an email carrying one) with syntax highlighting
and word-level emphasis. Reads stdin when the file is "-" or omitted.

Example:
  git format-patch -1 --stdout | mlv diff
  mlv diff --html fix.patch > fix.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffHTML, "html", false, "write an HTML page instead of terminal output")
	diffCmd.Flags().IntVarP(&diffWidth, "width", "w", 0, "truncate lines to this width (0 keeps them whole)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("mlv-diff")
	if err != nil {
		return err
	}
	defer cleanup()

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	asHTML := diffHTML || cfg.Highlight.Format == string(highlight.FormatHTML)
	format := highlight.FormatTerminal
	if asHTML {
		format = highlight.FormatHTML
	} else if err := applyUITheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	svc, err := newServices(format)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()
	res := svc.pipeline.Render(ctx, text, nil)
	if res.Raw == "" && res.Err == nil {
		return errNoDiff
	}

	if asHTML {
		return writeHTML(ctx, cmd.OutOrStdout(), svc.highlighter, res)
	}
	if res.Err != nil && res.Raw == "" {
		return res.Err
	}

	lines := view.RenderDiff(res, view.DiffOptions{
		Width:    diffWidth,
		TabWidth: cfg.Diff.TabWidth,
		Markup:   lineMarkup(ctx, svc.highlighter, res),
	})
	return writeLines(cmd.OutOrStdout(), lines)
}

var errNoDiff = errors.New("no diff found in input")

var htmlKindClass = map[diff.LineKind]string{
	diff.KindAdded:     "add",
	diff.KindDeleted:   "del",
	diff.KindContext:   "hunk",
	diff.KindSeparator: "sep",
	diff.KindBinary:    "note",
	diff.KindMessage:   "note",
}

const htmlHead = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title>
<style>
body { font-family: monospace; }
pre { margin: 0 0 1.5em 0; }
.add { background: #e6ffed; }
.del { background: #ffeef0; }
.hunk { color: #1e66f5; }
.note, .sep, .gutter { color: #888; }
ins { background: #acf2bd; text-decoration: none; }
del { background: #fdb8c0; text-decoration: none; }
</style></head><body>
`

// writeHTML renders res as a standalone page. Syntax markup comes from the
// highlighter in HTML mode; word-diff runs become <ins> and <del>.
func writeHTML(ctx context.Context, w io.Writer, hl *highlight.Service, res diff.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, htmlHead, "diff")

	if res.Err != nil {
		fmt.Fprintf(&b, "<p class=\"note\">%s</p>\n", html.EscapeString(view.Classify(res.Err).Message))
		if res.Raw != "" {
			fmt.Fprintf(&b, "<pre>%s</pre>\n", html.EscapeString(res.Raw))
		}
	}

	markup := lineMarkup(ctx, hl, res)
	for _, f := range res.Files {
		fmt.Fprintf(&b, "<h3>%s <span class=\"gutter\">+%d -%d</span></h3>\n<pre>",
			html.EscapeString(f.Title), f.Additions, f.Deletions)
		for _, l := range f.Lines {
			fmt.Fprintf(&b, "<div class=\"%s\"><span class=\"gutter\">%5s </span>%s</div>",
				htmlKindClass[l.Kind], html.EscapeString(l.Label), htmlLine(f.Key, l, markup))
		}
		b.WriteString("</pre>\n")
	}

	b.WriteString("</body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func htmlLine(fileKey string, l diff.DisplayLine, markup view.MarkupFunc) string {
	if l.Kind == diff.KindSeparator {
		return "⋯"
	}
	if len(l.Segments) > 0 {
		var b strings.Builder
		for _, s := range l.Segments {
			text := html.EscapeString(s.Text)
			switch s.Kind {
			case diff.SegmentAdded:
				b.WriteString("<ins>" + text + "</ins>")
			case diff.SegmentDeleted:
				b.WriteString("<del>" + text + "</del>")
			default:
				b.WriteString(text)
			}
		}
		return b.String()
	}
	if !l.Kind.Structural() {
		if s, ok := markup(fileKey, l.Key); ok {
			return s
		}
	}
	return html.EscapeString(l.Text)
}
