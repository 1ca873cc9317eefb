package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

// minGutterWidth is the narrowest line-number column.
const minGutterWidth = 4

// MarkupFunc looks up highlighted markup for a display line of a file.
type MarkupFunc func(fileKey, lineKey string) (string, bool)

// DiffOptions controls diff layout.
type DiffOptions struct {
	// Width truncates lines when positive.
	Width int
	// TabWidth expands tabs when positive.
	TabWidth int
	// Markup supplies highlighted content. Lines without markup fall back
	// to plain text in the line's diff color.
	Markup MarkupFunc
}

// RenderDiff lays out every file of res. A failed render shows the error
// and the raw diff text instead.
func RenderDiff(res diff.Result, opts DiffOptions) []string {
	if res.Err != nil {
		lines := RenderError(Classify(res.Err))
		if res.Raw != "" {
			lines = append(lines, "")
			lines = append(lines, RenderRaw(res.Raw, opts)...)
		}
		return lines
	}

	var lines []string
	for i, fs := range res.Files {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, RenderFile(fs, opts)...)
	}
	return lines
}

// RenderRaw draws text as a muted block behind a bar.
func RenderRaw(text string, opts DiffOptions) []string {
	text = strings.TrimRight(text, "\n")
	bar := styles.DiffGutterStyle.Render("│ ")

	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = clip(bar+styles.MutedStyle.Render(expandTabs(l, opts.TabWidth)), opts.Width)
	}
	return lines
}

// FileHeader is the title line of a file: its path, a type badge for
// anything but plain changes, and the +/- totals.
func FileHeader(fs diff.FileSummary) string {
	header := styles.DiffFileStyle.Render(fs.Title)
	if fs.Type != diff.FileChanged {
		header += " " + styles.MutedStyle.Render("("+fs.Type.String()+")")
	}
	return header + "  " + styles.FormatStats(fs.Additions, fs.Deletions)
}

// RenderFile lays out one file: the header followed by its display lines.
func RenderFile(fs diff.FileSummary, opts DiffOptions) []string {
	gw := gutterWidth(fs.Lines)

	lines := make([]string, 0, len(fs.Lines)+1)
	lines = append(lines, clip(FileHeader(fs), opts.Width))
	for _, dl := range fs.Lines {
		var markup string
		var ok bool
		if opts.Markup != nil && !dl.Kind.Structural() {
			markup, ok = opts.Markup(fs.Key, dl.Key)
		}
		lines = append(lines, clip(renderLine(dl, gw, markup, ok, opts.TabWidth), opts.Width))
	}
	return lines
}

func renderLine(dl diff.DisplayLine, gw int, markup string, haveMarkup bool, tabWidth int) string {
	blank := strings.Repeat(" ", gw+1)

	switch dl.Kind {
	case diff.KindSeparator:
		return styles.DiffGutterStyle.Render(blank + "⋯")
	case diff.KindContext:
		return blank + styles.DiffHunkStyle.Render(dl.Text)
	case diff.KindBinary, diff.KindMessage:
		return blank + styles.MutedStyle.Render(dl.Text)
	}

	gutter := styles.DiffGutterStyle.Render(padLeft(dl.Label, gw)) + " "

	var sign string
	var style lipgloss.Style
	switch dl.Kind {
	case diff.KindAdded:
		sign, style = "+", styles.DiffAddedStyle
	case diff.KindDeleted:
		sign, style = "-", styles.DiffDeletedStyle
	default:
		sign, style = " ", lipgloss.NewStyle()
	}

	var content string
	switch {
	case len(dl.Segments) > 0:
		content = renderSegments(dl.Segments, style, tabWidth)
	case haveMarkup:
		content = expandTabs(markup, tabWidth)
	default:
		content = style.Render(expandTabs(dl.Text, tabWidth))
	}
	return gutter + style.Render(sign) + content
}

// renderSegments draws a word-diffed line: changed runs get the emphasis
// background on top of the line color.
func renderSegments(segs []diff.WordSegment, base lipgloss.Style, tabWidth int) string {
	var b strings.Builder
	for _, seg := range segs {
		text := expandTabs(seg.Text, tabWidth)
		switch seg.Kind {
		case diff.SegmentAdded:
			b.WriteString(styles.DiffWordAddedStyle.Inherit(base).Render(text))
		case diff.SegmentDeleted:
			b.WriteString(styles.DiffWordDeletedStyle.Inherit(base).Render(text))
		default:
			b.WriteString(base.Render(text))
		}
	}
	return b.String()
}

func gutterWidth(lines []diff.DisplayLine) int {
	w := minGutterWidth
	for _, l := range lines {
		w = max(w, len(l.Label))
	}
	return w
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func expandTabs(s string, width int) string {
	if width <= 0 {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

func clip(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
