package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

// quoteBar is drawn once per quote level in front of quoted lines.
const quoteBar = "│ "

// QuoteView renders a quote tree and remembers which quotes are collapsed.
type QuoteView struct {
	root      *quote.Node
	quotes    []*quote.Node
	collapsed map[*quote.Node]bool
}

// QuoteLine is one rendered line. Quote is set on the first line drawn for
// a quote node (its collapsed label when collapsed) so clicks on that line
// can toggle it. When several quotes start on the same line the innermost
// one owns it.
type QuoteLine struct {
	Text  string
	Quote *quote.Node
}

// QuoteOptions controls line layout.
type QuoteOptions struct {
	// Width is the total line width; 0 disables wrapping.
	Width int
	Wrap  bool
}

// NewQuoteView indexes root. Quotes at collapseDepth or deeper start
// collapsed; collapseDepth <= 0 starts everything expanded.
func NewQuoteView(root *quote.Node, collapseDepth int) *QuoteView {
	v := &QuoteView{
		root:      root,
		collapsed: make(map[*quote.Node]bool),
	}
	v.index(root)
	if collapseDepth > 0 {
		for _, q := range v.quotes {
			if q.Depth >= collapseDepth {
				v.collapsed[q] = true
			}
		}
	}
	return v
}

func (v *QuoteView) index(n *quote.Node) {
	if n == nil {
		return
	}
	for _, seg := range n.Segments {
		if q, ok := seg.(*quote.Quote); ok {
			v.quotes = append(v.quotes, q.Node)
			v.index(q.Node)
		}
	}
}

// Root returns the tree being rendered.
func (v *QuoteView) Root() *quote.Node {
	return v.root
}

// Quotes returns every quote node in document order.
func (v *QuoteView) Quotes() []*quote.Node {
	return v.quotes
}

// Collapsed reports whether n is collapsed.
func (v *QuoteView) Collapsed(n *quote.Node) bool {
	return v.collapsed[n]
}

// Toggle flips the collapse state of n and returns the new state. Nodes
// that are not quotes of this tree are ignored.
func (v *QuoteView) Toggle(n *quote.Node) bool {
	if !v.owns(n) {
		return false
	}
	v.collapsed[n] = !v.collapsed[n]
	return v.collapsed[n]
}

// SetAll collapses or expands every quote.
func (v *QuoteView) SetAll(collapsed bool) {
	for _, q := range v.quotes {
		v.collapsed[q] = collapsed
	}
}

func (v *QuoteView) owns(n *quote.Node) bool {
	for _, q := range v.quotes {
		if q == n {
			return true
		}
	}
	return false
}

// Render lays the tree out as lines. Leading blank lines of the very first
// segment are dropped; blank lines anywhere else are kept.
func (v *QuoteView) Render(opts QuoteOptions) []QuoteLine {
	if v.root == nil {
		return nil
	}
	r := quoteRenderer{view: v, opts: opts}
	r.node(v.root, true)
	return r.lines
}

// Strings is Render without the toggle targets.
func (v *QuoteView) Strings(opts QuoteOptions) []string {
	rendered := v.Render(opts)
	out := make([]string, len(rendered))
	for i, l := range rendered {
		out[i] = l.Text
	}
	return out
}

type quoteRenderer struct {
	view    *QuoteView
	opts    QuoteOptions
	lines   []QuoteLine
	pending *quote.Node
}

func (r *quoteRenderer) node(n *quote.Node, first bool) {
	for i, seg := range n.Segments {
		switch s := seg.(type) {
		case *quote.Text:
			lines := s.Lines
			if first && i == 0 {
				lines = trimLeadingBlank(lines)
			}
			for _, line := range lines {
				r.text(n.Depth, line)
			}
		case *quote.Quote:
			r.pending = s.Node
			if r.view.collapsed[s.Node] {
				r.emit(prefix(s.Node.Depth) + collapsedLabel(s.Node))
				continue
			}
			r.node(s.Node, false)
		}
	}
}

func (r *quoteRenderer) text(depth int, line string) {
	line = strings.ReplaceAll(line, "\t", "    ")

	parts := []string{line}
	avail := r.opts.Width - depth*runewidth.StringWidth(quoteBar)
	if r.opts.Wrap && r.opts.Width > 0 && avail > 0 {
		wrapped := wrap.String(wordwrap.String(line, avail), avail)
		parts = strings.Split(wrapped, "\n")
	}

	style := styles.QuoteStyle(depth)
	for _, part := range parts {
		if depth > 0 {
			part = style.Render(part)
		}
		r.emit(prefix(depth) + part)
	}
}

func (r *quoteRenderer) emit(text string) {
	r.lines = append(r.lines, QuoteLine{Text: text, Quote: r.pending})
	r.pending = nil
}

// prefix draws one colored bar per quote level.
func prefix(depth int) string {
	var b strings.Builder
	for d := 1; d <= depth; d++ {
		b.WriteString(styles.QuoteStyle(d).Render(quoteBar))
	}
	return b.String()
}

func collapsedLabel(n *quote.Node) string {
	return styles.QuoteCollapsedStyle.Render(fmt.Sprintf("[%s hidden]", styles.Plural(quote.CountLines(n), "line")))
}

func trimLeadingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}
