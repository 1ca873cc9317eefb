package view

import (
	"context"
	"strings"
	"time"

	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

// DateLayout is how message dates are shown.
const DateLayout = "Mon, 02 Jan 2006 15:04"

// Message is the render state of one archived message: its quote tree and,
// for patches, the rendered diff.
type Message struct {
	Msg    *archive.Message
	Quotes *QuoteView
	Diff   *diff.Result
}

// MessageOptions combines quote and diff layout.
type MessageOptions struct {
	Width    int
	Wrap     bool
	TabWidth int
	Markup   MarkupFunc
}

// NewMessage prepares m for display. Patches are run through pipeline and
// only the prose around the diff goes into the quote tree.
func NewMessage(ctx context.Context, m *archive.Message, pipeline *diff.Pipeline, collapseDepth int) *Message {
	body := m.Body
	var res *diff.Result

	if m.Patch && pipeline != nil {
		r := pipeline.Render(ctx, m.Body, nil)
		if r.Raw != "" {
			res = &r
			body = strings.TrimRight(r.Prose, " \n")
		}
	}

	root := quote.Parse(body)
	quotes := NewQuoteView(root, collapseDepth)
	log.Debug(log.CatQuote, "parsed quotes", "message", m.ID, "quotes", len(quotes.Quotes()), "depth", quote.MaxDepth(root))

	return &Message{
		Msg:    m,
		Quotes: quotes,
		Diff:   res,
	}
}

// Header returns the subject, author and date lines of m.
func Header(m *archive.Message) []string {
	subject := styles.HeaderSubjectStyle.Render(m.Subject)
	if m.Patch {
		subject = styles.ThreadPatchStyle.Render("PATCH") + " " + subject
	}

	from := styles.HeaderFromStyle.Render(m.Author())
	if m.From != "" && m.FromAddress != "" {
		from += " " + styles.MutedStyle.Render("<"+m.FromAddress+">")
	}

	lines := []string{
		subject,
		styles.MutedStyle.Render("From: ") + from,
	}
	if !m.Date.IsZero() {
		lines = append(lines, styles.MutedStyle.Render("Date: ")+styles.HeaderDateStyle.Render(FormatDate(m.Date)))
	}
	return lines
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Render lays out the header, the body and the diff.
func (v *Message) Render(opts MessageOptions) []QuoteLine {
	var lines []QuoteLine
	for _, h := range Header(v.Msg) {
		lines = append(lines, QuoteLine{Text: clip(h, opts.Width)})
	}
	lines = append(lines, QuoteLine{})

	lines = append(lines, v.Quotes.Render(QuoteOptions{Width: opts.Width, Wrap: opts.Wrap})...)

	if v.Diff != nil {
		lines = append(lines, QuoteLine{})
		for _, l := range RenderDiff(*v.Diff, DiffOptions{
			Width:    opts.Width,
			TabWidth: opts.TabWidth,
			Markup:   opts.Markup,
		}) {
			lines = append(lines, QuoteLine{Text: l})
		}
	}
	return lines
}

// String renders v as one block.
func (v *Message) String(opts MessageOptions) string {
	rendered := v.Render(opts)
	out := make([]string, len(rendered))
	for i, l := range rendered {
		out[i] = l.Text
	}
	return strings.Join(out, "\n")
}
