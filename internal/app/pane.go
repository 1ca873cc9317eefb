package app

import (
	"context"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mlv/internal/config"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/ui/styles"
	"github.com/zjrosen/mlv/internal/ui/toaster"
	"github.com/zjrosen/mlv/internal/view"
)

func markupKey(fileKey, lineKey string) string {
	return fileKey + "\x00" + lineKey
}

// rerender lays the current message out into the viewport. Lines that
// start a quote are marked as click targets for that quote.
func (m *Model) rerender() {
	if m.current == nil {
		m.viewport.SetContent(styles.MutedStyle.Render("No message selected"))
		return
	}

	if m.quoteIndex == nil {
		m.quoteIndex = make(map[*quote.Node]int)
		for i, q := range m.current.Quotes.Quotes() {
			m.quoteIndex[q] = i
		}
	}
	m.quoteLines = make(map[*quote.Node]int)

	markup := m.markup
	rendered := m.current.Render(view.MessageOptions{
		Width:    m.viewport.Width,
		Wrap:     m.wrap,
		TabWidth: m.cfg.Diff.TabWidth,
		Markup: func(fileKey, lineKey string) (string, bool) {
			s, ok := markup[markupKey(fileKey, lineKey)]
			return s, ok
		},
	})

	out := make([]string, len(rendered))
	for i, l := range rendered {
		out[i] = l.Text
		if l.Quote == nil {
			continue
		}
		idx, ok := m.quoteIndex[l.Quote]
		if !ok {
			continue
		}
		m.quoteLines[l.Quote] = i
		if idx == m.quoteCursor {
			out[i] = styles.SelectionIndicatorStyle.Render("▸") + out[i]
		}
		out[i] = zone.Mark(quoteZone(idx), out[i])
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
}

func (m *Model) toggleQuote(i int) {
	if m.current == nil {
		return
	}
	quotes := m.current.Quotes.Quotes()
	if i < 0 || i >= len(quotes) {
		return
	}
	m.quoteCursor = i
	collapsed := m.current.Quotes.Toggle(quotes[i])
	log.Debug(log.CatUI, "quote toggled", "index", i, "collapsed", collapsed)
	m.rerender()
}

func (m *Model) setAllQuotes(collapsed bool) {
	if m.current == nil {
		return
	}
	m.current.Quotes.SetAll(collapsed)
	m.rerender()
}

// moveQuote steps the quote cursor, wrapping around, and scrolls the quote
// into view when it owns a line.
func (m *Model) moveQuote(delta int) {
	if m.current == nil {
		return
	}
	quotes := m.current.Quotes.Quotes()
	n := len(quotes)
	if n == 0 {
		return
	}
	if m.quoteCursor < 0 {
		m.quoteCursor = 0
		if delta < 0 {
			m.quoteCursor = n - 1
		}
	} else {
		m.quoteCursor = ((m.quoteCursor+delta)%n + n) % n
	}
	m.focus = paneMessage
	m.rerender()

	if line, ok := m.quoteLines[quotes[m.quoteCursor]]; ok {
		if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(line)
		}
	}
}

// requestHighlights asks for syntax markup of every file in the current
// diff. Results arrive as highlightedMsg.
func (m *Model) requestHighlights() tea.Cmd {
	if m.hl == nil || m.current == nil || m.current.Diff == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, f := range m.current.Diff.Files {
		if f.Language == "" {
			continue
		}
		cmds = append(cmds, highlightFileCmd(m.ctx, m.hl, m.current.Msg.ID, f))
	}
	return tea.Batch(cmds...)
}

// highlightFileCmd highlights the content lines of one file. The theme
// version is pinned when the command is created so that a theme switch
// during the work marks the result stale.
func highlightFileCmd(ctx context.Context, hl *highlight.Service, messageID string, f diff.FileSummary) tea.Cmd {
	version := hl.ThemeVersion()
	return func() tea.Msg {
		markup := make(map[string]string)
		stale := false
		for _, line := range f.Lines {
			if line.Kind.Structural() || len(line.Segments) > 0 || line.Text == "" {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			res := hl.HighlightInline(ctx, line.Text, f.Language)
			if res.Fallback {
				continue
			}
			if res.Version != version {
				stale = true
				break
			}
			markup[line.Key] = res.Markup
		}
		return highlightedMsg{
			MessageID: messageID,
			FileKey:   f.Key,
			Version:   version,
			Markup:    markup,
			Stale:     stale || version != hl.ThemeVersion(),
		}
	}
}

// applyHighlights attaches markup unless it belongs to another message or
// an older theme.
func (m *Model) applyHighlights(msg highlightedMsg) {
	if msg.Stale || m.current == nil || msg.MessageID != m.current.Msg.ID ||
		(m.hl != nil && msg.Version != m.hl.ThemeVersion()) {
		log.Debug(log.CatHighlight, "discarding highlight result", "file", msg.FileKey, "version", msg.Version)
		return
	}
	for lineKey, s := range msg.Markup {
		m.markup[markupKey(msg.FileKey, lineKey)] = s
	}
	m.rerender()
}

// copyCmd copies the raw diff, or only its added lines.
func (m *Model) copyCmd(addedOnly bool) tea.Cmd {
	if m.current == nil || m.current.Diff == nil || m.current.Diff.Raw == "" {
		return m.showToast("No diff to copy", toaster.StyleInfo)
	}

	var text string
	var n int
	if addedOnly {
		var added []string
		for _, f := range m.current.Diff.Files {
			for _, l := range f.Lines {
				if l.Kind == diff.KindAdded {
					added = append(added, l.Text)
				}
			}
		}
		if len(added) == 0 {
			return m.showToast("No added lines", toaster.StyleInfo)
		}
		text, n = strings.Join(added, "\n"), len(added)
	} else {
		text = m.current.Diff.Raw
		n = len(strings.Split(strings.TrimRight(text, "\n"), "\n"))
	}

	clip := m.clipboard
	return func() tea.Msg {
		return copiedMsg{Lines: n, Err: clip.Copy(text)}
	}
}

// cycleTheme switches to the next highlight theme and persists it.
func (m *Model) cycleTheme() tea.Cmd {
	if m.hl == nil {
		return nil
	}
	themes := highlight.Themes()
	if len(themes) == 0 {
		return nil
	}
	next := themes[(slices.Index(themes, m.hl.Theme())+1)%len(themes)]
	if err := m.hl.SetTheme(next); err != nil {
		log.ErrorErr(log.CatHighlight, "theme switch failed", err, "theme", next)
		return m.showToast(err.Error(), toaster.StyleError)
	}

	if m.configPath == "" {
		return m.showToast("Theme "+next, toaster.StyleSuccess)
	}
	path := m.configPath
	return func() tea.Msg {
		return themeSavedMsg{Theme: next, Err: config.SaveTheme(path, next)}
	}
}
