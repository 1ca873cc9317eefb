// Package app contains the root application model: a thread list next to a
// message pane.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/config"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/keys"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/pubsub"
	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/ui/styles"
	"github.com/zjrosen/mlv/internal/ui/toaster"
	"github.com/zjrosen/mlv/internal/view"
)

// copiedResetDelay is how long the "copied" indicator stays on.
const copiedResetDelay = 1500 * time.Millisecond

// listMinWidth is the narrowest thread list.
const listMinWidth = 28

const (
	zoneThreads = "threads"
	zoneMessage = "message"
)

type pane int

const (
	paneThreads pane = iota
	paneMessage
)

// Options wires the model to its services. Only Archive is required.
type Options struct {
	Archive     *archive.Archive
	Loader      *archive.Loader
	Config      config.Config
	ConfigPath  string
	Highlighter *highlight.Service
	Pipeline    *diff.Pipeline
	Clipboard   Clipboard
	// Reloader, when set, feeds archive reloads in follow mode.
	Reloader *Reloader
}

// Model is the root application state.
type Model struct {
	keys       keys.KeyMap
	help       help.Model
	cfg        config.Config
	configPath string

	archive *archive.Archive
	loader  *archive.Loader
	rows    []archive.ThreadRow
	cursor  int
	offset  int

	pipeline *diff.Pipeline
	hl       *highlight.Service

	current     *view.Message
	quoteIndex  map[*quote.Node]int
	quoteLines  map[*quote.Node]int
	quoteCursor int
	// markup holds highlighted diff lines of the current message keyed by
	// file key and line key.
	markup   map[string]string
	viewport viewport.Model

	focus      pane
	width      int
	height     int
	wrap       bool
	showStatus bool

	clipboard Clipboard
	copied    bool
	copySeq   int
	toaster   toaster.Model

	ctx            context.Context
	cancel         context.CancelFunc
	unsubscribe    func()
	themeListener  *pubsub.ContinuousListener[highlight.ThemeChange]
	reloader       *Reloader
	reloadListener *pubsub.ContinuousListener[ReloadResult]
}

// highlightedMsg carries the markup of one file's diff lines.
type highlightedMsg struct {
	MessageID string
	FileKey   string
	Version   uint64
	Markup    map[string]string
	Stale     bool
}

// copiedMsg reports a clipboard copy.
type copiedMsg struct {
	Lines int
	Err   error
}

// copyResetMsg turns the "copied" indicator off unless a newer copy
// happened since.
type copyResetMsg struct {
	seq int
}

// themeSavedMsg reports the outcome of persisting the theme.
type themeSavedMsg struct {
	Theme string
	Err   error
}

// reloadedMsg is a manual reload result.
type reloadedMsg struct {
	Result ReloadResult
}

// New creates the application model.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		cfg:         opts.Config,
		configPath:  opts.ConfigPath,
		loader:      opts.Loader,
		pipeline:    opts.Pipeline,
		hl:          opts.Highlighter,
		markup:      make(map[string]string),
		viewport:    viewport.New(0, 0),
		wrap:        opts.Config.UI.Wrap,
		showStatus:  opts.Config.UI.ShowStatusBar,
		clipboard:   opts.Clipboard,
		toaster:     toaster.New(),
		ctx:         ctx,
		cancel:      cancel,
		reloader:    opts.Reloader,
		quoteCursor: -1,
	}
	if m.loader == nil {
		m.loader = archive.NewLoader()
	}
	if m.pipeline == nil {
		m.pipeline = diff.NewPipeline(diff.WithWordDiff(opts.Config.Diff.WordDiff))
	}
	if m.clipboard == nil {
		m.clipboard = SystemClipboard{}
	}

	if m.hl != nil {
		ch, unsubscribe := m.hl.Subscribe(ctx)
		m.unsubscribe = unsubscribe
		m.themeListener = pubsub.NewChannelListener(ctx, ch)
	}
	if m.reloader != nil {
		m.reloadListener = pubsub.NewContinuousListener(ctx, m.reloader.Broker())
	}

	m.setArchive(opts.Archive)
	m.openSelected()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.themeListener.Listen(),
		m.reloadListener.Listen(),
		m.requestHighlights(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case highlightedMsg:
		m.applyHighlights(msg)
		return m, nil

	case pubsub.Event[highlight.ThemeChange]:
		log.Debug(log.CatUI, "theme changed, re-highlighting", "theme", msg.Payload.Theme, "version", msg.Payload.Version)
		clear(m.markup)
		m.rerender()
		return m, tea.Batch(m.requestHighlights(), m.themeListener.Listen())

	case pubsub.Event[ReloadResult]:
		cmd := m.applyReload(msg.Payload)
		return m, tea.Batch(cmd, m.reloadListener.Listen())

	case reloadedMsg:
		return m, m.applyReload(msg.Result)

	case copiedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatUI, "copy failed", msg.Err)
			return m, m.showToast("Copy failed: "+msg.Err.Error(), toaster.StyleError)
		}
		m.copied = true
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(copiedResetDelay, func(time.Time) tea.Msg {
			return copyResetMsg{seq: seq}
		})

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case themeSavedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatConfig, "saving theme failed", msg.Err, "theme", msg.Theme)
			return m, m.showToast("Theme not saved: "+msg.Err.Error(), toaster.StyleError)
		}
		return m, m.showToast("Theme "+msg.Theme, toaster.StyleSuccess)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	if m.focus == paneMessage {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneThreads {
			m.focus = paneMessage
		} else {
			m.focus = paneThreads
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()

	case key.Matches(msg, m.keys.ToggleWrap):
		m.wrap = !m.wrap
		m.rerender()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.CopyDiff):
		return m, m.copyCmd(false)

	case key.Matches(msg, m.keys.CopyAdded):
		return m, m.copyCmd(true)

	case key.Matches(msg, m.keys.CollapseAll):
		m.setAllQuotes(true)
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		m.setAllQuotes(false)
		return m, nil

	case key.Matches(msg, m.keys.NextQuote):
		m.moveQuote(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevQuote):
		m.moveQuote(-1)
		return m, nil

	case key.Matches(msg, m.keys.ToggleQuote):
		m.toggleQuote(m.quoteCursor)
		return m, nil
	}

	if m.focus == paneMessage {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.focus = paneThreads
		case key.Matches(msg, m.keys.Up):
			m.viewport.SetYOffset(m.viewport.YOffset - 1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.SetYOffset(m.viewport.YOffset + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m, m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		return m, m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		return m, m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Open):
		m.focus = paneMessage
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if inZone(zoneMessage, msg) {
			m.viewport.SetYOffset(m.viewport.YOffset + 3*delta)
			return m, nil
		}
		if inZone(zoneThreads, msg) {
			return m, m.moveCursor(delta)
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.current != nil {
		for i := range m.current.Quotes.Quotes() {
			if inZone(quoteZone(i), msg) {
				m.focus = paneMessage
				m.toggleQuote(i)
				return m, nil
			}
		}
	}

	for i := m.offset; i < len(m.rows) && i < m.offset+m.listHeight(); i++ {
		if inZone(rowZone(i), msg) {
			m.focus = paneThreads
			return m, m.moveCursor(i - m.cursor)
		}
	}
	return m, nil
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func rowZone(i int) string   { return fmt.Sprintf("row-%d", i) }
func quoteZone(i int) string { return fmt.Sprintf("quote-%d", i) }

// setArchive replaces the archive and rebuilds the thread rows.
func (m *Model) setArchive(a *archive.Archive) {
	m.archive = a
	m.rows = nil
	if a != nil {
		m.rows = archive.Flatten(a.Threads)
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	m.clampOffset()
}

func (m *Model) selected() *archive.Message {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Message
}

// moveCursor moves the thread selection and opens the newly selected
// message.
func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	m.clampOffset()
	return m.openSelected()
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if h > 0 && m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, m.offset)
}

// openSelected renders the selected message unless it is already shown.
func (m *Model) openSelected() tea.Cmd {
	msg := m.selected()
	if msg == nil {
		m.current = nil
		m.rerender()
		return nil
	}
	if m.current != nil && m.current.Msg == msg {
		return nil
	}

	m.current = view.NewMessage(m.ctx, msg, m.pipeline, m.cfg.UI.CollapseDepth)
	clear(m.markup)
	m.quoteIndex = nil
	m.quoteCursor = -1
	if len(m.current.Quotes.Quotes()) > 0 {
		m.quoteCursor = 0
	}
	m.viewport.GotoTop()
	m.rerender()
	return m.requestHighlights()
}

// applyReload swaps in a reloaded archive, keeping the selection on the
// same Message-ID when it still exists.
func (m *Model) applyReload(res ReloadResult) tea.Cmd {
	if res.Err != nil {
		return m.showToast("Reload failed: "+res.Err.Error(), toaster.StyleError)
	}

	var keepID string
	if sel := m.selected(); sel != nil {
		keepID = sel.ID
	}

	m.setArchive(res.Archive)
	for i, row := range m.rows {
		if row.Message.ID == keepID {
			m.cursor = i
			break
		}
	}
	m.clampOffset()

	// The same message with the same body keeps its fold state.
	if sel := m.selected(); sel != nil && m.current != nil &&
		sel.ID == m.current.Msg.ID && sel.Body == m.current.Msg.Body {
		m.current.Msg = sel
		m.rerender()
		return m.showToast(fmt.Sprintf("Reloaded %s", styles.Plural(len(res.Archive.Messages), "message")), toaster.StyleInfo)
	}

	return tea.Batch(
		m.openSelected(),
		m.showToast(fmt.Sprintf("Reloaded %s", styles.Plural(len(res.Archive.Messages), "message")), toaster.StyleInfo),
	)
}

func (m *Model) reloadCmd() tea.Cmd {
	if m.archive == nil || m.archive.Path == "" {
		return nil
	}
	ctx := m.ctx
	if r := m.reloader; r != nil {
		// The result comes back through the reload listener.
		return func() tea.Msg {
			r.Reload(ctx)
			return nil
		}
	}
	loader, path := m.loader, m.archive.Path
	return func() tea.Msg {
		a, err := loader.Load(ctx, path)
		return reloadedMsg{Result: ReloadResult{Archive: a, Err: err}}
	}
}

func (m *Model) showToast(text string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style, toaster.DefaultDuration)
	return cmd
}

// Close releases subscriptions and stops the reloader.
func (m *Model) Close() error {
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	if m.reloader != nil {
		return m.reloader.Close()
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	listW, msgW, bodyH := m.layout()

	threadsTitle := "Threads"
	if m.archive != nil {
		threadsTitle = fmt.Sprintf("Threads (%d)", len(m.archive.Threads))
	}
	list := styles.RenderPane(m.renderList(listW-2), threadsTitle, listW, bodyH, m.focus == paneThreads)

	messageTitle := "Message"
	if m.current != nil {
		messageTitle = fmt.Sprintf("Message %d/%d", m.current.Msg.Index, len(m.archive.Messages))
	}
	message := styles.RenderPane(m.viewport.View(), messageTitle, msgW, bodyH, m.focus == paneMessage)

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneThreads, list),
		zone.Mark(zoneMessage, message),
	)}
	if m.showStatus {
		parts = append(parts, m.statusBar())
	}
	parts = append(parts, m.help.View(m.keys))

	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	out = m.toaster.Overlay(out, m.width, m.height)
	return zone.Scan(out)
}

func (m Model) statusBar() string {
	var left []string
	if m.archive != nil {
		left = append(left, filepath.Base(m.archive.Path), styles.Plural(len(m.archive.Messages), "message"))
		if m.archive.Skipped > 0 {
			left = append(left, fmt.Sprintf("%d skipped", m.archive.Skipped))
		}
	}

	var right []string
	if m.copied {
		right = append(right, lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Render("copied"))
	}
	if m.current != nil && m.quoteCursor >= 0 {
		right = append(right, fmt.Sprintf("quote %d/%d", m.quoteCursor+1, len(m.current.Quotes.Quotes())))
	}
	if m.wrap {
		right = append(right, "wrap")
	}
	if m.hl != nil {
		right = append(right, m.hl.Theme())
	}

	l := strings.Join(left, " · ")
	r := strings.Join(right, " · ")
	gap := max(m.width-lipgloss.Width(l)-lipgloss.Width(r)-2, 1)
	return styles.StatusBarStyle.Width(m.width).Render(l + strings.Repeat(" ", gap) + r)
}

// layout splits the screen: thread list width, message pane width and the
// height both panes share.
func (m Model) layout() (listW, msgW, bodyH int) {
	chrome := lipgloss.Height(m.help.View(m.keys))
	if m.showStatus {
		chrome++
	}
	bodyH = max(m.height-chrome, 3)

	listW = max(listMinWidth, m.width/3)
	listW = min(listW, m.width/2)
	msgW = m.width - listW
	return listW, msgW, bodyH
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	_, _, bodyH := m.layout()
	return max(bodyH-2, 1)
}

func (m *Model) resize() {
	_, msgW, bodyH := m.layout()
	m.help.Width = m.width
	m.viewport.Width = max(msgW-2, 0)
	m.viewport.Height = max(bodyH-2, 0)
	m.clampOffset()
	m.rerender()
}

func (m Model) renderList(width int) string {
	if len(m.rows) == 0 {
		return styles.MutedStyle.Render("No messages")
	}

	h := m.listHeight()
	lines := make([]string, 0, h)
	for i := m.offset; i < len(m.rows) && i < m.offset+h; i++ {
		lines = append(lines, zone.Mark(rowZone(i), renderRow(m.rows[i], width, i == m.cursor)))
	}
	return strings.Join(lines, "\n")
}

// renderRow draws a thread row: roots show their subject, replies their
// author, indented under the parent.
func renderRow(row archive.ThreadRow, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.SelectionIndicatorStyle.Render("▸ ")
	}

	var indent string
	if row.Depth > 0 {
		indent = strings.Repeat("  ", row.Depth-1)
		if row.Last {
			indent += "└ "
		} else {
			indent += "├ "
		}
	}

	var patch string
	if row.Message.Patch {
		patch = styles.ThreadPatchStyle.Render("P") + " "
	}

	text := row.Message.Subject
	if row.Depth > 0 {
		text = row.Message.Author()
	}

	used := lipgloss.Width(marker) + lipgloss.Width(indent) + lipgloss.Width(patch)
	line := marker + styles.MutedStyle.Render(indent) + patch + styles.TruncateString(text, max(width-used, 1))
	if selected {
		return styles.SelectedRowStyle.Width(width).Render(line)
	}
	return line
}
