// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the viewer.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding
	Back     key.Binding
	Focus    key.Binding

	// Quotes
	NextQuote   key.Binding
	PrevQuote   key.Binding
	ToggleQuote key.Binding
	CollapseAll key.Binding
	ExpandAll   key.Binding

	// Actions
	CopyDiff   key.Binding
	CopyAdded  key.Binding
	CycleTheme key.Binding
	ToggleWrap key.Binding
	Reload     key.Binding

	// General
	Help         key.Binding
	ToggleStatus key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open message"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h"),
			key.WithHelp("esc", "back to threads"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		// Quotes
		NextQuote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next quote"),
		),
		PrevQuote: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous quote"),
		),
		ToggleQuote: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("space", "fold quote"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "fold all quotes"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "unfold all quotes"),
		),

		// Actions
		CopyDiff: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy diff"),
		),
		CopyAdded: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy added lines"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload archive"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status bar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.ToggleQuote, k.CopyDiff, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Open, k.Back, k.Focus},       // Navigation
		{k.NextQuote, k.PrevQuote, k.ToggleQuote, k.CollapseAll, k.ExpandAll}, // Quotes
		{k.CopyDiff, k.CopyAdded, k.CycleTheme, k.ToggleWrap, k.Reload},       // Actions
		{k.Help, k.ToggleStatus, k.Quit},                                      // General
	}
}
