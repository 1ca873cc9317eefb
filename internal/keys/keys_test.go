package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", k.Up, []string{"k", "up"}},
		{"Down uses j and down", k.Down, []string{"j", "down"}},
		{"Open uses enter and l", k.Open, []string{"enter", "l"}},
		{"Back uses esc and h", k.Back, []string{"esc", "h"}},
		{"NextQuote uses n", k.NextQuote, []string{"n"}},
		{"PrevQuote uses N", k.PrevQuote, []string{"N"}},
		{"CopyDiff uses y", k.CopyDiff, []string{"y"}},
		{"CopyAdded uses Y", k.CopyAdded, []string{"Y"}},
		{"CycleTheme uses t", k.CycleTheme, []string{"t"}},
		{"Quit uses q and ctrl+c", k.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpText(t *testing.T) {
	k := DefaultKeyMap()

	for _, group := range k.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key, "binding %v has no help key", b.Keys())
			require.NotEmpty(t, b.Help().Desc, "binding %v has no help description", b.Keys())
		}
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	k := DefaultKeyMap()

	seen := make(map[string]string)
	for _, group := range k.FullHelp() {
		for _, b := range group {
			for _, key := range b.Keys() {
				prev, dup := seen[key]
				require.False(t, dup, "key %q bound to both %q and %q", key, prev, b.Help().Desc)
				seen[key] = b.Help().Desc
			}
		}
	}
}

func TestToggleQuote_MatchesSpaceKey(t *testing.T) {
	k := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, k.ToggleQuote))
}

func TestShortHelp_IsSubsetOfFullHelp(t *testing.T) {
	k := DefaultKeyMap()

	all := make(map[string]bool)
	for _, group := range k.FullHelp() {
		for _, b := range group {
			all[b.Help().Desc] = true
		}
	}
	for _, b := range k.ShortHelp() {
		require.True(t, all[b.Help().Desc], "%q missing from full help", b.Help().Desc)
	}
}
