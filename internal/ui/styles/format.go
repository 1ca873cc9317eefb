package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	width := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if width+w > maxWidth-3 {
			break
		}
		b.WriteRune(r)
		width += w
	}

	return b.String() + "..."
}

// FormatStats renders addition and deletion counts as "+a -d" in the diff
// colors. Zero counts are still shown.
func FormatStats(additions, deletions int) string {
	return DiffAddedStyle.Render(fmt.Sprintf("+%d", additions)) + " " +
		DiffDeletedStyle.Render(fmt.Sprintf("-%d", deletions))
}

// Plural returns "1 line" or "N lines".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
