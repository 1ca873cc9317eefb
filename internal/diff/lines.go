package diff

import (
	"fmt"
	"strconv"
)

// BinaryText is the text of the display line that stands in for a binary
// chunk.
const BinaryText = "Binary file not shown"

// BuildLines lays out fc as display lines: a separator before every chunk
// but the first, a context line with the chunk's range header, then one line
// per change. A binary chunk becomes a single binary line.
func BuildLines(fc FileChange) []DisplayLine {
	var lines []DisplayLine

	for ci, c := range fc.Chunks {
		prefix := "c" + strconv.Itoa(ci)

		if ci > 0 {
			lines = append(lines, DisplayLine{Key: prefix + ":sep", Kind: KindSeparator})
		}

		if c.Binary {
			lines = append(lines, DisplayLine{Key: prefix + ":bin", Kind: KindBinary, Text: BinaryText})
			continue
		}

		lines = append(lines, DisplayLine{Key: prefix + ":h", Kind: KindContext, Text: ChunkHeader(c)})

		for i, ch := range c.Changes {
			lines = append(lines, DisplayLine{
				Key:   prefix + ":" + strconv.Itoa(i),
				Kind:  kindOf(ch.Type),
				Text:  ch.Content,
				Label: Label(ch),
			})
		}
	}
	return lines
}

// ChunkHeader renders the range header of c, followed by the hunk's context
// text when there is any.
func ChunkHeader(c Chunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", c.FromStart, c.FromCount, c.ToStart, c.ToCount)
	if c.Context != "" {
		header += " " + c.Context
	}
	return header
}

// Label is the line-number annotation of ch: "+N" for additions, "-N" for
// deletions and the bare new-side number (old side when absent) otherwise.
func Label(ch Change) string {
	switch ch.Type {
	case AddedLine:
		if ch.After > 0 {
			return "+" + strconv.Itoa(ch.After)
		}
	case DeletedLine:
		if ch.Before > 0 {
			return "-" + strconv.Itoa(ch.Before)
		}
	case UnchangedLine:
		if ch.After > 0 {
			return strconv.Itoa(ch.After)
		}
		if ch.Before > 0 {
			return strconv.Itoa(ch.Before)
		}
	}
	return ""
}

func kindOf(t ChangeType) LineKind {
	switch t {
	case AddedLine:
		return KindAdded
	case DeletedLine:
		return KindDeleted
	case MessageLine:
		return KindMessage
	default:
		return KindUnchanged
	}
}
