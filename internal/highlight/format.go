package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/muesli/termenv"
)

// Format is the output markup of a Service.
type Format string

const (
	FormatHTML     Format = "html"
	FormatTerminal Format = "terminal"
)

// ParseFormat validates a configured format name. Empty means terminal.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTerminal, "":
		return FormatTerminal, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown highlight format %q (want %s or %s)", s, FormatHTML, FormatTerminal)
	}
}

type formatterSet struct {
	block  chroma.Formatter
	inline chroma.Formatter
}

func (f formatterSet) get(v Variant) chroma.Formatter {
	if v == Inline {
		return f.inline
	}
	return f.block
}

func newFormatterSet(format Format, profile termenv.Profile) (formatterSet, error) {
	switch format {
	case FormatHTML:
		return formatterSet{
			block:  chromahtml.New(chromahtml.WithClasses(false)),
			inline: chromahtml.New(chromahtml.WithClasses(false), chromahtml.PreventSurroundingPre(true)),
		}, nil
	case FormatTerminal:
		f := TerminalFormatter(profile)
		return formatterSet{block: f, inline: f}, nil
	default:
		return formatterSet{}, fmt.Errorf("unknown highlight format %q", format)
	}
}

// TerminalFormatter picks the chroma terminal formatter matching the color
// profile. Terminals without color get the no-op formatter.
func TerminalFormatter(profile termenv.Profile) chroma.Formatter {
	name := "noop"
	switch profile {
	case termenv.TrueColor:
		name = "terminal16m"
	case termenv.ANSI256:
		name = "terminal256"
	case termenv.ANSI:
		name = "terminal16"
	}
	return formatters.Get(name)
}
