package diff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Parser turns one unified diff into file-change records. Implementations
// return an error for input they cannot make sense of.
type Parser interface {
	Parse(text string) ([]FileChange, error)
}

// Parser names accepted by NewParser.
const (
	ParserGitDiff = "gitdiff"
	ParserLenient = "lenient"
)

// NewParser returns the parser registered under name.
func NewParser(name string) (Parser, error) {
	switch name {
	case ParserGitDiff, "":
		return GitDiffParser{}, nil
	case ParserLenient:
		return LenientParser{}, nil
	default:
		return nil, fmt.Errorf("unknown diff parser %q (want %s or %s)", name, ParserGitDiff, ParserLenient)
	}
}

const noNewlineMessage = `\ No newline at end of file`

// GitDiffParser parses with go-gitdiff, which is strict about hunk line
// counts and rejects malformed fragments.
type GitDiffParser struct{}

// Parse implements Parser.
func (GitDiffParser) Parse(text string) ([]FileChange, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	files, _, err := gitdiff.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	out := make([]FileChange, 0, len(files))
	for _, f := range files {
		out = append(out, fromGitDiff(f))
	}
	return out, nil
}

func fromGitDiff(f *gitdiff.File) FileChange {
	fc := FileChange{Type: gitDiffType(f)}

	switch {
	case f.IsRename || f.IsCopy:
		fc.PathBefore = f.OldName
		fc.PathAfter = f.NewName
		fc.Path = f.NewName
	case f.IsDelete:
		fc.Path = f.OldName
	default:
		fc.Path = f.NewName
		if fc.Path == "" {
			fc.Path = f.OldName
		}
	}

	if f.IsBinary {
		fc.Chunks = append(fc.Chunks, Chunk{Binary: true})
	}

	for _, frag := range f.TextFragments {
		fc.Chunks = append(fc.Chunks, fromFragment(frag))
	}
	return fc
}

func gitDiffType(f *gitdiff.File) FileType {
	switch {
	case f.IsRename || f.IsCopy:
		return FileRenamed
	case f.IsNew:
		return FileAdded
	case f.IsDelete:
		return FileDeleted
	case f.IsBinary:
		return FileBinary
	default:
		return FileChanged
	}
}

func fromFragment(frag *gitdiff.TextFragment) Chunk {
	c := Chunk{
		FromStart: int(frag.OldPosition),
		FromCount: int(frag.OldLines),
		ToStart:   int(frag.NewPosition),
		ToCount:   int(frag.NewLines),
		Context:   strings.TrimSpace(frag.Comment),
		Changes:   make([]Change, 0, len(frag.Lines)),
	}

	before, after := c.FromStart, c.ToStart
	for _, line := range frag.Lines {
		content := strings.TrimSuffix(line.Line, "\n")

		switch line.Op {
		case gitdiff.OpContext:
			c.Changes = append(c.Changes, Change{Type: UnchangedLine, Before: before, After: after, Content: content})
			before++
			after++
		case gitdiff.OpDelete:
			c.Changes = append(c.Changes, Change{Type: DeletedLine, Before: before, Content: content})
			before++
		case gitdiff.OpAdd:
			c.Changes = append(c.Changes, Change{Type: AddedLine, After: after, Content: content})
			after++
		}

		if line.NoEOL() {
			c.Changes = append(c.Changes, Change{Type: MessageLine, Content: noNewlineMessage})
		}
	}
	return c
}
