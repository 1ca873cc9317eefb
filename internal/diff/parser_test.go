package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parsers() map[string]Parser {
	return map[string]Parser{
		ParserGitDiff: GitDiffParser{},
		ParserLenient: LenientParser{},
	}
}

func TestNewParser(t *testing.T) {
	p, err := NewParser("")
	require.NoError(t, err)
	require.IsType(t, GitDiffParser{}, p)

	p, err = NewParser(ParserLenient)
	require.NoError(t, err)
	require.IsType(t, LenientParser{}, p)

	_, err = NewParser("patience")
	require.ErrorContains(t, err, `unknown diff parser "patience"`)
}

func TestParsers_Modified(t *testing.T) {
	for name, p := range parsers() {
		t.Run(name, func(t *testing.T) {
			files, err := p.Parse(SplitSegments(splitSameFileDiff)[0])
			require.NoError(t, err)
			require.Len(t, files, 1)

			fc := files[0]
			require.Equal(t, FileChanged, fc.Type)
			require.Equal(t, "src/a.rs", fc.Path)
			require.Len(t, fc.Chunks, 1)

			c := fc.Chunks[0]
			require.Equal(t, 1, c.FromStart)
			require.Equal(t, 2, c.FromCount)
			require.Equal(t, 1, c.ToStart)
			require.Equal(t, 3, c.ToCount)
			require.Equal(t, "fn main", c.Context)
			require.Equal(t, []Change{
				{Type: UnchangedLine, Before: 1, After: 1, Content: "fn main() {"},
				{Type: AddedLine, After: 2, Content: `    println!("hi");`},
				{Type: UnchangedLine, Before: 2, After: 3, Content: "}"},
			}, c.Changes)
		})
	}
}

func TestParsers_Binary(t *testing.T) {
	for name, p := range parsers() {
		t.Run(name, func(t *testing.T) {
			files, err := p.Parse(binaryDiff)
			require.NoError(t, err)
			require.Len(t, files, 1)
			require.Equal(t, FileBinary, files[0].Type)
			require.Equal(t, "img/logo.png", files[0].Path)
			require.Equal(t, []Chunk{{Binary: true}}, files[0].Chunks)
		})
	}
}

func TestParsers_Rename(t *testing.T) {
	for name, p := range parsers() {
		t.Run(name, func(t *testing.T) {
			files, err := p.Parse(renameDiff)
			require.NoError(t, err)
			require.Len(t, files, 1)

			fc := files[0]
			require.Equal(t, FileRenamed, fc.Type)
			require.Equal(t, "old/name.go", fc.PathBefore)
			require.Equal(t, "new/name.go", fc.PathAfter)
			require.Equal(t, "new/name.go", FileKey(fc))
		})
	}
}

func TestParsers_NewFile(t *testing.T) {
	for name, p := range parsers() {
		t.Run(name, func(t *testing.T) {
			files, err := p.Parse(newFileDiff)
			require.NoError(t, err)
			require.Len(t, files, 1)
			require.Equal(t, FileAdded, files[0].Type)
			require.Equal(t, "docs/NOTES.md", files[0].Path)

			adds, dels := Count(files[0])
			require.Equal(t, 2, adds)
			require.Equal(t, 0, dels)
		})
	}
}

func TestParsers_NoNewlineAtEOF(t *testing.T) {
	for name, p := range parsers() {
		t.Run(name, func(t *testing.T) {
			files, err := p.Parse(noEOLDiff)
			require.NoError(t, err)

			changes := files[0].Chunks[0].Changes
			require.Len(t, changes, 4)
			require.Equal(t, DeletedLine, changes[0].Type)
			require.Equal(t, "1.0", changes[0].Content)
			require.Equal(t, MessageLine, changes[1].Type)
			require.Equal(t, noNewlineMessage, changes[1].Content)
			require.Equal(t, AddedLine, changes[2].Type)
			require.Equal(t, MessageLine, changes[3].Type)
		})
	}
}

func TestGitDiffParser_RejectsMiscountedHunk(t *testing.T) {
	_, err := GitDiffParser{}.Parse(miscountedDiff)
	require.Error(t, err)
	require.Equal(t, 1, strings.Count(err.Error(), "gitdiff:"), err.Error())
}

func TestLenientParser_AcceptsMiscountedHunk(t *testing.T) {
	files, err := LenientParser{}.Parse(miscountedDiff)
	require.NoError(t, err)
	require.Len(t, files, 1)

	adds, dels := Count(files[0])
	require.Equal(t, 1, adds)
	require.Equal(t, 1, dels)
}

func TestLenientParser_HeaderlessDiff(t *testing.T) {
	text := "--- lib/util.c\t2024-01-01 10:00:00\n+++ lib/util.c\t2024-01-02 10:00:00\n@@ -3,2 +3,2 @@\n int x;\n-int y;\n+long y;\n"

	files, err := LenientParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "lib/util.c", files[0].Path)
	require.Equal(t, FileChanged, files[0].Type)
	require.Len(t, files[0].Chunks[0].Changes, 3)
}

func TestLenientParser_DeletionThatLooksLikeHeader(t *testing.T) {
	// "-- x" deleted and "++ y" added inside an unfinished hunk.
	text := "diff --git a/n.txt b/n.txt\n--- a/n.txt\n+++ b/n.txt\n@@ -1,2 +1,2 @@\n--- x\n+++ y\n same\n"

	files, err := LenientParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, files, 1)

	changes := files[0].Chunks[0].Changes
	require.Len(t, changes, 3)
	require.Equal(t, Change{Type: DeletedLine, Before: 1, Content: "-- x"}, changes[0])
	require.Equal(t, Change{Type: AddedLine, After: 1, Content: "++ y"}, changes[1])
}

func TestLenientParser_StrippedContextSpace(t *testing.T) {
	text := "diff --git a/a.c b/a.c\n--- a/a.c\n+++ b/a.c\n@@ -1,4 +1,4 @@\n int a;\nint b;\n-int c;\n+long c;\n int d;\nThanks,\nAlice\n"

	files, err := LenientParser{}.Parse(text)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Len(t, files[0].Chunks, 1)

	changes := files[0].Chunks[0].Changes
	require.Len(t, changes, 5)
	require.Equal(t, Change{Type: UnchangedLine, Before: 2, After: 2, Content: "int b;"}, changes[1])
	require.Equal(t, Change{Type: UnchangedLine, Before: 4, After: 4, Content: "int d;"}, changes[4])
}

func TestLenientParser_NoHeaders(t *testing.T) {
	_, err := LenientParser{}.Parse("nothing to see here\n")
	require.Error(t, err)

	files, err := LenientParser{}.Parse("")
	require.NoError(t, err)
	require.Empty(t, files)
}
