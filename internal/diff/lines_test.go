package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   string
	}{
		{"added", Change{Type: AddedLine, After: 42}, "+42"},
		{"deleted", Change{Type: DeletedLine, Before: 17}, "-17"},
		{"unchanged prefers after", Change{Type: UnchangedLine, Before: 17, After: 18}, "18"},
		{"unchanged falls back to before", Change{Type: UnchangedLine, Before: 17}, "17"},
		{"message", Change{Type: MessageLine, Content: noNewlineMessage}, ""},
		{"added without number", Change{Type: AddedLine}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Label(tt.change))
		})
	}
}

func TestChunkHeader(t *testing.T) {
	require.Equal(t, "@@ -1,2 +1,3 @@", ChunkHeader(Chunk{FromStart: 1, FromCount: 2, ToStart: 1, ToCount: 3}))
	require.Equal(t, "@@ -5,1 +5,0 @@ func x()", ChunkHeader(Chunk{FromStart: 5, FromCount: 1, ToStart: 5, Context: "func x()"}))
}

func TestBuildLines(t *testing.T) {
	fc := FileChange{
		Type: FileBinary,
		Path: "blob.bin",
		Chunks: []Chunk{
			{Binary: true},
			{FromStart: 3, FromCount: 1, ToStart: 3, ToCount: 1, Changes: []Change{
				{Type: DeletedLine, Before: 3, Content: "a"},
				{Type: AddedLine, After: 3, Content: "b"},
				{Type: MessageLine, Content: noNewlineMessage},
			}},
		},
	}

	lines := BuildLines(fc)
	require.Equal(t, []DisplayLine{
		{Key: "c0:bin", Kind: KindBinary, Text: BinaryText},
		{Key: "c1:sep", Kind: KindSeparator},
		{Key: "c1:h", Kind: KindContext, Text: "@@ -3,1 +3,1 @@"},
		{Key: "c1:0", Kind: KindDeleted, Text: "a", Label: "-3"},
		{Key: "c1:1", Kind: KindAdded, Text: "b", Label: "+3"},
		{Key: "c1:2", Kind: KindMessage, Text: noNewlineMessage},
	}, lines)
}

func TestBuildLines_KeysUnique(t *testing.T) {
	res := NewPipeline().Render(t.Context(), splitSameFileDiff+binaryDiff, nil)
	require.NoError(t, res.Err)

	for _, f := range res.Files {
		seen := make(map[string]bool)
		for _, l := range f.Lines {
			require.False(t, seen[l.Key], "duplicate key %s in %s", l.Key, f.Key)
			seen[l.Key] = true
		}
	}
}

func TestLineKind_Structural(t *testing.T) {
	require.True(t, KindContext.Structural())
	require.True(t, KindSeparator.Structural())
	require.True(t, KindBinary.Structural())
	require.True(t, KindMessage.Structural())
	require.False(t, KindAdded.Structural())
	require.False(t, KindDeleted.Structural())
	require.False(t, KindUnchanged.Structural())
}
