package quote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDepth(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"plain", 0},
		{" > leading space is not a marker", 0},
		{">", 1},
		{"> quoted", 1},
		{">quoted", 1},
		{">> nested", 2},
		{"> > nested", 2},
		{">>> x", 3},
		{">  > two spaces stop the scan", 1},
		{"> >> mixed", 3},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			require.Equal(t, tt.want, Depth(tt.line))
		})
	}
}

func TestStripMarkers(t *testing.T) {
	require.Equal(t, "quoted", StripMarkers("> quoted", 1))
	require.Equal(t, "quoted", StripMarkers(">quoted", 1))
	require.Equal(t, "nested", StripMarkers("> > nested", 2))
	require.Equal(t, " indented", StripMarkers(">  indented", 1))
	require.Equal(t, "> kept", StripMarkers(">> kept", 1))
	require.Equal(t, "plain", StripMarkers("plain", 2))
	require.Equal(t, "", StripMarkers(">", 1))
}

func TestParse_NestedScenario(t *testing.T) {
	root := Parse("Hello\n> Quoted line 1\n> Quoted line 2\n>> Nested\nWorld")

	require.Equal(t, 0, root.Depth)
	require.Len(t, root.Segments, 3)

	first, ok := root.Segments[0].(*Text)
	require.True(t, ok)
	require.Equal(t, []string{"Hello"}, first.Lines)

	q1, ok := root.Segments[1].(*Quote)
	require.True(t, ok)
	require.Equal(t, 1, q1.Node.Depth)
	require.Len(t, q1.Node.Segments, 2)

	inner, ok := q1.Node.Segments[0].(*Text)
	require.True(t, ok)
	require.Equal(t, []string{"Quoted line 1", "Quoted line 2"}, inner.Lines)

	q2, ok := q1.Node.Segments[1].(*Quote)
	require.True(t, ok)
	require.Equal(t, 2, q2.Node.Depth)
	require.Len(t, q2.Node.Segments, 1)
	require.Equal(t, []string{"Nested"}, q2.Node.Segments[0].(*Text).Lines)

	last, ok := root.Segments[2].(*Text)
	require.True(t, ok)
	require.Equal(t, []string{"World"}, last.Lines)
}

func TestParse_EmptyBody(t *testing.T) {
	root := Parse("")

	require.Equal(t, 0, root.Depth)
	require.Len(t, root.Segments, 1)
	require.Equal(t, []string{""}, root.Segments[0].(*Text).Lines)
	require.Equal(t, 1, CountLines(root))
}

func TestParse_CRLF(t *testing.T) {
	root := Parse("a\r\n> b\r\nc")

	flat := Flatten(root)
	require.Equal(t, []FlatLine{
		{Depth: 0, Text: "a"},
		{Depth: 1, Text: "b"},
		{Depth: 0, Text: "c"},
	}, flat)
}

func TestParse_DepthJumpCreatesIntermediateNodes(t *testing.T) {
	root := Parse("top\n>>> deep")

	require.Len(t, root.Segments, 2)
	q1 := root.Segments[1].(*Quote).Node
	require.Equal(t, 1, q1.Depth)
	require.Len(t, q1.Segments, 1)

	q2 := q1.Segments[0].(*Quote).Node
	require.Equal(t, 2, q2.Depth)
	require.Len(t, q2.Segments, 1)

	q3 := q2.Segments[0].(*Quote).Node
	require.Equal(t, 3, q3.Depth)
	require.Equal(t, []string{"deep"}, q3.Segments[0].(*Text).Lines)

	require.Equal(t, 3, MaxDepth(root))
}

func TestParse_ReturnToQuoteStartsNewText(t *testing.T) {
	root := Parse("> a\n>> b\n> c")

	q1 := root.Segments[0].(*Quote).Node
	require.Len(t, q1.Segments, 3)
	require.Equal(t, []string{"a"}, q1.Segments[0].(*Text).Lines)
	require.Equal(t, []string{"b"}, q1.Segments[1].(*Quote).Node.Segments[0].(*Text).Lines)
	require.Equal(t, []string{"c"}, q1.Segments[2].(*Text).Lines)
}

func TestParse_BlankLinesArePreserved(t *testing.T) {
	root := Parse("\n\nbody\n")

	require.Equal(t, []string{"", "", "body", ""}, root.Segments[0].(*Text).Lines)
}

func TestCountLines(t *testing.T) {
	root := Parse("Hello\n> Quoted line 1\n> Quoted line 2\n>> Nested\nWorld")

	require.Equal(t, 5, CountLines(root))
	require.Equal(t, 3, CountLines(root.Segments[1].(*Quote).Node))
	require.Equal(t, 0, CountLines(nil))
}

func TestDump(t *testing.T) {
	out := Dump(Parse("Hello\n> q\n>> n"))

	require.Equal(t, strings.Join([]string{
		"text",
		`  "Hello"`,
		"quote depth=1 lines=2",
		"  text",
		`    "q"`,
		"  quote depth=2 lines=1",
		"    text",
		`      "n"`,
		"",
	}, "\n"), out)
}

// quotedLine draws a line with k markers (each optionally followed by a
// space) and marker-free content.
func quotedLine(rt *rapid.T) (line string, depth int, content string) {
	depth = rapid.IntRange(0, 5).Draw(rt, "depth")
	content = rapid.StringMatching(`([a-z0-9][a-z0-9 ]{0,12})?`).Draw(rt, "content")

	var b strings.Builder
	for range depth {
		b.WriteByte('>')
		if rapid.Bool().Draw(rt, "space") {
			b.WriteByte(' ')
		}
	}
	b.WriteString(content)
	return b.String(), depth, content
}

func TestProperty_DepthRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "lines")

		lines := make([]string, n)
		want := make([]FlatLine, n)
		for i := range n {
			line, depth, content := quotedLine(rt)
			lines[i] = line
			want[i] = FlatLine{Depth: depth, Text: content}
		}

		root := Parse(strings.Join(lines, "\n"))
		require.Equal(rt, want, Flatten(root))
		require.Equal(rt, n, CountLines(root))
	})
}

func TestProperty_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		body := rapid.StringMatching(`[>a-z \n\r]{0,80}`).Draw(rt, "body")

		require.True(rt, Equal(Parse(body), Parse(body)))
	})
}

func TestProperty_ChildDepthIsParentPlusOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		body := rapid.StringMatching(`[>a-z \n]{0,120}`).Draw(rt, "body")

		var check func(n *Node)
		check = func(n *Node) {
			for _, seg := range n.Segments {
				if q, ok := seg.(*Quote); ok {
					require.Equal(rt, n.Depth+1, q.Node.Depth)
					check(q.Node)
				}
			}
		}
		root := Parse(body)
		require.Equal(rt, 0, root.Depth)
		check(root)
	})
}

func TestProperty_StackHasNoGaps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "lines")

		b := newBuilder()
		for range n {
			line, depth, _ := quotedLine(rt)
			b.add(line)

			require.Len(rt, b.stack, depth+1)
			for j, node := range b.stack {
				require.Equal(rt, j, node.Depth)
			}
			require.Same(rt, b.root, b.stack[0])
		}
	})
}
