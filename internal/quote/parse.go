package quote

import "strings"

// Parse builds the quote tree for body. It never fails: any string,
// including the empty one, yields a tree rooted at depth 0.
func Parse(body string) *Node {
	body = strings.ReplaceAll(body, "\r\n", "\n")

	b := newBuilder()
	for _, line := range strings.Split(body, "\n") {
		b.add(line)
	}
	return b.root
}

// Depth returns the quote depth of line: the number of leading '>' markers,
// where each marker may be followed by one optional space. Consecutive
// markers with or without that single space all count (">>x", "> > x").
func Depth(line string) int {
	depth := 0
	i := 0
	for i < len(line) && line[i] == '>' {
		depth++
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return depth
}

// StripMarkers removes the first depth quote markers (each with its one
// optional trailing space) from line.
func StripMarkers(line string, depth int) string {
	i := 0
	for range depth {
		if i >= len(line) || line[i] != '>' {
			break
		}
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return line[i:]
}

// builder holds the stack of open nodes. The stack always starts with the
// root and each entry is exactly one level deeper than the one below it.
type builder struct {
	root  *Node
	stack []*Node
}

func newBuilder() *builder {
	root := &Node{Depth: 0}
	return &builder{root: root, stack: []*Node{root}}
}

func (b *builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *builder) add(line string) {
	d := Depth(line)

	for b.top().Depth > d {
		b.stack = b.stack[:len(b.stack)-1]
	}
	for b.top().Depth < d {
		parent := b.top()
		child := &Node{Depth: parent.Depth + 1}
		parent.Segments = append(parent.Segments, &Quote{Node: child})
		b.stack = append(b.stack, child)
	}

	node := b.top()
	text := StripMarkers(line, d)
	if n := len(node.Segments); n > 0 {
		if t, ok := node.Segments[n-1].(*Text); ok {
			t.Lines = append(t.Lines, text)
			return
		}
	}
	node.Segments = append(node.Segments, &Text{Lines: []string{text}})
}
