// Package quote turns plain-text email bodies into a tree of nested quoted
// replies.
//
// A body such as
//
//	Hello
//	> Quoted line 1
//	>> Nested
//	World
//
// becomes a root Node (depth 0) holding a Text segment, a Quote segment whose
// Node has depth 1 (and itself a nested depth 2 Quote), and a trailing Text
// segment. The tree is a strict ownership tree: nodes never point back to
// their parent and every traversal is top-down.
package quote

import (
	"fmt"
	"strings"
)

// Segment is one run of content inside a Node: either *Text or *Quote.
type Segment interface {
	segment()
}

// Text is a run of consecutive lines at the owning node's depth, with the
// quote markers already stripped.
type Text struct {
	Lines []string
}

// Quote wraps a nested node one level deeper than its owner.
type Quote struct {
	Node *Node
}

func (*Text) segment()  {}
func (*Quote) segment() {}

// Node is one quote level. Depth is 0 for the root and parent depth + 1 for
// every nested node.
type Node struct {
	Depth    int
	Segments []Segment
}

// FlatLine is a text line together with the depth of the node holding it.
type FlatLine struct {
	Depth int
	Text  string
}

// CountLines returns the number of text lines in n and all of its
// descendants. The collapsed-quote label ("[N lines hidden]") uses it.
func CountLines(n *Node) int {
	if n == nil {
		return 0
	}
	total := 0
	for _, seg := range n.Segments {
		switch s := seg.(type) {
		case *Text:
			total += len(s.Lines)
		case *Quote:
			total += CountLines(s.Node)
		}
	}
	return total
}

// MaxDepth returns the deepest quote level reachable from n.
func MaxDepth(n *Node) int {
	if n == nil {
		return 0
	}
	deepest := n.Depth
	for _, seg := range n.Segments {
		if q, ok := seg.(*Quote); ok {
			deepest = max(deepest, MaxDepth(q.Node))
		}
	}
	return deepest
}

// Flatten walks the tree in document order and returns every text line with
// its depth.
func Flatten(n *Node) []FlatLine {
	var out []FlatLine
	flatten(n, &out)
	return out
}

func flatten(n *Node, out *[]FlatLine) {
	if n == nil {
		return
	}
	for _, seg := range n.Segments {
		switch s := seg.(type) {
		case *Text:
			for _, line := range s.Lines {
				*out = append(*out, FlatLine{Depth: n.Depth, Text: line})
			}
		case *Quote:
			flatten(s.Node, out)
		}
	}
}

// Equal reports whether a and b have the same shape and content.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Depth != b.Depth || len(a.Segments) != len(b.Segments) {
		return false
	}
	for i := range a.Segments {
		switch sa := a.Segments[i].(type) {
		case *Text:
			sb, ok := b.Segments[i].(*Text)
			if !ok || len(sa.Lines) != len(sb.Lines) {
				return false
			}
			for j := range sa.Lines {
				if sa.Lines[j] != sb.Lines[j] {
					return false
				}
			}
		case *Quote:
			sb, ok := b.Segments[i].(*Quote)
			if !ok || !Equal(sa.Node, sb.Node) {
				return false
			}
		}
	}
	return true
}

// Dump renders the tree as an indented outline, one segment per block:
//
//	text
//	  "Hello"
//	quote depth=1 lines=3
//	  text
//	    "Quoted line 1"
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, seg := range n.Segments {
		switch s := seg.(type) {
		case *Text:
			b.WriteString(pad + "text\n")
			for _, line := range s.Lines {
				fmt.Fprintf(b, "%s  %q\n", pad, line)
			}
		case *Quote:
			fmt.Fprintf(b, "%squote depth=%d lines=%d\n", pad, s.Node.Depth, CountLines(s.Node))
			dump(b, s.Node, indent+1)
		}
	}
}
