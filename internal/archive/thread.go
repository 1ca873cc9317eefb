package archive

import (
	"cmp"
	"slices"
)

// ThreadNode is a message and its direct replies.
type ThreadNode struct {
	Message  *Message
	Children []*ThreadNode
}

// ThreadRow is one line of a flattened thread list.
type ThreadRow struct {
	Message *Message
	Depth   int
	// Last is set when the row is the last reply of its parent.
	Last bool
}

// BuildThreads links messages into reply trees. A message's parent is its
// In-Reply-To target when present in msgs, falling back to the nearest
// References entry.
// Messages without a known parent become roots. Roots and replies are
// ordered by date, then by archive position.
func BuildThreads(msgs []*Message) []*ThreadNode {
	nodes := make(map[string]*ThreadNode, len(msgs))
	order := make([]*ThreadNode, 0, len(msgs))
	for _, m := range msgs {
		n := &ThreadNode{Message: m}
		order = append(order, n)
		if _, dup := nodes[m.ID]; !dup {
			nodes[m.ID] = n
		}
	}

	parentOf := make(map[*ThreadNode]*ThreadNode, len(msgs))
	for _, n := range order {
		if p := findParent(n, nodes); p != nil && !createsCycle(n, p, parentOf) {
			parentOf[n] = p
		}
	}

	var roots []*ThreadNode
	for _, n := range order {
		if p, ok := parentOf[n]; ok {
			p.Children = append(p.Children, n)
		} else {
			roots = append(roots, n)
		}
	}

	sortNodes(roots)
	return roots
}

func findParent(n *ThreadNode, nodes map[string]*ThreadNode) *ThreadNode {
	if p, ok := nodes[n.Message.InReplyTo]; ok && p != n {
		return p
	}
	refs := n.Message.References
	for i := len(refs) - 1; i >= 0; i-- {
		if p, ok := nodes[refs[i]]; ok && p != n {
			return p
		}
	}
	return nil
}

// createsCycle reports whether linking n under p would make n its own ancestor.
func createsCycle(n, p *ThreadNode, parentOf map[*ThreadNode]*ThreadNode) bool {
	for cur := p; cur != nil; cur = parentOf[cur] {
		if cur == n {
			return true
		}
	}
	return false
}

func sortNodes(nodes []*ThreadNode) {
	slices.SortStableFunc(nodes, func(a, b *ThreadNode) int {
		if c := a.Message.Date.Compare(b.Message.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Message.Index, b.Message.Index)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// Flatten lists threads depth-first for display.
func Flatten(threads []*ThreadNode) []ThreadRow {
	var rows []ThreadRow
	var walk func(ns []*ThreadNode, depth int)
	walk = func(ns []*ThreadNode, depth int) {
		for i, n := range ns {
			rows = append(rows, ThreadRow{Message: n.Message, Depth: depth, Last: i == len(ns)-1})
			walk(n.Children, depth+1)
		}
	}
	walk(threads, 0)
	return rows
}

// Count returns the number of messages in the thread rooted at n.
func (n *ThreadNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
