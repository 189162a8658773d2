package signature

import (
	"slices"
	"strconv"
	"strings"
)

// ColoredTree is the rooted tree read back from a signature string. It is
// a lossy inverse of rendering: vertices printed several times appear as
// several nodes sharing a color.
type ColoredTree struct {
	Root *TreeNode
}

// TreeNode is one printed node. Color is -1 when the node carries no
// symmetry-breaking color.
type TreeNode struct {
	Label     string
	EdgeLabel string
	Color     int
	Height    int
	Parent    *TreeNode
	Children  []*TreeNode
}

// Walk calls fn for every node in pre-order. Returning false from fn skips
// the node's children.
func (t *ColoredTree) Walk(fn func(*TreeNode) bool) {
	if t == nil || t.Root == nil {
		return
	}
	var visit func(*TreeNode)
	visit = func(n *TreeNode) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(t.Root)
}

// Size returns the number of nodes.
func (t *ColoredTree) Size() int {
	n := 0
	t.Walk(func(*TreeNode) bool { n++; return true })
	return n
}

// Height returns the largest node height, or -1 for an empty tree.
func (t *ColoredTree) Height() int {
	h := -1
	t.Walk(func(n *TreeNode) bool { h = max(h, n.Height); return true })
	return h
}

// Colors returns the distinct assigned colors in ascending order.
func (t *ColoredTree) Colors() []int {
	var out []int
	t.Walk(func(n *TreeNode) bool {
		if n.Color >= 0 {
			out = append(out, n.Color)
		}
		return true
	})
	slices.Sort(out)
	return slices.Compact(out)
}

// String renders the tree back into signature form.
func (t *ColoredTree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	var b strings.Builder
	t.Root.write(&b)
	return b.String()
}

// String renders the subtree rooted at n.
func (n *TreeNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *TreeNode) write(b *strings.Builder) {
	b.WriteString(n.EdgeLabel)
	b.WriteByte(startNode)
	b.WriteString(n.Label)
	if n.Color >= 0 {
		b.WriteByte(colorSep)
		b.WriteString(strconv.Itoa(n.Color))
	}
	b.WriteByte(endNode)
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte(startBranch)
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteByte(endBranch)
}
