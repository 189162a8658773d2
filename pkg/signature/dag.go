package signature

import (
	"cmp"
	"slices"
)

// Node is one occurrence of a vertex in a layer of the [DAG]. A vertex
// reached from several parents in the same layer has a single Node that
// keeps every parent and every parent's edge color.
type Node struct {
	Vertex     int         // internal vertex index
	Layer      int         // BFS depth, 0 for the root
	Parents    []int       // node handles one layer up
	Children   []int       // node handles one layer down
	EdgeColors map[int]int // partner internal vertex -> edge color
}

// arc is an unordered pair of internal vertex indices.
type arc struct{ a, b int }

func newArc(u, v int) arc {
	if u > v {
		u, v = v, u
	}
	return arc{u, v}
}

// DAG is the layered, merge-aware BFS structure rooted at one vertex.
// Nodes live in an arena and are addressed by integer handles; handle 0 is
// the root. Topology is fixed once built. Everything that changes during
// canonization (colors and invariants) lives in a separate [State].
type DAG struct {
	nodes       []Node
	layers      [][]int
	vertexCount int
}

func newDAG(rootVertex int) *DAG {
	d := &DAG{}
	root := d.addNode(rootVertex, 0)
	d.layers = [][]int{{root}}
	d.vertexCount = 1
	return d
}

func (d *DAG) addNode(vertex, layer int) int {
	d.nodes = append(d.nodes, Node{Vertex: vertex, Layer: layer, EdgeColors: make(map[int]int)})
	return len(d.nodes) - 1
}

// link records parent -> child with the given edge color on both endpoints.
func (d *DAG) link(parent, child, edgeColor int) {
	p, c := &d.nodes[parent], &d.nodes[child]
	p.Children = append(p.Children, child)
	c.Parents = append(c.Parents, parent)
	p.EdgeColors[c.Vertex] = edgeColor
	c.EdgeColors[p.Vertex] = edgeColor
}

// Root returns the handle of the root node.
func (d *DAG) Root() int { return 0 }

// Node returns the node with handle h.
func (d *DAG) Node(h int) Node { return d.nodes[h] }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// VertexCount returns the number of distinct vertices.
func (d *DAG) VertexCount() int { return d.vertexCount }

// LayerCount returns the number of layers including the root layer.
func (d *DAG) LayerCount() int { return len(d.layers) }

// Layer returns the node handles of layer i.
func (d *DAG) Layer(i int) []int { return slices.Clone(d.layers[i]) }

// ParentCounts returns, per internal vertex, the number of parent relations
// over all of its nodes.
func (d *DAG) ParentCounts() []int {
	counts := make([]int, d.vertexCount)
	for _, n := range d.nodes {
		counts[n.Vertex] += len(n.Parents)
	}
	return counts
}

// ChildOrder returns the children of h sorted by node invariant in s, ties
// resolved by handle. The DAG itself is left untouched.
func (d *DAG) ChildOrder(s State, h int) []int {
	order := slices.Clone(d.nodes[h].Children)
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(s.nodeInv[a], s.nodeInv[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

// visitor receives the print-order walk of a DAG.
type visitor interface {
	enter(h, parent int)
	openBranch()
	closeBranch()
	leave(h int)
}

// walk visits nodes depth first from the root in the order of s. An arc is
// crossed at most once per walk, so a merged node is entered from every
// parent but its children are expanded only under the first one.
func (d *DAG) walk(s State, v visitor) {
	used := make(map[arc]struct{})
	var visit func(h, parent int)
	visit = func(h, parent int) {
		v.enter(h, parent)
		opened := false
		for _, c := range d.ChildOrder(s, h) {
			a := newArc(d.nodes[h].Vertex, d.nodes[c].Vertex)
			if _, ok := used[a]; ok {
				continue
			}
			used[a] = struct{}{}
			if !opened {
				v.openBranch()
				opened = true
			}
			visit(c, h)
		}
		if opened {
			v.closeBranch()
		}
		v.leave(h)
	}
	visit(d.Root(), -1)
}

// occurrenceVisitor counts vertex occurrences and remembers, per node, the
// parent it was first entered from.
type occurrenceVisitor struct {
	d           *DAG
	counts      []int
	printParent []int
}

func (o *occurrenceVisitor) enter(h, parent int) {
	if parent < 0 {
		return
	}
	o.counts[o.d.nodes[h].Vertex]++
	if o.printParent[h] < 0 {
		o.printParent[h] = parent
	}
}

func (o *occurrenceVisitor) openBranch()  {}
func (o *occurrenceVisitor) closeBranch() {}
func (o *occurrenceVisitor) leave(int)    {}

// Occurrences walks the print order of s. It returns how many times each
// vertex is printed below the root and, per node, the canonical printing
// parent: the parent under which the node's children are expanded (-1 for
// the root and for nodes never printed).
func (d *DAG) Occurrences(s State) (counts []int, printParent []int) {
	o := &occurrenceVisitor{
		d:           d,
		counts:      make([]int, d.vertexCount),
		printParent: make([]int, len(d.nodes)),
	}
	for i := range o.printParent {
		o.printParent[i] = -1
	}
	d.walk(s, o)
	return o.counts, o.printParent
}
