package signature

import (
	"cmp"
	"slices"
)

// State holds the mutable part of a canonization: per-vertex colors and
// invariants and per-node invariants. DAG operations never modify a State
// in place; they return a new one, so a search branch can keep its parent's
// snapshot without undoing anything.
type State struct {
	colors    []int // per vertex, -1 = uncolored
	vertexInv []int // per vertex
	nodeInv   []int // per node
}

func (s State) clone() State {
	return State{
		colors:    slices.Clone(s.colors),
		vertexInv: slices.Clone(s.vertexInv),
		nodeInv:   slices.Clone(s.nodeInv),
	}
}

// Color returns the color of vertex v, or -1.
func (s State) Color(v int) int { return s.colors[v] }

// VertexInvariant returns the current invariant of vertex v.
func (s State) VertexInvariant(v int) int { return s.vertexInv[v] }

// NodeInvariant returns the current invariant of node h. Node invariants
// are only comparable within a layer.
func (s State) NodeInvariant(h int) int { return s.nodeInv[h] }

// Seed builds the initial state: every vertex uncolored, vertex invariants
// ranked from (symbol or label, parent count, position) tuples.
func (d *DAG) Seed(t InvariantType, symbols []string, labels []int) (State, error) {
	if err := t.Validate(); err != nil {
		return State{}, err
	}

	parents := d.ParentCounts()
	tuples := make([]Invariant, d.vertexCount)
	for v := range tuples {
		tuples[v] = Invariant{Rank: parents[v], Position: v}
		switch t {
		case StringInvariant:
			tuples[v].Symbol = symbols[v]
		case IntInvariant:
			tuples[v].Label = labels[v]
		}
	}

	s := State{
		colors:    make([]int, d.vertexCount),
		vertexInv: RankInvariants(tuples),
		nodeInv:   make([]int, len(d.nodes)),
	}
	for v := range s.colors {
		s.colors[v] = -1
	}
	return s, nil
}

// Color returns a copy of s with vertex v colored c.
func (d *DAG) Color(s State, v, c int) State {
	s = s.clone()
	s.colors[v] = c
	return s
}

// Uncolor returns a copy of s with vertex v uncolored.
func (d *DAG) Uncolor(s State, v int) State { return d.Color(s, v, -1) }

type direction int

const (
	up   direction = iota // leaves to root, keyed on children
	down                  // root to leaves, keyed on parents
)

// RefineInvariants returns s with node and vertex invariants refined until
// the vertex partition stops splitting. A node is keyed on its vertex
// color, its vertex invariant and the sorted multiset of (relative node
// invariant, edge color) pairs; a vertex on the node invariants of all its
// occurrences, layer by layer.
func (d *DAG) RefineInvariants(s State) State {
	s = s.clone()
	classes := distinct(s.vertexInv)
	for range d.vertexCount + 1 {
		d.updateNodes(s, up)
		d.updateVertices(s)
		d.updateNodes(s, down)
		d.updateVertices(s)

		next := distinct(s.vertexInv)
		if next == classes {
			break
		}
		classes = next
	}
	return s
}

func (d *DAG) updateNodes(s State, dir direction) {
	if dir == up {
		for i := len(d.layers) - 1; i >= 0; i-- {
			d.updateLayer(s, d.layers[i], dir)
		}
		return
	}
	for _, layer := range d.layers {
		d.updateLayer(s, layer, dir)
	}
}

func (d *DAG) updateLayer(s State, layer []int, dir direction) {
	keys := make([][]int, len(layer))
	for i, h := range layer {
		n := d.nodes[h]
		relatives := n.Parents
		if dir == up {
			relatives = n.Children
		}

		pairs := make([][2]int, 0, len(relatives))
		for _, r := range relatives {
			pairs = append(pairs, [2]int{s.nodeInv[r], n.EdgeColors[d.nodes[r].Vertex]})
		}
		slices.SortFunc(pairs, func(a, b [2]int) int {
			if c := cmp.Compare(a[0], b[0]); c != 0 {
				return c
			}
			return cmp.Compare(a[1], b[1])
		})

		key := make([]int, 0, 2+2*len(pairs))
		key = append(key, s.colors[n.Vertex], s.vertexInv[n.Vertex])
		for _, p := range pairs {
			key = append(key, p[0], p[1])
		}
		keys[i] = key
	}

	for i, r := range rankKeys(keys) {
		s.nodeInv[layer[i]] = r
	}
}

func (d *DAG) updateVertices(s State) {
	keys := make([][]int, d.vertexCount)
	for v := range keys {
		keys[v] = make([]int, len(d.layers))
	}
	for h, n := range d.nodes {
		keys[n.Vertex][n.Layer] = s.nodeInv[h]
	}
	copy(s.vertexInv, rankKeys(keys))
}

func distinct(values []int) int {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// FindOrbit returns the largest group of uncolored vertices that are
// printed at least twice and share a vertex invariant, sorted by internal
// index. Equal-sized groups are resolved towards the smaller invariant.
// The result is nil when no group has two or more members.
func (d *DAG) FindOrbit(s State, counts []int) []int {
	cells := make(map[int][]int)
	for v, n := range counts {
		if n >= 2 && s.colors[v] < 0 {
			inv := s.vertexInv[v]
			cells[inv] = append(cells[inv], v)
		}
	}

	best, bestInv := []int(nil), 0
	for inv, cell := range cells {
		if len(cell) > len(best) || (len(cell) == len(best) && inv < bestInv) {
			best, bestInv = cell, inv
		}
	}
	if len(best) < 2 {
		return nil
	}
	return best
}

// repeatedUncolored returns the uncolored vertices printed at least twice,
// ordered by vertex invariant then index.
func (d *DAG) repeatedUncolored(s State, counts []int) []int {
	var out []int
	for v, n := range counts {
		if n >= 2 && s.colors[v] < 0 {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b int) int {
		if c := cmp.Compare(s.vertexInv[a], s.vertexInv[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out
}
