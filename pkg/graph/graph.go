package graph

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/matzehuels/graphsig/pkg/signature"
)

var _ signature.Graph = (*Graph)(nil)

// Graph is an undirected labeled graph addressed by dense vertex indices.
// Parallel edges with equal labels collapse into one.
type Graph struct {
	vertices []Vertex
	index    map[string]int
	adj      [][]int
	edges    []Edge
	labels   map[[2]int]string
	colors   *ColorRegistry
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:  make(map[string]int),
		labels: make(map[[2]int]string),
		colors: NewColorRegistry(),
	}
}

// AddVertex appends v and returns its index. An empty ID defaults to the
// index as a decimal string.
func (g *Graph) AddVertex(v Vertex) (int, error) {
	i := len(g.vertices)
	if v.ID == "" {
		v.ID = defaultID(i)
	}
	if _, ok := g.index[v.ID]; ok {
		return -1, errors.Wrapf(ErrDuplicateVertex, "%q", v.ID)
	}
	if err := checkLabel("symbol", v.Symbol); err != nil {
		return -1, err
	}
	g.index[v.ID] = i
	g.vertices = append(g.vertices, v)
	g.adj = append(g.adj, nil)
	return i, nil
}

// AddEdge joins from and to. Adding an edge that already exists with the
// same label is a no-op.
func (g *Graph) AddEdge(from, to int, label string) error {
	if from < 0 || from >= len(g.vertices) {
		return errors.Wrapf(ErrUnknownVertex, "index %d", from)
	}
	if to < 0 || to >= len(g.vertices) {
		return errors.Wrapf(ErrUnknownVertex, "index %d", to)
	}
	if from == to {
		return errors.Wrapf(ErrSelfLoop, "vertex %d", from)
	}
	if err := checkLabel("edge label", label); err != nil {
		return err
	}

	k := key(from, to)
	if existing, ok := g.labels[k]; ok {
		if existing != label {
			return errors.Wrapf(ErrConflictingEdge, "%d-%d: %q vs %q", from, to, existing, label)
		}
		return nil
	}
	g.labels[k] = label
	g.edges = append(g.edges, Edge{From: from, To: to, Label: label})
	g.adj[from] = append(g.adj[from], to)
	g.adj[to] = append(g.adj[to], from)
	g.colors.register(label)
	return nil
}

// AddEdgeByID joins the vertices with the given IDs.
func (g *Graph) AddEdgeByID(from, to, label string) error {
	f, ok := g.index[from]
	if !ok {
		return errors.Wrapf(ErrUnknownVertex, "%q", from)
	}
	t, ok := g.index[to]
	if !ok {
		return errors.Wrapf(ErrUnknownVertex, "%q", to)
	}
	return g.AddEdge(f, t, label)
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.labels[key(u, v)]
	return ok
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex at index i.
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Vertices returns a copy of all vertices in index order.
func (g *Graph) Vertices() []Vertex { return slices.Clone(g.vertices) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// IndexOf returns the index of the vertex with the given ID.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Neighbors returns the vertices adjacent to v in ascending order.
func (g *Graph) Neighbors(v int) []int {
	out := slices.Clone(g.adj[v])
	slices.Sort(out)
	return out
}

// =============================================================================
// signature.Graph
// =============================================================================

// Connected implements [signature.Graph].
func (g *Graph) Connected(v int) []int { return g.Neighbors(v) }

// VertexSymbol implements [signature.Graph].
func (g *Graph) VertexSymbol(v int) string { return g.vertices[v].Symbol }

// IntLabel implements [signature.Graph].
func (g *Graph) IntLabel(v int) int { return g.vertices[v].Label }

// EdgeLabel implements [signature.Graph].
func (g *Graph) EdgeLabel(u, v int) string { return g.labels[key(u, v)] }

// EdgeColor implements [signature.Graph].
func (g *Graph) EdgeColor(label string) int { return g.colors.Color(label) }

func key(u, v int) [2]int { return [2]int{min(u, v), max(u, v)} }
