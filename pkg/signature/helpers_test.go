package signature

import "slices"

// testGraph is a minimal host adapter for tests.
type testGraph struct {
	symbols []string
	labels  []int
	adj     [][]int
	edges   map[[2]int]string
}

func newTestGraph(symbols ...string) *testGraph {
	return &testGraph{
		symbols: symbols,
		labels:  make([]int, len(symbols)),
		adj:     make([][]int, len(symbols)),
		edges:   make(map[[2]int]string),
	}
}

func (g *testGraph) edge(u, v int, label string) *testGraph {
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.edges[[2]int{min(u, v), max(u, v)}] = label
	return g
}

func (g *testGraph) ring(vs ...int) *testGraph {
	for i := range vs {
		g.edge(vs[i], vs[(i+1)%len(vs)], "")
	}
	return g
}

func (g *testGraph) Connected(v int) []int    { return slices.Clone(g.adj[v]) }
func (g *testGraph) VertexSymbol(v int) string { return g.symbols[v] }
func (g *testGraph) IntLabel(v int) int        { return g.labels[v] }
func (g *testGraph) EdgeLabel(u, v int) string { return g.edges[[2]int{min(u, v), max(u, v)}] }

func (g *testGraph) EdgeColor(label string) int {
	switch label {
	case "":
		return 0
	case "=":
		return 2
	case "#":
		return 3
	default:
		return 9
	}
}

func (g *testGraph) count() int { return len(g.symbols) }

// permute returns a copy of g where vertex v becomes perm[v].
func (g *testGraph) permute(perm []int) *testGraph {
	symbols := make([]string, len(g.symbols))
	for v, s := range g.symbols {
		symbols[perm[v]] = s
	}
	out := newTestGraph(symbols...)
	for v, l := range g.labels {
		out.labels[perm[v]] = l
	}
	for e, label := range g.edges {
		out.edge(perm[e[0]], perm[e[1]], label)
	}
	// Connected order must not matter.
	for v := range out.adj {
		slices.Reverse(out.adj[v])
	}
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// substitutedRing builds a six ring 0..5 where ring vertex i carries the
// substituent 6+i with symbol subs[i].
func substitutedRing(subs ...string) *testGraph {
	g := newTestGraph(append(repeat("C", 6), subs...)...)
	g.ring(0, 1, 2, 3, 4, 5)
	for i := range subs {
		g.edge(i, 6+i, "")
	}
	return g
}

func mustCreate(t interface {
	Helper()
	Fatalf(string, ...any)
}, g Graph, root, n, height int, opts ...Option) *VertexSignature {
	t.Helper()
	s, err := Create(g, root, n, height, opts...)
	if err != nil {
		t.Fatalf("Create(root=%d, height=%d) error: %v", root, height, err)
	}
	return s
}
