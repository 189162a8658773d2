package signature

import (
	"slices"
	"testing"
)

func TestBuildMergesSameLayer(t *testing.T) {
	// 4-cycle rooted at 0: vertex 2 is reached from 1 and 3 in layer 2.
	g := newTestGraph(repeat("C", 4)...).ring(0, 1, 2, 3)
	s := mustCreate(t, g, 0, 4, -1)
	d := s.DAG()

	if d.LayerCount() != 3 {
		t.Fatalf("LayerCount() = %d, want 3", d.LayerCount())
	}
	last := d.Layer(2)
	if len(last) != 1 {
		t.Fatalf("layer 2 has %d nodes, want 1 merged node", len(last))
	}
	merged := d.Node(last[0])
	if len(merged.Parents) != 2 {
		t.Errorf("merged node has %d parents, want 2", len(merged.Parents))
	}
	if len(merged.EdgeColors) != 2 {
		t.Errorf("merged node keeps %d edge colors, want 2", len(merged.EdgeColors))
	}
	if d.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", d.NodeCount())
	}
}

func TestBuildSameLayerEdgeBothWays(t *testing.T) {
	// Triangle rooted at 0: the edge 1-2 joins two layer-1 vertices and is
	// crossed from both ends, giving two layer-2 nodes.
	g := newTestGraph(repeat("C", 3)...).ring(0, 1, 2)
	d := mustCreate(t, g, 0, 3, -1).DAG()

	if got := len(d.Layer(2)); got != 2 {
		t.Errorf("layer 2 has %d nodes, want 2", got)
	}
	if d.LayerCount() != 3 {
		t.Errorf("LayerCount() = %d, want 3", d.LayerCount())
	}
}

func TestParentCounts(t *testing.T) {
	g := newTestGraph(repeat("C", 4)...).ring(0, 1, 2, 3)
	d := mustCreate(t, g, 0, 4, -1).DAG()

	// Internal order: root, its neighbours 1 and 3, then the merged vertex 2.
	got := d.ParentCounts()
	want := []int{0, 1, 1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("ParentCounts() = %v, want %v", got, want)
	}
}

func TestRefineSeparatesLabels(t *testing.T) {
	g := newTestGraph("C", "O", "N").edge(0, 1, "").edge(0, 2, "")
	s := mustCreate(t, g, 0, 3, -1)
	d := s.DAG()

	st := d.RefineInvariants(s.seed)
	if st.VertexInvariant(1) == st.VertexInvariant(2) {
		t.Error("O and N should not share an invariant")
	}
	if st.Color(1) != -1 {
		t.Errorf("Color(1) = %d, want -1", st.Color(1))
	}
}

func TestRefineKeepsSymmetricTies(t *testing.T) {
	g := newTestGraph(repeat("C", 6)...).ring(0, 1, 2, 3, 4, 5)
	s := mustCreate(t, g, 0, 6, -1)
	st := s.DAG().RefineInvariants(s.seed)

	// Internal order: 0 root, 1 and 2 its neighbours, 3 and 4 next, 5 opposite.
	if st.VertexInvariant(1) != st.VertexInvariant(2) {
		t.Error("ring neighbours of the root should stay tied")
	}
	if st.VertexInvariant(3) != st.VertexInvariant(4) {
		t.Error("second ring shell should stay tied")
	}
	if st.VertexInvariant(0) == st.VertexInvariant(5) {
		t.Error("root and opposite vertex should be distinguished")
	}
}

func TestColorCopyOnBranch(t *testing.T) {
	g := newTestGraph(repeat("C", 4)...).ring(0, 1, 2, 3)
	s := mustCreate(t, g, 0, 4, -1)
	d := s.DAG()

	base := d.RefineInvariants(s.seed)
	colored := d.Color(base, 2, 5)
	if base.Color(2) != -1 {
		t.Error("Color must not modify its input state")
	}
	if colored.Color(2) != 5 {
		t.Errorf("Color(2) = %d, want 5", colored.Color(2))
	}
	if d.Uncolor(colored, 2).Color(2) != -1 {
		t.Error("Uncolor should reset the vertex")
	}
}

func TestOccurrencesAndOrbit(t *testing.T) {
	// K4 rooted at 0 repeats two of the three symmetric neighbours.
	g := newTestGraph(repeat("C", 4)...).
		edge(0, 1, "").edge(0, 2, "").edge(0, 3, "").edge(1, 2, "").edge(1, 3, "").edge(2, 3, "")
	s := mustCreate(t, g, 0, 4, -1)
	d := s.DAG()
	st := d.RefineInvariants(s.seed)

	counts, printParent := d.Occurrences(st)
	if counts[0] != 0 {
		t.Errorf("root counted %d times below itself", counts[0])
	}
	repeated := 0
	for _, c := range counts {
		if c >= 2 {
			repeated++
		}
	}
	if repeated != 2 {
		t.Errorf("counts = %v, want two repeated vertices", counts)
	}
	if printParent[d.Root()] != -1 {
		t.Errorf("root print parent = %d, want -1", printParent[d.Root()])
	}

	orbit := d.FindOrbit(st, counts)
	if len(orbit) != 2 {
		t.Fatalf("FindOrbit() = %v, want two members", orbit)
	}
	if !slices.IsSorted(orbit) {
		t.Errorf("FindOrbit() = %v, want sorted", orbit)
	}

	colored := d.Color(st, orbit[0], 1)
	if got := d.FindOrbit(colored, counts); slices.Contains(got, orbit[0]) {
		t.Errorf("colored vertex %d still in orbit %v", orbit[0], got)
	}
}

func TestChildOrderDoesNotMutate(t *testing.T) {
	g := newTestGraph("C", "S", "N", "O").edge(0, 1, "").edge(0, 2, "").edge(0, 3, "")
	s := mustCreate(t, g, 0, 4, -1)
	d := s.DAG()
	st := d.RefineInvariants(s.seed)

	before := slices.Clone(d.Node(d.Root()).Children)
	order := d.ChildOrder(st, d.Root())
	if !slices.Equal(before, d.Node(d.Root()).Children) {
		t.Error("ChildOrder reordered the DAG")
	}
	for i := 1; i < len(order); i++ {
		if st.NodeInvariant(order[i-1]) > st.NodeInvariant(order[i]) {
			t.Errorf("ChildOrder() = %v not sorted by invariant", order)
		}
	}
}
