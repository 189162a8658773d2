package signature

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"[C]",
		"[C,1]",
		"[C]([C][O])",
		"[C](=[O]#[N])",
		"[C]([C]([C,1])[C]([C,1]))",
		"[C12]([H][H][H])",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			tree, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", s, err)
			}
			if got := tree.String(); got != s {
				t.Errorf("String() = %q, want %q", got, s)
			}
		})
	}
}

func TestParseCanonicalStrings(t *testing.T) {
	graphs := map[string]*testGraph{
		"four cycle": newTestGraph(repeat("C", 4)...).ring(0, 1, 2, 3),
		"hexagon":    newTestGraph(repeat("C", 6)...).ring(0, 1, 2, 3, 4, 5),
		"substituted": substitutedRing("O", "N", "O", "C", "S", "O"),
		"labelled tree": newTestGraph("C", "C", "O", "N").
			edge(0, 1, "").edge(1, 2, "=").edge(1, 3, "#"),
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			for root := range g.count() {
				s := mustCreate(t, g, root, g.count(), -1).ToCanonicalString()
				tree, err := Parse(s)
				if err != nil {
					t.Fatalf("Parse(%q) error: %v", s, err)
				}
				if got := tree.String(); got != s {
					t.Errorf("root %d: String() = %q, want %q", root, got, s)
				}
			}
		})
	}
}

func TestParseLossyRoundTripAcyclic(t *testing.T) {
	graphs := map[string]*testGraph{
		"labelled tree": newTestGraph("C", "C", "O", "N").
			edge(0, 1, "").edge(1, 2, "=").edge(1, 3, "#"),
		"branched chain": newTestGraph("C", "C", "C", "O", "N", "S").
			edge(0, 1, "").edge(1, 2, "").edge(1, 3, "=").edge(2, 4, "#").edge(2, 5, ""),
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			wantLabels := slices.Sorted(slices.Values(g.symbols))
			var wantEdges []string
			for _, label := range g.edges {
				wantEdges = append(wantEdges, label)
			}
			slices.Sort(wantEdges)

			for root := range g.count() {
				sig := mustCreate(t, g, root, g.count(), -1)
				tree, err := Parse(sig.ToString())
				if err != nil {
					t.Fatalf("root %d: Parse(%q) error: %v", root, sig.ToString(), err)
				}
				if tree.Size() != sig.GetVertexCount() {
					t.Errorf("root %d: Size() = %d, want %d", root, tree.Size(), sig.GetVertexCount())
				}
				if tree.Root.Label != g.symbols[root] {
					t.Errorf("root %d: root label = %q, want %q", root, tree.Root.Label, g.symbols[root])
				}

				var labels, edges []string
				tree.Walk(func(n *TreeNode) bool {
					labels = append(labels, n.Label)
					if n.Parent != nil {
						edges = append(edges, n.EdgeLabel)
					}
					return true
				})
				slices.Sort(labels)
				slices.Sort(edges)
				if !slices.Equal(labels, wantLabels) {
					t.Errorf("root %d: labels = %v, want %v", root, labels, wantLabels)
				}
				if !slices.Equal(edges, wantEdges) {
					t.Errorf("root %d: edge labels = %q, want %q", root, edges, wantEdges)
				}
			}
		})
	}
}

func TestParseTreeShape(t *testing.T) {
	tree, err := Parse("[C](=[O][N]([H,2][H,2]))")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if tree.Root.Label != "C" || tree.Root.Parent != nil {
		t.Errorf("root = %+v", tree.Root)
	}
	if got := tree.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
	if got := tree.Height(); got != 2 {
		t.Errorf("Height() = %d, want 2", got)
	}
	if got := tree.Colors(); !slices.Equal(got, []int{2}) {
		t.Errorf("Colors() = %v, want [2]", got)
	}

	o := tree.Root.Children[0]
	if o.EdgeLabel != "=" || o.Label != "O" || o.Color != -1 {
		t.Errorf("first child = %+v", o)
	}
	n := tree.Root.Children[1]
	if n.Parent != tree.Root || len(n.Children) != 2 {
		t.Errorf("second child = %+v", n)
	}
	if got := n.String(); got != "[N]([H,2][H,2])" {
		t.Errorf("subtree String() = %q", got)
	}
}

func TestTreeWalkSkipsChildren(t *testing.T) {
	tree, err := Parse("[C]([N]([H][H])[O])")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	var seen []string
	tree.Walk(func(n *TreeNode) bool {
		seen = append(seen, n.Label)
		return n.Label != "N"
	})
	if want := []string{"C", "N", "O"}; !slices.Equal(seen, want) {
		t.Errorf("Walk visited %v, want %v", seen, want)
	}
}

func TestEmptyTree(t *testing.T) {
	var tree *ColoredTree
	if tree.Size() != 0 || tree.Height() != -1 || tree.String() != "" {
		t.Error("nil tree should be empty")
	}
	if got := (&ColoredTree{}).Colors(); len(got) != 0 {
		t.Errorf("Colors() = %v, want none", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   int    // -1 to skip the offset check
		expected string // empty to skip the expected-token check
	}{
		{"empty", "", 0, `"["`},
		{"unterminated node", "[C", 2, ""},
		{"unterminated branch", "[C]([C]]", 7, ""},
		{"two roots", "[C][C]", 3, ""},
		{"non numeric color", "[C,x]", -1, ""},
		{"missing color", "[C,]", -1, ""},
		{"empty branch", "[C]()", -1, ""},
		{"no node", "(", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.input, tree.String())
			}
			if tree != nil {
				t.Error("Parse returned a partial tree")
			}
			if !errors.Is(err, ErrMalformedSignature) {
				t.Errorf("error %v does not wrap ErrMalformedSignature", err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if tt.offset >= 0 && pe.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d (%v)", pe.Offset, tt.offset, err)
			}
			if pe.Message == "" {
				t.Error("empty Message")
			}
			if tt.expected != "" && pe.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", pe.Expected, tt.expected)
			}
			if pe.Expected != "" && !strings.Contains(pe.Error(), pe.Expected) {
				t.Errorf("Error() %q does not report the expected token %s", pe.Error(), pe.Expected)
			}
		})
	}
}
