package signature

import (
	"errors"
	"slices"
	"testing"
)

func TestRankInvariants(t *testing.T) {
	tuples := []Invariant{
		{Symbol: "O", Rank: 1, Position: 2},
		{Symbol: "C", Rank: 2, Position: 0},
		{Symbol: "C", Rank: 1, Position: 1},
		{Symbol: "C", Rank: 1, Position: 3},
	}

	got := RankInvariants(tuples)
	want := []int{2, 1, 3, 1}
	if !slices.Equal(got, want) {
		t.Errorf("RankInvariants() = %v, want %v", got, want)
	}
}

func TestInvariantCompare(t *testing.T) {
	tests := []struct {
		a, b Invariant
		want int
	}{
		{Invariant{Symbol: "C"}, Invariant{Symbol: "O"}, -1},
		{Invariant{Symbol: "N", Label: 3}, Invariant{Symbol: "N", Label: 2}, 1},
		{Invariant{Label: 1, Rank: 2}, Invariant{Label: 1, Rank: 3}, -1},
		{Invariant{Symbol: "C", Position: 4}, Invariant{Symbol: "C", Position: 9}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%+v.Compare(%+v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.a.Equal(tt.b) != (tt.want == 0) {
			t.Errorf("%+v.Equal(%+v) disagrees with Compare", tt.a, tt.b)
		}
	}
}

func TestParseInvariantType(t *testing.T) {
	tests := []struct {
		in   string
		want InvariantType
		err  bool
	}{
		{"string", StringInvariant, false},
		{"SYMBOL", StringInvariant, false},
		{" int ", IntInvariant, false},
		{"label", IntInvariant, false},
		{"float", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseInvariantType(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownInvariantType) {
				t.Errorf("ParseInvariantType(%q) error = %v, want ErrUnknownInvariantType", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseInvariantType(%q) = %v, %v", tt.in, got, err)
		}
		if got.String() == "unknown" {
			t.Errorf("%v has no name", got)
		}
	}
}

func TestVertexMapping(t *testing.T) {
	m := newVertexMapping(5)
	if m.Map(3) != 0 || m.Map(1) != 1 || m.Map(3) != 0 {
		t.Fatal("Map should assign indices in discovery order")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if m.External(1) != 1 || m.External(0) != 3 {
		t.Error("External disagrees with Map")
	}
	if i, ok := m.Internal(3); !ok || i != 0 {
		t.Errorf("Internal(3) = %d, %v", i, ok)
	}
	if _, ok := m.Internal(4); ok {
		t.Error("Internal(4) should be unmapped")
	}
	if _, ok := m.Internal(9); ok {
		t.Error("Internal(9) should be out of range")
	}
}
