package signature

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// InvariantType selects which host label seeds the vertex invariants.
type InvariantType int

const (
	// StringInvariant seeds invariants from [Graph.VertexSymbol].
	StringInvariant InvariantType = iota
	// IntInvariant seeds invariants from [Graph.IntLabel].
	IntInvariant
)

// String returns "string" or "int".
func (t InvariantType) String() string {
	switch t {
	case StringInvariant:
		return "string"
	case IntInvariant:
		return "int"
	default:
		return "unknown"
	}
}

// Validate returns ErrUnknownInvariantType for values outside the enum.
func (t InvariantType) Validate() error {
	if t != StringInvariant && t != IntInvariant {
		return errors.Wrapf(ErrUnknownInvariantType, "%d", int(t))
	}
	return nil
}

// ParseInvariantType converts "string" or "int" (case-insensitive) to an
// InvariantType.
func ParseInvariantType(s string) (InvariantType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "symbol":
		return StringInvariant, nil
	case "int", "integer", "label":
		return IntInvariant, nil
	default:
		return 0, errors.Wrapf(ErrUnknownInvariantType, "%q", s)
	}
}

// Invariant is the sortable seed tuple of a vertex. Tuples order by Symbol
// (ordinal), then Label, then Rank. Position records where the tuple came
// from and never takes part in comparisons.
type Invariant struct {
	Symbol   string
	Label    int
	Rank     int
	Position int
}

// Compare returns -1, 0 or +1 comparing a and b, ignoring Position.
func (a Invariant) Compare(b Invariant) int {
	if c := strings.Compare(a.Symbol, b.Symbol); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Label, b.Label); c != 0 {
		return c
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// Equal reports whether a and b are tied.
func (a Invariant) Equal(b Invariant) bool { return a.Compare(b) == 0 }

// RankInvariants assigns dense ranks starting at 1 to tuples, equal tuples
// sharing a rank. The result is indexed by Position, which must be a
// permutation of 0..len(tuples)-1.
func RankInvariants(tuples []Invariant) []int {
	sorted := slices.Clone(tuples)
	slices.SortStableFunc(sorted, func(a, b Invariant) int {
		if c := a.Compare(b); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	ranks := make([]int, len(tuples))
	rank := 0
	for i, t := range sorted {
		if i == 0 || !sorted[i-1].Equal(t) {
			rank++
		}
		ranks[t.Position] = rank
	}
	return ranks
}

// rankKeys assigns dense ranks starting at 1 to integer keys compared
// lexicographically. ranks[i] belongs to keys[i].
func rankKeys(keys [][]int) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return slices.Compare(keys[a], keys[b])
	})

	ranks := make([]int, len(keys))
	rank := 0
	for i, idx := range order {
		if i == 0 || slices.Compare(keys[order[i-1]], keys[idx]) != 0 {
			rank++
		}
		ranks[idx] = rank
	}
	return ranks
}
