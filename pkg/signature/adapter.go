package signature

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Graph is the host adapter. The core never reads host data structures
// directly; it only calls these functions with external vertex indices.
type Graph interface {
	// Connected returns the neighbours of v.
	Connected(v int) []int
	// VertexSymbol returns the printable symbol of v.
	VertexSymbol(v int) string
	// IntLabel returns the integer label of v, used by IntInvariant.
	IntLabel(v int) int
	// EdgeLabel returns the printable label of the edge v1-v2.
	EdgeLabel(v1, v2 int) string
	// EdgeColor converts an edge label to the integer used in invariants.
	EdgeColor(label string) int
}

// reservedChars may not appear in symbols or edge labels.
const reservedChars = "()[],"

// checkReserved returns ErrReservedCharacter if s contains a structural
// character.
func checkReserved(kind, s string) error {
	if i := strings.IndexAny(s, reservedChars); i >= 0 {
		return errors.Wrapf(ErrReservedCharacter, "%s %q contains %q", kind, s, s[i])
	}
	return nil
}

// adjacency caches sorted, de-duplicated neighbour lists of the host graph
// and optionally checks them.
type adjacency struct {
	g           Graph
	vertexCount int
	validate    bool
	lists       map[int][]int
}

func newAdjacency(g Graph, vertexCount int, validate bool) *adjacency {
	return &adjacency{g: g, vertexCount: vertexCount, validate: validate, lists: make(map[int][]int)}
}

// neighbors returns the sorted neighbour list of external vertex v.
func (a *adjacency) neighbors(v int) ([]int, error) {
	if l, ok := a.lists[v]; ok {
		return l, nil
	}
	l := slices.Clone(a.g.Connected(v))
	slices.Sort(l)
	l = slices.Compact(l)
	for _, u := range l {
		if u < 0 || u >= a.vertexCount {
			return nil, errors.Wrapf(ErrVertexOutOfRange, "vertex %d lists neighbour %d (vertex count %d)", v, u, a.vertexCount)
		}
		if u == v {
			return nil, errors.Wrapf(ErrSelfLoop, "vertex %d", v)
		}
	}
	a.lists[v] = l
	return l, nil
}

// checkEdge verifies that the edge v-u is reported from both ends with the
// same label. It is a no-op when validation is disabled.
func (a *adjacency) checkEdge(v, u int) error {
	if !a.validate {
		return nil
	}
	back, err := a.neighbors(u)
	if err != nil {
		return err
	}
	if _, found := slices.BinarySearch(back, v); !found {
		return errors.Wrapf(ErrAsymmetricAdapter, "%d lists %d but %d does not list %d", v, u, u, v)
	}
	if l1, l2 := a.g.EdgeLabel(v, u), a.g.EdgeLabel(u, v); l1 != l2 {
		return errors.Wrapf(ErrAsymmetricAdapter, "edge %d-%d labelled %q one way and %q the other", v, u, l1, l2)
	}
	return nil
}
