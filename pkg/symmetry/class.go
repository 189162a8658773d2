package symmetry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Class is a set of vertices sharing one canonical signature.
type Class struct {
	Signature string
	members   *treeset.Set
}

// NewClass returns an empty class for sig.
func NewClass(sig string) *Class {
	return &Class{Signature: sig, members: treeset.NewWith(utils.IntComparator)}
}

// Has reports whether v is a member.
func (c *Class) Has(v int) bool { return c.members.Contains(v) }

// Add inserts v. Adding an existing member is a no-op.
func (c *Class) Add(v int) { c.members.Add(v) }

// Size returns the number of members.
func (c *Class) Size() int { return c.members.Size() }

// Members returns the members in ascending order.
func (c *Class) Members() []int {
	out := make([]int, 0, c.members.Size())
	for _, v := range c.members.Values() {
		out = append(out, v.(int))
	}
	return out
}

// Minimal returns the smallest member not in used, or -1 when v is not a
// member or every member is used.
func (c *Class) Minimal(v int, used []int) int {
	if !c.Has(v) {
		return -1
	}
	it := c.members.Iterator()
	for it.Next() {
		m := it.Value().(int)
		if !slices.Contains(used, m) {
			return m
		}
	}
	return -1
}

// String formats the class as "signature {m1 m2 ...}".
func (c *Class) String() string {
	ms := c.Members()
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprint(m)
	}
	return c.Signature + " {" + strings.Join(parts, " ") + "}"
}
