package graph

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/matzehuels/graphsig/pkg/signature"
)

// Bond labels with fixed colors.
var bondColors = map[string]int{
	"":  0,
	"-": 1,
	"=": 2,
	"#": 3,
	":": 4,
}

// ColorRegistry maps edge labels to colors. Bond labels have fixed colors;
// other labels are ranked lexically after them.
type ColorRegistry struct {
	custom []string // sorted
}

// NewColorRegistry returns a registry holding only the bond labels.
func NewColorRegistry() *ColorRegistry { return &ColorRegistry{} }

func (r *ColorRegistry) register(label string) {
	if _, ok := bondColors[label]; ok {
		return
	}
	i, found := slices.BinarySearch(r.custom, label)
	if !found {
		r.custom = slices.Insert(r.custom, i, label)
	}
}

// Color returns the color of label. Unregistered labels share the color
// just past the registered ones.
func (r *ColorRegistry) Color(label string) int {
	if c, ok := bondColors[label]; ok {
		return c
	}
	i, _ := slices.BinarySearch(r.custom, label)
	return len(bondColors) + i
}

// Labels returns the registered custom labels in color order.
func (r *ColorRegistry) Labels() []string { return slices.Clone(r.custom) }

const reserved = "()[],"

func checkLabel(kind, s string) error {
	if strings.ContainsAny(s, reserved) {
		return errors.Wrapf(signature.ErrReservedCharacter, "%s %q", kind, s)
	}
	return nil
}
