package graph

import (
	"github.com/pkg/errors"

	"github.com/matzehuels/graphsig/pkg/signature"
)

// FromTree rebuilds a graph from a parsed signature. Tree nodes carrying
// the same color >= 0 become one vertex; every other node becomes its own
// vertex. Vertex IDs are assigned in pre-order.
func FromTree(t *signature.ColoredTree) (*Graph, error) {
	g := New()
	if t == nil || t.Root == nil {
		return g, nil
	}

	byColor := make(map[int]int)
	vertexOf := make(map[*signature.TreeNode]int)

	var err error
	t.Walk(func(n *signature.TreeNode) bool {
		if err != nil {
			return false
		}
		v, ok := byColor[n.Color]
		if !ok || n.Color < 0 {
			v, err = g.AddVertex(Vertex{Symbol: n.Label})
			if err != nil {
				return false
			}
			if n.Color >= 0 {
				byColor[n.Color] = v
			}
		}
		vertexOf[n] = v

		if n.Parent == nil {
			return true
		}
		p := vertexOf[n.Parent]
		if p == v || g.HasEdge(p, v) {
			return true
		}
		if e := g.AddEdge(p, v, n.EdgeLabel); e != nil {
			err = errors.Wrapf(e, "rebuild edge at height %d", n.Height)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
