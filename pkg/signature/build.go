package signature

// builder grows a DAG breadth first from the root using the host adapter.
type builder struct {
	g          Graph
	adj        *adjacency
	mapping    *VertexMapping
	dag        *DAG
	edgeLabels map[arc]string
}

func newBuilder(g Graph, root, vertexCount int, validate bool) *builder {
	m := newVertexMapping(vertexCount)
	return &builder{
		g:          g,
		adj:        newAdjacency(g, vertexCount, validate),
		mapping:    m,
		dag:        newDAG(m.Map(root)),
		edgeLabels: make(map[arc]string),
	}
}

// build adds up to height layers below the root; height < 0 is unbounded.
// Arcs are marked used once their layer is complete, so an edge joining two
// vertices of the same layer is crossed from both ends.
func (b *builder) build(height int) error {
	used := make(map[arc]struct{})
	prev := b.dag.layers[0]

	for layer := 1; height < 0 || layer <= height; layer++ {
		var (
			next      []int
			layerArcs []arc
			slot      = make(map[int]int) // internal vertex -> node in this layer
		)

		for _, h := range prev {
			pv := b.dag.nodes[h].Vertex
			pext := b.mapping.External(pv)
			nbrs, err := b.adj.neighbors(pext)
			if err != nil {
				return err
			}

			for _, uext := range nbrs {
				if err := b.adj.checkEdge(pext, uext); err != nil {
					return err
				}
				u := b.mapping.Map(uext)
				a := newArc(pv, u)
				if _, ok := used[a]; ok {
					continue
				}

				c, ok := slot[u]
				if !ok {
					c = b.dag.addNode(u, layer)
					slot[u] = c
					next = append(next, c)
				}

				label := b.g.EdgeLabel(pext, uext)
				if err := checkReserved("edge label", label); err != nil {
					return err
				}
				b.dag.link(h, c, b.g.EdgeColor(label))
				b.edgeLabels[a] = label
				layerArcs = append(layerArcs, a)
			}
		}

		for _, a := range layerArcs {
			used[a] = struct{}{}
		}
		if len(next) == 0 {
			break
		}
		b.dag.layers = append(b.dag.layers, next)
		prev = next
	}

	b.dag.vertexCount = b.mapping.Len()
	return nil
}
