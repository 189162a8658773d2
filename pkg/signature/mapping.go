package signature

// VertexMapping is a dense bidirectional table between external (host)
// vertex indices and internal indices. Internal indices are assigned 0..N-1
// in discovery order.
type VertexMapping struct {
	toInternal []int // external -> internal, -1 if unmapped
	toExternal []int // internal -> external
}

func newVertexMapping(vertexCount int) *VertexMapping {
	m := &VertexMapping{toInternal: make([]int, vertexCount)}
	for i := range m.toInternal {
		m.toInternal[i] = -1
	}
	return m
}

// Map returns the internal index of external vertex v, assigning the next
// free one on first sight.
func (m *VertexMapping) Map(v int) int {
	if i := m.toInternal[v]; i >= 0 {
		return i
	}
	i := len(m.toExternal)
	m.toInternal[v] = i
	m.toExternal = append(m.toExternal, v)
	return i
}

// Internal returns the internal index of external vertex v.
func (m *VertexMapping) Internal(v int) (int, bool) {
	if v < 0 || v >= len(m.toInternal) {
		return -1, false
	}
	i := m.toInternal[v]
	return i, i >= 0
}

// External returns the external index of internal vertex i.
func (m *VertexMapping) External(i int) int { return m.toExternal[i] }

// Len returns the number of mapped vertices.
func (m *VertexMapping) Len() int { return len(m.toExternal) }
