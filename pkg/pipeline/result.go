package pipeline

import "github.com/matzehuels/graphsig/pkg/symmetry"

// SignatureResult is the signature of one root vertex.
type SignatureResult struct {
	Root        int    `json:"root"`
	Height      int    `json:"height"`
	Signature   string `json:"signature"`
	Canonical   bool   `json:"canonical"`
	VertexCount int    `json:"vertex_count"` // vertices within Height of Root
	SearchSteps int    `json:"search_steps,omitempty"`
}

// LabellingResult is the canonical labelling induced by a root vertex.
// Labelling[v] is the canonical rank of vertex v, or -1 when v lies
// outside the signature.
type LabellingResult struct {
	Root      int    `json:"root"`
	Height    int    `json:"height"`
	Signature string `json:"signature"`
	Labelling []int  `json:"labelling"`
}

// ClassEntry is one symmetry class.
type ClassEntry struct {
	Signature string `json:"signature"`
	Members   []int  `json:"members"`
}

// ClassesResult is the symmetry partition of a graph.
type ClassesResult struct {
	Height     int          `json:"height"`
	Classes    []ClassEntry `json:"classes"`
	Signatures []string     `json:"signatures"` // per vertex
}

// Partition rebuilds the symmetry partition from the per-vertex signatures.
func (r *ClassesResult) Partition() *symmetry.Partition {
	return symmetry.FromSignatures(r.Signatures)
}

func newClassesResult(height int, p *symmetry.Partition) *ClassesResult {
	res := &ClassesResult{Height: height, Signatures: p.Signatures()}
	for _, c := range p.Classes() {
		res.Classes = append(res.Classes, ClassEntry{Signature: c.Signature, Members: c.Members()})
	}
	return res
}
