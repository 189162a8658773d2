package graph

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnknownVertex is returned when an edge names a vertex that does not
	// exist.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrDuplicateVertex is returned when two vertices share an ID.
	ErrDuplicateVertex = errors.New("duplicate vertex id")

	// ErrSelfLoop is returned when an edge joins a vertex to itself.
	ErrSelfLoop = errors.New("self loop")

	// ErrConflictingEdge is returned when a parallel edge carries a
	// different label than the existing one.
	ErrConflictingEdge = errors.New("parallel edge with a different label")
)

// =============================================================================
// Document - Node-Link Serialization
// =============================================================================

// Document is the serialization format for graphs, used for files, API
// bodies and cache keys.
type Document struct {
	Vertices []Vertex  `json:"vertices" toml:"vertices" yaml:"vertices" bson:"vertices"`
	Edges    []EdgeRef `json:"edges" toml:"edges" yaml:"edges" bson:"edges"`
}

// Vertex is one vertex of a [Document] or [Graph].
type Vertex struct {
	ID     string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty" bson:"id,omitempty"`
	Symbol string `json:"symbol,omitempty" toml:"symbol,omitempty" yaml:"symbol,omitempty" bson:"symbol,omitempty"`
	Label  int    `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
}

// EdgeRef is an undirected edge between two vertex IDs.
type EdgeRef struct {
	From  string `json:"from" toml:"from" yaml:"from" bson:"from"`
	To    string `json:"to" toml:"to" yaml:"to" bson:"to"`
	Label string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
}

// Edge is an undirected edge between vertex indices.
type Edge struct {
	From  int
	To    int
	Label string
}

// Document converts g to its serialization format. Vertices and edges keep
// insertion order, so re-importing yields the same indices.
func (g *Graph) Document() Document {
	doc := Document{
		Vertices: make([]Vertex, len(g.vertices)),
		Edges:    make([]EdgeRef, len(g.edges)),
	}
	copy(doc.Vertices, g.vertices)
	for i, e := range g.edges {
		doc.Edges[i] = EdgeRef{
			From:  g.vertices[e.From].ID,
			To:    g.vertices[e.To].ID,
			Label: e.Label,
		}
	}
	return doc
}

// FromDocument builds a Graph from its serialization format.
// Errors are wrapped with the offending vertex or edge.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	for i, v := range doc.Vertices {
		if _, err := g.AddVertex(v); err != nil {
			return nil, errors.Wrapf(err, "vertex %d", i)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdgeByID(e.From, e.To, e.Label); err != nil {
			return nil, errors.Wrapf(err, "edge %s-%s", e.From, e.To)
		}
	}
	return g, nil
}

// MarshalJSON encodes g in the node-link format.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Document())
}

// UnmarshalGraph decodes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode graph")
	}
	return FromDocument(doc)
}

func defaultID(i int) string { return strconv.Itoa(i) }
