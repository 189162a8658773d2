// Package graph provides the in-memory labeled multigraph used as the host
// for vertex signatures, and its node-link wire format.
//
// # Core Types
//
//   - [Graph]: vertices with a symbol and an integer label, undirected edges
//     with an optional label. Graph implements [signature.Graph].
//   - [Document], [Vertex], [EdgeRef]: the serialization types.
//
// # Wire Format
//
// Graphs use a node-link layout with string vertex IDs:
//
//	{
//	  "vertices": [{"id": "c1", "symbol": "C"}, {"id": "o1", "symbol": "O"}],
//	  "edges": [{"from": "c1", "to": "o1", "label": "="}]
//	}
//
// The same structure is used for TOML and YAML through struct tags; see
// package io for file handling. Vertex IDs default to the vertex index when
// omitted.
//
// # Edge Colors
//
// Edge labels are mapped to integer colors for refinement. The empty label
// is color 0 and the bond labels "-", "=", "#" and ":" are 1 to 4. Any other
// label present in the graph gets a color above those, in lexical order, so
// two graphs with the same labels agree on colors regardless of the order
// edges were added.
//
// # Trees
//
// [FromTree] rebuilds a graph from a parsed signature, merging nodes that
// share a color into a single vertex.
//
// # Concurrency
//
// A Graph is safe for concurrent reads once built, which is how signatures
// use it. Mutation is not synchronized.
package graph
