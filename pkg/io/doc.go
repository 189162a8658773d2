// Package io reads and writes graphs in JSON, TOML and YAML.
//
// # Overview
//
// All three formats carry the same node-link document defined by
// [graph.Document]:
//
//	{
//	  "vertices": [
//	    {"id": "c1", "symbol": "C", "label": 6},
//	    {"id": "o1", "symbol": "O", "label": 8}
//	  ],
//	  "edges": [
//	    {"from": "c1", "to": "o1", "label": "="}
//	  ]
//	}
//
// The TOML form uses arrays of tables:
//
//	[[vertices]]
//	id = "c1"
//	symbol = "C"
//
//	[[edges]]
//	from = "c1"
//	to = "o1"
//	label = "="
//
// # Vertex Fields
//
//   - id: unique string identifier; defaults to the vertex index
//   - symbol: printable symbol used by string invariants
//   - label: integer label used by int invariants
//
// Symbols and edge labels must not contain ( ) [ ] or ,.
//
// # Import
//
// Use [ImportFile] to read a graph from a path, with the format chosen by
// extension, or [ReadGraph] with an explicit [Format]:
//
//	g, err := io.ImportFile("benzene.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors are wrapped with the offending vertex or edge.
//
// # Export
//
// Use [ExportFile] or [WriteGraph]. Vertices and edges keep their order, so
// an exported graph re-imports with the same vertex indices.
package io
