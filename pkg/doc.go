// Package pkg provides the libraries behind graphsig, a toolkit for
// canonical vertex signatures of labeled graphs.
//
// # Overview
//
// A signature of a root vertex is a canonical string: two rooted vertices
// get the same string exactly when some automorphism maps one onto the
// other. The pkg directory is organized into:
//
//  1. [signature] - signature DAG, invariant refinement, canonical search, parsing
//  2. [graph] - the labeled graph model and its node-link serialization
//  3. [symmetry] - symmetry classes built from per-vertex signatures
//  4. [pipeline] - cached orchestration used by the CLI and the HTTP API
//  5. [cache] - result cache backends (file, memory, redis, badger, mongo)
//  6. [render] - Graphviz drawings of signature DAGs, trees and graphs
//
// Supporting packages: [io] (JSON/TOML/YAML files), [errors] (coded
// errors), [observability] (hooks and Prometheus metrics), [buildinfo].
//
// # Data Flow
//
//	graph file (JSON/TOML/YAML)
//	         ↓
//	    [io] → [graph].Graph
//	         ↓
//	    [signature].Create (DAG + refinement)
//	         ↓
//	    canonical string / labelling
//	         ↓
//	    [symmetry] classes, [render] drawings
//
// # Quick Start
//
//	g, _ := io.ImportFile("benzene.json")
//	sig, _ := signature.CreateMaximumHeight(g, 0, g.VertexCount())
//	fmt.Println(sig.ToCanonicalString())
//
// [signature]: github.com/matzehuels/graphsig/pkg/signature
// [graph]: github.com/matzehuels/graphsig/pkg/graph
// [symmetry]: github.com/matzehuels/graphsig/pkg/symmetry
// [pipeline]: github.com/matzehuels/graphsig/pkg/pipeline
// [cache]: github.com/matzehuels/graphsig/pkg/cache
// [render]: github.com/matzehuels/graphsig/pkg/render
// [io]: github.com/matzehuels/graphsig/pkg/io
// [errors]: github.com/matzehuels/graphsig/pkg/errors
// [observability]: github.com/matzehuels/graphsig/pkg/observability
// [buildinfo]: github.com/matzehuels/graphsig/pkg/buildinfo
package pkg
