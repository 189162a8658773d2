// Package nodelink renders signatures as node-link diagrams.
//
// # Overview
//
// Three DOT builders cover the objects graphsig works with:
//
//   - [SignatureDOT] draws the layered DAG of a vertex signature. Each layer
//     is one Graphviz rank, and nodes reached from several parents in the
//     same layer are drawn once and shaded.
//   - [TreeDOT] draws a [signature.ColoredTree] read back from a string.
//     Nodes carrying a color show it after the symbol.
//   - [GraphDOT] draws the host graph itself as an undirected diagram.
//
// # Usage
//
//	dot := nodelink.SignatureDOT(sig, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// [Options.Detailed] adds vertex indices and layer numbers to node labels.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz as
// WebAssembly, so no system Graphviz install is needed.
//
// [signature.ColoredTree]: github.com/matzehuels/graphsig/pkg/signature.ColoredTree
package nodelink
