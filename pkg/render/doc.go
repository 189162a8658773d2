// Package render groups the visual outputs of graphsig.
//
// The [nodelink] subpackage draws signature DAGs, parsed signature trees
// and host graphs as Graphviz node-link diagrams and renders them to SVG or
// PNG in-process.
//
//	dot := nodelink.SignatureDOT(sig, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/graphsig/pkg/render/nodelink
package render
