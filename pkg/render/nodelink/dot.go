package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/signature"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds vertex indices and layers to node labels.
	// When false, only the symbol is shown.
	Detailed bool
}

const header = `  rankdir=TB;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=24, margin="0.2,0.1"];
  ranksep=0.5;
  nodesep=0.3;

`

// SignatureDOT converts the DAG of a vertex signature to Graphviz DOT. Each
// layer becomes a rank; merged nodes are shaded and the root is outlined.
func SignatureDOT(sig *signature.VertexSignature, opts Options) string {
	d := sig.DAG()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString(header)

	for l := range d.LayerCount() {
		buf.WriteString("  { rank=same;")
		for _, h := range d.Layer(l) {
			fmt.Fprintf(&buf, " n%d;", h)
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("\n")

	for h := range d.NodeCount() {
		n := d.Node(h)
		label := sig.Symbol(n.Vertex)
		if opts.Detailed {
			label = fmt.Sprintf("%s\nvertex: %d\nlayer: %d", label, sig.GetOriginalVertexIndex(n.Vertex), n.Layer)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if h == d.Root() {
			attrs = append(attrs, "penwidth=3")
		}
		if len(n.Parents) > 1 {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", h, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for h := range d.NodeCount() {
		n := d.Node(h)
		for _, c := range n.Children {
			writeEdge(&buf, "->", fmt.Sprintf("n%d", h), fmt.Sprintf("n%d", c), sig.EdgeLabel(n.Vertex, d.Node(c).Vertex))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// TreeDOT converts a parsed signature tree to Graphviz DOT. Nodes that
// carry a color are drawn dashed with the color after the symbol.
func TreeDOT(t *signature.ColoredTree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString(header)

	ids := make(map[*signature.TreeNode]int)
	var edges bytes.Buffer
	t.Walk(func(n *signature.TreeNode) bool {
		id := len(ids)
		ids[n] = id

		label := n.Label
		if n.Color >= 0 {
			label += "," + strconv.Itoa(n.Color)
		}
		if opts.Detailed {
			label = fmt.Sprintf("%s\nheight: %d", label, n.Height)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if n.Color >= 0 {
			attrs = append(attrs, `style="rounded,filled,dashed"`)
		}
		fmt.Fprintf(&buf, "  t%d [%s];\n", id, strings.Join(attrs, ", "))

		if n.Parent != nil {
			writeEdge(&edges, "->", fmt.Sprintf("t%d", ids[n.Parent]), fmt.Sprintf("t%d", id), n.EdgeLabel)
		}
		return true
	})

	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

// GraphDOT converts a host graph to an undirected Graphviz diagram.
func GraphDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString(header)

	for i, v := range g.Vertices() {
		label := v.Symbol
		if opts.Detailed {
			label = fmt.Sprintf("%s\nid: %s", label, v.ID)
			if v.Label != 0 {
				label += fmt.Sprintf("\nlabel: %d", v.Label)
			}
		}
		fmt.Fprintf(&buf, "  v%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		writeEdge(&buf, "--", fmt.Sprintf("v%d", e.From), fmt.Sprintf("v%d", e.To), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeEdge(buf *bytes.Buffer, op, from, to, label string) {
	if label == "" {
		fmt.Fprintf(buf, "  %s %s %s;\n", from, op, to)
		return
	}
	fmt.Fprintf(buf, "  %s %s %s [label=%q];\n", from, op, to, label)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the drawing scales
// from its own viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
