package pipeline

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/render/nodelink"
	"github.com/matzehuels/graphsig/pkg/signature"
)

// RenderSignature draws the signature DAG of root in opts.Format.
func RenderSignature(ctx context.Context, g *graph.Graph, root int, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errs.ValidateRoot(root, g.VertexCount()); err != nil {
		return nil, err
	}

	sig, err := signature.Create(g, root, g.VertexCount(), opts.Height, signature.WithOptions(opts.SignatureOptions()))
	if err != nil {
		return nil, errs.FromSignatureError(err)
	}
	return RenderDOT(ctx, nodelink.SignatureDOT(sig, nodelink.Options{Detailed: opts.Detailed}), opts.Format)
}

// RenderTree draws a parsed signature string in opts.Format.
func RenderTree(ctx context.Context, s string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res, err := ParseSignature(s, false)
	if err != nil {
		return nil, err
	}
	return RenderDOT(ctx, nodelink.TreeDOT(res.Tree, nodelink.Options{Detailed: opts.Detailed}), opts.Format)
}

// RenderGraph draws the host graph in opts.Format.
func RenderGraph(ctx context.Context, g *graph.Graph, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return RenderDOT(ctx, nodelink.GraphDOT(g, nodelink.Options{Detailed: opts.Detailed}), opts.Format)
}

// RenderDOT converts DOT source to the given output format. The dot format
// returns the source unchanged.
func RenderDOT(ctx context.Context, dot, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
