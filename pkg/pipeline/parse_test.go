package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/signature"
)

func TestParseSignature(t *testing.T) {
	res, err := ParseSignature("[C]([C,1]([O])[C,1]=[N])", true)
	if err != nil {
		t.Fatalf("ParseSignature() error: %v", err)
	}

	if res.Nodes != 5 {
		t.Errorf("Nodes = %d, want 5", res.Nodes)
	}
	if res.Height != 2 {
		t.Errorf("Height = %d, want 2", res.Height)
	}
	if len(res.Colors) != 1 || res.Colors[0] != 1 {
		t.Errorf("Colors = %v, want [1]", res.Colors)
	}
	if res.Signature != "[C]([C,1]([O])[C,1]=[N])" {
		t.Errorf("Signature = %q", res.Signature)
	}
	if res.Graph == nil {
		t.Fatal("rebuild should produce a graph")
	}
	// The two C,1 nodes merge into one vertex.
	if len(res.Graph.Vertices) != 4 {
		t.Errorf("rebuilt graph has %d vertices, want 4", len(res.Graph.Vertices))
	}
}

func TestParseSignatureWithoutRebuild(t *testing.T) {
	res, err := ParseSignature("[C]", false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Graph != nil {
		t.Error("Graph should be nil without rebuild")
	}
	if res.Tree == nil || res.Tree.Size() != 1 {
		t.Errorf("Tree = %v, want a single node", res.Tree)
	}
}

func TestParseSignatureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unclosed", "[C"},
		{"two roots", "[C][C]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignature(tt.input, false)
			if !errs.Is(err, errs.ErrCodeInvalidSignature) {
				t.Errorf("ParseSignature(%q) error = %v, want INVALID_SIGNATURE", tt.input, err)
			}
		})
	}

	_, err := ParseSignature("[C", false)
	var perr *signature.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v should carry a *signature.ParseError", err)
	}
	if perr.Offset != 2 {
		t.Errorf("Offset = %d, want 2", perr.Offset)
	}
}

func TestRenderDOT(t *testing.T) {
	ctx := context.Background()

	out, err := RenderDOT(ctx, "digraph G {}", FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "digraph G {}" {
		t.Errorf("dot format should return the source, got %q", out)
	}

	if _, err := RenderDOT(ctx, "digraph G {}", "pdf"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderSignature(t *testing.T) {
	ctx := context.Background()
	g := substitutedRing(t, "O")

	opts := DefaultOptions()
	opts.Format = FormatDOT
	out, err := RenderSignature(ctx, g, 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("digraph G {")) {
		t.Errorf("RenderSignature() = %s", out)
	}

	if _, err := RenderSignature(ctx, g, 99, opts); !errs.Is(err, errs.ErrCodeInvalidRoot) {
		t.Errorf("bad root error = %v, want INVALID_ROOT", err)
	}
}

func TestRenderTreeAndGraph(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Format = FormatDOT

	tree, err := RenderTree(ctx, "[C]([O][O])", opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(tree), "->") != 2 {
		t.Errorf("RenderTree() = %s, want two edges", tree)
	}

	g, err := RenderGraph(ctx, substitutedRing(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(g), "--") != 6 {
		t.Errorf("RenderGraph() = %s, want six edges", g)
	}

	opts.Format = FormatSVG
	svg, err := RenderTree(ctx, "[C]([O][O])", opts)
	if err != nil {
		t.Fatalf("RenderTree(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderTree(svg) output is not SVG")
	}
}
