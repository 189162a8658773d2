package pipeline

import (
	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/signature"
)

// ParseResult describes a signature string read back into a tree.
type ParseResult struct {
	Signature string          `json:"signature"` // re-rendered from the tree
	Nodes     int             `json:"nodes"`
	Height    int             `json:"height"`
	Colors    []int           `json:"colors,omitempty"`
	Graph     *graph.Document `json:"graph,omitempty"`

	Tree *signature.ColoredTree `json:"-"`
}

// ParseSignature parses s into a colored tree. When rebuild is set the
// tree is also turned back into a graph, merging nodes that share a color.
func ParseSignature(s string, rebuild bool) (*ParseResult, error) {
	if err := errs.ValidateSignatureString(s); err != nil {
		return nil, err
	}

	tree, err := signature.Parse(s)
	if err != nil {
		return nil, errs.FromSignatureError(err)
	}

	res := &ParseResult{
		Signature: tree.String(),
		Nodes:     tree.Size(),
		Height:    tree.Height(),
		Colors:    tree.Colors(),
		Tree:      tree,
	}
	if rebuild {
		g, err := graph.FromTree(tree)
		if err != nil {
			return nil, errs.FromSignatureError(err)
		}
		doc := g.Document()
		res.Graph = &doc
	}
	return res, nil
}
