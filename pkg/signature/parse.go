package signature

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// astNode mirrors the grammar
//
//	node     := edgeLabel? '[' symbol (',' color)? ']' children?
//	children := '(' node+ ')'
type astNode struct {
	Pos lexer.Position

	EdgeLabel string     `parser:"@(Text | Int)*"`
	Symbol    string     `parser:"'[' @(Text | Int)*"`
	Color     *int       `parser:"( ',' @Int )? ']'"`
	Children  []*astNode `parser:"( '(' @@+ ')' )?"`
}

var (
	signatureLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Punct", Pattern: `[()\[\],]`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Text", Pattern: `[^()\[\],0-9]+`},
	})

	signatureParser = participle.MustBuild[astNode](
		participle.Lexer(signatureLexer),
	)
)

// Parse reads a signature string into a [ColoredTree]. The first node is
// the root; every later node hangs below the node whose branch encloses it.
// Malformed input returns a *ParseError wrapping ErrMalformedSignature and
// never a partial tree.
func Parse(s string) (*ColoredTree, error) {
	if s == "" {
		return nil, &ParseError{Expected: `"["`, Message: "empty signature", Line: 1, Column: 1}
	}

	ast, err := signatureParser.ParseString("", s)
	if err != nil {
		return nil, newParseError(err)
	}

	t := &ColoredTree{}
	t.Root = t.fromAST(ast, nil, 0)
	return t, nil
}

func (t *ColoredTree) fromAST(a *astNode, parent *TreeNode, height int) *TreeNode {
	n := &TreeNode{
		Label:     a.Symbol,
		EdgeLabel: a.EdgeLabel,
		Color:     -1,
		Height:    height,
		Parent:    parent,
	}
	if a.Color != nil {
		n.Color = *a.Color
	}
	for _, c := range a.Children {
		n.Children = append(n.Children, t.fromAST(c, n, height+1))
	}
	return n
}
