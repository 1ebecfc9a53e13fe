package astbuilder

import (
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// buildTypeExpr lowers a <type>/<array-type> subtree into a TypeExpr.
func buildTypeExpr(n *parsetree.Node) (ast.TypeExpr, error) {
	if n == nil {
		return nil, malformed(n, "nil type node")
	}
	switch n.Label {
	case "<type>":
		leaf, ok := firstLeaf(n)
		if !ok {
			return nil, malformed(n, "empty type")
		}
		switch leaf.Token.Kind {
		case token.KEYWORD:
			return &ast.PrimitiveType{Base: baseOf(leaf.Token), Name: strings.ToLower(leaf.Token.Value)}, nil
		case token.IDENTIFIER:
			return &ast.NamedType{Base: baseOf(leaf.Token), Name: leaf.Token.Value}, nil
		default:
			return nil, malformed(n, "unexpected leaf kind in type: "+leaf.Token.Kind.String())
		}

	case "<array-type>":
		nonLeaf := nonLeafChildren(n)
		if len(nonLeaf) != 2 {
			return nil, malformed(n, "array-type needs a range and an element type")
		}
		rangeExpr, err := buildRangeExpr(nonLeaf[0])
		if err != nil {
			return nil, err
		}
		elem, err := buildTypeExpr(nonLeaf[1])
		if err != nil {
			return nil, err
		}
		kwLeaf, _ := firstLeaf(n)
		base := ast.Base{}
		if kwLeaf != nil {
			base = baseOf(kwLeaf.Token)
		}
		return &ast.ArrayType{Base: base, IndexRange: rangeExpr, ElementType: elem}, nil

	default:
		return nil, malformed(n, "unexpected type node label "+n.Label)
	}
}

func buildRangeExpr(n *parsetree.Node) (*ast.RangeExpr, error) {
	if n.Label != "<range>" {
		return nil, malformed(n, "expected <range>")
	}
	nonLeaf := nonLeafChildren(n)
	if len(nonLeaf) != 2 {
		return nil, malformed(n, "range needs a lower and upper bound")
	}
	lower, err := buildExpression(nonLeaf[0])
	if err != nil {
		return nil, err
	}
	upper, err := buildExpression(nonLeaf[1])
	if err != nil {
		return nil, err
	}
	return &ast.RangeExpr{Lower: lower, Upper: upper}, nil
}
