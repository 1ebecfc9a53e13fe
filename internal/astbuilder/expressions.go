package astbuilder

import (
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// buildExpression lowers an <expression>/<simple-expr>/<term>/<factor>
// subtree into a typed Expression, re-associating binary chains
// left-to-right as it unwinds.
func buildExpression(n *parsetree.Node) (ast.Expression, error) {
	if n == nil {
		return nil, malformed(n, "nil expression node")
	}
	switch n.Label {
	case "<expression>":
		return buildRelational(n)
	case "<simple-expr>":
		return buildSimpleExpr(n)
	case "<term>":
		return buildTerm(n)
	case "<factor>":
		return buildFactor(n)
	default:
		return nil, malformed(n, "unexpected expression node label "+n.Label)
	}
}

func buildRelational(n *parsetree.Node) (ast.Expression, error) {
	nonLeaf := nonLeafChildren(n)
	if len(nonLeaf) == 1 {
		return buildExpression(nonLeaf[0])
	}
	if len(nonLeaf) != 2 {
		return nil, malformed(n, "relational expression needs one or two operands")
	}
	opLeaf, ok := firstLeaf(n)
	if !ok {
		return nil, malformed(n, "missing relational operator")
	}
	left, err := buildExpression(nonLeaf[0])
	if err != nil {
		return nil, err
	}
	right, err := buildExpression(nonLeaf[1])
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Op: opLeaf.Token.Value, Left: left, Right: right, Decoration: ast.NewDecoration()}, nil
}

func buildSimpleExpr(n *parsetree.Node) (ast.Expression, error) {
	children := n.Children
	if len(children) == 0 {
		return nil, malformed(n, "empty simple-expr")
	}

	idx := 0
	var signTok *token.Token
	if children[0].IsLeaf() && children[0].Token.Kind == token.ARITHMETIC_OPERATOR &&
		(children[0].Token.Value == "+" || children[0].Token.Value == "-") {
		signTok = children[0].Token
		idx = 1
	}
	if idx >= len(children) || children[idx].IsLeaf() {
		return nil, malformed(n, "missing leading term")
	}
	left, err := buildExpression(children[idx])
	if err != nil {
		return nil, err
	}
	if signTok != nil && signTok.Value == "-" {
		left = &ast.UnaryOp{Base: baseOf(signTok), Op: "-", Operand: left, Decoration: ast.NewDecoration()}
	}
	idx++

	for idx < len(children) {
		if !children[idx].IsLeaf() {
			return nil, malformed(n, "expected add-op leaf")
		}
		op := children[idx].Token.Value
		idx++
		if idx >= len(children) || children[idx].IsLeaf() {
			return nil, malformed(n, "missing right-hand term")
		}
		right, err := buildExpression(children[idx])
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Decoration: ast.NewDecoration()}
		idx++
	}
	return left, nil
}

func buildTerm(n *parsetree.Node) (ast.Expression, error) {
	children := n.Children
	if len(children) == 0 || children[0].IsLeaf() {
		return nil, malformed(n, "missing leading factor")
	}
	left, err := buildExpression(children[0])
	if err != nil {
		return nil, err
	}
	idx := 1
	for idx < len(children) {
		if !children[idx].IsLeaf() {
			return nil, malformed(n, "expected mul-op leaf")
		}
		op := children[idx].Token.Value
		idx++
		if idx >= len(children) || children[idx].IsLeaf() {
			return nil, malformed(n, "missing right-hand factor")
		}
		right, err := buildExpression(children[idx])
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Decoration: ast.NewDecoration()}
		idx++
	}
	return left, nil
}

func buildFactor(n *parsetree.Node) (ast.Expression, error) {
	children := n.Children
	if len(children) == 0 {
		return nil, malformed(n, "empty factor")
	}

	if children[0].IsLeaf() {
		lead := children[0].Token

		switch lead.Kind {
		case token.NUMBER:
			return &ast.NumberLiteral{
				Base:       baseOf(lead),
				Value:      lead.Value,
				IsReal:     strings.Contains(lead.Value, "."),
				Decoration: ast.NewDecoration(),
			}, nil
		case token.STRING_LITERAL:
			return &ast.StringLiteral{Base: baseOf(lead), Value: lead.Value, Decoration: ast.NewDecoration()}, nil
		case token.CHAR_LITERAL:
			r := []rune(lead.Value)
			var v rune
			if len(r) > 0 {
				v = r[0]
			}
			return &ast.CharLiteral{Base: baseOf(lead), Value: v, Decoration: ast.NewDecoration()}, nil
		case token.LOGICAL_OPERATOR:
			if !strings.EqualFold(lead.Value, "tidak") {
				return nil, malformed(n, "unexpected logical operator in factor: "+lead.Value)
			}
			if len(children) < 2 {
				return nil, malformed(n, "'tidak' missing operand")
			}
			operand, err := buildExpression(children[1])
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOp{Base: baseOf(lead), Op: "tidak", Operand: operand, Decoration: ast.NewDecoration()}, nil
		case token.LPARENTHESIS:
			if len(children) < 2 {
				return nil, malformed(n, "empty parenthesized expression")
			}
			return buildExpression(children[1])
		case token.IDENTIFIER:
			return buildIdentFactor(n, lead)
		default:
			return nil, malformed(n, "unexpected leaf kind in factor: "+lead.Kind.String())
		}
	}

	return nil, malformed(n, "factor must start with a leaf")
}

func buildIdentFactor(n *parsetree.Node, ident *token.Token) (ast.Expression, error) {
	children := n.Children
	if len(children) == 1 {
		return &ast.VarRef{Base: baseOf(ident), Name: ident.Value, Decoration: ast.NewDecoration()}, nil
	}

	second := children[1]
	if !second.IsLeaf() {
		return nil, malformed(n, "expected leaf after identifier in factor")
	}

	switch second.Token.Kind {
	case token.LPARENTHESIS:
		var args []ast.Expression
		if len(children) >= 3 && !children[2].IsLeaf() && children[2].Label == "<param-list>" {
			list, err := buildParamList(children[2])
			if err != nil {
				return nil, err
			}
			args = list
		}
		return &ast.CallExpr{Base: baseOf(ident), Name: ident.Value, Args: args, Decoration: ast.NewDecoration()}, nil

	case token.LBRACKET:
		if len(children) < 3 || children[2].IsLeaf() {
			return nil, malformed(n, "missing array index expression")
		}
		idx, err := buildExpression(children[2])
		if err != nil {
			return nil, err
		}
		arr := &ast.VarRef{Base: baseOf(ident), Name: ident.Value, Decoration: ast.NewDecoration()}
		return &ast.ArrayAccess{Base: baseOf(ident), Array: arr, Index: idx, Decoration: ast.NewDecoration()}, nil

	default:
		return nil, malformed(n, "unexpected token after identifier in factor")
	}
}

func buildParamList(n *parsetree.Node) ([]ast.Expression, error) {
	var out []ast.Expression
	for _, c := range n.Children {
		if c.IsLeaf() {
			continue
		}
		e, err := buildExpression(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func baseOf(tok *token.Token) ast.Base {
	return ast.Base{Tok: *tok}
}

func nonLeafChildren(n *parsetree.Node) []*parsetree.Node {
	var out []*parsetree.Node
	for _, c := range n.Children {
		if !c.IsLeaf() {
			out = append(out, c)
		}
	}
	return out
}

func firstLeaf(n *parsetree.Node) (*parsetree.Node, bool) {
	for _, c := range n.Children {
		if c.IsLeaf() {
			return c, true
		}
	}
	return nil, false
}
