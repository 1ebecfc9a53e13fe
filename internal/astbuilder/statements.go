package astbuilder

import (
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

func buildCompoundStmt(n *parsetree.Node) (*ast.CompoundStmt, error) {
	if n.Label != "<compound-stmt>" {
		return nil, malformed(n, "expected <compound-stmt>")
	}
	var stmts []ast.Statement
	for _, c := range n.Children {
		if c.IsLeaf() {
			continue
		}
		s, err := buildStatement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	leaf, _ := firstLeaf(n)
	b := ast.Base{}
	if leaf != nil {
		b = baseOf(leaf.Token)
	}
	return &ast.CompoundStmt{Base: b, Stmts: stmts}, nil
}

func buildStatement(n *parsetree.Node) (ast.Statement, error) {
	switch n.Label {
	case "<compound-stmt>":
		return buildCompoundStmt(n)
	case "<if-stmt>":
		return buildIfStmt(n)
	case "<while-stmt>":
		return buildWhileStmt(n)
	case "<for-stmt>":
		return buildForStmt(n)
	case "<assignment-stmt>":
		return buildAssignStmt(n)
	case "<proc-call>":
		return buildProcCallStmt(n)
	default:
		return nil, malformed(n, "unexpected statement node label "+n.Label)
	}
}

func buildIfStmt(n *parsetree.Node) (*ast.IfStmt, error) {
	nonLeaf := nonLeafChildren(n)
	if len(nonLeaf) < 2 {
		return nil, malformed(n, "if-stmt needs a condition and a then-branch")
	}
	cond, err := buildExpression(nonLeaf[0])
	if err != nil {
		return nil, err
	}
	then, err := buildStatement(nonLeaf[1])
	if err != nil {
		return nil, err
	}
	b := ast.Base{}
	if leaf, ok := firstLeaf(n); ok {
		b = baseOf(leaf.Token)
	}
	stmt := &ast.IfStmt{Base: b, Cond: cond, Then: then}
	if hasLeafValue(n, "selain_itu") {
		if len(nonLeaf) < 3 {
			return nil, malformed(n, "'selain_itu' present without an else-branch")
		}
		elseStmt, err := buildStatement(nonLeaf[2])
		if err != nil {
			return nil, err
		}
		stmt.Else = elseStmt
	}
	return stmt, nil
}

func buildWhileStmt(n *parsetree.Node) (*ast.WhileStmt, error) {
	nonLeaf := nonLeafChildren(n)
	if len(nonLeaf) != 2 {
		return nil, malformed(n, "while-stmt needs a condition and a body")
	}
	cond, err := buildExpression(nonLeaf[0])
	if err != nil {
		return nil, err
	}
	body, err := buildStatement(nonLeaf[1])
	if err != nil {
		return nil, err
	}
	b := ast.Base{}
	if leaf, ok := firstLeaf(n); ok {
		b = baseOf(leaf.Token)
	}
	return &ast.WhileStmt{Base: b, Cond: cond, Body: body}, nil
}

func buildForStmt(n *parsetree.Node) (*ast.ForStmt, error) {
	idents := leafChildrenOfKind(n, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(n, "for-stmt missing control variable")
	}
	nonLeaf := nonLeafChildren(n)
	if len(nonLeaf) != 3 {
		return nil, malformed(n, "for-stmt needs start, end and body")
	}
	start, err := buildExpression(nonLeaf[0])
	if err != nil {
		return nil, err
	}
	end, err := buildExpression(nonLeaf[1])
	if err != nil {
		return nil, err
	}
	body, err := buildStatement(nonLeaf[2])
	if err != nil {
		return nil, err
	}

	direction := ast.TO
	for _, c := range n.Children {
		if c.IsLeaf() && c.Token.Kind == token.KEYWORD && strings.EqualFold(c.Token.Value, "turun_ke") {
			direction = ast.DOWNTO
		}
	}

	return &ast.ForStmt{
		Base:      baseOf(idents[0].Token),
		Var:       idents[0].Token.Value,
		Start:     start,
		End:       end,
		Direction: direction,
		Body:      body,
	}, nil
}

func buildAssignStmt(n *parsetree.Node) (*ast.AssignStmt, error) {
	idents := leafChildrenOfKind(n, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(n, "assignment-stmt missing target identifier")
	}
	nameTok := idents[0].Token
	nonLeaf := nonLeafChildren(n)

	var target ast.Expression = &ast.VarRef{Base: baseOf(nameTok), Name: nameTok.Value, Decoration: ast.NewDecoration()}
	var valueNode *parsetree.Node

	if len(nonLeaf) == 2 {
		idx, err := buildExpression(nonLeaf[0])
		if err != nil {
			return nil, err
		}
		target = &ast.ArrayAccess{Base: baseOf(nameTok), Array: target, Index: idx, Decoration: ast.NewDecoration()}
		valueNode = nonLeaf[1]
	} else if len(nonLeaf) == 1 {
		valueNode = nonLeaf[0]
	} else {
		return nil, malformed(n, "assignment-stmt has an unexpected shape")
	}

	value, err := buildExpression(valueNode)
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Base: baseOf(nameTok), Target: target, Value: value}, nil
}

func buildProcCallStmt(n *parsetree.Node) (*ast.ProcCallStmt, error) {
	idents := leafChildrenOfKind(n, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(n, "proc-call missing name")
	}
	var args []ast.Expression
	if list, ok := findLabel(n, "<param-list>"); ok {
		var err error
		args, err = buildParamList(list)
		if err != nil {
			return nil, err
		}
	}
	return &ast.ProcCallStmt{
		Base:       baseOf(idents[0].Token),
		Name:       idents[0].Token.Value,
		Args:       args,
		Decoration: ast.NewDecoration(),
	}, nil
}
