// Package astbuilder performs the deterministic structural lowering from
// the parser's homogeneous parse tree into the typed AST, per spec §4.4.
// It never re-parses: each routine extracts the children it needs by
// label or leaf marker from an already-shaped subtree.
package astbuilder

import (
	"fmt"
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// MalformedNodeError reports a parse-tree shape the builder did not
// expect — typically a partial tree produced by a diagnostic-mode parse
// that recovered past a missing production.
type MalformedNodeError struct {
	Label string
	Detail string
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed-node: %s: %s", e.Label, e.Detail)
}

func malformed(n *parsetree.Node, detail string) error {
	label := "<nil>"
	if n != nil {
		label = n.Label
	}
	return &MalformedNodeError{Label: label, Detail: detail}
}

// Build lowers a parse tree rooted at a "<program>" node into an *ast.Program.
func Build(tree *parsetree.Node) (*ast.Program, error) {
	if tree == nil || tree.Label != "<program>" {
		return nil, malformed(tree, "expected <program> root")
	}

	header, ok := findLabel(tree, "<program-header>")
	if !ok {
		return nil, malformed(tree, "missing <program-header>")
	}
	idents := leafChildrenOfKind(header, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(header, "missing program name")
	}

	declPart, ok := findLabel(tree, "<declaration-part>")
	if !ok {
		return nil, malformed(tree, "missing <declaration-part>")
	}
	compound, ok := findLabel(tree, "<compound-stmt>")
	if !ok {
		return nil, malformed(tree, "missing body <compound-stmt>")
	}

	block, err := buildBlock(declPart, compound)
	if err != nil {
		return nil, err
	}

	return &ast.Program{Base: baseOf(idents[0].Token), Name: idents[0].Token.Value, Block: block}, nil
}

func buildBlock(declPart, compound *parsetree.Node) (*ast.Block, error) {
	block := &ast.Block{}

	for _, n := range findAllLabel(declPart, "<const-decl>") {
		decls, err := buildConstDecl(n)
		if err != nil {
			return nil, err
		}
		block.ConstDecls = append(block.ConstDecls, decls...)
	}
	for _, n := range findAllLabel(declPart, "<type-decl>") {
		decls, err := buildTypeDecl(n)
		if err != nil {
			return nil, err
		}
		block.TypeDecls = append(block.TypeDecls, decls...)
	}
	for _, n := range findAllLabel(declPart, "<var-decl>") {
		decls, err := buildVarDecl(n)
		if err != nil {
			return nil, err
		}
		block.VarDecls = append(block.VarDecls, decls...)
	}
	for _, n := range findAllLabel(declPart, "<procedure-decl>") {
		d, err := buildProcedureDecl(n)
		if err != nil {
			return nil, err
		}
		block.SubprogramDecls = append(block.SubprogramDecls, d)
	}
	for _, n := range findAllLabel(declPart, "<function-decl>") {
		d, err := buildFunctionDecl(n)
		if err != nil {
			return nil, err
		}
		block.SubprogramDecls = append(block.SubprogramDecls, d)
	}

	body, err := buildCompoundStmt(compound)
	if err != nil {
		return nil, err
	}
	block.Body = body
	return block, nil
}

// --- declarations --------------------------------------------------------

func buildConstDecl(n *parsetree.Node) ([]*ast.ConstDecl, error) {
	var out []*ast.ConstDecl
	var pendingName *token.Token

	for _, c := range n.Children {
		if c.IsLeaf() {
			if c.Token.Kind == token.IDENTIFIER {
				t := *c.Token
				pendingName = &t
			}
			continue
		}
		if pendingName == nil {
			return nil, malformed(n, "const value without a pending name")
		}
		value, err := buildExpression(c)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.ConstDecl{Base: baseOf(pendingName), Name: pendingName.Value, Value: value})
		pendingName = nil
	}
	if len(out) == 0 {
		return nil, malformed(n, "no constants declared")
	}
	return out, nil
}

func buildTypeDecl(n *parsetree.Node) ([]*ast.TypeDecl, error) {
	var out []*ast.TypeDecl
	var pendingName *token.Token

	for _, c := range n.Children {
		if c.IsLeaf() {
			if c.Token.Kind == token.IDENTIFIER {
				t := *c.Token
				pendingName = &t
			}
			continue
		}
		if pendingName == nil {
			return nil, malformed(n, "type value without a pending name")
		}
		te, err := buildTypeExpr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.TypeDecl{Base: baseOf(pendingName), Name: pendingName.Value, TypeExpr: te})
		pendingName = nil
	}
	if len(out) == 0 {
		return nil, malformed(n, "no types declared")
	}
	return out, nil
}

func buildVarDecl(n *parsetree.Node) ([]*ast.VarDecl, error) {
	var out []*ast.VarDecl
	var pendingNames []string

	for _, c := range n.Children {
		if c.IsLeaf() {
			continue
		}
		if c.Label == "<ident-list>" {
			pendingNames = identListNames(c)
			continue
		}
		if pendingNames == nil {
			return nil, malformed(n, "type without a pending ident-list")
		}
		te, err := buildTypeExpr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.VarDecl{Names: pendingNames, TypeExpr: te})
		pendingNames = nil
	}
	if len(out) == 0 {
		return nil, malformed(n, "no variables declared")
	}
	return out, nil
}

func identListNames(n *parsetree.Node) []string {
	var names []string
	for _, c := range n.Children {
		if c.IsLeaf() && c.Token.Kind == token.IDENTIFIER {
			names = append(names, c.Token.Value)
		}
	}
	return names
}

func buildParams(formalParams *parsetree.Node) ([]*ast.Param, error) {
	var params []*ast.Param
	for _, group := range findAllLabel(formalParams, "<param-group>") {
		identList, ok := findLabel(group, "<ident-list>")
		if !ok {
			return nil, malformed(group, "missing ident-list")
		}
		var typeNode *parsetree.Node
		for _, c := range group.Children {
			if !c.IsLeaf() && c.Label != "<ident-list>" {
				typeNode = c
			}
		}
		if typeNode == nil {
			return nil, malformed(group, "missing type")
		}
		te, err := buildTypeExpr(typeNode)
		if err != nil {
			return nil, err
		}
		for _, name := range identListNames(identList) {
			params = append(params, &ast.Param{Name: name, TypeExpr: te, Kind: "value"})
		}
	}
	return params, nil
}

func buildProcedureDecl(n *parsetree.Node) (*ast.ProcedureDecl, error) {
	idents := leafChildrenOfKind(n, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(n, "missing procedure name")
	}
	var params []*ast.Param
	if fp, ok := findLabel(n, "<formal-params>"); ok {
		var err error
		params, err = buildParams(fp)
		if err != nil {
			return nil, err
		}
	}
	blockNode, ok := findLabel(n, "<block>")
	if !ok {
		return nil, malformed(n, "missing block")
	}
	declPart, ok := findLabel(blockNode, "<declaration-part>")
	if !ok {
		return nil, malformed(blockNode, "missing declaration-part")
	}
	compound, ok := findLabel(blockNode, "<compound-stmt>")
	if !ok {
		return nil, malformed(blockNode, "missing compound-stmt")
	}
	block, err := buildBlock(declPart, compound)
	if err != nil {
		return nil, err
	}
	return &ast.ProcedureDecl{Base: baseOf(idents[0].Token), Name: idents[0].Token.Value, Params: params, Block: block}, nil
}

func buildFunctionDecl(n *parsetree.Node) (*ast.FunctionDecl, error) {
	idents := leafChildrenOfKind(n, token.IDENTIFIER)
	if len(idents) == 0 {
		return nil, malformed(n, "missing function name")
	}
	var params []*ast.Param
	if fp, ok := findLabel(n, "<formal-params>"); ok {
		var err error
		params, err = buildParams(fp)
		if err != nil {
			return nil, err
		}
	}
	typeNode, ok := findLabel(n, "<type>")
	if !ok {
		typeNode, ok = findLabel(n, "<array-type>")
	}
	if !ok {
		return nil, malformed(n, "missing return type")
	}
	returnType, err := buildTypeExpr(typeNode)
	if err != nil {
		return nil, err
	}

	blockNode, ok := findLabel(n, "<block>")
	if !ok {
		return nil, malformed(n, "missing block")
	}
	declPart, ok := findLabel(blockNode, "<declaration-part>")
	if !ok {
		return nil, malformed(blockNode, "missing declaration-part")
	}
	compound, ok := findLabel(blockNode, "<compound-stmt>")
	if !ok {
		return nil, malformed(blockNode, "missing compound-stmt")
	}
	block, err := buildBlock(declPart, compound)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Base:       baseOf(idents[0].Token),
		Name:       idents[0].Token.Value,
		Params:     params,
		ReturnType: returnType,
		Block:      block,
		Decoration: ast.NewDecoration(),
	}, nil
}

// --- tree-scanning helpers -------------------------------------------------

func findLabel(n *parsetree.Node, label string) (*parsetree.Node, bool) {
	for _, c := range n.Children {
		if !c.IsLeaf() && c.Label == label {
			return c, true
		}
	}
	return nil, false
}

func findAllLabel(n *parsetree.Node, label string) []*parsetree.Node {
	var out []*parsetree.Node
	for _, c := range n.Children {
		if !c.IsLeaf() && c.Label == label {
			out = append(out, c)
		}
	}
	return out
}

func leafChildrenOfKind(n *parsetree.Node, kind token.Kind) []*parsetree.Node {
	var out []*parsetree.Node
	for _, c := range n.Children {
		if c.IsLeaf() && c.Token.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func hasLeafValue(n *parsetree.Node, value string) bool {
	for _, c := range n.Children {
		if c.IsLeaf() && strings.EqualFold(c.Token.Value, value) {
			return true
		}
	}
	return false
}
