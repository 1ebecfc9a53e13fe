package printer

import (
	"fmt"
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
)

// PrintAST renders prog as an indented tree, annotating each expression
// that the analyzer resolved to a symbol with its type, TAB index and
// scope level. Literals and operator nodes, which carry no symbol, print
// no annotation.
func (p *Printer) PrintAST(prog *ast.Program) {
	p.printNode(prog, 0)
}

func (p *Printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.writer, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *Printer) printNode(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Program:
		p.line(depth, "Program %s", node.Name)
		p.printNode(node.Block, depth+1)

	case *ast.Block:
		for _, d := range node.ConstDecls {
			p.printNode(d, depth)
		}
		for _, d := range node.TypeDecls {
			p.printNode(d, depth)
		}
		for _, d := range node.VarDecls {
			p.printNode(d, depth)
		}
		for _, d := range node.SubprogramDecls {
			p.printNode(d, depth)
		}
		p.printNode(node.Body, depth)

	case *ast.ConstDecl:
		p.line(depth, "ConstDecl %s", node.Name)
		p.printNode(node.Value, depth+1)

	case *ast.TypeDecl:
		p.line(depth, "TypeDecl %s = %s", node.Name, node.TypeExpr.String())

	case *ast.VarDecl:
		p.line(depth, "VarDecl %s : %s", strings.Join(node.Names, ", "), node.TypeExpr.String())

	case *ast.ProcedureDecl:
		p.line(depth, "ProcedureDecl %s(%s)", node.Name, paramList(node.Params))
		p.printNode(node.Block, depth+1)

	case *ast.FunctionDecl:
		ret := ""
		if node.Decoration != nil {
			ret = fmt.Sprintf(" -> %s", node.Decoration.Type)
		}
		p.line(depth, "FunctionDecl %s(%s): %s%s", node.Name, paramList(node.Params), node.ReturnType.String(), ret)
		p.printNode(node.Block, depth+1)

	case *ast.CompoundStmt:
		p.line(depth, "CompoundStmt")
		for _, st := range node.Stmts {
			p.printNode(st, depth+1)
		}

	case *ast.AssignStmt:
		p.line(depth, "AssignStmt")
		p.printNode(node.Target, depth+1)
		p.printNode(node.Value, depth+1)

	case *ast.IfStmt:
		p.line(depth, "IfStmt")
		p.printNode(node.Cond, depth+1)
		p.printNode(node.Then, depth+1)
		if node.Else != nil {
			p.printNode(node.Else, depth+1)
		}

	case *ast.WhileStmt:
		p.line(depth, "WhileStmt")
		p.printNode(node.Cond, depth+1)
		p.printNode(node.Body, depth+1)

	case *ast.ForStmt:
		p.line(depth, "ForStmt %s %s", node.Var, node.Direction)
		p.printNode(node.Start, depth+1)
		p.printNode(node.End, depth+1)
		p.printNode(node.Body, depth+1)

	case *ast.ProcCallStmt:
		p.line(depth, "ProcCallStmt %s%s", node.Name, decorationSuffix(node.Decoration))
		for _, arg := range node.Args {
			p.printNode(arg, depth+1)
		}

	case *ast.BinOp:
		p.line(depth, "BinOp %s%s", node.Op, decorationSuffix(node.Decoration))
		p.printNode(node.Left, depth+1)
		p.printNode(node.Right, depth+1)

	case *ast.UnaryOp:
		p.line(depth, "UnaryOp %s%s", node.Op, decorationSuffix(node.Decoration))
		p.printNode(node.Operand, depth+1)

	case *ast.CallExpr:
		p.line(depth, "CallExpr %s%s", node.Name, decorationSuffix(node.Decoration))
		for _, arg := range node.Args {
			p.printNode(arg, depth+1)
		}

	case *ast.VarRef:
		p.line(depth, "VarRef %s%s", node.Name, decorationSuffix(node.Decoration))

	case *ast.ArrayAccess:
		p.line(depth, "ArrayAccess%s", decorationSuffix(node.Decoration))
		p.printNode(node.Array, depth+1)
		p.printNode(node.Index, depth+1)

	case *ast.NumberLiteral:
		p.line(depth, "NumberLiteral %s%s", node.Value, decorationSuffix(node.Decoration))

	case *ast.StringLiteral:
		p.line(depth, "StringLiteral %q%s", node.Value, decorationSuffix(node.Decoration))

	case *ast.CharLiteral:
		p.line(depth, "CharLiteral %q%s", string(node.Value), decorationSuffix(node.Decoration))

	case *ast.BooleanLiteral:
		p.line(depth, "BooleanLiteral %t%s", node.Value, decorationSuffix(node.Decoration))

	default:
		p.line(depth, "%T", node)
	}
}

func paramList(params []*ast.Param) string {
	parts := make([]string, len(params))
	for i, prm := range params {
		parts[i] = prm.String()
	}
	return strings.Join(parts, ", ")
}

func decorationSuffix(d *ast.Decoration) string {
	if d == nil || d.Symbol < 0 {
		return ""
	}
	return fmt.Sprintf(" : %s (symbol=%d, level=%d)", d.Type, d.Symbol, d.ScopeLevel)
}
