// Package ast defines the typed abstract syntax tree the AST builder
// lowers the parse tree into, and that the semantic analyzer decorates
// with resolved types and symbols.
package ast

import (
	"bytes"
	"strings"

	"github.com/anellautari/pascalsindo/internal/types"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// Decoration holds what the semantic analyzer writes onto a node once it
// has been visited: its type, the TAB index it resolved to (-1 if none),
// and the lexical level at which that resolution happened.
type Decoration struct {
	Type       types.Kind
	Symbol     int
	ScopeLevel int
}

// NewDecoration returns a zero decoration with no symbol resolved.
func NewDecoration() *Decoration {
	return &Decoration{Type: types.NOTYP, Symbol: -1, ScopeLevel: -1}
}

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Line() int
	Column() int
}

// Expression is any node that produces a value and can carry a Decoration.
type Expression interface {
	Node
	expressionNode()
	GetDecoration() *Decoration
	SetDecoration(*Decoration)
}

// Statement is any node that performs an action rather than producing one.
type Statement interface {
	Node
	statementNode()
}

// Decl is any top-level or block-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeExpr is any node in the {integer,real,boolean,char,named,array} type
// grammar.
type TypeExpr interface {
	Node
	typeExprNode()
}

type Base struct {
	Tok token.Token
}

func (b Base) TokenLiteral() string { return b.Tok.Value }
func (b Base) Line() int            { return b.Tok.Line }
func (b Base) Column() int          { return b.Tok.Column }

// Program is the AST root: { name, block }.
type Program struct {
	Base
	Name  string
	Block *Block
}

func (p *Program) String() string {
	if p.Block == nil {
		return "program " + p.Name + ";"
	}
	return "program " + p.Name + ";\n" + p.Block.String() + "."
}

// Block is { const_decls, type_decls, var_decls, subprogram_decls, body }.
type Block struct {
	Base
	ConstDecls      []*ConstDecl
	TypeDecls       []*TypeDecl
	VarDecls        []*VarDecl
	SubprogramDecls []Decl
	Body            *CompoundStmt
}

func (b *Block) String() string {
	var out bytes.Buffer
	for _, d := range b.ConstDecls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range b.TypeDecls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range b.VarDecls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range b.SubprogramDecls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if b.Body != nil {
		out.WriteString(b.Body.String())
	}
	return out.String()
}

// --- declarations --------------------------------------------------------

// ConstDecl is { name, value }.
type ConstDecl struct {
	Base
	Name  string
	Value Expression
}

func (d *ConstDecl) declNode()      {}
func (d *ConstDecl) String() string { return "konstanta " + d.Name + " = " + d.Value.String() + ";" }

// TypeDecl is { name, type_expr }.
type TypeDecl struct {
	Base
	Name     string
	TypeExpr TypeExpr
}

func (d *TypeDecl) declNode()      {}
func (d *TypeDecl) String() string { return "tipe " + d.Name + " = " + d.TypeExpr.String() + ";" }

// VarDecl is { names[], type_expr }.
type VarDecl struct {
	Base
	Names    []string
	TypeExpr TypeExpr
}

func (d *VarDecl) declNode() {}
func (d *VarDecl) String() string {
	return "variabel " + strings.Join(d.Names, ", ") + ": " + d.TypeExpr.String() + ";"
}

// Param is { name, type_expr, kind }. Kind is always "value" for
// Pascal-S-Indo: the grammar has no reference-parameter syntax.
type Param struct {
	Base
	Name     string
	TypeExpr TypeExpr
	Kind     string
}

func (p *Param) declNode()      {}
func (p *Param) String() string { return p.Name + ": " + p.TypeExpr.String() }

// ProcedureDecl is { name, params, block }.
type ProcedureDecl struct {
	Base
	Name   string
	Params []*Param
	Block  *Block
}

func (d *ProcedureDecl) declNode() {}
func (d *ProcedureDecl) String() string {
	return "prosedur " + d.Name + "(...);\n" + d.Block.String() + ";"
}

// FunctionDecl is { name, params, return_type, block }.
type FunctionDecl struct {
	Base
	Name       string
	Params     []*Param
	ReturnType TypeExpr
	Block      *Block
	Decoration *Decoration
}

func (d *FunctionDecl) declNode() {}
func (d *FunctionDecl) String() string {
	return "fungsi " + d.Name + "(...): " + d.ReturnType.String() + ";\n" + d.Block.String() + ";"
}

// --- type expressions -----------------------------------------------------

// PrimitiveType is one of integer, real, boolean, char.
type PrimitiveType struct {
	Base
	Name string
}

func (t *PrimitiveType) typeExprNode() {}
func (t *PrimitiveType) String() string { return t.Name }

// NamedType refers to a previously declared type by identifier.
type NamedType struct {
	Base
	Name string
}

func (t *NamedType) typeExprNode() {}
func (t *NamedType) String() string { return t.Name }

// RangeExpr is { lower, upper }, the bounds of an array index range.
type RangeExpr struct {
	Base
	Lower Expression
	Upper Expression
}

func (r *RangeExpr) typeExprNode() {}
func (r *RangeExpr) String() string { return r.Lower.String() + ".." + r.Upper.String() }

// ArrayType is { index_range, element_type }.
type ArrayType struct {
	Base
	IndexRange  *RangeExpr
	ElementType TypeExpr
}

func (t *ArrayType) typeExprNode() {}
func (t *ArrayType) String() string {
	return "larik[" + t.IndexRange.String() + "] dari " + t.ElementType.String()
}

// --- statements -----------------------------------------------------------

// CompoundStmt is { stmts[] }.
type CompoundStmt struct {
	Base
	Stmts []Statement
}

func (s *CompoundStmt) statementNode() {}
func (s *CompoundStmt) String() string {
	var out bytes.Buffer
	out.WriteString("mulai\n")
	for _, st := range s.Stmts {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(st.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("selesai")
	return out.String()
}

// AssignStmt is { target, value }. target is a VarRef or ArrayAccess.
type AssignStmt struct {
	Base
	Target Expression
	Value  Expression
}

func (s *AssignStmt) statementNode() {}
func (s *AssignStmt) String() string { return s.Target.String() + " := " + s.Value.String() }

// IfStmt is { cond, then, else? }.
type IfStmt struct {
	Base
	Cond Expression
	Then Statement
	Else Statement
}

func (s *IfStmt) statementNode() {}
func (s *IfStmt) String() string {
	out := "jika " + s.Cond.String() + " maka " + s.Then.String()
	if s.Else != nil {
		out += " selain_itu " + s.Else.String()
	}
	return out
}

// WhileStmt is { cond, body }.
type WhileStmt struct {
	Base
	Cond Expression
	Body Statement
}

func (s *WhileStmt) statementNode() {}
func (s *WhileStmt) String() string { return "selama " + s.Cond.String() + " lakukan " + s.Body.String() }

// Direction is the ForStmt iteration direction.
type Direction string

const (
	TO     Direction = "TO"
	DOWNTO Direction = "DOWNTO"
)

// ForStmt is { var, start, end, direction, body }.
type ForStmt struct {
	Base
	Var       string
	Start     Expression
	End       Expression
	Direction Direction
	Body      Statement
}

func (s *ForStmt) statementNode() {}
func (s *ForStmt) String() string {
	dir := "ke"
	if s.Direction == DOWNTO {
		dir = "turun_ke"
	}
	return "untuk " + s.Var + " := " + s.Start.String() + " " + dir + " " + s.End.String() + " lakukan " + s.Body.String()
}

// ProcCallStmt is { name, args[] }.
type ProcCallStmt struct {
	Base
	Name       string
	Args       []Expression
	Decoration *Decoration
}

func (s *ProcCallStmt) statementNode() {}
func (s *ProcCallStmt) String() string {
	return s.Name + "(" + joinExpr(s.Args) + ")"
}

// --- expressions ------------------------------------------------------

// BinOp is { op, left, right }.
type BinOp struct {
	Base
	Op         string
	Left       Expression
	Right      Expression
	Decoration *Decoration
}

func (e *BinOp) expressionNode()                 {}
func (e *BinOp) GetDecoration() *Decoration       { return e.Decoration }
func (e *BinOp) SetDecoration(d *Decoration)      { e.Decoration = d }
func (e *BinOp) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// UnaryOp is { op, operand }.
type UnaryOp struct {
	Base
	Op         string
	Operand    Expression
	Decoration *Decoration
}

func (e *UnaryOp) expressionNode()            {}
func (e *UnaryOp) GetDecoration() *Decoration  { return e.Decoration }
func (e *UnaryOp) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *UnaryOp) String() string              { return "(" + e.Op + e.Operand.String() + ")" }

// CallExpr is { name, args[] } used where a function call appears as a
// value-producing expression.
type CallExpr struct {
	Base
	Name       string
	Args       []Expression
	Decoration *Decoration
}

func (e *CallExpr) expressionNode()            {}
func (e *CallExpr) GetDecoration() *Decoration  { return e.Decoration }
func (e *CallExpr) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *CallExpr) String() string              { return e.Name + "(" + joinExpr(e.Args) + ")" }

// VarRef is { name }, a bare identifier occurrence in expression position.
type VarRef struct {
	Base
	Name       string
	Decoration *Decoration
}

func (e *VarRef) expressionNode()            {}
func (e *VarRef) GetDecoration() *Decoration  { return e.Decoration }
func (e *VarRef) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *VarRef) String() string              { return e.Name }

// ArrayAccess is { array, index }.
type ArrayAccess struct {
	Base
	Array      Expression
	Index      Expression
	Decoration *Decoration
}

func (e *ArrayAccess) expressionNode()            {}
func (e *ArrayAccess) GetDecoration() *Decoration  { return e.Decoration }
func (e *ArrayAccess) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *ArrayAccess) String() string              { return e.Array.String() + "[" + e.Index.String() + "]" }

// NumberLiteral is an integer or real literal distinguished by IsReal
// (presence of a '.' in the lexeme).
type NumberLiteral struct {
	Base
	Value      string
	IsReal     bool
	Decoration *Decoration
}

func (e *NumberLiteral) expressionNode()            {}
func (e *NumberLiteral) GetDecoration() *Decoration  { return e.Decoration }
func (e *NumberLiteral) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *NumberLiteral) String() string              { return e.Value }

// StringLiteral is a quoted string literal, value already normalized
// (doubled quotes collapsed, delimiters stripped).
type StringLiteral struct {
	Base
	Value      string
	Decoration *Decoration
}

func (e *StringLiteral) expressionNode()            {}
func (e *StringLiteral) GetDecoration() *Decoration  { return e.Decoration }
func (e *StringLiteral) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *StringLiteral) String() string              { return "'" + e.Value + "'" }

// CharLiteral is a single-character quoted literal.
type CharLiteral struct {
	Base
	Value      rune
	Decoration *Decoration
}

func (e *CharLiteral) expressionNode()            {}
func (e *CharLiteral) GetDecoration() *Decoration  { return e.Decoration }
func (e *CharLiteral) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *CharLiteral) String() string              { return "'" + string(e.Value) + "'" }

// BooleanLiteral is a boolean constant node. Nothing in the pipeline
// builds one: the AST builder leaves true/false as VarRef nodes, which
// the analyzer resolves to the built-in BOOLS constants.
type BooleanLiteral struct {
	Base
	Value      bool
	Decoration *Decoration
}

func (e *BooleanLiteral) expressionNode()            {}
func (e *BooleanLiteral) GetDecoration() *Decoration  { return e.Decoration }
func (e *BooleanLiteral) SetDecoration(d *Decoration) { e.Decoration = d }
func (e *BooleanLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func joinExpr(args []Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
