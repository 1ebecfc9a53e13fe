// Package semantic walks the AST the astbuilder produces, resolving
// identifiers into the symtab triple and checking static types. It is
// the single pass that decorates every Expression node with its type,
// resolved symbol, and scope level.
package semantic

import (
	"fmt"

	"github.com/anellautari/pascalsindo/internal/ast"
	cerrors "github.com/anellautari/pascalsindo/internal/errors"
	"github.com/anellautari/pascalsindo/internal/symtab"
	"github.com/anellautari/pascalsindo/internal/types"
)

// Analyzer runs a single semantic pass over a Program and owns the
// resulting symbol table.
type Analyzer struct {
	Table *symtab.Table

	visitedProgram bool
}

// New returns an Analyzer with a fresh, built-in-preloaded symbol table.
func New() *Analyzer {
	return &Analyzer{Table: symtab.New()}
}

// Analyze resolves and type-checks prog, returning the first semantic
// error encountered. Analyzer.Table holds the populated TAB/BTAB/ATAB
// triple whether or not an error occurred partway through.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	return a.visitProgram(prog)
}

func (a *Analyzer) visitProgram(p *ast.Program) error {
	if a.visitedProgram {
		return nil
	}
	a.visitedProgram = true

	if _, err := a.Table.Insert(p.Name, symtab.PROGRAM, types.NOTYP, false); err != nil {
		return a.semanticErr(p, err.Error())
	}
	return a.visitBlock(p.Block)
}

// visitBlock opens a fresh lexical level, visits every declaration
// group in order, then the body, then closes the level. Used for the
// program's own top-level block; procedure/function blocks share the
// level opened for their parameters via visitBlockDecls instead.
func (a *Analyzer) visitBlock(b *ast.Block) error {
	a.Table.BeginBlock()
	if err := a.visitBlockDecls(b); err != nil {
		a.Table.EndBlock()
		return err
	}
	if err := a.visitStatement(b.Body); err != nil {
		a.Table.EndBlock()
		return err
	}
	a.Table.EndBlock()
	return nil
}

func (a *Analyzer) visitBlockDecls(b *ast.Block) error {
	for _, d := range b.ConstDecls {
		if err := a.visitConstDecl(d); err != nil {
			return err
		}
	}
	for _, d := range b.TypeDecls {
		if err := a.visitTypeDecl(d); err != nil {
			return err
		}
	}
	for _, d := range b.VarDecls {
		if err := a.visitVarDecl(d); err != nil {
			return err
		}
	}
	for _, d := range b.SubprogramDecls {
		if err := a.visitSubprogramDecl(d); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitConstDecl(d *ast.ConstDecl) error {
	typ, err := a.inferExpr(d.Value)
	if err != nil {
		return err
	}
	idx, err := a.Table.Insert(d.Name, symtab.CONSTANT, typ, false)
	if err != nil {
		return a.semanticErr(d, err.Error())
	}
	if v, ok := a.constantFold(d.Value); ok {
		a.Table.SetAdr(idx, v)
	}
	return nil
}

func (a *Analyzer) visitTypeDecl(d *ast.TypeDecl) error {
	typ, ref, err := a.resolveTypeExpr(d.TypeExpr)
	if err != nil {
		return err
	}
	idx, err := a.Table.Insert(d.Name, symtab.TYPE, typ, false)
	if err != nil {
		return a.semanticErr(d, err.Error())
	}
	a.Table.SetRef(idx, ref)
	return nil
}

func (a *Analyzer) visitVarDecl(d *ast.VarDecl) error {
	typ, ref, err := a.resolveTypeExpr(d.TypeExpr)
	if err != nil {
		return err
	}
	size := a.Table.ElementSize(typ, ref)
	for _, name := range d.Names {
		idx, err := a.Table.Insert(name, symtab.VARIABLE, typ, false)
		if err != nil {
			return a.semanticErr(d, err.Error())
		}
		a.Table.SetRef(idx, ref)
		a.Table.SetAdr(idx, a.Table.AllocateAddress(size))
	}
	return nil
}

func (a *Analyzer) visitSubprogramDecl(d ast.Decl) error {
	switch s := d.(type) {
	case *ast.ProcedureDecl:
		return a.visitProcedureDecl(s)
	case *ast.FunctionDecl:
		return a.visitFunctionDecl(s)
	default:
		return a.semanticErr(d, "unexpected subprogram declaration node")
	}
}

func (a *Analyzer) visitProcedureDecl(d *ast.ProcedureDecl) error {
	idx, err := a.Table.Insert(d.Name, symtab.PROCEDURE, types.NOTYP, false)
	if err != nil {
		return a.semanticErr(d, err.Error())
	}
	btabIdx := a.Table.BeginBlock()

	if err := a.insertParams(d.Params); err != nil {
		a.Table.EndBlock()
		return err
	}
	a.Table.MarkParameterSectionEnd()

	if err := a.visitBlockDecls(d.Block); err != nil {
		a.Table.EndBlock()
		return err
	}
	if err := a.visitStatement(d.Block.Body); err != nil {
		a.Table.EndBlock()
		return err
	}
	a.Table.EndBlock()
	a.Table.SetAdr(idx, btabIdx)
	return nil
}

func (a *Analyzer) visitFunctionDecl(d *ast.FunctionDecl) error {
	retTyp, retRef, err := a.resolveTypeExpr(d.ReturnType)
	if err != nil {
		return err
	}
	idx, err := a.Table.Insert(d.Name, symtab.FUNCTION, retTyp, false)
	if err != nil {
		return a.semanticErr(d, err.Error())
	}
	a.Table.SetRef(idx, retRef)
	btabIdx := a.Table.BeginBlock()

	if err := a.insertParams(d.Params); err != nil {
		a.Table.EndBlock()
		return err
	}
	a.Table.MarkParameterSectionEnd()

	// Implicit return-slot variable, the Pascal-style assignment target
	// for the function's result (`functionName := value`).
	retIdx, err := a.Table.Insert(d.Name, symtab.VARIABLE, retTyp, false)
	if err != nil {
		a.Table.EndBlock()
		return a.semanticErr(d, err.Error())
	}
	a.Table.SetRef(retIdx, retRef)
	a.Table.SetAdr(retIdx, a.Table.AllocateAddress(a.Table.ElementSize(retTyp, retRef)))

	if err := a.visitBlockDecls(d.Block); err != nil {
		a.Table.EndBlock()
		return err
	}
	if err := a.visitStatement(d.Block.Body); err != nil {
		a.Table.EndBlock()
		return err
	}
	a.Table.EndBlock()
	a.Table.SetAdr(idx, btabIdx)

	d.Decoration.Type = retTyp
	d.Decoration.Symbol = idx
	d.Decoration.ScopeLevel = a.Table.Level
	return nil
}

func (a *Analyzer) insertParams(params []*ast.Param) error {
	for _, p := range params {
		typ, ref, err := a.resolveTypeExpr(p.TypeExpr)
		if err != nil {
			return err
		}
		idx, err := a.Table.Insert(p.Name, symtab.VARIABLE, typ, true)
		if err != nil {
			return a.semanticErr(p, err.Error())
		}
		a.Table.SetRef(idx, ref)
		a.Table.SetAdr(idx, a.Table.AllocateAddress(a.Table.ElementSize(typ, ref)))
	}
	return nil
}

func (a *Analyzer) resolveTypeExpr(te ast.TypeExpr) (types.Kind, int, error) {
	switch t := te.(type) {
	case *ast.PrimitiveType:
		idx, ok := a.Table.Lookup(t.Name)
		if !ok || a.Table.Tab[idx].Obj != symtab.TYPE {
			return types.NOTYP, 0, a.semanticErr(t, "unknown primitive type "+t.Name)
		}
		return a.Table.Tab[idx].Typ, a.Table.Tab[idx].Ref, nil

	case *ast.NamedType:
		idx, ok := a.Table.Lookup(t.Name)
		if !ok {
			return types.NOTYP, 0, a.semanticErr(t, "undeclared type "+t.Name)
		}
		if a.Table.Tab[idx].Obj != symtab.TYPE {
			return types.NOTYP, 0, a.semanticErr(t, t.Name+" is not a type")
		}
		return a.Table.Tab[idx].Typ, a.Table.Tab[idx].Ref, nil

	case *ast.ArrayType:
		idxTyp, err := a.inferExpr(t.IndexRange.Lower)
		if err != nil {
			return types.NOTYP, 0, err
		}
		if idxTyp != types.INTS {
			return types.NOTYP, 0, a.semanticErr(t.IndexRange.Lower, "array index range must be integer")
		}
		if _, err := a.inferExpr(t.IndexRange.Upper); err != nil {
			return types.NOTYP, 0, err
		}
		low, ok := a.constantFold(t.IndexRange.Lower)
		if !ok {
			return types.NOTYP, 0, a.semanticErr(t.IndexRange.Lower, "array bounds must be constant")
		}
		high, ok := a.constantFold(t.IndexRange.Upper)
		if !ok {
			return types.NOTYP, 0, a.semanticErr(t.IndexRange.Upper, "array bounds must be constant")
		}
		elemTyp, elemRef, err := a.resolveTypeExpr(t.ElementType)
		if err != nil {
			return types.NOTYP, 0, err
		}
		atabIdx := a.Table.EnterArray(types.INTS, low, high)
		elemSize := a.Table.ElementSize(elemTyp, elemRef)
		a.Table.FinalizeArray(atabIdx, elemTyp, elemRef, elemSize)
		return types.ARRAYS, atabIdx, nil

	default:
		return types.NOTYP, 0, a.semanticErr(te, "unknown type expression")
	}
}

func (a *Analyzer) assignable(target, value types.Kind) bool {
	if target == value {
		return true
	}
	return target == types.REALS && value == types.INTS
}

func (a *Analyzer) semanticErr(n ast.Node, msg string) error {
	return cerrors.NewSemanticError(cerrors.Position{Line: n.Line(), Column: n.Column()}, msg)
}

func (a *Analyzer) errorf(n ast.Node, format string, args ...any) error {
	return a.semanticErr(n, fmt.Sprintf(format, args...))
}
