package semantic

import (
	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/symtab"
	"github.com/anellautari/pascalsindo/internal/types"
)

func (a *Analyzer) visitStatement(s ast.Statement) error {
	switch st := s.(type) {
	case *ast.CompoundStmt:
		for _, inner := range st.Stmts {
			if err := a.visitStatement(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.AssignStmt:
		return a.visitAssignStmt(st)
	case *ast.IfStmt:
		return a.visitIfStmt(st)
	case *ast.WhileStmt:
		return a.visitWhileStmt(st)
	case *ast.ForStmt:
		return a.visitForStmt(st)
	case *ast.ProcCallStmt:
		return a.visitProcCallStmt(st)
	default:
		return a.semanticErr(s, "unknown statement node")
	}
}

func (a *Analyzer) visitAssignStmt(s *ast.AssignStmt) error {
	targetTyp, err := a.inferExpr(s.Target)
	if err != nil {
		return err
	}

	var symIdx int
	switch t := s.Target.(type) {
	case *ast.VarRef:
		symIdx = t.Decoration.Symbol
	case *ast.ArrayAccess:
		vr, ok := t.Array.(*ast.VarRef)
		if !ok {
			return a.semanticErr(s, "invalid assignment target")
		}
		symIdx = vr.Decoration.Symbol
	default:
		return a.semanticErr(s, "invalid assignment target")
	}
	if symIdx <= 0 {
		return a.semanticErr(s, "invalid assignment target")
	}
	obj := a.Table.Tab[symIdx].Obj
	if obj != symtab.VARIABLE && obj != symtab.FUNCTION {
		return a.semanticErr(s, "assignment target must be a variable or function result")
	}

	valTyp, err := a.inferExpr(s.Value)
	if err != nil {
		return err
	}
	if !a.assignable(targetTyp, valTyp) {
		return a.errorf(s, "cannot assign %s to %s", valTyp, targetTyp)
	}
	return nil
}

func (a *Analyzer) visitIfStmt(s *ast.IfStmt) error {
	condTyp, err := a.inferExpr(s.Cond)
	if err != nil {
		return err
	}
	if condTyp != types.BOOLS {
		return a.semanticErr(s.Cond, "if condition must be boolean")
	}
	if err := a.visitStatement(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return a.visitStatement(s.Else)
	}
	return nil
}

func (a *Analyzer) visitWhileStmt(s *ast.WhileStmt) error {
	condTyp, err := a.inferExpr(s.Cond)
	if err != nil {
		return err
	}
	if condTyp != types.BOOLS {
		return a.semanticErr(s.Cond, "while condition must be boolean")
	}
	return a.visitStatement(s.Body)
}

func (a *Analyzer) visitForStmt(s *ast.ForStmt) error {
	idx, ok := a.Table.Lookup(s.Var)
	if !ok {
		return a.semanticErr(s, "undeclared identifier "+s.Var)
	}
	entry := a.Table.Tab[idx]
	if entry.Obj != symtab.VARIABLE || entry.Typ != types.INTS {
		return a.semanticErr(s, "for-loop control variable must be an integer variable")
	}

	startTyp, err := a.inferExpr(s.Start)
	if err != nil {
		return err
	}
	if startTyp != types.INTS {
		return a.semanticErr(s.Start, "for-loop start value must be integer")
	}
	endTyp, err := a.inferExpr(s.End)
	if err != nil {
		return err
	}
	if endTyp != types.INTS {
		return a.semanticErr(s.End, "for-loop end value must be integer")
	}
	return a.visitStatement(s.Body)
}

func (a *Analyzer) visitProcCallStmt(s *ast.ProcCallStmt) error {
	idx, ok := a.Table.Lookup(s.Name)
	if !ok {
		return a.semanticErr(s, "undeclared identifier "+s.Name)
	}
	entry := a.Table.Tab[idx]
	if entry.Obj != symtab.PROCEDURE {
		return a.errorf(s, "%s is not a procedure", s.Name)
	}
	s.Decoration.Symbol = idx
	s.Decoration.ScopeLevel = entry.Lev

	if entry.Ref == 0 && entry.Adr >= symtab.BuiltinRead && entry.Adr <= symtab.BuiltinWriteln && entry.Lev == 0 {
		// Built-in: read/readln/write/writeln accept a variadic,
		// untyped argument list.
		for _, arg := range s.Args {
			if _, err := a.inferExpr(arg); err != nil {
				return err
			}
		}
		return nil
	}

	params := a.Table.ParametersOf(entry.Adr)
	if len(s.Args) != len(params) {
		return a.errorf(s, "%s expects %d argument(s), got %d", s.Name, len(params), len(s.Args))
	}
	for i, argExpr := range s.Args {
		argTyp, err := a.inferExpr(argExpr)
		if err != nil {
			return err
		}
		paramTyp := a.Table.Tab[params[i]].Typ
		if !a.assignable(paramTyp, argTyp) {
			return a.errorf(argExpr, "argument %d to %s: cannot use %s as %s", i+1, s.Name, argTyp, paramTyp)
		}
	}
	return nil
}
