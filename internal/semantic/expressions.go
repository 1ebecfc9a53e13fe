package semantic

import (
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/symtab"
	"github.com/anellautari/pascalsindo/internal/types"
)

// inferExpr resolves e's type, decorating it with type/symbol/scope_level,
// and returns the resolved type.
func (a *Analyzer) inferExpr(e ast.Expression) (types.Kind, error) {
	switch expr := e.(type) {
	case *ast.NumberLiteral:
		typ := types.INTS
		if expr.IsReal {
			typ = types.REALS
		}
		a.decorate(expr, typ, -1)
		return typ, nil

	case *ast.StringLiteral:
		a.decorate(expr, types.STRINGS, -1)
		return types.STRINGS, nil

	case *ast.CharLiteral:
		a.decorate(expr, types.CHARS, -1)
		return types.CHARS, nil

	case *ast.BooleanLiteral:
		a.decorate(expr, types.BOOLS, -1)
		return types.BOOLS, nil

	case *ast.VarRef:
		idx, ok := a.Table.Lookup(expr.Name)
		if !ok {
			return types.NOTYP, a.semanticErr(expr, "undeclared identifier "+expr.Name)
		}
		entry := a.Table.Tab[idx]
		a.decorate(expr, entry.Typ, idx)
		expr.Decoration.ScopeLevel = entry.Lev
		return entry.Typ, nil

	case *ast.ArrayAccess:
		return a.inferArrayAccess(expr)

	case *ast.UnaryOp:
		return a.inferUnaryOp(expr)

	case *ast.BinOp:
		return a.inferBinOp(expr)

	case *ast.CallExpr:
		return a.inferCallExpr(expr)

	default:
		return types.NOTYP, a.semanticErr(e, "unknown expression node")
	}
}

func (a *Analyzer) decorate(e ast.Expression, typ types.Kind, symbol int) {
	d := e.GetDecoration()
	if d == nil {
		d = ast.NewDecoration()
		e.SetDecoration(d)
	}
	d.Type = typ
	d.Symbol = symbol
	d.ScopeLevel = a.Table.Level
}

func (a *Analyzer) inferArrayAccess(e *ast.ArrayAccess) (types.Kind, error) {
	vr, ok := e.Array.(*ast.VarRef)
	if !ok {
		return types.NOTYP, a.semanticErr(e, "array access target must be a variable")
	}
	if _, err := a.inferExpr(vr); err != nil {
		return types.NOTYP, err
	}
	idxTyp, err := a.inferExpr(e.Index)
	if err != nil {
		return types.NOTYP, err
	}
	if idxTyp != types.INTS {
		return types.NOTYP, a.semanticErr(e.Index, "array index must be integer")
	}

	entry := a.Table.Tab[vr.Decoration.Symbol]
	if entry.Typ != types.ARRAYS {
		return types.NOTYP, a.errorf(e, "%s is not an array", vr.Name)
	}
	elem := a.Table.Atab[entry.Ref]
	a.decorate(e, elem.Etyp, vr.Decoration.Symbol)
	return elem.Etyp, nil
}

func (a *Analyzer) inferUnaryOp(e *ast.UnaryOp) (types.Kind, error) {
	operandTyp, err := a.inferExpr(e.Operand)
	if err != nil {
		return types.NOTYP, err
	}

	switch strings.ToLower(e.Op) {
	case "tidak":
		if operandTyp != types.BOOLS {
			return types.NOTYP, a.semanticErr(e, "'tidak' requires a boolean operand")
		}
		a.decorate(e, types.BOOLS, -1)
		return types.BOOLS, nil
	case "-":
		if !operandTyp.IsNumeric() {
			return types.NOTYP, a.semanticErr(e, "unary '-' requires a numeric operand")
		}
		a.decorate(e, operandTyp, -1)
		return operandTyp, nil
	default:
		return types.NOTYP, a.semanticErr(e, "unknown unary operator "+e.Op)
	}
}

func (a *Analyzer) inferBinOp(e *ast.BinOp) (types.Kind, error) {
	lt, err := a.inferExpr(e.Left)
	if err != nil {
		return types.NOTYP, err
	}
	rt, err := a.inferExpr(e.Right)
	if err != nil {
		return types.NOTYP, err
	}

	op := strings.ToLower(e.Op)
	switch op {
	case "+", "-", "*":
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return types.NOTYP, a.errorf(e, "'%s' requires numeric operands", e.Op)
		}
		result := types.INTS
		if lt == types.REALS || rt == types.REALS {
			result = types.REALS
		}
		a.decorate(e, result, -1)
		return result, nil

	case "/":
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return types.NOTYP, a.semanticErr(e, "'/' requires numeric operands")
		}
		a.decorate(e, types.REALS, -1)
		return types.REALS, nil

	case "bagi", "mod":
		if lt != types.INTS || rt != types.INTS {
			return types.NOTYP, a.errorf(e, "'%s' requires integer operands", e.Op)
		}
		a.decorate(e, types.INTS, -1)
		return types.INTS, nil

	case "dan", "atau":
		if lt != types.BOOLS || rt != types.BOOLS {
			return types.NOTYP, a.errorf(e, "'%s' requires boolean operands", e.Op)
		}
		a.decorate(e, types.BOOLS, -1)
		return types.BOOLS, nil

	case "=", "<>", "<", "<=", ">", ">=":
		if lt != rt && !(lt.IsNumeric() && rt.IsNumeric()) {
			return types.NOTYP, a.errorf(e, "cannot compare %s with %s", lt, rt)
		}
		a.decorate(e, types.BOOLS, -1)
		return types.BOOLS, nil

	default:
		return types.NOTYP, a.semanticErr(e, "unknown binary operator "+e.Op)
	}
}

func (a *Analyzer) inferCallExpr(e *ast.CallExpr) (types.Kind, error) {
	idx, ok := a.Table.Lookup(e.Name)
	if !ok {
		return types.NOTYP, a.semanticErr(e, "undeclared identifier "+e.Name)
	}
	entry := a.Table.Tab[idx]
	if entry.Obj != symtab.FUNCTION {
		return types.NOTYP, a.errorf(e, "%s is not a function", e.Name)
	}
	a.decorate(e, entry.Typ, idx)

	if entry.Lev == 0 {
		for _, arg := range e.Args {
			if _, err := a.inferExpr(arg); err != nil {
				return types.NOTYP, err
			}
		}
		return entry.Typ, nil
	}

	params := a.Table.ParametersOf(entry.Adr)
	if len(e.Args) != len(params) {
		return types.NOTYP, a.errorf(e, "%s expects %d argument(s), got %d", e.Name, len(params), len(e.Args))
	}
	for i, argExpr := range e.Args {
		argTyp, err := a.inferExpr(argExpr)
		if err != nil {
			return types.NOTYP, err
		}
		paramTyp := a.Table.Tab[params[i]].Typ
		if !a.assignable(paramTyp, argTyp) {
			return types.NOTYP, a.errorf(argExpr, "argument %d to %s: cannot use %s as %s", i+1, e.Name, argTyp, paramTyp)
		}
	}
	return entry.Typ, nil
}
