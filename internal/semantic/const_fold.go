package semantic

import (
	"strconv"
	"strings"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/symtab"
)

// constantFold best-effort evaluates e to an integer value, for the TAB
// "adr" slot of simple constants and for array index bounds. It only
// understands the subset Pascal-S-Indo programs actually use for these
// positions: integer/char/boolean literals, named constants, unary
// minus, and +/-/* /bagi/mod over already-foldable operands. Anything
// else (reals, function calls, string concatenation) reports !ok rather
// than erroring — callers that require a constant (array bounds) turn
// that into a SemanticError themselves.
func (a *Analyzer) constantFold(e ast.Expression) (int, bool) {
	switch expr := e.(type) {
	case *ast.NumberLiteral:
		if expr.IsReal {
			return 0, false
		}
		v, err := strconv.Atoi(expr.Value)
		if err != nil {
			return 0, false
		}
		return v, true

	case *ast.CharLiteral:
		return int(expr.Value), true

	case *ast.BooleanLiteral:
		if expr.Value {
			return 1, true
		}
		return 0, true

	case *ast.VarRef:
		idx, ok := a.Table.Lookup(expr.Name)
		if !ok || a.Table.Tab[idx].Obj != symtab.CONSTANT {
			return 0, false
		}
		return a.Table.Tab[idx].Adr, true

	case *ast.UnaryOp:
		v, ok := a.constantFold(expr.Operand)
		if !ok {
			return 0, false
		}
		if strings.EqualFold(expr.Op, "-") {
			return -v, true
		}
		return 0, false

	case *ast.BinOp:
		l, lok := a.constantFold(expr.Left)
		r, rok := a.constantFold(expr.Right)
		if !lok || !rok {
			return 0, false
		}
		switch strings.ToLower(expr.Op) {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "bagi":
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case "mod":
			if r == 0 {
				return 0, false
			}
			return l % r, true
		default:
			return 0, false
		}

	default:
		return 0, false
	}
}
