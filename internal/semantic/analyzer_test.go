package semantic_test

import (
	"testing"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/astbuilder"
	cerrors "github.com/anellautari/pascalsindo/internal/errors"
	"github.com/anellautari/pascalsindo/internal/lexer"
	"github.com/anellautari/pascalsindo/internal/parser"
	"github.com/anellautari/pascalsindo/internal/semantic"
	"github.com/anellautari/pascalsindo/internal/symtab"
	"github.com/anellautari/pascalsindo/internal/types"
)

func analyze(t *testing.T, source string) (*semantic.Analyzer, error) {
	t.Helper()

	l, err := lexer.New(source)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	tokens := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}

	p := parser.New(tokens, parser.Strict)
	tree, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	prog, err := astbuilder.Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a := semantic.New()
	return a, a.Analyze(prog)
}

func TestAnalyzeAcceptsWellTypedProgram(t *testing.T) {
	const src = `program contoh;
variabel a, b: integer;
konstanta c = 10;
mulai
  a := c;
  b := a + c
selesai.`

	_, err := analyze(t, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}

func TestAnalyzeRejectsUndeclaredIdentifier(t *testing.T) {
	const src = `program contoh;
mulai
  a := 1
selesai.`

	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("Analyze: want undeclared-identifier error, got nil")
	}
	if _, ok := err.(*cerrors.SemanticError); !ok {
		t.Fatalf("err = %T, want *cerrors.SemanticError", err)
	}
}

func TestAnalyzeRejectsTypeMismatchAssignment(t *testing.T) {
	const src = `program contoh;
variabel a: boolean;
mulai
  a := 1
selesai.`

	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("Analyze: want assignability error, got nil")
	}
}

func TestAnalyzeAllowsIntsToRealsWidening(t *testing.T) {
	const src = `program contoh;
variabel a: real;
mulai
  a := 1
selesai.`

	_, err := analyze(t, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}

func TestAnalyzeRejectsArgumentCountMismatch(t *testing.T) {
	const src = `program contoh;
prosedur p(x: integer);
mulai
  x := x
selesai;
mulai
  p(1, 2)
selesai.`

	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("Analyze: want argument-count error, got nil")
	}
}

func TestAnalyzeProcedureCallAfterDeclaration(t *testing.T) {
	const src = `program contoh;
variabel total: integer;
prosedur tambah(x, y: integer);
mulai
  total := x + y
selesai;
mulai
  tambah(1, 2)
selesai.`

	a, err := analyze(t, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	idx, ok := a.Table.Lookup("tambah")
	if !ok {
		t.Fatal("Lookup(tambah): not found after analysis")
	}
	if a.Table.Tab[idx].Obj != symtab.PROCEDURE {
		t.Fatalf("tambah.Obj = %v, want PROCEDURE", a.Table.Tab[idx].Obj)
	}
}

func TestAnalyzeArrayIndexMustBeInteger(t *testing.T) {
	const src = `program contoh;
variabel arr: larik[1..5] dari integer;
variabel b: boolean;
mulai
  arr[b] := 1
selesai.`

	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("Analyze: want array-index-type error, got nil")
	}
}

func TestAnalyzeDecoratesExpressions(t *testing.T) {
	const src = `program contoh;
variabel a: integer;
mulai
  a := 1 + 2
selesai.`

	l, err := lexer.New(src)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	tree, err := parser.New(l.Tokenize(), parser.Strict).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	prog, err := astbuilder.Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := semantic.New().Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	assign := prog.Block.Body.Stmts[0].(*ast.AssignStmt)
	target, ok := assign.Target.(*ast.VarRef)
	if !ok || target.Decoration.Type != types.INTS || target.Decoration.Symbol <= 0 {
		t.Fatalf("target decoration = %+v, want INTS with a resolved symbol", target.Decoration)
	}
	sum, ok := assign.Value.(*ast.BinOp)
	if !ok || sum.Decoration.Type != types.INTS {
		t.Fatalf("value = %#v, want BinOp decorated INTS", assign.Value)
	}
}

func TestAnalyzeWhileConditionMustBeBoolean(t *testing.T) {
	const src = `program contoh;
variabel a: integer;
mulai
  selama a lakukan
    a := a
selesai.`

	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("Analyze: want boolean-condition error, got nil")
	}
}

func TestAnalyzeConstantFoldsArrayBounds(t *testing.T) {
	const src = `program contoh;
konstanta lo = 1;
konstanta hi = 10;
variabel arr: larik[lo..hi] dari integer;
mulai
  arr[lo] := 0
selesai.`

	a, err := analyze(t, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	idx, ok := a.Table.Lookup("arr")
	if !ok {
		t.Fatal("Lookup(arr): not found")
	}
	ref := a.Table.Tab[idx].Ref
	if a.Table.Atab[ref].Low != 1 || a.Table.Atab[ref].High != 10 {
		t.Fatalf("bounds = [%d..%d], want [1..10]", a.Table.Atab[ref].Low, a.Table.Atab[ref].High)
	}
}

func TestAnalyzeFunctionReturnTypeDecoration(t *testing.T) {
	const src = `program contoh;
fungsi ganda(x: integer): integer;
mulai
  ganda := x + x
selesai;
variabel a: integer;
mulai
  a := ganda(2)
selesai.`

	a, err := analyze(t, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	idx, ok := a.Table.Lookup("ganda")
	if !ok {
		t.Fatal("Lookup(ganda): not found")
	}
	if a.Table.Tab[idx].Typ != types.INTS {
		t.Fatalf("ganda.Typ = %v, want INTS", a.Table.Tab[idx].Typ)
	}
}
