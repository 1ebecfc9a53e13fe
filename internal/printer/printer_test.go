package printer_test

import (
	"bytes"
	"testing"

	"github.com/anellautari/pascalsindo/internal/ast"
	"github.com/anellautari/pascalsindo/internal/astbuilder"
	"github.com/anellautari/pascalsindo/internal/lexer"
	"github.com/anellautari/pascalsindo/internal/parser"
	"github.com/anellautari/pascalsindo/internal/printer"
	"github.com/anellautari/pascalsindo/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

const fixture = `program contoh;
konstanta batas = 10;
variabel total: integer;
fungsi ganda(x: integer): integer;
mulai
  ganda := x + x
selesai;
mulai
  total := ganda(batas)
selesai.`

func compile(t *testing.T) (*semantic.Analyzer, *ast.Program) {
	t.Helper()

	l, err := lexer.New(fixture)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	tokens := l.Tokenize()

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
	if err := a.Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return a, prog
}

func TestPrintTablesSnapshot(t *testing.T) {
	a, _ := compile(t)

	var buf bytes.Buffer
	printer.New(&buf).PrintTables(a.Table)
	snaps.MatchSnapshot(t, buf.String())
}

func TestPrintASTSnapshot(t *testing.T) {
	_, prog := compile(t)

	var buf bytes.Buffer
	printer.New(&buf).PrintAST(prog)
	snaps.MatchSnapshot(t, buf.String())
}
