package parser_test

import (
	"testing"

	"github.com/anellautari/pascalsindo/internal/lexer"
	"github.com/anellautari/pascalsindo/internal/parser"
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

func tokensOf(t *testing.T, source string) []token.Token {
	t.Helper()
	l, err := lexer.New(source)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	return l.Tokenize()
}

func TestParseProgramWellFormed(t *testing.T) {
	const src = `program contoh;
variabel a: integer;
mulai
  a := 1
selesai.`

	p := parser.New(tokensOf(t, src), parser.Strict)
	tree, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if tree.Label != "<program>" {
		t.Fatalf("root label = %q, want <program>", tree.Label)
	}
}

func TestStrictModeRaisesOnFirstMismatch(t *testing.T) {
	const src = `program contoh
mulai
selesai.`

	p := parser.New(tokensOf(t, src), parser.Strict)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("ParseProgram: want an error for the missing ';', got nil")
	}
}

func TestDiagnosticModeAccumulatesAndResyncs(t *testing.T) {
	// The first var-decl is missing its ':'; diagnostic mode should log
	// the mismatch, resynchronize at the next ';', and still parse the
	// second var-decl and the body.
	const src = `program contoh;
variabel a integer;
variabel b: integer;
mulai
  b := 1
selesai.`

	p := parser.New(tokensOf(t, src), parser.Diagnostic)
	_, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram in diagnostic mode: unexpected fatal error %v", err)
	}
	if len(p.Errors()) == 0 {
		t.Fatal("Errors(): want at least one accumulated diagnostic")
	}
}

func TestAssignmentVsProcCallDisambiguation(t *testing.T) {
	const src = `program contoh;
variabel a: integer;
mulai
  a := 1;
  a()
selesai.`

	p := parser.New(tokensOf(t, src), parser.Strict)
	tree, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}

	body, ok := find(tree, "<compound-stmt>")
	if !ok {
		t.Fatal("missing <compound-stmt>")
	}
	assign, ok := find(body, "<assignment-stmt>")
	if !ok {
		t.Fatal("missing <assignment-stmt>")
	}
	call, ok := find(body, "<proc-call>")
	if !ok {
		t.Fatal("missing <proc-call>")
	}
	_ = assign
	_ = call
}

func find(n *parsetree.Node, label string) (*parsetree.Node, bool) {
	if n.Label == label {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := find(c, label); ok {
			return found, true
		}
	}
	return nil, false
}
