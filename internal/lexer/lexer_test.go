package lexer_test

import (
	"testing"

	"github.com/anellautari/pascalsindo/internal/lexer"
	"github.com/anellautari/pascalsindo/pkg/token"
)

func tokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	l, err := lexer.New(source)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	return l.Tokenize()
}

func TestReservedWordsRewriteAsKeywords(t *testing.T) {
	toks := tokenize(t, "program variabel mulai selesai")
	for _, tok := range toks {
		if tok.Kind == token.IDENTIFIER {
			t.Fatalf("token %q kept IDENTIFIER kind, want KEYWORD", tok.Value)
		}
	}
}

func TestWordOperatorsClassified(t *testing.T) {
	toks := tokenize(t, "dan atau tidak bagi mod")
	wantKinds := map[string]token.Kind{
		"dan":   token.LOGICAL_OPERATOR,
		"atau":  token.LOGICAL_OPERATOR,
		"tidak": token.LOGICAL_OPERATOR,
		"bagi":  token.ARITHMETIC_OPERATOR,
		"mod":   token.ARITHMETIC_OPERATOR,
	}
	for _, tok := range toks {
		want, ok := wantKinds[tok.Value]
		if !ok {
			t.Fatalf("unexpected token %q", tok.Value)
		}
		if tok.Kind != want {
			t.Errorf("token %q kind = %v, want %v", tok.Value, tok.Kind, want)
		}
	}
}

func TestMaximalMunch(t *testing.T) {
	toks := tokenize(t, "a <= b")
	var ops []string
	for _, tok := range toks {
		if tok.Kind != token.IDENTIFIER {
			ops = append(ops, tok.Value)
		}
	}
	if len(ops) != 1 || ops[0] != "<=" {
		t.Fatalf("relational operators = %v, want a single [<=]", ops)
	}
}

func TestKeywordCaseInsensitivity(t *testing.T) {
	toks := tokenize(t, "PROGRAM Program program")
	for _, tok := range toks {
		if tok.Kind != token.KEYWORD {
			t.Fatalf("token %q kind = %v, want KEYWORD regardless of case", tok.Value, tok.Kind)
		}
	}
}

func TestStringLiteralDoubledQuoteEscaping(t *testing.T) {
	toks := tokenize(t, "'it''s'")
	if len(toks) != 1 {
		t.Fatalf("len(toks) = %d, want 1", len(toks))
	}
	if toks[0].Value != "'it's'" {
		t.Fatalf("Value = %q, want 'it's'", toks[0].Value)
	}
}

func TestSingleCharStringIsCharLiteral(t *testing.T) {
	toks := tokenize(t, "'x'")
	if len(toks) != 1 || toks[0].Kind != token.CHAR_LITERAL {
		t.Fatalf("toks = %v, want a single CHAR_LITERAL", toks)
	}
}

func TestPositionsNonDecreasing(t *testing.T) {
	toks := tokenize(t, "program contoh;\nvariabel x: integer;")
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
			t.Fatalf("token %d (%v) is not after token %d (%v) in source order", i, cur, i-1, prev)
		}
	}
}

func TestUnrecognizedCharacterIsNonFatal(t *testing.T) {
	l, err := lexer.New("a @ b")
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	toks := l.Tokenize()
	if len(l.Errors()) == 0 {
		t.Fatal("Errors(): want at least one lexical error for '@'")
	}
	var idents int
	for _, tok := range toks {
		if tok.Kind == token.IDENTIFIER {
			idents++
		}
	}
	if idents != 2 {
		t.Fatalf("identifiers found = %d, want 2 (scanning continued past the error)", idents)
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	const src = "program contoh;\nvariabel total: integer;\nmulai\n  total := 1\nselesai."
	first := tokenize(t, src)
	second := tokenize(t, src)
	if len(first) != len(second) {
		t.Fatalf("len(first) = %d, len(second) = %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}
