package token_test

import (
	"testing"

	"github.com/anellautari/pascalsindo/pkg/token"
)

func TestKindStringAndParseKindRoundTrip(t *testing.T) {
	kinds := []token.Kind{
		token.KEYWORD, token.IDENTIFIER, token.NUMBER, token.STRING_LITERAL,
		token.CHAR_LITERAL, token.ARITHMETIC_OPERATOR, token.RELATIONAL_OPERATOR,
		token.LOGICAL_OPERATOR, token.ASSIGN_OPERATOR, token.RANGE_OPERATOR,
		token.COLON, token.SEMICOLON, token.COMMA, token.DOT,
		token.LPARENTHESIS, token.RPARENTHESIS, token.LBRACKET, token.RBRACKET,
	}
	for _, k := range kinds {
		name := k.String()
		if name == "" {
			t.Errorf("Kind(%d).String() is empty", int(k))
			continue
		}
		got, ok := token.ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, true)", name, got, ok, k)
		}
	}
}

func TestKindStringUnknownValue(t *testing.T) {
	got := token.Kind(999).String()
	if got != "Kind(999)" {
		t.Errorf("Kind(999).String() = %q, want Kind(999)", got)
	}
}

func TestParseKindUnknownName(t *testing.T) {
	if _, ok := token.ParseKind("NOT_A_KIND"); ok {
		t.Error("ParseKind(NOT_A_KIND): want ok=false")
	}
}

func TestTokenStringPrintForm(t *testing.T) {
	tok := token.Token{Kind: token.IDENTIFIER, Value: "total", Line: 3, Column: 7}
	want := "IDENTIFIER(total) @ 3:7"
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsOperator(t *testing.T) {
	operators := []token.Kind{
		token.ARITHMETIC_OPERATOR, token.RELATIONAL_OPERATOR,
		token.LOGICAL_OPERATOR, token.ASSIGN_OPERATOR, token.RANGE_OPERATOR,
	}
	for _, k := range operators {
		if tok := (token.Token{Kind: k}); !tok.IsOperator() {
			t.Errorf("Token{Kind: %v}.IsOperator() = false, want true", k)
		}
	}
	nonOperators := []token.Kind{token.IDENTIFIER, token.COLON, token.SEMICOLON}
	for _, k := range nonOperators {
		if tok := (token.Token{Kind: k}); tok.IsOperator() {
			t.Errorf("Token{Kind: %v}.IsOperator() = true, want false", k)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	literals := []token.Kind{token.NUMBER, token.STRING_LITERAL, token.CHAR_LITERAL}
	for _, k := range literals {
		if tok := (token.Token{Kind: k}); !tok.IsLiteral() {
			t.Errorf("Token{Kind: %v}.IsLiteral() = false, want true", k)
		}
	}
	if tok := (token.Token{Kind: token.IDENTIFIER}); tok.IsLiteral() {
		t.Error("Token{Kind: IDENTIFIER}.IsLiteral() = true, want false")
	}
}

func TestTokenEquality(t *testing.T) {
	a := token.Token{Kind: token.NUMBER, Value: "42", Line: 1, Column: 1}
	b := token.Token{Kind: token.NUMBER, Value: "42", Line: 1, Column: 1}
	c := token.Token{Kind: token.NUMBER, Value: "43", Line: 1, Column: 1}
	if a != b {
		t.Error("a != b, want equal tokens to compare equal")
	}
	if a == c {
		t.Error("a == c, want differing values to compare unequal")
	}
}
