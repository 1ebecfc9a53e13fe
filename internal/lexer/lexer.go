// Package lexer drives the dfa package's transition engine with a
// maximal-munch tokenization loop, post-processing identifiers into
// reserved words and normalizing string literals.
package lexer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/anellautari/pascalsindo/internal/dfa"
	cerrors "github.com/anellautari/pascalsindo/internal/errors"
	"github.com/anellautari/pascalsindo/pkg/token"
)

var foldCase = cases.Fold()

// LexerOption configures a Lexer at construction time.
type LexerOption func(*Lexer)

// WithRules overrides the DFA rules document used to drive the engine.
// Without this option, the lexer uses dfa.Default().
func WithRules(rules *dfa.Rules) LexerOption {
	return func(l *Lexer) { l.rules = rules }
}

// Lexer tokenizes Pascal-S-Indo source text. It is stateful but single-use:
// call Tokenize once to materialize the full token stream.
type Lexer struct {
	input  []rune
	rules  *dfa.Rules
	errors []*cerrors.LexicalError

	pos    int // rune index of the next unconsumed character
	line   int
	column int
}

// New constructs a Lexer over source. Options may override the rules
// document; the default is the compiler's built-in rules.
func New(source string, opts ...LexerOption) (*Lexer, error) {
	l := &Lexer{
		input:  []rune(source),
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rules == nil {
		rules, err := dfa.Default()
		if err != nil {
			return nil, err
		}
		l.rules = rules
	}
	return l, nil
}

// Errors returns the lexical errors accumulated so far.
func (l *Lexer) Errors() []*cerrors.LexicalError {
	return l.errors
}

// Tokenize drives the lexer to the end of input, returning the full
// forward-ordered token stream. Lexical errors do not stop scanning; they
// are also available afterward via Errors.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// NextToken scans and returns the next non-ignored token, or ok=false at
// end of input. It may append to Errors() as a side effect.
func (l *Lexer) NextToken() (token.Token, bool) {
	for l.pos < len(l.input) {
		startPos, startLine, startCol := l.pos, l.line, l.column

		state := l.rules.InitialState
		lastFinal, lastFinalOK := dfa.FinalState{}, false
		lastFinalPos, lastFinalLine, lastFinalCol := l.pos, l.line, l.column

		pos, line, col := l.pos, l.line, l.column
		for pos < len(l.input) {
			next, ok := dfa.Step(state, l.input[pos], l.rules)
			if !ok {
				break
			}
			state = next
			ch := l.input[pos]
			pos++
			if ch == '\n' || ch == '\r' {
				line++
				col = 1
			} else {
				col++
			}
			if fs, ok := l.rules.Final(state); ok {
				lastFinal, lastFinalOK = fs, true
				lastFinalPos, lastFinalLine, lastFinalCol = pos, line, col
			}
		}

		if !lastFinalOK {
			l.errors = append(l.errors, cerrors.NewLexicalError(
				cerrors.Position{Line: startLine, Column: startCol},
				"unrecognized character '"+string(l.input[startPos])+"'",
			))
			l.advanceOne()
			continue
		}

		lexeme := string(l.input[startPos:lastFinalPos])
		l.pos, l.line, l.column = lastFinalPos, lastFinalLine, lastFinalCol

		if lastFinal.Ignore {
			continue
		}

		tok := l.finalize(lexeme, lastFinal.Token, startLine, startCol)
		return tok, true
	}
	return token.Token{}, false
}

func (l *Lexer) advanceOne() {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' || ch == '\r' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// finalize applies the reserved-word rewrite and string-literal
// normalization described in spec §4.2.
func (l *Lexer) finalize(lexeme, kindName string, line, col int) token.Token {
	kind, ok := token.ParseKind(kindName)
	if !ok {
		kind = token.IDENTIFIER
	}

	if kind == token.IDENTIFIER {
		folded := foldCase.String(lexeme)
		switch {
		case contains(l.rules.Keywords, folded):
			kind = token.KEYWORD
		case contains(l.rules.WordArithmetic, folded):
			kind = token.ARITHMETIC_OPERATOR
		case contains(l.rules.WordLogical, folded):
			kind = token.LOGICAL_OPERATOR
		}
	}

	value := lexeme
	if kind == token.STRING_LITERAL {
		value = normalizeStringLiteral(lexeme)
		if len([]rune(value))-2 == 1 { // one character between the quotes
			kind = token.CHAR_LITERAL
		}
	}

	return token.Token{Kind: kind, Value: value, Line: line, Column: col}
}

// normalizeStringLiteral collapses doubled single quotes within a
// '...'-delimited lexeme into a single quote, per Pascal string escaping.
func normalizeStringLiteral(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	inner := lexeme[1 : len(lexeme)-1]
	return "'" + strings.ReplaceAll(inner, "''", "'") + "'"
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if foldCase.String(s) == v {
			return true
		}
	}
	return false
}
