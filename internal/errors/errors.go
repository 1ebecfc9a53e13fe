// Package errors provides the three structured error kinds produced by the
// compiler's phases, plus source-context formatting for presenting them to
// a host (CLI, editor, test harness).
package errors

import (
	"fmt"
	"strings"
)

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LexicalError reports an unrecognized character or an unterminated
// literal. Non-fatal: the lexer records it and keeps scanning.
type LexicalError struct {
	Message string
	Pos     Position
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("[LexicalError] %s @ %s", e.Message, e.Pos)
}

// NewLexicalError constructs a LexicalError at the given position.
func NewLexicalError(pos Position, message string) *LexicalError {
	return &LexicalError{Message: message, Pos: pos}
}

// SyntaxParseError reports a grammar mismatch encountered by the parser.
type SyntaxParseError struct {
	Message string
	Pos     Position
}

func (e *SyntaxParseError) Error() string {
	return fmt.Sprintf("[SyntaxParseError] %s @ %s", e.Message, e.Pos)
}

// NewSyntaxError constructs a SyntaxParseError at the given position.
func NewSyntaxError(pos Position, message string) *SyntaxParseError {
	return &SyntaxParseError{Message: message, Pos: pos}
}

// TokenUnexpectedError is the common subkind of SyntaxParseError raised by
// Parser.match: the current token did not have the expected kind/value.
type TokenUnexpectedError struct {
	*SyntaxParseError
	Expected string
	Actual   string
}

// NewTokenUnexpectedError builds the "expected K(v), got T(x) @ line:col"
// diagnostic mandated for match failures.
func NewTokenUnexpectedError(pos Position, expected, actual string) *TokenUnexpectedError {
	msg := fmt.Sprintf("expected %s, got %s", expected, actual)
	return &TokenUnexpectedError{
		SyntaxParseError: NewSyntaxError(pos, msg),
		Expected:         expected,
		Actual:           actual,
	}
}

// SemanticError reports an undeclared identifier, a redeclaration, a type
// mismatch, a wrong argument count/type, or a malformed AST. Fatal: it
// aborts the analyzer pass.
type SemanticError struct {
	Message string
	Pos     Position
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("[SemanticError] %s @ %s", e.Message, e.Pos)
}

// NewSemanticError constructs a SemanticError at the given position.
func NewSemanticError(pos Position, message string) *SemanticError {
	return &SemanticError{Message: message, Pos: pos}
}

// CompilerError is the host-facing rendering of any of the three error
// kinds: a phase name, a message, a position, and the source text needed
// to draw the gutter+caret context.
type CompilerError struct {
	Phase   string
	Message string
	Source  string
	File    string
	Pos     Position
}

// NewCompilerError builds a CompilerError for presentation.
func NewCompilerError(phase string, pos Position, message, source, file string) *CompilerError {
	return &CompilerError{Phase: phase, Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the phase banner, a gutter line with the offending source
// line, a caret pointing at the column, and the message. If color is true,
// ANSI codes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s error", e.Phase)
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s", header, e.File))
	} else {
		sb.WriteString(header)
	}
	if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf(" at Line %d, Column %d", e.Pos.Line, e.Pos.Column))
	}
	sb.WriteString("\n")

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(line int) string {
	if e.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatErrors renders a banner for one or more CompilerErrors.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
