package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anellautari/pascalsindo/internal/astbuilder"
	cerrors "github.com/anellautari/pascalsindo/internal/errors"
	"github.com/anellautari/pascalsindo/internal/lexer"
	"github.com/anellautari/pascalsindo/internal/parser"
	"github.com/anellautari/pascalsindo/internal/printer"
	"github.com/anellautari/pascalsindo/internal/semantic"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pascalsindo <source_file.pas>",
	Short: "Pascal-S-Indo front end: lex, parse, build AST, and type-check",
	Long: `pascalsindo lexes, parses, and semantically analyzes a single
Pascal-S-Indo source file.

On success it prints the resolved symbol tables (TAB, BTAB, ATAB) and
the decorated AST. On a lexical, syntax, or semantic error it prints
the offending phase, the source location when known, and the message.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	if !strings.HasSuffix(filename, ".pas") {
		return fmt.Errorf("input file harus berekstensi .pas")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	l, err := lexer.New(source)
	if err != nil {
		return fmt.Errorf("failed to initialize lexer: %w", err)
	}
	tokens := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		return reportCompilerError("Lexical", errs[0].Pos, errs[0].Message, source, filename)
	}

	p := parser.New(tokens, parser.Strict)
	tree, err := p.ParseProgram()
	if err != nil {
		if sErr, ok := err.(*cerrors.SyntaxParseError); ok {
			return reportCompilerError("Syntax", sErr.Pos, sErr.Message, source, filename)
		}
		if tErr, ok := err.(*cerrors.TokenUnexpectedError); ok {
			return reportCompilerError("Syntax", tErr.Pos, tErr.Message, source, filename)
		}
		return err
	}

	prog, err := astbuilder.Build(tree)
	if err != nil {
		return err
	}

	analyzer := semantic.New()
	if err := analyzer.Analyze(prog); err != nil {
		if semErr, ok := err.(*cerrors.SemanticError); ok {
			return reportCompilerError("Semantic", semErr.Pos, semErr.Message, source, filename)
		}
		return err
	}

	out := printer.New(os.Stdout)
	fmt.Println("\n===== SYMBOL TABLES =====")
	out.PrintTables(analyzer.Table)
	fmt.Println("\n===== DECORATED AST =====")
	out.PrintAST(prog)

	return nil
}

func reportCompilerError(phase string, pos cerrors.Position, message, source, filename string) error {
	cErr := cerrors.NewCompilerError(phase, pos, message, source, filename)
	return fmt.Errorf("%s", cErr.Format(false))
}
