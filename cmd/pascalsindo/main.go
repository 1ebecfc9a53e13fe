// Command pascalsindo drives the front end (lex, parse, build AST,
// analyze) over a single Pascal-S-Indo source file and reports either
// the resolved symbol tables and decorated AST, or the first error.
package main

import (
	"fmt"
	"os"

	"github.com/anellautari/pascalsindo/cmd/pascalsindo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
