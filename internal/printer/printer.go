// Package printer renders the symbol-table triple and the decorated AST
// as human-readable debug dumps, mirroring the fixed-width column style
// go-dws's own bytecode disassembler uses for instruction traces.
package printer

import (
	"fmt"
	"io"

	"github.com/anellautari/pascalsindo/internal/symtab"
)

// Printer writes TAB/BTAB/ATAB and AST dumps to an underlying writer.
type Printer struct {
	writer io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// PrintTables renders TAB, BTAB, and ATAB as three fixed-column tables,
// enum fields (Obj, Typ, Xtyp, Etyp) spelled out by name rather than
// their underlying integer code.
func (p *Printer) PrintTables(t *symtab.Table) {
	p.printTab(t)
	fmt.Fprintln(p.writer)
	p.printBtab(t)
	fmt.Fprintln(p.writer)
	p.printAtab(t)
}

func (p *Printer) printTab(t *symtab.Table) {
	fmt.Fprintln(p.writer, "TAB:")
	fmt.Fprintf(p.writer, "%-4s %-16s %-10s %-8s %-4s %-4s %-4s %-5s %-5s\n",
		"idx", "id", "obj", "typ", "ref", "nrm", "lev", "adr", "link")
	for i, e := range t.Tab {
		fmt.Fprintf(p.writer, "%-4d %-16s %-10s %-8s %-4d %-4t %-4d %-5d %-5d\n",
			i, e.Name, e.Obj, e.Typ, e.Ref, e.Nrm, e.Lev, e.Adr, e.Link)
	}
}

func (p *Printer) printBtab(t *symtab.Table) {
	fmt.Fprintln(p.writer, "BTAB:")
	fmt.Fprintf(p.writer, "%-4s %-5s %-5s %-5s %-5s\n", "idx", "last", "lpar", "psze", "vsze")
	for i, e := range t.Btab {
		fmt.Fprintf(p.writer, "%-4d %-5d %-5d %-5d %-5d\n", i, e.Last, e.Lpar, e.Psze, e.Vsze)
	}
}

func (p *Printer) printAtab(t *symtab.Table) {
	fmt.Fprintln(p.writer, "ATAB:")
	fmt.Fprintf(p.writer, "%-4s %-8s %-8s %-5s %-5s %-5s %-5s %-5s\n",
		"idx", "xtyp", "etyp", "eref", "low", "high", "elsz", "size")
	for i, e := range t.Atab {
		fmt.Fprintf(p.writer, "%-4d %-8s %-8s %-5d %-5d %-5d %-5d %-5d\n",
			i, e.Xtyp, e.Etyp, e.Eref, e.Low, e.High, e.Elsz, e.Size)
	}
}
