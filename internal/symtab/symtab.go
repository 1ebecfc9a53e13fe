// Package symtab implements the Wirth-style TAB/BTAB/ATAB symbol-table
// triple used by the semantic analyzer: a flat entry arena per table,
// addressed by integer index, linked into per-block chains via a
// per-level display stack. This mirrors the classic Pascal-S compiler
// convention rather than a nested map of scopes.
package symtab

import (
	"fmt"
	"strings"

	"github.com/anellautari/pascalsindo/internal/types"
)

// ObjKind classifies what a TAB entry denotes.
type ObjKind int

const (
	UNDEFINED ObjKind = iota
	CONSTANT
	VARIABLE
	TYPE
	PROCEDURE
	FUNCTION
	PROGRAM
)

var objKindNames = [...]string{
	UNDEFINED: "UNDEFINED", CONSTANT: "CONSTANT", VARIABLE: "VARIABLE",
	TYPE: "TYPE", PROCEDURE: "PROCEDURE", FUNCTION: "FUNCTION", PROGRAM: "PROGRAM",
}

func (k ObjKind) String() string {
	if int(k) < 0 || int(k) >= len(objKindNames) {
		return fmt.Sprintf("ObjKind(%d)", int(k))
	}
	return objKindNames[k]
}

// Built-in adr tags for the standard procedures, distinguishing them
// from user-declared procedures sharing the PROCEDURE obj kind.
const (
	BuiltinRead = iota + 1
	BuiltinReadln
	BuiltinWrite
	BuiltinWriteln
)

// frameBase is the dx value a fresh block starts counting variable
// addresses from. Pascal-S reserves a few frame-header words ahead of
// the first local; since this front end never generates code or lays
// out an activation record, zero is the only value that means anything.
const frameBase = 0

// TabEntry is one TAB row: an identifier bound at a lexical level.
type TabEntry struct {
	Name string
	Obj  ObjKind
	Typ  types.Kind
	Ref  int  // ATAB index for ARRAYS/RECORDS, 0 otherwise
	Nrm  bool // true for formal parameters ("normal", i.e. by-value)
	Lev  int
	Adr  int
	Link int // previous TAB index in this block's chain, 0 = end of chain
}

// BtabEntry is one BTAB row: bookkeeping for a single block/level.
type BtabEntry struct {
	Last int // most recently inserted TAB index in this block
	Lpar int // TAB index marking the end of the parameter section
	Psze int // parameter-section size, in storage units
	Vsze int // variable-section size, in storage units
}

// AtabEntry is one ATAB row: array metadata, possibly nested.
type AtabEntry struct {
	Xtyp types.Kind // index type
	Etyp types.Kind // element type
	Eref int        // ATAB index of the element type, if it is itself an array
	Low  int
	High int
	Elsz int // element size
	Size int // total size = (high-low+1)*elsz
}

// RedeclarationError reports a name inserted twice at the same block.
type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("%q is already declared in this scope", e.Name)
}

// Table owns the TAB/BTAB/ATAB arenas and the level display used to
// resolve lexical scope during a single analysis pass.
type Table struct {
	Tab     []TabEntry
	Btab    []BtabEntry
	Atab    []AtabEntry
	Display []int // Display[level] = active BTAB index at that level

	Level int

	dx         int
	paramEndDx int
}

// New returns a table with TAB[0]/BTAB[0]/ATAB[0] sentinels and the
// Pascal-S built-in constants, types, and standard routines preloaded
// at level 0.
func New() *Table {
	t := &Table{
		Tab:     []TabEntry{{Name: "", Obj: UNDEFINED, Link: 0}},
		Btab:    []BtabEntry{{}},
		Atab:    []AtabEntry{{}},
		Display: []int{0},
		Level:   0,
	}
	t.preloadBuiltins()
	return t
}

func (t *Table) preloadBuiltins() {
	insertBuiltin := func(name string, obj ObjKind, typ types.Kind, adr int) {
		idx, err := t.Insert(name, obj, typ, false)
		if err != nil {
			panic("symtab: duplicate built-in " + name)
		}
		t.Tab[idx].Adr = adr
	}

	insertBuiltin("false", CONSTANT, types.BOOLS, 0)
	insertBuiltin("true", CONSTANT, types.BOOLS, 1)

	insertBuiltin("integer", TYPE, types.INTS, 0)
	insertBuiltin("real", TYPE, types.REALS, 0)
	insertBuiltin("char", TYPE, types.CHARS, 0)
	insertBuiltin("boolean", TYPE, types.BOOLS, 0)

	standardFunctions := []struct {
		name string
		ret  types.Kind
	}{
		{"abs", types.INTS}, {"sqr", types.INTS}, {"odd", types.BOOLS},
		{"chr", types.CHARS}, {"ord", types.INTS}, {"succ", types.INTS},
		{"pred", types.INTS}, {"round", types.INTS}, {"trunc", types.INTS},
		{"sin", types.REALS}, {"cos", types.REALS}, {"exp", types.REALS},
		{"ln", types.REALS}, {"sqrt", types.REALS}, {"arctan", types.REALS},
		{"eof", types.BOOLS}, {"eoln", types.BOOLS},
	}
	for i, fn := range standardFunctions {
		insertBuiltin(fn.name, FUNCTION, fn.ret, i+1)
	}

	insertBuiltin("read", PROCEDURE, types.NOTYP, BuiltinRead)
	insertBuiltin("readln", PROCEDURE, types.NOTYP, BuiltinReadln)
	insertBuiltin("write", PROCEDURE, types.NOTYP, BuiltinWrite)
	insertBuiltin("writeln", PROCEDURE, types.NOTYP, BuiltinWriteln)
}

// BeginBlock opens a new lexical level: bumps Level, allocates a fresh
// BTAB row, points Display[Level] at it, and resets the variable
// address counter to the frame base. Returns the new BTAB index.
func (t *Table) BeginBlock() int {
	t.Level++
	btabIdx := len(t.Btab)
	t.Btab = append(t.Btab, BtabEntry{})

	for len(t.Display) <= t.Level {
		t.Display = append(t.Display, 0)
	}
	t.Display[t.Level] = btabIdx

	t.dx = frameBase
	t.paramEndDx = frameBase
	return btabIdx
}

// EndBlock finalizes the current block's Psze/Vsze, clears its display
// slot, and drops back a level.
func (t *Table) EndBlock() {
	btabIdx := t.Display[t.Level]
	t.Btab[btabIdx].Psze = t.paramEndDx - frameBase
	t.Btab[btabIdx].Vsze = t.dx - t.paramEndDx
	t.Display[t.Level] = 0
	t.Level--
}

// Insert declares ident in the current block. It fails with a
// RedeclarationError if ident is already bound at this exact level.
func (t *Table) Insert(ident string, obj ObjKind, typ types.Kind, nrm bool) (int, error) {
	btabIdx := t.Display[t.Level]
	for idx := t.Btab[btabIdx].Last; idx != 0; idx = t.Tab[idx].Link {
		if strings.EqualFold(t.Tab[idx].Name, ident) {
			return 0, &RedeclarationError{Name: ident}
		}
	}

	newIdx := len(t.Tab)
	t.Tab = append(t.Tab, TabEntry{
		Name: ident,
		Obj:  obj,
		Typ:  typ,
		Nrm:  nrm,
		Lev:  t.Level,
		Link: t.Btab[btabIdx].Last,
	})
	t.Btab[btabIdx].Last = newIdx
	return newIdx, nil
}

// MarkParameterSectionEnd records the current TAB chain position as the
// end of this block's formal-parameter section.
func (t *Table) MarkParameterSectionEnd() {
	btabIdx := t.Display[t.Level]
	t.Btab[btabIdx].Lpar = t.Btab[btabIdx].Last
	t.paramEndDx = t.dx
}

// Lookup resolves ident from the current level outward, returning the
// first (nearest-enclosing) match.
func (t *Table) Lookup(ident string) (int, bool) {
	for lvl := t.Level; lvl >= 0; lvl-- {
		btabIdx := t.Display[lvl]
		for idx := t.Btab[btabIdx].Last; idx != 0; idx = t.Tab[idx].Link {
			if strings.EqualFold(t.Tab[idx].Name, ident) {
				return idx, true
			}
		}
	}
	return 0, false
}

// ParametersOf walks btabIdx's chain up to its recorded parameter-section
// boundary, returning TAB indices in declaration order (the chain itself
// runs newest-to-oldest). Works on any block, including one whose level
// has already been ended, since BTAB rows outlive EndBlock.
func (t *Table) ParametersOf(btabIdx int) []int {
	var out []int
	for idx := t.Btab[btabIdx].Lpar; idx != 0; idx = t.Tab[idx].Link {
		out = append(out, idx)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// AllocateAddress returns the next free dx and advances it by size,
// for a variable/parameter/return-slot of that storage size.
func (t *Table) AllocateAddress(size int) int {
	adr := t.dx
	t.dx += size
	return adr
}

// EnterArray creates an ATAB row with its index-range bounds filled in
// but its element type not yet known, so a nested array type can
// forward-reference this row's index while its own element row is
// still being built.
func (t *Table) EnterArray(indexType types.Kind, low, high int) int {
	idx := len(t.Atab)
	t.Atab = append(t.Atab, AtabEntry{Xtyp: indexType, Low: low, High: high})
	return idx
}

// FinalizeArray completes an ATAB row once its element type is known.
func (t *Table) FinalizeArray(atabIdx int, elemType types.Kind, elemRef int, elemSize int) {
	a := &t.Atab[atabIdx]
	a.Etyp = elemType
	a.Eref = elemRef
	a.Elsz = elemSize
	a.Size = (a.High - a.Low + 1) * elemSize
}

// SetRef sets a TAB entry's ATAB/record reference (for ARRAYS/RECORDS typed entries).
func (t *Table) SetRef(tabIdx, ref int) { t.Tab[tabIdx].Ref = ref }

// SetAdr overwrites a TAB entry's address/value slot.
func (t *Table) SetAdr(tabIdx, adr int) { t.Tab[tabIdx].Adr = adr }

// ElementSize reports the storage size of a scalar or array type. Every
// scalar occupies one storage unit; arrays occupy their ATAB row's Size.
func (t *Table) ElementSize(typ types.Kind, ref int) int {
	if typ == types.ARRAYS && ref > 0 && ref < len(t.Atab) {
		return t.Atab[ref].Size
	}
	return 1
}
