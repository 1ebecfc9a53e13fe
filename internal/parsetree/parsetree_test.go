package parsetree_test

import (
	"strings"
	"testing"

	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

func TestLeafIsLeaf(t *testing.T) {
	n := parsetree.Leaf(token.Token{Kind: token.IDENTIFIER, Value: "total", Line: 1, Column: 1})
	if !n.IsLeaf() {
		t.Error("Leaf node: IsLeaf() = false, want true")
	}
	if n.Label != token.IDENTIFIER.String() {
		t.Errorf("Label = %q, want %q", n.Label, token.IDENTIFIER.String())
	}
	if len(n.Children) != 0 {
		t.Errorf("len(Children) = %d, want 0", len(n.Children))
	}
}

func TestInnerIsNotLeaf(t *testing.T) {
	leaf := parsetree.Leaf(token.Token{Kind: token.NUMBER, Value: "1"})
	n := parsetree.Inner("<expression>", leaf)
	if n.IsLeaf() {
		t.Error("Inner node: IsLeaf() = true, want false")
	}
	if n.Label != "<expression>" {
		t.Errorf("Label = %q, want <expression>", n.Label)
	}
	if len(n.Children) != 1 || n.Children[0] != leaf {
		t.Fatalf("Children = %v, want [leaf]", n.Children)
	}
}

func TestStringIndentsByDepth(t *testing.T) {
	leaf := parsetree.Leaf(token.Token{Kind: token.NUMBER, Value: "1", Line: 1, Column: 1})
	tree := parsetree.Inner("<program>", parsetree.Inner("<block>", leaf))

	dump := tree.String()
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3:\n%s", len(lines), dump)
	}
	if lines[0] != "<program>" {
		t.Errorf("line 0 = %q, want <program>", lines[0])
	}
	if lines[1] != "  <block>" {
		t.Errorf("line 1 = %q, want two-space indented <block>", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    ") {
		t.Errorf("line 2 = %q, want four-space indent", lines[2])
	}
	if !strings.Contains(lines[2], leaf.Token.String()) {
		t.Errorf("line 2 = %q, want it to contain the leaf token's string form", lines[2])
	}
}
