// Package parsetree defines the homogeneous concrete parse tree produced
// by the parser: a labelled node optionally carrying a token, with
// source-ordered children.
package parsetree

import (
	"strings"

	"github.com/anellautari/pascalsindo/pkg/token"
)

// Node is either a leaf carrying a token, or an inner node whose children
// are ordered by source position. Labels name a grammar non-terminal
// (wrapped in angle brackets, e.g. "<expression>") for inner nodes, or the
// token's kind for leaves.
type Node struct {
	Label    string
	Token    *token.Token
	Children []*Node
}

// Leaf builds a terminal node carrying tok.
func Leaf(tok token.Token) *Node {
	return &Node{Label: tok.Kind.String(), Token: &tok}
}

// Inner builds a non-terminal node labelled name (conventionally wrapped
// in angle brackets) with the given children, in source order.
func Inner(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// IsLeaf reports whether n carries a token rather than children.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// String renders an indented debug dump of the subtree rooted at n.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsLeaf() {
		sb.WriteString(n.Token.String())
	} else {
		sb.WriteString(n.Label)
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}
