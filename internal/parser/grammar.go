package parser

import (
	"strings"

	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

// programHeader ::= 'program' IDENT ';'
func (p *Parser) programHeader() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "program")
	if err != nil {
		return nil, err
	}
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	semi, err := p.match(token.SEMICOLON, "")
	if err != nil {
		return nil, err
	}
	return parsetree.Inner("<program-header>", parsetree.Leaf(kw), parsetree.Leaf(name), parsetree.Leaf(semi)), nil
}

// declarationPart ::= { const-decl | type-decl | var-decl | subprogram-decl }
func (p *Parser) declarationPart() (*parsetree.Node, error) {
	node := &parsetree.Node{Label: "<declaration-part>"}

	for {
		switch {
		case p.peekIs(token.KEYWORD, "konstanta"):
			child, err := p.constDecl()
			if !p.absorb(&node.Children, child, err) {
				return node, err
			}
		case p.peekIs(token.KEYWORD, "tipe"):
			child, err := p.typeDecl()
			if !p.absorb(&node.Children, child, err) {
				return node, err
			}
		case p.peekIs(token.KEYWORD, "variabel"):
			child, err := p.varDecl()
			if !p.absorb(&node.Children, child, err) {
				return node, err
			}
		case p.peekIs(token.KEYWORD, "prosedur") || p.peekIs(token.KEYWORD, "fungsi"):
			child, err := p.subprogramDecl()
			if !p.absorb(&node.Children, child, err) {
				return node, err
			}
		default:
			return node, nil
		}
	}
}

// absorb appends child (if non-nil) to *children and reports whether the
// caller's loop should keep going: true unless this was a fatal (Strict or
// unrecoverable) error.
func (p *Parser) absorb(children *[]*parsetree.Node, child *parsetree.Node, err error) bool {
	if err == nil {
		if child != nil {
			*children = append(*children, child)
		}
		return true
	}
	if !p.recoverable(err) {
		return false
	}
	p.synchronize()
	return true
}

// const-decl ::= 'konstanta' ( IDENT '=' expression ';' )+
func (p *Parser) constDecl() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "konstanta")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw)}

	for {
		name, err := p.match(token.IDENTIFIER, "")
		if err != nil {
			return parsetree.Inner("<const-decl>", children...), err
		}
		eq, err := p.match(token.RELATIONAL_OPERATOR, "=")
		if err != nil {
			return parsetree.Inner("<const-decl>", children...), err
		}
		value, err := p.expression()
		if err != nil {
			return parsetree.Inner("<const-decl>", children...), err
		}
		semi, err := p.match(token.SEMICOLON, "")
		if err != nil {
			return parsetree.Inner("<const-decl>", children...), err
		}
		children = append(children, parsetree.Leaf(name), parsetree.Leaf(eq), value, parsetree.Leaf(semi))

		if !p.peekIs(token.IDENTIFIER, "") {
			break
		}
	}
	return parsetree.Inner("<const-decl>", children...), nil
}

// type-decl ::= 'tipe' ( IDENT '=' type ';' )+
func (p *Parser) typeDecl() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "tipe")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw)}

	for {
		name, err := p.match(token.IDENTIFIER, "")
		if err != nil {
			return parsetree.Inner("<type-decl>", children...), err
		}
		eq, err := p.match(token.RELATIONAL_OPERATOR, "=")
		if err != nil {
			return parsetree.Inner("<type-decl>", children...), err
		}
		typ, err := p.typeExpr()
		if err != nil {
			return parsetree.Inner("<type-decl>", children...), err
		}
		semi, err := p.match(token.SEMICOLON, "")
		if err != nil {
			return parsetree.Inner("<type-decl>", children...), err
		}
		children = append(children, parsetree.Leaf(name), parsetree.Leaf(eq), typ, parsetree.Leaf(semi))

		if !p.peekIs(token.IDENTIFIER, "") {
			break
		}
	}
	return parsetree.Inner("<type-decl>", children...), nil
}

// var-decl ::= 'variabel' ( ident-list ':' type ';' )+
func (p *Parser) varDecl() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "variabel")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw)}

	for {
		idents, err := p.identList()
		if err != nil {
			return parsetree.Inner("<var-decl>", children...), err
		}
		colon, err := p.match(token.COLON, "")
		if err != nil {
			return parsetree.Inner("<var-decl>", children...), err
		}
		typ, err := p.typeExpr()
		if err != nil {
			return parsetree.Inner("<var-decl>", children...), err
		}
		semi, err := p.match(token.SEMICOLON, "")
		if err != nil {
			return parsetree.Inner("<var-decl>", children...), err
		}
		children = append(children, idents, parsetree.Leaf(colon), typ, parsetree.Leaf(semi))

		if !p.peekIs(token.IDENTIFIER, "") {
			break
		}
	}
	return parsetree.Inner("<var-decl>", children...), nil
}

// ident-list ::= IDENT { ',' IDENT }
func (p *Parser) identList() (*parsetree.Node, error) {
	first, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(first)}

	for p.peekIs(token.COMMA, "") {
		comma, _ := p.match(token.COMMA, "")
		name, err := p.match(token.IDENTIFIER, "")
		if err != nil {
			return parsetree.Inner("<ident-list>", children...), err
		}
		children = append(children, parsetree.Leaf(comma), parsetree.Leaf(name))
	}
	return parsetree.Inner("<ident-list>", children...), nil
}

// subprogram-decl ::= procedure-decl | function-decl
func (p *Parser) subprogramDecl() (*parsetree.Node, error) {
	if p.peekIs(token.KEYWORD, "prosedur") {
		return p.procedureDecl()
	}
	return p.functionDecl()
}

// procedure-decl ::= 'prosedur' IDENT [formal-params] ';' block ';'
func (p *Parser) procedureDecl() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "prosedur")
	if err != nil {
		return nil, err
	}
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw), parsetree.Leaf(name)}

	if p.peekIs(token.LPARENTHESIS, "") {
		params, err := p.formalParams()
		if err != nil {
			return parsetree.Inner("<procedure-decl>", children...), err
		}
		children = append(children, params)
	}

	semi1, err := p.match(token.SEMICOLON, "")
	if err != nil {
		return parsetree.Inner("<procedure-decl>", children...), err
	}
	block, err := p.block()
	if err != nil {
		return parsetree.Inner("<procedure-decl>", children...), err
	}
	semi2, err := p.match(token.SEMICOLON, "")
	if err != nil {
		return parsetree.Inner("<procedure-decl>", children...), err
	}
	children = append(children, parsetree.Leaf(semi1), block, parsetree.Leaf(semi2))
	return parsetree.Inner("<procedure-decl>", children...), nil
}

// function-decl ::= 'fungsi' IDENT [formal-params] ':' type ';' block ';'
func (p *Parser) functionDecl() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "fungsi")
	if err != nil {
		return nil, err
	}
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw), parsetree.Leaf(name)}

	if p.peekIs(token.LPARENTHESIS, "") {
		params, err := p.formalParams()
		if err != nil {
			return parsetree.Inner("<function-decl>", children...), err
		}
		children = append(children, params)
	}

	colon, err := p.match(token.COLON, "")
	if err != nil {
		return parsetree.Inner("<function-decl>", children...), err
	}
	typ, err := p.typeExpr()
	if err != nil {
		return parsetree.Inner("<function-decl>", children...), err
	}
	semi1, err := p.match(token.SEMICOLON, "")
	if err != nil {
		return parsetree.Inner("<function-decl>", children...), err
	}
	block, err := p.block()
	if err != nil {
		return parsetree.Inner("<function-decl>", children...), err
	}
	semi2, err := p.match(token.SEMICOLON, "")
	if err != nil {
		return parsetree.Inner("<function-decl>", children...), err
	}
	children = append(children, parsetree.Leaf(colon), typ, parsetree.Leaf(semi1), block, parsetree.Leaf(semi2))
	return parsetree.Inner("<function-decl>", children...), nil
}

// block ::= declaration-part compound-statement
func (p *Parser) block() (*parsetree.Node, error) {
	decls, err := p.declarationPart()
	if err != nil {
		return nil, err
	}
	body, err := p.compoundStmt()
	if err != nil {
		return parsetree.Inner("<block>", decls), err
	}
	return parsetree.Inner("<block>", decls, body), nil
}

// formal-params ::= '(' param-group { ';' param-group } ')'
func (p *Parser) formalParams() (*parsetree.Node, error) {
	lparen, err := p.match(token.LPARENTHESIS, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(lparen)}

	group, err := p.paramGroup()
	if err != nil {
		return parsetree.Inner("<formal-params>", children...), err
	}
	children = append(children, group)

	for p.peekIs(token.SEMICOLON, "") {
		semi, _ := p.match(token.SEMICOLON, "")
		group, err := p.paramGroup()
		if err != nil {
			return parsetree.Inner("<formal-params>", children...), err
		}
		children = append(children, parsetree.Leaf(semi), group)
	}

	rparen, err := p.match(token.RPARENTHESIS, "")
	if err != nil {
		return parsetree.Inner("<formal-params>", children...), err
	}
	children = append(children, parsetree.Leaf(rparen))
	return parsetree.Inner("<formal-params>", children...), nil
}

// param-group ::= ident-list ':' type
func (p *Parser) paramGroup() (*parsetree.Node, error) {
	idents, err := p.identList()
	if err != nil {
		return nil, err
	}
	colon, err := p.match(token.COLON, "")
	if err != nil {
		return parsetree.Inner("<param-group>", idents), err
	}
	typ, err := p.typeExpr()
	if err != nil {
		return parsetree.Inner("<param-group>", idents, parsetree.Leaf(colon)), err
	}
	return parsetree.Inner("<param-group>", idents, parsetree.Leaf(colon), typ), nil
}

var primitiveTypeNames = map[string]bool{"integer": true, "real": true, "boolean": true, "char": true}

// type ::= 'integer' | 'real' | 'boolean' | 'char' | IDENT | array-type
func (p *Parser) typeExpr() (*parsetree.Node, error) {
	if p.peekIs(token.KEYWORD, "larik") {
		return p.arrayType()
	}
	tok, ok := p.peek()
	if ok && tok.Kind == token.KEYWORD && primitiveTypeNames[lower(tok.Value)] {
		p.pos++
		return parsetree.Inner("<type>", parsetree.Leaf(tok)), nil
	}
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	return parsetree.Inner("<type>", parsetree.Leaf(name)), nil
}

// array-type ::= 'larik' '[' range ']' 'dari' type
func (p *Parser) arrayType() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "larik")
	if err != nil {
		return nil, err
	}
	lbrack, err := p.match(token.LBRACKET, "")
	if err != nil {
		return parsetree.Inner("<array-type>", parsetree.Leaf(kw)), err
	}
	rng, err := p.rangeExpr()
	if err != nil {
		return parsetree.Inner("<array-type>", parsetree.Leaf(kw), parsetree.Leaf(lbrack)), err
	}
	rbrack, err := p.match(token.RBRACKET, "")
	if err != nil {
		return parsetree.Inner("<array-type>", parsetree.Leaf(kw), parsetree.Leaf(lbrack), rng), err
	}
	dari, err := p.match(token.KEYWORD, "dari")
	if err != nil {
		return parsetree.Inner("<array-type>", parsetree.Leaf(kw), parsetree.Leaf(lbrack), rng, parsetree.Leaf(rbrack)), err
	}
	elem, err := p.typeExpr()
	if err != nil {
		return parsetree.Inner("<array-type>", parsetree.Leaf(kw), parsetree.Leaf(lbrack), rng, parsetree.Leaf(rbrack), parsetree.Leaf(dari)), err
	}
	return parsetree.Inner("<array-type>", parsetree.Leaf(kw), parsetree.Leaf(lbrack), rng, parsetree.Leaf(rbrack), parsetree.Leaf(dari), elem), nil
}

// range ::= expression '..' expression
func (p *Parser) rangeExpr() (*parsetree.Node, error) {
	lower, err := p.expression()
	if err != nil {
		return nil, err
	}
	dotdot, err := p.match(token.RANGE_OPERATOR, "")
	if err != nil {
		return parsetree.Inner("<range>", lower), err
	}
	upper, err := p.expression()
	if err != nil {
		return parsetree.Inner("<range>", lower, parsetree.Leaf(dotdot)), err
	}
	return parsetree.Inner("<range>", lower, parsetree.Leaf(dotdot), upper), nil
}

func lower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
