package parser

import (
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// expression ::= simple-expr [ rel-op simple-expr ]
func (p *Parser) expression() (*parsetree.Node, error) {
	left, err := p.simpleExpr()
	if err != nil {
		return left, err
	}
	if !p.isRelOp() {
		return left, nil
	}
	opTok, _ := p.peek()
	p.pos++
	right, err := p.simpleExpr()
	children := []*parsetree.Node{left, parsetree.Leaf(opTok)}
	if right != nil {
		children = append(children, right)
	}
	return parsetree.Inner("<expression>", children...), err
}

func (p *Parser) isRelOp() bool {
	tok, ok := p.peek()
	return ok && tok.Kind == token.RELATIONAL_OPERATOR
}

// simple-expr ::= [ '+' | '-' ] term { add-op term }
func (p *Parser) simpleExpr() (*parsetree.Node, error) {
	var children []*parsetree.Node

	if tok, ok := p.peek(); ok && tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Value == "+" || tok.Value == "-") {
		p.pos++
		children = append(children, parsetree.Leaf(tok))
	}

	first, err := p.term()
	if first != nil {
		children = append(children, first)
	}
	if err != nil {
		return parsetree.Inner("<simple-expr>", children...), err
	}

	for p.isAddOp() {
		opTok, _ := p.peek()
		p.pos++
		children = append(children, parsetree.Leaf(opTok))
		next, err := p.term()
		if next != nil {
			children = append(children, next)
		}
		if err != nil {
			return parsetree.Inner("<simple-expr>", children...), err
		}
	}
	return parsetree.Inner("<simple-expr>", children...), nil
}

func (p *Parser) isAddOp() bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	if tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Value == "+" || tok.Value == "-") {
		return true
	}
	return tok.Kind == token.LOGICAL_OPERATOR && equalFold(tok.Value, "atau")
}

// term ::= factor { mul-op factor }
func (p *Parser) term() (*parsetree.Node, error) {
	var children []*parsetree.Node

	first, err := p.factor()
	if first != nil {
		children = append(children, first)
	}
	if err != nil {
		return parsetree.Inner("<term>", children...), err
	}

	for p.isMulOp() {
		opTok, _ := p.peek()
		p.pos++
		children = append(children, parsetree.Leaf(opTok))
		next, err := p.factor()
		if next != nil {
			children = append(children, next)
		}
		if err != nil {
			return parsetree.Inner("<term>", children...), err
		}
	}
	return parsetree.Inner("<term>", children...), nil
}

func (p *Parser) isMulOp() bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	if tok.Kind == token.ARITHMETIC_OPERATOR && (tok.Value == "*" || tok.Value == "/" || equalFold(tok.Value, "bagi") || equalFold(tok.Value, "mod")) {
		return true
	}
	return tok.Kind == token.LOGICAL_OPERATOR && equalFold(tok.Value, "dan")
}

// factor ::= NUMBER | STRING | CHAR
//          | IDENT | IDENT '[' expression ']' | IDENT '(' [param-list] ')'
//          | '(' expression ')' | 'tidak' factor
func (p *Parser) factor() (*parsetree.Node, error) {
	tok, ok := p.peek()
	if !ok {
		_, err := p.match(token.NUMBER, "")
		return nil, err
	}

	switch {
	case tok.Kind == token.NUMBER, tok.Kind == token.STRING_LITERAL, tok.Kind == token.CHAR_LITERAL:
		p.pos++
		return parsetree.Inner("<factor>", parsetree.Leaf(tok)), nil

	case tok.Kind == token.LOGICAL_OPERATOR && equalFold(tok.Value, "tidak"):
		p.pos++
		operand, err := p.factor()
		children := []*parsetree.Node{parsetree.Leaf(tok)}
		if operand != nil {
			children = append(children, operand)
		}
		return parsetree.Inner("<factor>", children...), err

	case tok.Kind == token.LPARENTHESIS:
		p.pos++
		inner, err := p.expression()
		children := []*parsetree.Node{parsetree.Leaf(tok)}
		if inner != nil {
			children = append(children, inner)
		}
		if err != nil {
			return parsetree.Inner("<factor>", children...), err
		}
		rparen, err := p.match(token.RPARENTHESIS, "")
		if err != nil {
			return parsetree.Inner("<factor>", children...), err
		}
		children = append(children, parsetree.Leaf(rparen))
		return parsetree.Inner("<factor>", children...), nil

	case tok.Kind == token.IDENTIFIER:
		p.pos++
		children := []*parsetree.Node{parsetree.Leaf(tok)}

		if p.peekIs(token.LPARENTHESIS, "") {
			lparen, _ := p.match(token.LPARENTHESIS, "")
			children = append(children, parsetree.Leaf(lparen))
			if !p.peekIs(token.RPARENTHESIS, "") {
				list, err := p.paramList()
				if list != nil {
					children = append(children, list)
				}
				if err != nil {
					return parsetree.Inner("<factor>", children...), err
				}
			}
			rparen, err := p.match(token.RPARENTHESIS, "")
			if err != nil {
				return parsetree.Inner("<factor>", children...), err
			}
			children = append(children, parsetree.Leaf(rparen))
			return parsetree.Inner("<factor>", children...), nil
		}

		if p.peekIs(token.LBRACKET, "") {
			lb, _ := p.match(token.LBRACKET, "")
			idx, err := p.expression()
			children = append(children, parsetree.Leaf(lb))
			if idx != nil {
				children = append(children, idx)
			}
			if err != nil {
				return parsetree.Inner("<factor>", children...), err
			}
			rb, err := p.match(token.RBRACKET, "")
			if err != nil {
				return parsetree.Inner("<factor>", children...), err
			}
			children = append(children, parsetree.Leaf(rb))
			return parsetree.Inner("<factor>", children...), nil
		}

		return parsetree.Inner("<factor>", children...), nil

	default:
		_, err := p.match(token.NUMBER, "")
		return nil, err
	}
}
