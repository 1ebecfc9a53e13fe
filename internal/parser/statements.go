package parser

import (
	"github.com/anellautari/pascalsindo/internal/parsetree"
	"github.com/anellautari/pascalsindo/pkg/token"
)

// compound-stmt ::= 'mulai' [ statement { ';' statement } [';'] ] 'selesai'
func (p *Parser) compoundStmt() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "mulai")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(kw)}

	for !p.peekIs(token.KEYWORD, "selesai") {
		stmt, err := p.statement()
		if stmt != nil {
			children = append(children, stmt)
		}
		if err != nil {
			if !p.recoverable(err) {
				return parsetree.Inner("<compound-stmt>", children...), err
			}
			p.synchronize()
		}

		if p.peekIs(token.SEMICOLON, "") {
			semi, _ := p.match(token.SEMICOLON, "")
			children = append(children, parsetree.Leaf(semi))
			continue
		}
		break
	}

	end, err := p.match(token.KEYWORD, "selesai")
	if err != nil {
		return parsetree.Inner("<compound-stmt>", children...), err
	}
	children = append(children, parsetree.Leaf(end))
	return parsetree.Inner("<compound-stmt>", children...), nil
}

// statement ::= compound-stmt | if-stmt | while-stmt | for-stmt
//             | assignment-stmt | proc-call
func (p *Parser) statement() (*parsetree.Node, error) {
	switch {
	case p.peekIs(token.KEYWORD, "mulai"):
		return p.compoundStmt()
	case p.peekIs(token.KEYWORD, "jika"):
		return p.ifStmt()
	case p.peekIs(token.KEYWORD, "selama"):
		return p.whileStmt()
	case p.peekIs(token.KEYWORD, "untuk"):
		return p.forStmt()
	}

	tok, ok := p.peek()
	if ok && tok.Kind == token.IDENTIFIER {
		if next, nok := p.peekAt(1); nok && (next.Kind == token.ASSIGN_OPERATOR || next.Kind == token.LBRACKET) {
			return p.assignmentStmt()
		}
		return p.procCall()
	}

	_, err := p.match(token.IDENTIFIER, "")
	return nil, err
}

func (p *Parser) peekAt(offset int) (token.Token, bool) {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[i], true
}

// if-stmt ::= 'jika' expression 'maka' statement [ 'selain_itu' statement ]
func (p *Parser) ifStmt() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "jika")
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	children := []*parsetree.Node{parsetree.Leaf(kw)}
	if cond != nil {
		children = append(children, cond)
	}
	if err != nil {
		return parsetree.Inner("<if-stmt>", children...), err
	}
	maka, err := p.match(token.KEYWORD, "maka")
	if err != nil {
		return parsetree.Inner("<if-stmt>", children...), err
	}
	then, err := p.statement()
	children = append(children, parsetree.Leaf(maka))
	if then != nil {
		children = append(children, then)
	}
	if err != nil {
		return parsetree.Inner("<if-stmt>", children...), err
	}

	if p.peekIs(token.KEYWORD, "selain_itu") {
		elseKw, _ := p.match(token.KEYWORD, "selain_itu")
		elseStmt, err := p.statement()
		children = append(children, parsetree.Leaf(elseKw))
		if elseStmt != nil {
			children = append(children, elseStmt)
		}
		if err != nil {
			return parsetree.Inner("<if-stmt>", children...), err
		}
	}
	return parsetree.Inner("<if-stmt>", children...), nil
}

// while-stmt ::= 'selama' expression 'lakukan' statement
func (p *Parser) whileStmt() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "selama")
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	children := []*parsetree.Node{parsetree.Leaf(kw)}
	if cond != nil {
		children = append(children, cond)
	}
	if err != nil {
		return parsetree.Inner("<while-stmt>", children...), err
	}
	lakukan, err := p.match(token.KEYWORD, "lakukan")
	if err != nil {
		return parsetree.Inner("<while-stmt>", children...), err
	}
	body, err := p.statement()
	children = append(children, parsetree.Leaf(lakukan))
	if body != nil {
		children = append(children, body)
	}
	return parsetree.Inner("<while-stmt>", children...), err
}

// for-stmt ::= 'untuk' IDENT ':=' expression ('ke'|'turun_ke') expression 'lakukan' statement
func (p *Parser) forStmt() (*parsetree.Node, error) {
	kw, err := p.match(token.KEYWORD, "untuk")
	if err != nil {
		return nil, err
	}
	ctrl, err := p.match(token.IDENTIFIER, "")
	children := []*parsetree.Node{parsetree.Leaf(kw)}
	if err != nil {
		return parsetree.Inner("<for-stmt>", children...), err
	}
	children = append(children, parsetree.Leaf(ctrl))

	assign, err := p.match(token.ASSIGN_OPERATOR, ":=")
	if err != nil {
		return parsetree.Inner("<for-stmt>", children...), err
	}
	children = append(children, parsetree.Leaf(assign))

	start, err := p.expression()
	if start != nil {
		children = append(children, start)
	}
	if err != nil {
		return parsetree.Inner("<for-stmt>", children...), err
	}

	tok, ok := p.peek()
	if !ok || tok.Kind != token.KEYWORD || !(equalFold(tok.Value, "ke") || equalFold(tok.Value, "turun_ke")) {
		_, err := p.match(token.KEYWORD, "ke")
		return parsetree.Inner("<for-stmt>", children...), err
	}
	p.pos++
	children = append(children, parsetree.Leaf(tok))

	end, err := p.expression()
	if end != nil {
		children = append(children, end)
	}
	if err != nil {
		return parsetree.Inner("<for-stmt>", children...), err
	}

	lakukan, err := p.match(token.KEYWORD, "lakukan")
	if err != nil {
		return parsetree.Inner("<for-stmt>", children...), err
	}
	children = append(children, parsetree.Leaf(lakukan))

	body, err := p.statement()
	if body != nil {
		children = append(children, body)
	}
	return parsetree.Inner("<for-stmt>", children...), err
}

// assignment-stmt ::= IDENT [ '[' expression ']' ] ':=' expression
//
// The grammar in §6 elides the array-index form on the assignment target,
// but the AST builder's ArrayAccess lowering (§4.4) requires it; resolved
// here by extending the target with an optional bracketed index, mirrored
// in factor's IDENT production for read access.
func (p *Parser) assignmentStmt() (*parsetree.Node, error) {
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(name)}

	if p.peekIs(token.LBRACKET, "") {
		lb, _ := p.match(token.LBRACKET, "")
		idx, err := p.expression()
		children = append(children, parsetree.Leaf(lb))
		if idx != nil {
			children = append(children, idx)
		}
		if err != nil {
			return parsetree.Inner("<assignment-stmt>", children...), err
		}
		rb, err := p.match(token.RBRACKET, "")
		if err != nil {
			return parsetree.Inner("<assignment-stmt>", children...), err
		}
		children = append(children, parsetree.Leaf(rb))
	}

	assign, err := p.match(token.ASSIGN_OPERATOR, ":=")
	if err != nil {
		return parsetree.Inner("<assignment-stmt>", children...), err
	}
	children = append(children, parsetree.Leaf(assign))

	value, err := p.expression()
	if value != nil {
		children = append(children, value)
	}
	return parsetree.Inner("<assignment-stmt>", children...), err
}

// proc-call ::= IDENT '(' [ param-list ] ')'
func (p *Parser) procCall() (*parsetree.Node, error) {
	name, err := p.match(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{parsetree.Leaf(name)}

	lparen, err := p.match(token.LPARENTHESIS, "")
	if err != nil {
		return parsetree.Inner("<proc-call>", children...), err
	}
	children = append(children, parsetree.Leaf(lparen))

	if !p.peekIs(token.RPARENTHESIS, "") {
		list, err := p.paramList()
		if list != nil {
			children = append(children, list)
		}
		if err != nil {
			return parsetree.Inner("<proc-call>", children...), err
		}
	}

	rparen, err := p.match(token.RPARENTHESIS, "")
	if err != nil {
		return parsetree.Inner("<proc-call>", children...), err
	}
	children = append(children, parsetree.Leaf(rparen))
	return parsetree.Inner("<proc-call>", children...), nil
}

// param-list ::= expression { ',' expression }
func (p *Parser) paramList() (*parsetree.Node, error) {
	first, err := p.expression()
	children := []*parsetree.Node{}
	if first != nil {
		children = append(children, first)
	}
	if err != nil {
		return parsetree.Inner("<param-list>", children...), err
	}

	for p.peekIs(token.COMMA, "") {
		comma, _ := p.match(token.COMMA, "")
		children = append(children, parsetree.Leaf(comma))
		next, err := p.expression()
		if next != nil {
			children = append(children, next)
		}
		if err != nil {
			return parsetree.Inner("<param-list>", children...), err
		}
	}
	return parsetree.Inner("<param-list>", children...), nil
}
