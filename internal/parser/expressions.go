package parser

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignmentOpFor maps the token that introduced an assignment to its
// AssignOp. '++'/'--' are lowered into AssignAdd/AssignSub with a
// synthetic literal 1 right-hand side, matching the reference parser.
func assignmentOpFor(t lexer.TokenType) ast.AssignOp {
	switch t {
	case lexer.PLUS_EQUAL, lexer.PLUS_PLUS:
		return ast.AssignAdd
	case lexer.MINUS_EQUAL, lexer.MINUS_MINUS:
		return ast.AssignSub
	case lexer.STAR_EQUAL:
		return ast.AssignMul
	case lexer.SLASH_EQUAL:
		return ast.AssignDiv
	default:
		return ast.AssignSet
	}
}

// assignment lowers the left-hand side of an assignment-like expression:
// Get -> Set, IndexGet -> IndexSet, Variable -> Assign. Any other LHS is an
// error.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.lambda()
	if err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case lexer.EQUAL, lexer.PLUS_EQUAL, lexer.MINUS_EQUAL, lexer.STAR_EQUAL, lexer.SLASH_EQUAL,
		lexer.PLUS_PLUS, lexer.MINUS_MINUS:
		sign := p.advance()

		var value ast.Expr
		if sign.Type == lexer.PLUS_PLUS || sign.Type == lexer.MINUS_MINUS {
			value = &ast.Literal{Value: 1.0}
		} else {
			value, err = p.expression()
			if err != nil {
				return nil, err
			}
		}

		op := assignmentOpFor(sign.Type)

		switch target := expr.(type) {
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}, nil
		case *ast.IndexGet:
			return &ast.IndexSet{Object: target.Object, Bracket: target.Bracket, Index: target.Index, Value: value}, nil
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Op: op, Value: value}, nil
		default:
			return nil, p.handleError(fmt.Sprintf("[line %d] Error: Cannot use assignment.", sign.Line))
		}

	default:
		return expr, nil
	}
}

// lambda parses `lambda params -> (block|statement)`, falling through to
// ifExpr otherwise. Lambda parameters are a bare comma-separated list with
// no surrounding parentheses.
func (p *Parser) lambda() (ast.Expr, error) {
	if !p.matchToken(lexer.LAMBDA) {
		return p.ifExpr()
	}
	keyword := p.previous()

	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ARROW, "Expected '->' after lambda parameters."); err != nil {
		return nil, err
	}

	var body *ast.Block
	if p.check(lexer.LEFT_BRACE) {
		body, err = p.block()
		if err != nil {
			return nil, err
		}
	} else {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = &ast.Block{Statements: []ast.Stmt{stmt}}
	}

	return &ast.Lambda{Keyword: keyword, Params: params, Body: body}, nil
}

// ifExpr parses `if cond block [else (ifExpr|block)]`, falling through to
// logicOr otherwise. The else branch defaults to an empty block.
func (p *Parser) ifExpr() (ast.Expr, error) {
	if !p.matchToken(lexer.IF) {
		return p.logicOr()
	}
	keyword := p.previous()

	condition, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.block()
	if err != nil {
		return nil, err
	}

	var elseBranch any
	if p.matchToken(lexer.ELSE) {
		if p.check(lexer.IF) {
			nested, err := p.ifExpr()
			if err != nil {
				return nil, err
			}
			elseBranch = nested.(*ast.IfExpr)
		} else {
			elseBlock, err := p.block()
			if err != nil {
				return nil, err
			}
			elseBranch = elseBlock
		}
	}

	return &ast.IfExpr{Keyword: keyword, Condition: condition, Then: thenBlock, Else: elseBranch}, nil
}

func (p *Parser) logicOr() (ast.Expr, error) {
	left, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.OR) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// logicAnd accepts both 'and' and '+' at this precedence level. The '+'
// arm is effectively unreachable in practice: addition() (below this rule
// in the chain) consumes every '+' it finds in its own loop before control
// ever returns here. Preserved deliberately — see DESIGN.md Open Question 1.
func (p *Parser) logicAnd() (ast.Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.PLUS, lexer.AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.EQUAL_EQUAL, lexer.BANG_EQUAL) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	left, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.LESS, lexer.GREATER, lexer.LESS_EQUAL, lexer.GREATER_EQUAL) {
		op := p.previous()
		right, err := p.rangeExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) rangeExpr() (ast.Expr, error) {
	left, err := p.addition()
	if err != nil {
		return nil, err
	}
	if p.matchToken(lexer.DOT_DOT, lexer.DOT_DOT_DOT) {
		op := p.previous()
		right, err := p.addition()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Left: left, Operator: op, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) addition() (ast.Expr, error) {
	left, err := p.multiplication()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right, err := p.multiplication()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) multiplication() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.matchToken(lexer.STAR, lexer.SLASH, lexer.SLASH_LESS, lexer.SLASH_GREATER, lexer.PERCENT) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	var ops []lexer.Token
	for p.matchToken(lexer.BANG, lexer.MINUS, lexer.NOT) {
		ops = append(ops, p.previous())
	}

	expr, err := p.call()
	if err != nil {
		return nil, err
	}

	for i := len(ops) - 1; i >= 0; i-- {
		expr = &ast.Unary{Operator: ops[i], Right: expr}
	}
	return expr, nil
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(lexer.LEFT_PAREN):
			paren := p.advance()
			prevIgnore := p.setIgnoreNewline(true)
			args, err := p.arguments()
			p.setIgnoreNewline(prevIgnore)
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RIGHT_PAREN, fmt.Sprintf("Expected '%s' after arguments.", lexer.RIGHT_PAREN)); err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Paren: paren, Arguments: args}

		case p.check(lexer.LEFT_BRACKET):
			p.advance()
			prevIgnore := p.setIgnoreNewline(true)
			index, err := p.expression()
			p.setIgnoreNewline(prevIgnore)
			if err != nil {
				return nil, err
			}
			bracket, err := p.consume(lexer.RIGHT_BRACKET, fmt.Sprintf("Expected '%s' after index.", lexer.RIGHT_BRACKET))
			if err != nil {
				return nil, err
			}
			expr = &ast.IndexGet{Object: expr, Bracket: bracket, Index: index}

		case p.check(lexer.DOT):
			p.advance()
			name, err := p.consume(lexer.IDENTIFIER, "Expected a property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}

		case p.check(lexer.NEWLINE) && p.peekNextNonNewline().Type == lexer.DOT:
			p.skipNewlines()
			p.advance() // '.'
			name, err := p.consume(lexer.IDENTIFIER, "Expected a property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) arguments() ([]ast.Expr, error) {
	var args []ast.Expr
	if !p.check(lexer.RIGHT_PAREN) && !p.check(lexer.RIGHT_BRACKET) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.matchToken(lexer.COMMA) {
				break
			}
		}
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.matchToken(lexer.STRING, lexer.NUMBER):
		return &ast.Literal{Value: p.previous().Literal}, nil

	case p.matchToken(lexer.TRUE):
		return &ast.Literal{Value: true}, nil

	case p.matchToken(lexer.FALSE):
		return &ast.Literal{Value: false}, nil

	case p.matchToken(lexer.NIL):
		return &ast.Literal{Value: nil}, nil

	case p.matchToken(lexer.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}, nil

	case p.matchToken(lexer.SELF):
		return &ast.SelfExpr{Keyword: p.previous()}, nil

	case p.matchToken(lexer.SUPER):
		keyword := p.previous()
		if _, err := p.consume(lexer.DOT, "Expected '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(lexer.IDENTIFIER, "Expected a superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.SuperExpr{Keyword: keyword, Method: method}, nil

	case p.matchToken(lexer.LEFT_PAREN):
		prevIgnore := p.setIgnoreNewline(true)

		if p.matchToken(lexer.RIGHT_PAREN) {
			p.setIgnoreNewline(prevIgnore)
			return &ast.Tuple{}, nil
		}

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		if p.matchToken(lexer.COMMA) {
			rest, err := p.arguments()
			if err != nil {
				return nil, err
			}
			elements := append([]ast.Expr{expr}, rest...)
			p.setIgnoreNewline(prevIgnore)
			if _, err := p.consume(lexer.RIGHT_PAREN, fmt.Sprintf("Expected '%s' after tuple.", lexer.RIGHT_PAREN)); err != nil {
				return nil, err
			}
			return &ast.Tuple{Elements: elements}, nil
		}

		p.setIgnoreNewline(prevIgnore)
		if _, err := p.consume(lexer.RIGHT_PAREN, fmt.Sprintf("Expected '%s' after expression.", lexer.RIGHT_PAREN)); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil

	case p.matchToken(lexer.LEFT_BRACKET):
		prevIgnore := p.setIgnoreNewline(true)
		elements, err := p.arguments()
		p.setIgnoreNewline(prevIgnore)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_BRACKET, fmt.Sprintf("Expected '%s' after array.", lexer.RIGHT_BRACKET)); err != nil {
			return nil, err
		}
		return &ast.Array{Elements: elements}, nil

	case p.matchToken(lexer.LEFT_BRACE):
		brace := p.previous()
		prevIgnore := p.setIgnoreNewline(true)
		entries, err := p.keyValuePairs()
		p.setIgnoreNewline(prevIgnore)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_BRACE, fmt.Sprintf("Expected '%s' after dictionary.", lexer.RIGHT_BRACE)); err != nil {
			return nil, err
		}
		return &ast.Dictionary{Brace: brace, Entries: entries}, nil

	default:
		return nil, p.errorAt(p.peek(), "Unexpected token.")
	}
}
