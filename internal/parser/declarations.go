package parser

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
)

// declaration dispatches to class/fun/let declarations, falling back to an
// ordinary statement, and recovers via synchronize on error.
func (p *Parser) declaration() ast.Stmt {
	p.statementNestedLevel = p.nestedLevel

	var stmt ast.Stmt
	var err error

	switch p.peek().Type {
	case lexer.CLASS:
		stmt, err = p.classDecl()
	case lexer.FUN:
		stmt, err = p.funDecl("function")
	case lexer.LET:
		stmt, err = p.varDecl()
	default:
		stmt, err = p.statement()
	}

	if err != nil {
		if p.isInUnfinishedBlock {
			return nil
		}
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) classDecl() (ast.Stmt, error) {
	if _, err := p.consume(lexer.CLASS, "Expected 'class'."); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.IDENTIFIER, "Expected a class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.matchToken(lexer.FROM) {
		superTok, err := p.consume(lexer.IDENTIFIER, "Expected a superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &ast.Variable{Name: superTok}
	}

	if _, err := p.consume(lexer.LEFT_BRACE, fmt.Sprintf("Expected '%s' before class body.", lexer.LEFT_BRACE)); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt
	p.skipNewlines()
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		method, err := p.funDecl("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(*ast.FunctionStmt))
		p.skipNewlines()
	}

	if _, err := p.consume(lexer.RIGHT_BRACE, fmt.Sprintf("Expected '%s' after class body.", lexer.RIGHT_BRACE)); err != nil {
		return nil, err
	}

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

func (p *Parser) funDecl(kind string) (ast.Stmt, error) {
	if _, err := p.consume(lexer.FUN, "Expected 'fun'."); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.IDENTIFIER, "Expected a "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LEFT_PAREN, "Expected '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	prevIgnore := p.setIgnoreNewline(true)
	params, err := p.parameters()
	p.setIgnoreNewline(prevIgnore)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, fmt.Sprintf("Expected '%s' after parameters.", lexer.RIGHT_PAREN)); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parameters() ([]lexer.Token, error) {
	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			name, err := p.consume(lexer.IDENTIFIER, "Expected a parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.matchToken(lexer.COMMA) {
				break
			}
		}
	}
	return params, nil
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	if _, err := p.consume(lexer.LET, "Expected 'let'."); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.IDENTIFIER, "Expected a variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.matchToken(lexer.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}
