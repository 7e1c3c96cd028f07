package parser

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
)

// statement dispatches on the next token, handling the dict-vs-block
// backtrack at '{' in statement position.
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.check(lexer.LEFT_BRACE):
		return p.dictOrBlockStmt()
	case p.matchToken(lexer.FOR):
		return p.forStmt()
	case p.matchToken(lexer.PRINT):
		return p.printStmt()
	case p.matchToken(lexer.RETURN):
		return p.returnStmt()
	case p.matchToken(lexer.WHILE):
		return p.whileStmt()
	case p.matchToken(lexer.BREAK):
		return &ast.BreakStmt{Keyword: p.previous()}, nil
	case p.matchToken(lexer.CONTINUE):
		return &ast.ContinueStmt{Keyword: p.previous()}, nil
	default:
		return p.exprStmt()
	}
}

// dictOrBlockStmt resolves the block-vs-dictionary ambiguity at '{' in
// statement position: it first attempts a dictionary-literal parse,
// restoring parser state and falling back to a block if that fails.
func (p *Parser) dictOrBlockStmt() (ast.Stmt, error) {
	savedCurrent := p.current
	savedNestedLevel := p.nestedLevel
	savedErrorsLen := len(p.errors)

	if dict, err := p.tryDictionary(); err == nil {
		return &ast.ExpressionStmt{Expression: dict}, nil
	}

	p.current = savedCurrent
	p.nestedLevel = savedNestedLevel
	if len(p.errors) > savedErrorsLen {
		p.errors = p.errors[:savedErrorsLen]
	}

	block, err := p.block()
	if err != nil {
		return nil, err
	}
	return block, nil
}

// tryDictionary attempts to parse a dictionary literal starting at '{',
// requiring the closing '}' to make it a dictionary rather than a block.
func (p *Parser) tryDictionary() (ast.Expr, error) {
	brace, err := p.consume(lexer.LEFT_BRACE, fmt.Sprintf("Expected '%s'.", lexer.LEFT_BRACE))
	if err != nil {
		return nil, err
	}
	prevIgnore := p.setIgnoreNewline(true)
	entries, err := p.keyValuePairs()
	if err != nil {
		p.setIgnoreNewline(prevIgnore)
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_BRACE, fmt.Sprintf("Expected '%s' after dictionary.", lexer.RIGHT_BRACE)); err != nil {
		p.setIgnoreNewline(prevIgnore)
		return nil, err
	}
	p.setIgnoreNewline(prevIgnore)
	return &ast.Dictionary{Brace: brace, Entries: entries}, nil
}

func (p *Parser) keyValuePairs() ([]ast.DictEntry, error) {
	var entries []ast.DictEntry
	if p.check(lexer.RIGHT_BRACE) {
		return entries, nil
	}
	for {
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "Expected ':' after dictionary key."); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		if !p.matchToken(lexer.COMMA) {
			break
		}
	}
	return entries, nil
}

// block parses `'{' { declaration NEWLINE } '}'`.
func (p *Parser) block() (*ast.Block, error) {
	p.skipNewlines()
	if _, err := p.consume(lexer.LEFT_BRACE, fmt.Sprintf("Expected '%s' to begin block.", lexer.LEFT_BRACE)); err != nil {
		return nil, err
	}
	prevIgnore := p.setIgnoreNewline(false)

	var statements []ast.Stmt
	p.skipNewlines()
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmt := p.declaration()
		if p.isInUnfinishedBlock {
			p.setIgnoreNewline(prevIgnore)
			return nil, fmt.Errorf("unfinished block")
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
		p.consumeNewlineOrEOF()
		p.skipNewlines()
	}

	if _, err := p.consume(lexer.RIGHT_BRACE, fmt.Sprintf("Expected '%s' after block.", lexer.RIGHT_BRACE)); err != nil {
		p.setIgnoreNewline(prevIgnore)
		return nil, err
	}
	p.setIgnoreNewline(prevIgnore)
	return &ast.Block{Statements: statements}, nil
}

func (p *Parser) forStmt() (ast.Stmt, error) {
	keyword := p.previous()
	name, err := p.consume(lexer.IDENTIFIER, "Expected a loop variable name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN, "Expected 'in' after loop variable."); err != nil {
		return nil, err
	}
	iterable, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Keyword: keyword, Name: name, Iterable: iterable, Body: body}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}, nil
}

func (p *Parser) printStmt() (ast.Stmt, error) {
	keyword := p.previous()
	if p.check(lexer.NEWLINE) || p.check(lexer.RIGHT_BRACE) || p.isAtEnd() {
		return &ast.PrintStmt{Keyword: keyword}, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Keyword: keyword, Expression: value}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	keyword := p.previous()
	if p.check(lexer.NEWLINE) || p.check(lexer.RIGHT_BRACE) || p.isAtEnd() {
		return &ast.ReturnStmt{Keyword: keyword}, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}
