package parser

import (
	"strings"
	"testing"

	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
)

func parseSource(t *testing.T, src string) *Parser {
	t.Helper()
	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		t.Fatalf("lexer errors: %v", errs)
	}
	return New(tokens, false)
}

func assertNoParseErrors(t *testing.T, p *Parser) {
	t.Helper()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
}

func assertHasParseError(t *testing.T, p *Parser, substr string) {
	t.Helper()
	for _, e := range p.Errors() {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("expected a parse error containing %q, got: %v", substr, p.Errors())
}

func TestParseArithmeticPrecedence(t *testing.T) {
	p := parseSource(t, "1 + 2 * 3\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	// Multiplication must bind tighter, so the outer node is the '+'.
	exprStmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", program.Statements[0])
	}
	bin, ok := exprStmt.Expression.(*ast.Binary)
	if !ok {
		t.Fatalf("expected a binary expression, got %T", exprStmt.Expression)
	}
	if bin.Operator.Lexeme != "+" {
		t.Fatalf("expected top-level operator '+', got %q", bin.Operator.Lexeme)
	}
}

func TestParseDictionaryLiteralInExpressionPosition(t *testing.T) {
	p := parseSource(t, `let d = {"a": 1, "b": 2}`+"\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	decl, ok := program.Statements[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected a var declaration, got %T", program.Statements[0])
	}
	if _, ok := decl.Initializer.(*ast.Dictionary); !ok {
		t.Fatalf("expected a dictionary literal initializer, got %T", decl.Initializer)
	}
}

func TestParseBlockStatementAtStatementLevel(t *testing.T) {
	// At statement level a '{' is first tried as a dictionary literal; these
	// contents are not `key: value` pairs, so it falls back to a block.
	p := parseSource(t, "{\n  1\n  2\n}\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	if _, ok := program.Statements[0].(*ast.Block); !ok {
		t.Fatalf("expected a block statement, got %T", program.Statements[0])
	}
}

func TestParseEmptyBracesAtStatementLevelIsDictionary(t *testing.T) {
	// "{}" can't be an empty block body in any useful sense here; the
	// statement-level disambiguation treats it as an empty dictionary.
	p := parseSource(t, "{}\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	exprStmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", program.Statements[0])
	}
	if _, ok := exprStmt.Expression.(*ast.Dictionary); !ok {
		t.Fatalf("expected a dictionary literal, got %T", exprStmt.Expression)
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	p := parseSource(t, `
class Animal {
  fun speak() {
    "..."
  }
}
class Dog from Animal {
  fun speak() {
    super.speak()
  }
}
`)
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	dog, ok := program.Statements[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected a class declaration, got %T", program.Statements[1])
	}
	if dog.Superclass == nil || dog.Superclass.Name.Lexeme != "Animal" {
		t.Fatalf("expected superclass Animal, got %+v", dog.Superclass)
	}
	if len(dog.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(dog.Methods))
	}
}

func TestParseForLoopOverRange(t *testing.T) {
	p := parseSource(t, "for i in 1...3 {\n  i\n}\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	if _, ok := program.Statements[0].(*ast.ForStmt); !ok {
		t.Fatalf("expected a for statement, got %T", program.Statements[0])
	}
}

func TestParseMissingClosingBraceInReplModeIsUnfinished(t *testing.T) {
	lx := lexer.New("fun f() {\n  1\n")
	tokens := lx.ScanTokens()
	p := New(tokens, true)
	p.ParseProgram()

	if !p.IsUnfinishedBlock() {
		t.Fatal("expected an open block to be reported as unfinished in REPL mode")
	}
	if len(p.Errors()) > 0 {
		t.Fatalf("expected no recorded errors while unfinished, got: %v", p.Errors())
	}
}

func TestParseMissingClosingBraceOutsideReplIsError(t *testing.T) {
	p := parseSource(t, "fun f() {\n  1\n")
	p.ParseProgram()
	assertHasParseError(t, p, "RIGHT_BRACE")
}

func TestParseArrayLiteralWithEmbeddedNewlineAfterComma(t *testing.T) {
	// Inside '[', NEWLINE must keep being skipped after every token, not
	// just once at entry, or the token right after a trailing comma's
	// newline is unreachable.
	p := parseSource(t, "[1,\n 2,\n 3]\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	exprStmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", program.Statements[0])
	}
	arr, ok := exprStmt.Expression.(*ast.Array)
	if !ok {
		t.Fatalf("expected an array literal, got %T", exprStmt.Expression)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestParseCallArgumentsWithEmbeddedNewlines(t *testing.T) {
	p := parseSource(t, "add(1,\n 2,\n 3)\n")
	program := p.ParseProgram()
	assertNoParseErrors(t, p)

	exprStmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", program.Statements[0])
	}
	call, ok := exprStmt.Expression.(*ast.Call)
	if !ok {
		t.Fatalf("expected a call expression, got %T", exprStmt.Expression)
	}
	if len(call.Arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Arguments))
	}
}

func TestParseUnexpectedTokenReportsError(t *testing.T) {
	p := parseSource(t, "let = 1\n")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for a missing identifier after 'let'")
	}
}
