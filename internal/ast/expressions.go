package ast

import (
	"strings"

	"github.com/dove-lang/dove/internal/lexer"
)

// Literal is a STRING, NUMBER, TRUE, FALSE, or NIL literal.
type Literal struct {
	Value any // string, float64, bool, or nil
}

func (e *Literal) exprNode() {}
func (e *Literal) String() string {
	if s, ok := e.Value.(string); ok {
		return `"` + s + `"`
	}
	if e.Value == nil {
		return "nil"
	}
	return ""
}

// Variable references a named binding.
type Variable struct {
	Name lexer.Token
}

func (e *Variable) exprNode()     {}
func (e *Variable) String() string { return e.Name.Lexeme }

// SelfExpr is the `self` keyword used inside a method body.
type SelfExpr struct {
	Keyword lexer.Token
}

func (e *SelfExpr) exprNode()     {}
func (e *SelfExpr) String() string { return "self" }

// SuperExpr is `super.method` used inside a subclass method body.
type SuperExpr struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (e *SuperExpr) exprNode()     {}
func (e *SuperExpr) String() string { return "super." + e.Method.Lexeme }

// Grouping is a parenthesized single expression.
type Grouping struct {
	Expression Expr
}

func (e *Grouping) exprNode()     {}
func (e *Grouping) String() string { return "(" + e.Expression.String() + ")" }

// Tuple is a parenthesized, comma-separated expression list (immutable).
type Tuple struct {
	Elements []Expr
}

func (e *Tuple) exprNode() {}
func (e *Tuple) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Array is a bracketed, comma-separated expression list (shared, mutable).
type Array struct {
	Elements []Expr
}

func (e *Array) exprNode() {}
func (e *Array) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictEntry is one `key: value` pair inside a Dictionary literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Dictionary is a brace-delimited `key: value, ...` literal.
type Dictionary struct {
	Brace   lexer.Token
	Entries []DictEntry
}

func (e *Dictionary) exprNode() {}
func (e *Dictionary) String() string {
	parts := make([]string, len(e.Entries))
	for i, en := range e.Entries {
		parts[i] = en.Key.String() + ": " + en.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Unary is a prefix `-`, `!`, or `not` expression.
type Unary struct {
	Operator lexer.Token
	Right    Expr
}

func (e *Unary) exprNode()     {}
func (e *Unary) String() string { return "(" + e.Operator.Lexeme + e.Right.String() + ")" }

// Binary is an infix operator expression (also used for `and`/`or`,
// `..`/`...`, and the `+` alias accepted at the logicAnd precedence level).
type Binary struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *Binary) exprNode() {}
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// Assign is a name assignment, possibly compound (`=`, `+=`, `-=`, `*=`,
// `/=`); `++`/`--` are lowered into AssignAdd/AssignSub with a literal 1.
type Assign struct {
	Name  lexer.Token
	Op    AssignOp
	Value Expr
}

func (e *Assign) exprNode()     {}
func (e *Assign) String() string { return e.Name.Lexeme + " = " + e.Value.String() }

// Get reads a property or field off an object (`obj.name`).
type Get struct {
	Object Expr
	Name   lexer.Token
}

func (e *Get) exprNode()     {}
func (e *Get) String() string { return e.Object.String() + "." + e.Name.Lexeme }

// Set writes a field on an object (`obj.name = value`).
type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (e *Set) exprNode() {}
func (e *Set) String() string {
	return e.Object.String() + "." + e.Name.Lexeme + " = " + e.Value.String()
}

// IndexGet reads `expr[index]`.
type IndexGet struct {
	Object  Expr
	Bracket lexer.Token
	Index   Expr
}

func (e *IndexGet) exprNode() {}
func (e *IndexGet) String() string {
	return e.Object.String() + "[" + e.Index.String() + "]"
}

// IndexSet writes `expr[index] = value`.
type IndexSet struct {
	Object  Expr
	Bracket lexer.Token
	Index   Expr
	Value   Expr
}

func (e *IndexSet) exprNode() {}
func (e *IndexSet) String() string {
	return e.Object.String() + "[" + e.Index.String() + "] = " + e.Value.String()
}

// Call invokes a callee with an argument list.
type Call struct {
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (e *Call) exprNode() {}
func (e *Call) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Lambda is an anonymous function literal: `lambda a, b -> body`, where body
// is a block or a single statement wrapped into one.
type Lambda struct {
	Keyword lexer.Token
	Params  []lexer.Token
	Body    *Block
}

func (e *Lambda) exprNode() {}
func (e *Lambda) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.Lexeme
	}
	return "lambda(" + strings.Join(parts, ", ") + ") -> " + e.Body.String()
}

// IfExpr is `if cond block [else (ifExpr|block)]`; it produces a value via
// the chosen branch's implicit return. Else holds either a *Block or a
// nested *IfExpr (or nil, meaning an empty default-else block).
type IfExpr struct {
	Keyword   lexer.Token
	Condition Expr
	Then      *Block
	Else      any
}

func (e *IfExpr) exprNode() {}
func (e *IfExpr) String() string {
	s := "if " + e.Condition.String() + " " + e.Then.String()
	switch branch := e.Else.(type) {
	case *Block:
		s += " else " + branch.String()
	case *IfExpr:
		s += " else " + branch.String()
	}
	return s
}
