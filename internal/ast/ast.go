// Package ast defines the syntax tree Dove's parser builds and the
// resolver and interpreter walk.
package ast

// Node is the common interface of every syntax tree node.
type Node interface {
	String() string
}

// Expr is a syntax tree node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a syntax tree node that is executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed Dove source file: a flat statement list.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// AssignOp identifies which compound-assignment operator produced an
// Assign expression, so the interpreter knows how to combine the current
// value with the right-hand side.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)
