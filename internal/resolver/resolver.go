// Package resolver performs the static pre-pass between parsing and
// interpretation: it assigns each variable reference a lexical scope
// depth and rejects a handful of structurally invalid programs.
package resolver

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
)

type functionKind int

const (
	functionKindNone functionKind = iota
	functionKindFunction
	functionKindMethod
	functionKindInitializer
)

type classKind int

const (
	classKindNone classKind = iota
	classKindClass
	classKindSubclass
)

// locationKey identifies a variable-reference site the way spec.md's
// resolution table does: by source line and identifier lexeme.
type locationKey struct {
	line int
	name string
}

// Resolver walks a parsed Program once, producing a depth map consulted by
// the interpreter for every non-global variable access.
type Resolver struct {
	scopes []map[string]bool
	depths map[locationKey]int

	currentFunction functionKind
	currentClass    classKind
	inLoop          bool

	errors []string
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{depths: make(map[locationKey]int)}
}

// Errors returns the accumulated static-validity errors.
func (r *Resolver) Errors() []string {
	return r.errors
}

// Depths returns the (line, name) -> depth table computed by Resolve.
func (r *Resolver) Depths() map[locationKey]int {
	return r.depths
}

// DepthFor looks up the resolved depth for a reference at (line, name).
// The second result is false if the reference was never resolved to a
// local scope (i.e. it is a global).
func (r *Resolver) DepthFor(line int, name string) (int, bool) {
	d, ok := r.depths[locationKey{line: line, name: name}]
	return d, ok
}

// Resolve walks every top-level statement.
func (r *Resolver) Resolve(program *ast.Program) {
	for _, stmt := range program.Statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) reportError(line int, format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf("[line %d] Error: %s", line, fmt.Sprintf(format, args...)))
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name]; exists {
		r.reportError(0, "Variable '%s' is already declared in this scope.", name)
	}
	scope[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal scans scopes innermost-out, recording (line, name) -> depth
// the first time it finds name declared. No entry is recorded (and the
// interpreter treats it as global) if no scope declares it.
func (r *Resolver) resolveLocal(line int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[locationKey{line: line, name: name}] = len(r.scopes) - 1 - i
			return
		}
	}
}

// --- statements ---

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name.Lexeme)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, functionKindFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.PrintStmt:
		if s.Expression != nil {
			r.resolveExpr(s.Expression)
		}

	case *ast.ReturnStmt:
		if r.currentFunction == functionKindNone {
			r.reportError(s.Keyword.Line, "Cannot return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionKindInitializer {
				r.reportError(s.Keyword.Line, "Cannot return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.BreakStmt:
		if !r.inLoop {
			r.reportError(s.Keyword.Line, "Cannot use 'break' outside a loop.")
		}

	case *ast.ContinueStmt:
		if !r.inLoop {
			r.reportError(s.Keyword.Line, "Cannot use 'continue' outside a loop.")
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		prevLoop := r.inLoop
		r.inLoop = true
		r.resolveStmt(s.Body)
		r.inLoop = prevLoop

	case *ast.ForStmt:
		r.resolveExpr(s.Iterable)
		prevLoop := r.inLoop
		r.inLoop = true
		r.beginScope()
		r.declare(s.Name.Lexeme)
		r.define(s.Name.Lexeme)
		r.resolveStmts(s.Body.Statements)
		r.endScope()
		r.inLoop = prevLoop
	}
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	prevFunction := r.currentFunction
	prevLoop := r.inLoop
	r.currentFunction = kind
	r.inLoop = false // break/continue in a function is invalid even inside an enclosing loop

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body.Statements)
	r.endScope()

	r.currentFunction = prevFunction
	r.inLoop = prevLoop
}

func (r *Resolver) resolveClass(cls *ast.ClassStmt) {
	prevClass := r.currentClass
	r.currentClass = classKindClass

	r.declare(cls.Name.Lexeme)
	r.define(cls.Name.Lexeme)

	pushedSuper := false
	if cls.Superclass != nil {
		if cls.Superclass.Name.Lexeme == cls.Name.Lexeme {
			r.reportError(cls.Superclass.Name.Line, "A class cannot inherit from itself.")
		} else {
			r.resolveExpr(cls.Superclass)
			r.currentClass = classKindSubclass
			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
			pushedSuper = true
		}
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["self"] = true

	for _, method := range cls.Methods {
		kind := functionKindMethod
		if method.Name.Lexeme == "init" {
			kind = functionKindInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if pushedSuper {
		r.endScope()
	}

	r.currentClass = prevClass
}

// --- expressions ---

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no-op

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reportError(e.Name.Line, "Cannot read variable '%s' in its own initializer.", e.Name.Lexeme)
			}
		}
		r.resolveLocal(e.Name.Line, e.Name.Lexeme)

	case *ast.SelfExpr:
		if r.currentClass == classKindNone {
			r.reportError(e.Keyword.Line, "Cannot use 'self' outside a class.")
			return
		}
		r.resolveLocal(e.Keyword.Line, "self")

	case *ast.SuperExpr:
		if r.currentClass == classKindNone {
			r.reportError(e.Keyword.Line, "Cannot use 'super' outside a class.")
		} else if r.currentClass != classKindSubclass {
			r.reportError(e.Keyword.Line, "Cannot use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e.Keyword.Line, "super")

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Tuple:
		for _, el := range e.Elements {
			r.resolveExpr(el)
		}

	case *ast.Array:
		for _, el := range e.Elements {
			r.resolveExpr(el)
		}

	case *ast.Dictionary:
		for _, entry := range e.Entries {
			r.resolveExpr(entry.Key)
			r.resolveExpr(entry.Value)
		}

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.Name.Line, e.Name.Lexeme)

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.IndexGet:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)

	case *ast.IndexSet:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)
		r.resolveExpr(e.Value)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Lambda:
		prevFunction := r.currentFunction
		prevLoop := r.inLoop
		r.currentFunction = functionKindFunction
		r.inLoop = false

		r.beginScope()
		for _, param := range e.Params {
			r.declare(param.Lexeme)
			r.define(param.Lexeme)
		}
		r.resolveStmts(e.Body.Statements)
		r.endScope()

		r.currentFunction = prevFunction
		r.inLoop = prevLoop

	case *ast.IfExpr:
		r.resolveExpr(e.Condition)
		r.resolveStmt(e.Then)
		switch branch := e.Else.(type) {
		case *ast.Block:
			r.resolveStmt(branch)
		case *ast.IfExpr:
			r.resolveExpr(branch)
		}
	}
}
