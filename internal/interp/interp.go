// Package interp is Dove's tree-walking evaluator: it executes a resolved
// Program directly against the AST, using internal/runtime's Value,
// Environment, Function, and Class types.
package interp

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	doveErrors "github.com/dove-lang/dove/internal/errors"
	"github.com/dove-lang/dove/internal/runtime"
)

// OutputSink is the only channel the interpreter writes through: `print`
// output, and error/warning diagnostics. Embedders provide their own sink
// (stdout, a REPL buffer, a wasm bridge) instead of the interpreter writing
// to stdout/stderr directly.
type OutputSink interface {
	Print(message string)
	Warning(message string)
	Error(message string)
}

// LocalResolver answers the resolver's (line, name) -> scope-depth question
// for a variable reference. *resolver.Resolver implements this; the
// interpreter only depends on the narrow interface so it never needs to
// import the resolver package's internals.
type LocalResolver interface {
	DepthFor(line int, name string) (int, bool)
}

type noopResolver struct{}

func (noopResolver) DepthFor(line int, name string) (int, bool) { return 0, false }

// Interpreter walks a Program's statements, evaluating expressions against
// a chain of runtime.Environment scopes.
type Interpreter struct {
	globals     *runtime.Environment
	environment *runtime.Environment
	resolver    LocalResolver
	output      OutputSink
	callStack   doveErrors.StackTrace
}

// New creates an Interpreter writing to output, with the builtin globals
// (type_of, assert, json_encode, json_decode) already defined.
func New(output OutputSink) *Interpreter {
	globals := runtime.NewEnvironment(nil)
	i := &Interpreter{globals: globals, environment: globals, output: output, resolver: noopResolver{}}
	i.defineBuiltins()
	return i
}

// SetResolver attaches the resolver whose depth table this interpreter's
// variable lookups consult.
func (i *Interpreter) SetResolver(r LocalResolver) {
	i.resolver = r
}

// Globals exposes the top-level scope, for embedding hosts that want to
// define additional native functions before running a program.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// CallStack returns a snapshot of the function calls currently executing,
// oldest first — for embedders or tests inspecting call depth.
func (i *Interpreter) CallStack() doveErrors.StackTrace {
	trace := make(doveErrors.StackTrace, len(i.callStack))
	copy(trace, i.callStack)
	return trace
}

// Interpret executes every top-level statement, reporting (but not
// aborting on) runtime errors through the output sink — matching the
// reference interpreter's per-statement error recovery at the top level.
func (i *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			if rtErr, ok := asRuntimeError(err); ok {
				i.output.Error(rtErr.Error())
			} else {
				i.output.Error(fmt.Sprintf("Unexpected interrupt: %v", err))
			}
		}
	}
}

func (i *Interpreter) evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.visitExpr(expr)
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	return i.visitStmt(stmt)
}

// executeBlock runs statements in a fresh child scope, restoring the prior
// environment on the way out (including on error, so an interrupt
// propagating out of a block never leaves the interpreter in the block's
// scope).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeImplicitReturn runs statements in a fresh child scope and returns
// the value of the final statement if it is a bare expression statement —
// the mechanism behind `if`, function bodies, and lambda bodies all
// producing a value without an explicit `return`.
func (i *Interpreter) executeImplicitReturn(stmts []ast.Stmt, env *runtime.Environment) (runtime.Value, error) {
	if len(stmts) == 0 {
		return nil, nil
	}
	last, isExpr := stmts[len(stmts)-1].(*ast.ExpressionStmt)
	if !isExpr {
		if err := i.executeBlock(stmts, env); err != nil {
			return nil, err
		}
		return nil, nil
	}

	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts[:len(stmts)-1] {
		if err := i.execute(stmt); err != nil {
			return nil, err
		}
	}
	return i.evaluate(last.Expression)
}
