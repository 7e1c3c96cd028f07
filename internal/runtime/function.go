package runtime

import (
	"github.com/dove-lang/dove/internal/ast"
	"github.com/dove-lang/dove/internal/lexer"
)

// selfKeyword and superKeyword name the synthetic bindings a bound method's
// closure carries; they are never valid identifiers a user can declare,
// since the lexer classifies `self`/`super` as keyword tokens.
const (
	selfKeyword  = "self"
	superKeyword = "super"
)

// Function is a Dove function or method: parameters, a block body, the
// environment it closed over, and whether it is a class's `init`.
type Function struct {
	Name          string
	Params        []lexer.Token
	Body          *ast.Block
	Closure       *Environment
	IsInitializer bool
}

// NewFunction creates a top-level or lambda Function closing over env.
func NewFunction(name string, params []lexer.Token, body *ast.Block, closure *Environment) *Function {
	return &Function{Name: name, Params: params, Body: body, Closure: closure}
}

// Arity reports the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Bind produces a copy of f whose closure additionally defines `self` as
// instance, for dispatch through instance.method().
func (f *Function) Bind(instance *Instance) Callable {
	env := NewEnvironment(f.Closure)
	env.Define(selfKeyword, instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}
