package interp

import (
	"fmt"

	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/runtime"
)

// lookupVariable resolves tok against the statically-computed scope depth
// when one exists, falling back to a direct globals lookup otherwise —
// mirroring the reference interpreter's lookup_variable/get_local split.
func (i *Interpreter) lookupVariable(tok lexer.Token) (runtime.Value, error) {
	if distance, ok := i.resolver.DepthFor(tok.Line, tok.Lexeme); ok {
		if v, ok := i.environment.GetAt(distance, tok.Lexeme); ok {
			return v, nil
		}
	}
	if v, ok := i.globals.Get(tok.Lexeme); ok {
		return v, nil
	}
	return nil, errorInterrupt(runtimeErrorAtToken(tok, fmt.Sprintf("Variable '%s' not found in scope.", tok.Lexeme)))
}

// assignVariable writes value to the scope tok resolves to, or globally if
// it was never resolved to a local.
func (i *Interpreter) assignVariable(tok lexer.Token, value runtime.Value) error {
	var assigned bool
	if distance, ok := i.resolver.DepthFor(tok.Line, tok.Lexeme); ok {
		assigned = i.environment.AssignAt(distance, tok.Lexeme, value)
	} else {
		assigned = i.globals.Assign(tok.Lexeme, value)
	}
	if !assigned {
		return errorInterrupt(runtimeErrorAtToken(tok, fmt.Sprintf("Cannot assign value to '%s', as it is not found in scope.", tok.Lexeme)))
	}
	return nil
}
