package interp

import (
	doveErrors "github.com/dove-lang/dove/internal/errors"
	"github.com/dove-lang/dove/internal/lexer"
)

func runtimeErrorAtToken(tok lexer.Token, message string) *doveErrors.RuntimeError {
	return doveErrors.NewRuntimeError(doveErrors.TokenLocation(tok.Line, tok.Lexeme), message)
}

func runtimeErrorAtLine(line int, message string) *doveErrors.RuntimeError {
	return doveErrors.NewRuntimeError(doveErrors.LineLocation(line), message)
}

func runtimeErrorUnspecified(message string) *doveErrors.RuntimeError {
	return doveErrors.NewRuntimeError(doveErrors.UnspecifiedLocation(), message)
}
