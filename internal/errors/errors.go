// Package errors formats Dove's two error families for display: compile-time
// CompilerErrors (lexer/importer/parser/resolver) and runtime RuntimeErrors,
// both keyed by source line since Dove's Token carries no column.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError is a single lexing/parsing/resolving error with source
// context for display.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
}

// NewCompilerError creates a CompilerError.
func NewCompilerError(line int, message, source, file string) *CompilerError {
	return &CompilerError{Line: line, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a one-line source excerpt. If color is true,
// ANSI codes highlight the message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d\n", e.File, e.Line))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d\n", e.Line))
	}

	if sourceLine := e.getSourceLine(e.Line); sourceLine != "" {
		sb.WriteString(fmt.Sprintf("%4d | %s\n", e.Line, sourceLine))
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats a batch of CompilerErrors for a single report.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromStringErrors converts "[line N] Error ...: message"-shaped strings
// (the shape the parser and resolver accumulate) into CompilerErrors.
func FromStringErrors(stringErrors []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(stringErrors))
	for _, s := range stringErrors {
		line, message := parseErrorString(s)
		out = append(out, NewCompilerError(line, message, source, file))
	}
	return out
}

// parseErrorString extracts a leading "[line N]" prefix, if present.
func parseErrorString(errStr string) (int, string) {
	if !strings.HasPrefix(errStr, "[line ") {
		return 0, errStr
	}
	closeIdx := strings.Index(errStr, "]")
	if closeIdx < 0 {
		return 0, errStr
	}
	var line int
	if _, err := fmt.Sscanf(errStr[:closeIdx+1], "[line %d]", &line); err != nil {
		return 0, errStr
	}
	message := strings.TrimSpace(errStr[closeIdx+1:])
	return line, message
}

// ErrorLocationKind distinguishes how a RuntimeError pins its source line.
type ErrorLocationKind int

const (
	// LocationUnspecified carries no source line.
	LocationUnspecified ErrorLocationKind = iota
	// LocationLine carries a bare line number.
	LocationLine
	// LocationToken carries the offending token's lexeme and line.
	LocationToken
)

// ErrorLocation is the Token|Line|Unspecified sum type runtime errors use to
// describe where they occurred.
type ErrorLocation struct {
	Kind   ErrorLocationKind
	Line   int
	Lexeme string
}

// UnspecifiedLocation builds a location carrying no source position.
func UnspecifiedLocation() ErrorLocation {
	return ErrorLocation{Kind: LocationUnspecified}
}

// LineLocation builds a location pinned to a bare line number.
func LineLocation(line int) ErrorLocation {
	return ErrorLocation{Kind: LocationLine, Line: line}
}

// TokenLocation builds a location pinned to a specific token.
func TokenLocation(line int, lexeme string) ErrorLocation {
	return ErrorLocation{Kind: LocationToken, Line: line, Lexeme: lexeme}
}

// RuntimeError is a failure raised while interpreting a resolved program.
type RuntimeError struct {
	Location ErrorLocation
	Message  string
}

// NewRuntimeError creates a RuntimeError.
func NewRuntimeError(location ErrorLocation, message string) *RuntimeError {
	return &RuntimeError{Location: location, Message: message}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch e.Location.Kind {
	case LocationToken:
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.Location.Line, e.Location.Lexeme, e.Message)
	case LocationLine:
		return fmt.Sprintf("[line %d] Error: %s", e.Location.Line, e.Message)
	default:
		return fmt.Sprintf("Error: %s", e.Message)
	}
}
