package errors

import (
	"strings"
	"testing"
)

func TestCompilerErrorFormatIncludesSourceLine(t *testing.T) {
	src := "let x = 1\nlet y =\n"
	e := NewCompilerError(2, "Expected an expression.", src, "")
	out := e.Format(false)
	if !strings.Contains(out, "line 2") {
		t.Fatalf("expected output to mention line 2, got %q", out)
	}
	if !strings.Contains(out, "let y =") {
		t.Fatalf("expected output to include the offending source line, got %q", out)
	}
}

func TestFromStringErrorsParsesLinePrefix(t *testing.T) {
	errs := FromStringErrors([]string{"[line 3] Error at 'x': Expected ':'."}, "", "")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Line != 3 {
		t.Fatalf("expected line 3, got %d", errs[0].Line)
	}
	if errs[0].Message != "Error at 'x': Expected ':'." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(1, "first", "", ""),
		NewCompilerError(2, "second", "", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected a count of errors, got %q", out)
	}
}

func TestRuntimeErrorFormatsByLocationKind(t *testing.T) {
	tok := NewRuntimeError(TokenLocation(5, "+"), "Operands of '+' must be two numbers.")
	if !strings.Contains(tok.Error(), "line 5") || !strings.Contains(tok.Error(), "'+'") {
		t.Fatalf("unexpected token-location error text: %q", tok.Error())
	}

	line := NewRuntimeError(LineLocation(7), "Index out of range.")
	if !strings.Contains(line.Error(), "line 7") {
		t.Fatalf("unexpected line-location error text: %q", line.Error())
	}

	unspecified := NewRuntimeError(UnspecifiedLocation(), "Comparison not supported.")
	if strings.Contains(unspecified.Error(), "line") {
		t.Fatalf("unspecified location should not mention a line, got %q", unspecified.Error())
	}
}

func TestStackTraceTopAndDepth(t *testing.T) {
	st := NewStackTrace()
	st = append(st, NewStackFrame("fib", 3))
	st = append(st, NewStackFrame("helper", 7))

	if st.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", st.Depth())
	}
	if top := st.Top(); top == nil || top.FunctionName != "helper" {
		t.Fatalf("expected top frame to be 'helper', got %+v", top)
	}
	rendered := st.String()
	if !strings.HasPrefix(rendered, "helper [line: 7]") {
		t.Fatalf("expected newest-frame-first rendering, got %q", rendered)
	}
}
