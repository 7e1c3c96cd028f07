package resolver

import (
	"strings"
	"testing"

	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/parser"
)

func resolveSource(t *testing.T, src string) *Resolver {
	t.Helper()
	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		t.Fatalf("lexer errors: %v", errs)
	}
	p := parser.New(tokens, false)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	r := New()
	r.Resolve(program)
	return r
}

func assertNoErrors(t *testing.T, r *Resolver) {
	t.Helper()
	if len(r.Errors()) > 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
}

func assertHasError(t *testing.T, r *Resolver, substr string) {
	t.Helper()
	for _, e := range r.Errors() {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got: %v", substr, r.Errors())
}

func TestResolverGlobalNotRecorded(t *testing.T) {
	r := resolveSource(t, "let x = 1\nprint x\n")
	assertNoErrors(t, r)
	if _, ok := r.DepthFor(2, "x"); ok {
		t.Fatalf("expected top-level reference to remain unresolved (global)")
	}
}

func TestResolverLocalDepth(t *testing.T) {
	r := resolveSource(t, "fun f() {\n  let x = 1\n  {\n    print x\n  }\n}\n")
	assertNoErrors(t, r)
	depth, ok := r.DepthFor(4, "x")
	if !ok {
		t.Fatalf("expected x reference to resolve to a local depth")
	}
	if depth != 1 {
		t.Fatalf("expected depth 1 (one nested block in), got %d", depth)
	}
}

func TestResolverReturnOutsideFunction(t *testing.T) {
	r := resolveSource(t, "return 1\n")
	assertHasError(t, r, "Cannot return from top-level code.")
}

func TestResolverReturnValueFromInit(t *testing.T) {
	r := resolveSource(t, "class Foo {\n  fun init() {\n    return 1\n  }\n}\n")
	assertHasError(t, r, "Cannot return a value from an initializer.")
}

func TestResolverBreakOutsideLoop(t *testing.T) {
	r := resolveSource(t, "break\n")
	assertHasError(t, r, "Cannot use 'break' outside a loop.")
}

func TestResolverContinueOutsideLoop(t *testing.T) {
	r := resolveSource(t, "continue\n")
	assertHasError(t, r, "Cannot use 'continue' outside a loop.")
}

func TestResolverBreakInsideLoopOk(t *testing.T) {
	r := resolveSource(t, "while true {\n  break\n}\n")
	assertNoErrors(t, r)
}

func TestResolverBreakCrossesFunctionBoundary(t *testing.T) {
	// Loop body contains a function whose own body has a break: invalid,
	// since break/continue don't cross function boundaries.
	r := resolveSource(t, "while true {\n  fun f() {\n    break\n  }\n}\n")
	assertHasError(t, r, "Cannot use 'break' outside a loop.")
}

func TestResolverSelfOutsideClass(t *testing.T) {
	r := resolveSource(t, "fun f() {\n  print self\n}\n")
	assertHasError(t, r, "Cannot use 'self' outside a class.")
}

func TestResolverSelfInsideMethodOk(t *testing.T) {
	r := resolveSource(t, "class Foo {\n  fun bar() {\n    print self\n  }\n}\n")
	assertNoErrors(t, r)
}

func TestResolverSuperWithNoSuperclass(t *testing.T) {
	r := resolveSource(t, "class Foo {\n  fun bar() {\n    print super.bar()\n  }\n}\n")
	assertHasError(t, r, "Cannot use 'super' in a class with no superclass.")
}

func TestResolverSuperOutsideClass(t *testing.T) {
	r := resolveSource(t, "fun f() {\n  print super.bar()\n}\n")
	assertHasError(t, r, "Cannot use 'super' outside a class.")
}

func TestResolverSuperWithSuperclassOk(t *testing.T) {
	r := resolveSource(t, "class Base {\n  fun bar() {\n    print 1\n  }\n}\nclass Foo from Base {\n  fun bar() {\n    print super.bar()\n  }\n}\n")
	assertNoErrors(t, r)
}

func TestResolverClassCannotInheritFromItself(t *testing.T) {
	r := resolveSource(t, "class Foo from Foo {\n}\n")
	assertHasError(t, r, "A class cannot inherit from itself.")
}

func TestResolverReadBeforeDefine(t *testing.T) {
	r := resolveSource(t, "let x = 1\n{\n  let x = x\n}\n")
	assertHasError(t, r, "Cannot read variable 'x' in its own initializer.")
}

func TestResolverRedeclarationInSameScope(t *testing.T) {
	r := resolveSource(t, "{\n  let x = 1\n  let x = 2\n}\n")
	assertHasError(t, r, "already declared in this scope")
}

func TestResolverShadowingAcrossScopesOk(t *testing.T) {
	r := resolveSource(t, "let x = 1\n{\n  let x = 2\n  print x\n}\n")
	assertNoErrors(t, r)
}

func TestResolverLambdaParamsScoped(t *testing.T) {
	r := resolveSource(t, "let add = lambda x, y -> x + y\n")
	assertNoErrors(t, r)
}

func TestResolverForLoopVariableScoped(t *testing.T) {
	r := resolveSource(t, "for i in 1...3 {\n  print i\n}\n")
	assertNoErrors(t, r)
	depth, ok := r.DepthFor(2, "i")
	if !ok || depth != 0 {
		t.Fatalf("expected loop variable i to resolve at depth 0, got depth=%d ok=%v", depth, ok)
	}
}
