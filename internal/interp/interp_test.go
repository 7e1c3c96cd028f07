package interp

import (
	"strings"
	"testing"

	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/parser"
	"github.com/dove-lang/dove/internal/resolver"
)

// captureOutput is an OutputSink that records every line written to it, for
// assertions against a program's observable behavior.
type captureOutput struct {
	printed  []string
	warnings []string
	errors   []string
}

func (c *captureOutput) Print(message string)   { c.printed = append(c.printed, message) }
func (c *captureOutput) Warning(message string) { c.warnings = append(c.warnings, message) }
func (c *captureOutput) Error(message string)   { c.errors = append(c.errors, message) }

func runProgram(t *testing.T, src string) *captureOutput {
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
	r := resolver.New()
	r.Resolve(program)
	if errs := r.Errors(); len(errs) > 0 {
		t.Fatalf("resolver errors: %v", errs)
	}

	out := &captureOutput{}
	i := New(out)
	i.SetResolver(r)
	i.Interpret(program.Statements)
	return out
}

func assertPrinted(t *testing.T, out *captureOutput, want ...string) {
	t.Helper()
	if len(out.errors) > 0 {
		t.Fatalf("unexpected runtime errors: %v", out.errors)
	}
	if len(out.printed) != len(want) {
		t.Fatalf("expected %d printed line(s), got %d: %v", len(want), len(out.printed), out.printed)
	}
	for idx, w := range want {
		if out.printed[idx] != w {
			t.Fatalf("line %d: expected %q, got %q", idx, w, out.printed[idx])
		}
	}
}

func assertHasRuntimeError(t *testing.T, out *captureOutput, substr string) {
	t.Helper()
	for _, e := range out.errors {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("expected a runtime error containing %q, got: %v", substr, out.errors)
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out := runProgram(t, "print 1 + 2 * 3\n")
	assertPrinted(t, out, "7")
}

func TestInterpretVarAndWhileLoop(t *testing.T) {
	out := runProgram(t, "let i = 0\nwhile i < 3 {\n  print i\n  i += 1\n}\n")
	assertPrinted(t, out, "0", "1", "2")
}

func TestInterpretForOverRange(t *testing.T) {
	out := runProgram(t, "for i in 1...3 {\n  print i\n}\n")
	assertPrinted(t, out, "1", "2", "3")
}

func TestInterpretForOverArrayObservesMutation(t *testing.T) {
	// Per the index-based iteration rule, pushing onto the array being
	// iterated is observed rather than snapshotted.
	out := runProgram(t, `
let items = [1, 2]
for x in items {
  print x
  if x == 1 {
    items.push(9)
  }
}
`)
	assertPrinted(t, out, "1", "2", "9")
}

func TestInterpretBreakAndContinue(t *testing.T) {
	out := runProgram(t, `
for i in 1...5 {
  if i == 2 {
    continue
  }
  if i == 4 {
    break
  }
  print i
}
`)
	assertPrinted(t, out, "1", "3")
}

func TestInterpretFunctionCallAndReturn(t *testing.T) {
	out := runProgram(t, "fun add(a, b) {\n  return a + b\n}\nprint add(2, 3)\n")
	assertPrinted(t, out, "5")
}

func TestInterpretClosureCapturesEnvironment(t *testing.T) {
	out := runProgram(t, `
fun makeCounter() {
  let count = 0
  fun increment() {
    count += 1
    return count
  }
  return increment
}
let counter = makeCounter()
print counter()
print counter()
`)
	assertPrinted(t, out, "1", "2")
}

func TestInterpretClassInitAndMethod(t *testing.T) {
	out := runProgram(t, `
class Greeter {
  fun init(name) {
    self.name = name
  }
  fun greet() {
    return "hi " + self.name
  }
}
let g = Greeter("Ada")
print g.greet()
`)
	assertPrinted(t, out, `"hi Ada"`)
}

func TestInterpretSuperCallsOverriddenMethod(t *testing.T) {
	out := runProgram(t, `
class Animal {
  fun speak() {
    return "..."
  }
}
class Dog from Animal {
  fun speak() {
    return super.speak() + " woof"
  }
}
print Dog().speak()
`)
	assertPrinted(t, out, `"... woof"`)
}

func TestInterpretArrayIndexOutOfRange(t *testing.T) {
	out := runProgram(t, "let a = [1, 2]\nprint a[5]\n")
	assertHasRuntimeError(t, out, "Array index out of range.")
}

func TestInterpretDictionaryGetAndRemove(t *testing.T) {
	out := runProgram(t, `
let d = {"a": 1, "b": 2}
print d["a"]
d.remove("a")
print d.len()
`)
	assertPrinted(t, out, "1", "1")
}

func TestInterpretStringRepetitionTruncatesNegative(t *testing.T) {
	out := runProgram(t, `print "x" * -2`)
	assertPrinted(t, out, `""`)
}

func TestInterpretTypeOfAndAssert(t *testing.T) {
	out := runProgram(t, `
print type_of(1)
print type_of("s")
assert(1 + 1 == 2)
`)
	assertPrinted(t, out, `"number"`, `"string"`)
}

func TestInterpretAssertFailureReportsRuntimeError(t *testing.T) {
	out := runProgram(t, `assert(1 == 2)`)
	assertHasRuntimeError(t, out, "Assertion failed.")
}

func TestInterpretUnboundedRecursionReportsStackOverflow(t *testing.T) {
	out := runProgram(t, `
fun recurse(n) {
  return recurse(n + 1)
}
recurse(0)
`)
	assertHasRuntimeError(t, out, "Stack overflow: maximum recursion depth")
}

func TestInterpretJSONEncodeDecodeRoundTrip(t *testing.T) {
	out := runProgram(t, `
let encoded = json_encode([1, "two", true])
print encoded
let decoded = json_decode(encoded)
print decoded[1]
`)
	assertPrinted(t, out, `"[1,"two",true]"`, `"two"`)
}
