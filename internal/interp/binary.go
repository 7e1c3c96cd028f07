package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/runtime"
)

// checkNumberOperands requires both operands to be Numbers, for the
// operators that only make sense on numbers.
func (i *Interpreter) checkNumberOperands(op lexer.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, errorInterrupt(runtimeErrorAtToken(op, fmt.Sprintf("Operands of '%s' must be two numbers.", op.Lexeme)))
	}
	return l, r, nil
}

// checkIntegerOperands additionally requires both Numbers to have no
// fractional part, for the range operators.
func (i *Interpreter) checkIntegerOperands(op lexer.Token, left, right runtime.Value) (int, int, error) {
	l, r, err := i.checkNumberOperands(op, left, right)
	if err != nil {
		return 0, 0, err
	}
	if l != math.Trunc(l) || r != math.Trunc(r) {
		return 0, 0, errorInterrupt(runtimeErrorAtToken(op, fmt.Sprintf("Operands of '%s' must be two integers.", op.Lexeme)))
	}
	return int(l), int(r), nil
}

// evalBinary applies a fully-evaluated binary operator. It backs both
// ordinary Binary expressions and the compound-assignment `+=`/`-=`/etc.
// operators, which synthesize the matching operator token.
func (i *Interpreter) evalBinary(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Type {
	case lexer.AND:
		return runtime.IsTruthy(left) && runtime.IsTruthy(right), nil
	case lexer.OR:
		return runtime.IsTruthy(left) || runtime.IsTruthy(right), nil

	case lexer.GREATER:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case lexer.GREATER_EQUAL:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case lexer.LESS:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case lexer.LESS_EQUAL:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil

	case lexer.BANG_EQUAL:
		return !runtime.IsEqual(left, right), nil
	case lexer.EQUAL_EQUAL:
		return runtime.IsEqual(left, right), nil

	case lexer.MINUS:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil

	case lexer.PERCENT:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return math.Mod(l, r), nil

	case lexer.PLUS:
		return i.evalPlus(op, left, right)

	case lexer.SLASH:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case lexer.SLASH_GREATER:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return math.Ceil(l / r), nil
	case lexer.SLASH_LESS:
		l, r, err := i.checkNumberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return math.Floor(l / r), nil

	case lexer.STAR:
		return i.evalStar(op, left, right)

	case lexer.DOT_DOT:
		return i.evalRange(op, left, right, false)
	case lexer.DOT_DOT_DOT:
		return i.evalRange(op, left, right, true)

	default:
		return nil, errorInterrupt(runtimeErrorAtToken(op, fmt.Sprintf("Unsupported operator: '%s'.", op.Lexeme)))
	}
}

func (i *Interpreter) evalPlus(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case float64:
		switch r := right.(type) {
		case float64:
			return l + r, nil
		case string:
			return runtime.Stringify(l) + r, nil
		}
	case string:
		switch r := right.(type) {
		case string:
			return l + r, nil
		case float64:
			return l + runtime.Stringify(r), nil
		}
	case *runtime.Array:
		if r, ok := right.(*runtime.Array); ok {
			merged := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
			merged = append(merged, l.Elements...)
			merged = append(merged, r.Elements...)
			return runtime.NewArray(merged), nil
		}
	case *runtime.Tuple:
		if r, ok := right.(*runtime.Tuple); ok {
			merged := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
			merged = append(merged, l.Elements...)
			merged = append(merged, r.Elements...)
			return runtime.NewTuple(merged), nil
		}
	}
	return nil, errorInterrupt(runtimeErrorAtToken(op, fmt.Sprintf("Operands of '%s' must be two numbers/strings/arrays/tuples.", op.Lexeme)))
}

func (i *Interpreter) evalStar(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l * r, nil
		}
		if r, ok := right.(string); ok {
			return strings.Repeat(r, repeatCount(l)), nil
		}
	case string:
		if r, ok := right.(float64); ok {
			return strings.Repeat(l, repeatCount(r)), nil
		}
	}
	return nil, errorInterrupt(runtimeErrorAtToken(op, fmt.Sprintf("Operands of '%s' must be two numbers or a string and a number.", op.Lexeme)))
}

// repeatCount truncates a repetition count to a non-negative integer, per
// spec.md §4.7's string-repetition rule.
func repeatCount(n float64) int {
	truncated := int(math.Trunc(n))
	if truncated < 0 {
		return 0
	}
	return truncated
}

func (i *Interpreter) evalRange(op lexer.Token, left, right runtime.Value, inclusive bool) (runtime.Value, error) {
	l, r, err := i.checkIntegerOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	ascending := r >= l
	diff := r - l
	if diff < 0 {
		diff = -diff
	}
	if inclusive {
		diff++
	}

	elements := make([]runtime.Value, 0, diff)
	for step := 0; step < diff; step++ {
		next := l + step
		if !ascending {
			next = l - step
		}
		elements = append(elements, float64(next))
	}
	return runtime.NewTuple(elements), nil
}
