package interp

import (
	"fmt"

	"github.com/dove-lang/dove/internal/ast"
	doveErrors "github.com/dove-lang/dove/internal/errors"
	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/runtime"
)

const (
	selfKeyword  = "self"
	superKeyword = "super"

	// maxCallDepth bounds Function call nesting so a runaway recursive
	// script fails with a Dove runtime error instead of a Go stack
	// overflow. Matches the teacher's DefaultMaxRecursionDepth.
	maxCallDepth = 1024
)

// visitCall evaluates the callee and arguments, then dispatches to
// callValue. Class callees construct an Instance and invoke `init`;
// Function/NativeFunction callees are invoked directly.
func (i *Interpreter) visitCall(e *ast.Call) (runtime.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateList(e.Arguments)
	if err != nil {
		return nil, err
	}
	return i.callValue(callee, args, e.Paren)
}

func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.Function:
		return i.callFunction(fn, args, paren)

	case *runtime.NativeFunction:
		if err := checkArity(fn.ArityVal, len(args), paren); err != nil {
			return nil, err
		}
		v, err := fn.Fn(args)
		if err != nil {
			if rtErr, ok := err.(*doveErrors.RuntimeError); ok {
				return nil, errorInterrupt(rtErr)
			}
			return nil, errorInterrupt(runtimeErrorAtToken(paren, err.Error()))
		}
		return v, nil

	case *runtime.Class:
		return i.instantiate(fn, args, paren)

	default:
		return nil, errorInterrupt(runtimeErrorAtToken(paren, fmt.Sprintf("Cannot call value of type '%s'.", runtime.TypeName(callee))))
	}
}

func checkArity(want, got int, paren lexer.Token) error {
	if want != got {
		return errorInterrupt(runtimeErrorAtToken(paren, fmt.Sprintf("Expected %d argument(s) but got %d.", want, got)))
	}
	return nil
}

func (i *Interpreter) callFunction(fn *runtime.Function, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	if err := checkArity(fn.Arity(), len(args), paren); err != nil {
		return nil, err
	}

	frameName := fn.Name
	if frameName == "" {
		frameName = "<lambda>"
	}
	if len(i.callStack) >= maxCallDepth {
		message := fmt.Sprintf("Stack overflow: maximum recursion depth (%d) exceeded in function '%s'.", maxCallDepth, frameName)
		if trace := i.callStack.String(); trace != "" {
			message += "\n\nCall stack:\n" + trace
		}
		return nil, errorInterrupt(runtimeErrorAtToken(paren, message))
	}

	i.callStack = append(i.callStack, doveErrors.NewStackFrame(frameName, paren.Line))
	defer func() { i.callStack = i.callStack[:len(i.callStack)-1] }()

	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Params {
		env.Define(param.Lexeme, args[idx])
	}

	value, err := i.executeImplicitReturn(fn.Body.Statements, env)
	if err != nil {
		if retVal, ok := asReturn(err); ok {
			if fn.IsInitializer {
				selfVal, _ := fn.Closure.Get(selfKeyword)
				return selfVal, nil
			}
			return retVal, nil
		}
		return nil, err
	}

	if fn.IsInitializer {
		selfVal, _ := fn.Closure.Get(selfKeyword)
		return selfVal, nil
	}
	return value, nil
}

func (i *Interpreter) instantiate(class *runtime.Class, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init := class.FindMethod("init"); init != nil {
		bound := init.Bind(instance).(*runtime.Function)
		if _, err := i.callFunction(bound, args, paren); err != nil {
			return nil, err
		}
	}
	// A class with no init silently accepts and discards any constructor
	// arguments, rather than erroring on an arity mismatch.
	return instance, nil
}

func (i *Interpreter) visitIndexGet(e *ast.IndexGet) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluate(e.Index)
	if err != nil {
		return nil, err
	}

	switch coll := object.(type) {
	case *runtime.Array:
		idx, ok := indexAsInt(index, len(coll.Elements))
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, "Array index out of range."))
		}
		return coll.Elements[idx], nil

	case *runtime.Tuple:
		idx, ok := indexAsInt(index, len(coll.Elements))
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, "Tuple index out of range."))
		}
		return coll.Elements[idx], nil

	case *runtime.Dictionary:
		key, ok := runtime.DictKeyFromValue(index)
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, "Only String and Integer can be used as dictionary key."))
		}
		v, ok := coll.Get(key)
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, fmt.Sprintf("Key '%s' not found in dictionary.", key.String())))
		}
		return v, nil

	default:
		return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, fmt.Sprintf("Cannot index into type '%s'.", runtime.TypeName(object))))
	}
}

func (i *Interpreter) visitIndexSet(e *ast.IndexSet) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluate(e.Index)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	switch coll := object.(type) {
	case *runtime.Array:
		idx, ok := indexAsInt(index, len(coll.Elements))
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, "Array index out of range."))
		}
		coll.Elements[idx] = value
		return value, nil

	case *runtime.Dictionary:
		key, ok := runtime.DictKeyFromValue(index)
		if !ok {
			return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, "Only String and Integer can be used as dictionary key."))
		}
		coll.Set(key, value)
		return value, nil

	default:
		return nil, errorInterrupt(runtimeErrorAtToken(e.Bracket, fmt.Sprintf("Cannot assign an index on type '%s'.", runtime.TypeName(object))))
	}
}

// indexAsInt converts a Number index to a non-negative slice index,
// reporting ok=false if it is not an integer or falls outside [0, length).
func indexAsInt(v runtime.Value, length int) (int, bool) {
	n, ok := v.(float64)
	if !ok || n != float64(int(n)) {
		return 0, false
	}
	idx := int(n)
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
