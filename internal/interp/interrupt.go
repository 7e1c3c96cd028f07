package interp

import (
	doveErrors "github.com/dove-lang/dove/internal/errors"
	"github.com/dove-lang/dove/internal/runtime"
)

// interruptKind distinguishes the non-local-exit signals statement
// execution can raise. Dove models break/continue/return/error as a single
// interrupt ADT propagated as a Go error, instead of as host exceptions.
type interruptKind int

const (
	interruptBreak interruptKind = iota
	interruptContinue
	interruptReturn
	interruptError
)

// interrupt is the control-flow signal threaded through statement execution
// via ordinary Go error returns. Only interruptError carries a message
// fit to surface to the user; Break/Continue/Return are caught by the
// nearest enclosing loop or call frame.
type interrupt struct {
	kind       interruptKind
	returnVal  runtime.Value
	runtimeErr *doveErrors.RuntimeError
}

func (i *interrupt) Error() string {
	switch i.kind {
	case interruptError:
		return i.runtimeErr.Error()
	case interruptReturn:
		return "unexpected return outside a function"
	case interruptBreak:
		return "unexpected break outside a loop"
	default:
		return "unexpected continue outside a loop"
	}
}

func breakInterrupt() error    { return &interrupt{kind: interruptBreak} }
func continueInterrupt() error { return &interrupt{kind: interruptContinue} }

func returnInterrupt(v runtime.Value) error {
	return &interrupt{kind: interruptReturn, returnVal: v}
}

func errorInterrupt(err *doveErrors.RuntimeError) error {
	return &interrupt{kind: interruptError, runtimeErr: err}
}

// asRuntimeError unwraps err into a *RuntimeError if err is an error
// interrupt; any other error (including a bare *RuntimeError) reports false.
func asRuntimeError(err error) (*doveErrors.RuntimeError, bool) {
	if it, ok := err.(*interrupt); ok && it.kind == interruptError {
		return it.runtimeErr, true
	}
	return nil, false
}

func isBreak(err error) bool {
	it, ok := err.(*interrupt)
	return ok && it.kind == interruptBreak
}

func isContinue(err error) bool {
	it, ok := err.(*interrupt)
	return ok && it.kind == interruptContinue
}

func asReturn(err error) (runtime.Value, bool) {
	it, ok := err.(*interrupt)
	if !ok || it.kind != interruptReturn {
		return nil, false
	}
	return it.returnVal, true
}
