package runtime

// Callable is anything `expr(args...)` can invoke: a user-defined Function
// or a host-provided NativeFunction.
type Callable interface {
	Arity() int
	// Call is implemented by the interpreter package, which closes over the
	// AST and environment machinery Callable itself doesn't depend on.
}

// Binder is implemented by callables that can be bound to an instance to
// produce a method closure over `self` (and `super`, for subclass methods).
type Binder interface {
	Bind(instance *Instance) Callable
}

// NativeFunction wraps a Go function as a Dove Callable. The interpreter
// invokes Fn directly; it is not itself a Callable implementation detail of
// the AST-walking evaluator, since builtins never need the interpreter.
type NativeFunction struct {
	Name     string
	ArityVal int
	Fn       func(args []Value) (Value, error)
}

// Arity reports how many arguments Fn expects.
func (f *NativeFunction) Arity() int {
	return f.ArityVal
}
