package runtime

// Class is a Dove class: a name, an optional single superclass, and its
// own methods (inherited methods are resolved via FindMethod, not copied
// in).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass creates a Class.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name on the class itself, then walks the single
// inheritance chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Instance is a live object: a reference to its Class plus its own field
// table. Method lookups are bound lazily on first access and cached back
// into fields, so repeated calls to the same method skip re-binding.
type Instance struct {
	Class  *Class
	fields map[string]Value
}

// NewInstance creates an Instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, fields: make(map[string]Value)}
}

// Get reads a field, falling back to a lazily-bound method. The second
// result is false if neither a field nor a method named name exists.
func (inst *Instance) Get(name string) (Value, bool) {
	if v, ok := inst.fields[name]; ok {
		return v, true
	}
	if method := inst.Class.FindMethod(name); method != nil {
		bound := method.Bind(inst)
		inst.fields[name] = bound
		return bound, true
	}
	return nil, false
}

// Set writes a field, shadowing any inherited method of the same name.
func (inst *Instance) Set(name string, value Value) {
	inst.fields[name] = value
}
