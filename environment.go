package sazan

// BindingKind classifies how a name was declared. The kind drives the
// redeclaration compatibility table and TDZ behaviour.
type BindingKind int

const (
	BindVar BindingKind = iota
	BindLet
	BindConst
	BindFunction
	BindParameter
)

func (k BindingKind) String() string {
	switch k {
	case BindVar:
		return "var"
	case BindLet:
		return "let"
	case BindConst:
		return "const"
	case BindFunction:
		return "function"
	case BindParameter:
		return "parameter"
	}
	return "unknown"
}

// binding is a named slot. An uninitialized binding exists for hoisting
// but faults on read until Initialize runs (the temporal dead zone).
type binding struct {
	value       Value
	kind        BindingKind
	mutable     bool
	initialized bool
}

// Environment is one node in a parent-linked lexical chain. Many
// closures may share a node; bindings are never copied, which is how
// closures observe each other's mutations.
//
// When object is non-nil the environment is the legacy object-scope
// variant: the object's own properties are consulted before the local
// bindings and the outer chain.
type Environment struct {
	runtime *Runtime
	outer   *Environment
	names   map[string]*binding
	object  *Object
}

// NewEnvironment creates a declarative environment chained to outer.
func (r *Runtime) NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		runtime: r,
		outer:   outer,
		names:   make(map[string]*binding),
	}
}

// NewObjectEnvironment creates an object-scope environment whose
// resolution consults obj's own properties first.
func (r *Runtime) NewObjectEnvironment(obj *Object, outer *Environment) *Environment {
	return &Environment{
		runtime: r,
		outer:   outer,
		names:   make(map[string]*binding),
		object:  obj,
	}
}

// Outer returns the parent environment, or nil at the chain root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// canRedeclare is the compatibility table for duplicate names in one
// environment: var and function may redeclare var/function/parameter;
// let and const never coexist with anything.
func canRedeclare(existing, declared BindingKind) bool {
	switch declared {
	case BindVar, BindFunction:
		switch existing {
		case BindVar, BindFunction, BindParameter:
			return true
		}
	}
	return false
}

// Define creates a binding in this environment. A nil value leaves a
// let/const binding uninitialized (readable only after Initialize); var,
// function and parameter bindings default to undefined.
func (e *Environment) Define(name string, value Value, kind BindingKind) error {
	if existing, ok := e.names[name]; ok {
		if !canRedeclare(existing.kind, kind) {
			return &RedeclarationError{Name: name}
		}
		// Compatible redeclaration reuses the slot.
		if value != nil {
			existing.value = value
			existing.initialized = true
		}
		return nil
	}

	b := &binding{
		kind:    kind,
		mutable: kind != BindConst,
	}
	switch kind {
	case BindLet, BindConst:
		if value != nil {
			b.value = value
			b.initialized = true
		}
	default:
		b.initialized = true
		if value != nil {
			b.value = value
		} else {
			b.value = _undefined
		}
	}
	e.names[name] = b
	return nil
}

// Initialize completes a hoisted binding, ending its dead zone.
func (e *Environment) Initialize(name string, value Value) {
	if b, ok := e.names[name]; ok {
		b.value = value
		b.initialized = true
	}
}

// Has reports whether name resolves anywhere on the chain.
func (e *Environment) Has(name string) bool {
	for env := e; env != nil; env = env.outer {
		if env.object != nil && env.object.self.hasOwnPropertyStr(name) {
			return true
		}
		if _, ok := env.names[name]; ok {
			return true
		}
	}
	return false
}

// getValue resolves name along the chain. A found-but-uninitialized
// binding raises BindingNotInitializedError; a name absent everywhere
// raises UnboundIdentifierError. The two outcomes are deliberately
// distinguishable.
func (e *Environment) getValue(name string) Value {
	for env := e; env != nil; env = env.outer {
		if env.object != nil {
			if env.object.self.hasOwnPropertyStr(name) {
				if v := env.object.getStr(name, nil); v != nil {
					return v
				}
				return _undefined
			}
		}
		if b, ok := env.names[name]; ok {
			if !b.initialized {
				panic(&BindingNotInitializedError{Name: name})
			}
			return b.value
		}
	}
	panic(&UnboundIdentifierError{Name: name})
}

// Get resolves name, returning the TDZ or unbound error instead of
// panicking.
func (e *Environment) Get(name string) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = e.getValue(name)
	})
	return res, err
}

// setValue assigns to an existing binding. Const bindings reject
// unconditionally. An unresolved name faults in strict mode and
// implicitly creates a global binding otherwise (a deliberate legacy
// quirk).
func (e *Environment) setValue(name string, value Value, strict bool) {
	var root *Environment
	for env := e; env != nil; env = env.outer {
		root = env
		if env.object != nil && env.object.self.hasOwnPropertyStr(name) {
			env.object.setStr(name, value, env.object, strict)
			return
		}
		if b, ok := env.names[name]; ok {
			if !b.mutable {
				panic(&ImmutableBindingError{Name: name})
			}
			if !b.initialized {
				panic(&BindingNotInitializedError{Name: name})
			}
			b.value = value
			return
		}
	}

	if strict {
		panic(&UnboundIdentifierError{Name: name})
	}
	if root.object != nil {
		root.object.setStr(name, value, root.object, false)
		return
	}
	root.names[name] = &binding{
		value:       value,
		kind:        BindVar,
		mutable:     true,
		initialized: true,
	}
}

// Set assigns to name, returning the rejection as an error.
func (e *Environment) Set(name string, value Value, strict bool) error {
	return tryFunc(func() {
		e.setValue(name, value, strict)
	})
}
