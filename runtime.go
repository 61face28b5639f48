package sazan

// Version is the engine version, matched against fixture constraints by
// the conformance harness.
const Version = "1.0.0"

type global struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object
	GlobalObject      *Object
}

type limits struct {
	maxCallStackDepth int
	maxPrototypeDepth int
}

// Invoker is the injected "invoke a callable" capability. The default
// implementation calls native functions directly; an embedding
// evaluator supplies its own at wiring time so coercion callouts and
// accessor dispatch route through its call machinery instead of
// recursing into evaluator internals.
type Invoker interface {
	Invoke(fn *Object, this Value, args []Value) Value
}

type directInvoker struct{}

func (directInvoker) Invoke(fn *Object, this Value, args []Value) Value {
	call, ok := fn.self.assertCallable()
	if !ok {
		throwTypeError("%s is not a function", fn.self.className())
	}
	return call(FunctionCall{This: this, Arguments: args})
}

// Runtime is one isolated realm: its own global object, environment
// chain root, well-known symbols and symbol registry. Two Runtime
// instances share no mutable state. A single Runtime must not be used
// from multiple goroutines without external serialization.
type Runtime struct {
	global    global
	globalEnv *Environment

	symbolRegistry map[string]*Symbol

	symToPrimitive *Symbol
	symIterator    *Symbol
	symHasInstance *Symbol
	symToStringTag *Symbol

	ctxStack []*Context
	limits   limits
	invoker  Invoker
}

// New creates a fresh Runtime instance.
func New(opts ...Option) *Runtime {
	o := defaultOptions
	for _, opt := range opts {
		opt.apply(&o)
	}

	r := &Runtime{
		symbolRegistry: make(map[string]*Symbol),
		symToPrimitive: &Symbol{desc: "Symbol.toPrimitive"},
		symIterator:    &Symbol{desc: "Symbol.iterator"},
		symHasInstance: &Symbol{desc: "Symbol.hasInstance"},
		symToStringTag: &Symbol{desc: "Symbol.toStringTag"},
		limits: limits{
			maxCallStackDepth: o.maxCallStackDepth,
			maxPrototypeDepth: o.maxPrototypeDepth,
		},
	}
	if o.invoker != nil {
		r.invoker = o.invoker
	} else {
		r.invoker = directInvoker{}
	}

	r.global.ObjectPrototype = r.newBaseObject(nil, classObject).val
	r.global.FunctionPrototype = r.newBaseObject(r.global.ObjectPrototype, classFunction).val
	r.global.GlobalObject = r.NewObject()
	r.globalEnv = r.NewObjectEnvironment(r.global.GlobalObject, nil)

	return r
}

// ---- object factories ----

func (r *Runtime) newBaseObject(proto *Object, class string) *baseObject {
	v := &Object{runtime: r}

	o := &baseObject{
		class:      class,
		val:        v,
		extensible: true,
		prototype:  proto,
	}
	o.init()
	v.self = o

	return o
}

func (r *Runtime) newPrimitiveObject(value Value, proto *Object, class string) *Object {
	v := &Object{runtime: r}

	o := &primitiveValueObject{}
	o.class = class
	o.val = v
	o.extensible = true
	o.prototype = proto
	o.pValue = value
	o.init()
	v.self = o

	return v
}

// NewObject creates an ordinary object with the default prototype.
func (r *Runtime) NewObject() *Object {
	return r.newBaseObject(r.global.ObjectPrototype, classObject).val
}

// CreateObject creates a bare object with the given prototype (which
// may be nil). This is the factory built-in library modules use.
func (r *Runtime) CreateObject(proto *Object) *Object {
	return r.newBaseObject(proto, classObject).val
}

func (r *Runtime) newNativeFuncObj(call func(FunctionCall) Value, construct func(args []Value, newTarget Value) *Object, name string, length int) *nativeFuncObject {
	f := &nativeFuncObject{
		baseFuncObject: baseFuncObject{
			baseObject: baseObject{
				class:      classFunction,
				prototype:  r.global.FunctionPrototype,
				extensible: true,
			},
		},
		f:         call,
		construct: construct,
	}
	v := &Object{runtime: r, self: f}
	f.val = v
	f.init(name, length)
	return f
}

// NewNativeFunction creates a callable, non-constructible function
// object with the declared name and arity.
func (r *Runtime) NewNativeFunction(name string, length int, call func(FunctionCall) Value) *Object {
	return r.newNativeFuncObj(call, nil, name, length).val
}

// NewNativeConstructor creates a callable, constructible function. On
// construct, a this object wired to fn.prototype is allocated and the
// body's explicit object result, if any, replaces it.
func (r *Runtime) NewNativeConstructor(name string, length int, ccall func(ConstructorCall) *Object) *Object {
	var f *nativeFuncObject
	f = r.newNativeFuncObj(func(c FunctionCall) Value {
		return f.defaultConstruct(ccall, c.Arguments)
	}, func(args []Value, newTarget Value) *Object {
		return f.defaultConstruct(ccall, args)
	}, name, length)

	proto := r.NewObject()
	proto.self._putProp("constructor", f.val, true, false, true)
	f._putProp("prototype", proto, true, false, false)

	return f.val
}

// InstallNativeFunction installs a native function as a property of o
// with the declared arity and explicit attribute flags, the way
// built-in library modules populate their surfaces.
func (r *Runtime) InstallNativeFunction(o *Object, name string, length int, call func(FunctionCall) Value, writable, enumerable, configurable bool) {
	fn := r.NewNativeFunction(name, length, call)
	o.self._putProp(name, fn, writable, enumerable, configurable)
}

// InstallProperty installs a data property with explicit attribute
// flags at construction time, bypassing define-invariant checks.
func (r *Runtime) InstallProperty(o *Object, name string, value Value, writable, enumerable, configurable bool) {
	o.self._putProp(name, value, writable, enumerable, configurable)
}

// InstallSymbolProperty is InstallProperty for a symbol key.
func (r *Runtime) InstallSymbolProperty(o *Object, s *Symbol, value Value, writable, enumerable, configurable bool) {
	o.self._putSym(s, valueProp(value, writable, enumerable, configurable))
}

// ---- per-realm symbol registries ----

// SymbolToPrimitive returns this realm's well-known toPrimitive symbol.
func (r *Runtime) SymbolToPrimitive() *Symbol { return r.symToPrimitive }

// SymbolIterator returns this realm's well-known iterator symbol.
func (r *Runtime) SymbolIterator() *Symbol { return r.symIterator }

// SymbolHasInstance returns this realm's well-known hasInstance symbol.
func (r *Runtime) SymbolHasInstance() *Symbol { return r.symHasInstance }

// SymbolToStringTag returns this realm's well-known toStringTag symbol.
func (r *Runtime) SymbolToStringTag() *Symbol { return r.symToStringTag }

// SymbolFor returns the registry symbol for key, creating it on first
// use. The registry belongs to this Runtime alone.
func (r *Runtime) SymbolFor(key string) *Symbol {
	if s := r.symbolRegistry[key]; s != nil {
		return s
	}
	s := &Symbol{desc: key}
	r.symbolRegistry[key] = s
	return s
}

// SymbolKeyFor returns the registry key of s, if s was created by
// SymbolFor on this Runtime.
func (r *Runtime) SymbolKeyFor(s *Symbol) (string, bool) {
	for key, reg := range r.symbolRegistry {
		if reg == s {
			return key, true
		}
	}
	return "", false
}

// ---- ambient state ----

// GlobalObject returns the realm's global object.
func (r *Runtime) GlobalObject() *Object {
	return r.global.GlobalObject
}

// GlobalEnvironment returns the root of the environment chain.
func (r *Runtime) GlobalEnvironment() *Environment {
	return r.globalEnv
}

// ObjectPrototype returns the default prototype for ordinary objects.
func (r *Runtime) ObjectPrototype() *Object {
	return r.global.ObjectPrototype
}

// FunctionPrototype returns the default prototype for functions.
func (r *Runtime) FunctionPrototype() *Object {
	return r.global.FunctionPrototype
}

// invoke routes every engine-initiated callout (accessors, valueOf/
// toString, toPrimitive methods) through the injected Invoker, with a
// context pushed around the call so re-entrant engine operations see
// correct ambient state.
func (r *Runtime) invoke(fn *Object, this Value, args ...Value) Value {
	ctx := &Context{
		LexicalEnv:  r.currentEnv(),
		VariableEnv: r.currentEnv(),
		This:        this,
		Strict:      r.currentStrict(),
		Function:    fn,
		Arguments:   args,
	}
	r.PushContext(ctx)
	defer r.PopContext()
	return r.invoker.Invoke(fn, this, args)
}

// ---- evaluator-facing operations ----

// ResolveIdentifier resolves name in the ambient lexical environment.
func (r *Runtime) ResolveIdentifier(name string) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = r.currentEnv().getValue(name)
	})
	return res, err
}

// AssignIdentifier assigns to name in the ambient lexical environment,
// using the ambient strict-mode flag.
func (r *Runtime) AssignIdentifier(name string, value Value) error {
	return tryFunc(func() {
		r.currentEnv().setValue(name, value, r.currentStrict())
	})
}

// GetProperty reads key from object following the full prototype
// resolution protocol. Missing properties read as undefined.
func (r *Runtime) GetProperty(object Value, key Value) (Value, error) {
	var res Value
	err := tryFunc(func() {
		obj := object.ToObject(r)
		res = obj.get(key, object)
		if res == nil {
			res = _undefined
		}
	})
	return res, err
}

// SetProperty writes key on object following the resolve-set protocol.
func (r *Runtime) SetProperty(object Value, key Value, value Value) error {
	return tryFunc(func() {
		obj := object.ToObject(r)
		obj.set(key, value, object, true)
	})
}

// CallWithThis invokes fn with an explicit this value, pushing and
// popping an execution context around the call. A non-nil newTarget
// selects the construct path. Thrown values and engine errors come back
// as the error result; the context stack is restored to its pre-call
// depth on failure so no entries leak.
func (r *Runtime) CallWithThis(fn Value, args []Value, this Value, newTarget Value) (Value, error) {
	depth := len(r.ctxStack)
	var res Value
	err := tryFunc(func() {
		obj, ok := fn.(*Object)
		if !ok {
			throwTypeError("%s is not a function", fn.String())
		}
		if newTarget != nil && !IsUndefined(newTarget) {
			ctor, ok := obj.self.assertConstructor()
			if !ok {
				throwTypeError("%s is not a constructor", obj.self.className())
			}
			ctx := &Context{
				LexicalEnv:  r.currentEnv(),
				VariableEnv: r.currentEnv(),
				This:        this,
				Strict:      r.currentStrict(),
				Function:    obj,
				Arguments:   args,
				NewTarget:   newTarget,
			}
			r.PushContext(ctx)
			defer r.PopContext()
			res = ctor(args, newTarget)
			return
		}
		res = r.invoke(obj, this, args...)
	})
	if err != nil {
		r.restoreStack(depth)
		return nil, err
	}
	return res, nil
}
