package sazan

import (
	"testing"
)

func TestNewRuntimeDefaults(t *testing.T) {
	r := New()
	o := r.NewObject()
	if o.Prototype() != r.ObjectPrototype() {
		t.Fatal("ordinary objects must inherit from the default prototype")
	}
	fn := r.NewNativeFunction("f", 2, func(FunctionCall) Value {
		return Undefined()
	})
	if fn.Prototype() != r.FunctionPrototype() {
		t.Fatal("functions must inherit from the function prototype")
	}
	if !fn.Get("name").SameAs(newStringValue("f")) {
		t.Fatalf("unexpected name: %v", fn.Get("name"))
	}
	if !fn.Get("length").SameAs(intToValue(2)) {
		t.Fatalf("unexpected length: %v", fn.Get("length"))
	}
	if r.ObjectPrototype().Prototype() != nil {
		t.Fatal("the root prototype must have no prototype")
	}
}

func TestCreateObjectNilProto(t *testing.T) {
	r := New()
	o := r.CreateObject(nil)
	if o.Prototype() != nil {
		t.Fatal("CreateObject(nil) must produce a prototype-less object")
	}
	if v := o.Get("anything"); v != nil {
		t.Fatalf("lookup on a bare object found %v", v)
	}
}

func TestSymbolRegistry(t *testing.T) {
	r := New()
	a := r.SymbolFor("app.key")
	b := r.SymbolFor("app.key")
	if a != b {
		t.Fatal("SymbolFor must return the same instance for the same key")
	}
	key, ok := r.SymbolKeyFor(a)
	if !ok || key != "app.key" {
		t.Fatalf("SymbolKeyFor: %q, %v", key, ok)
	}
	if _, ok := r.SymbolKeyFor(NewSymbol("app.key")); ok {
		t.Fatal("an unregistered symbol must not resolve to a registry key")
	}

	r2 := New()
	if r2.SymbolFor("app.key") == a {
		t.Fatal("symbol registries must be per-runtime")
	}
}

func TestWellKnownSymbolsPerRuntime(t *testing.T) {
	r1 := New()
	r2 := New()
	if r1.SymbolToPrimitive() == r2.SymbolToPrimitive() {
		t.Fatal("well-known symbols must be per-runtime instances")
	}
	if r1.SymbolIterator() == nil || r1.SymbolHasInstance() == nil || r1.SymbolToStringTag() == nil {
		t.Fatal("all well-known symbols must be populated")
	}
}

func TestCallWithThis(t *testing.T) {
	r := New()
	fn := r.NewNativeFunction("echo", 1, func(call FunctionCall) Value {
		if len(call.Arguments) > 0 {
			return call.Argument(0)
		}
		return call.This
	})
	res, err := r.CallWithThis(fn, []Value{intToValue(5)}, Undefined(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.SameAs(intToValue(5)) {
		t.Fatalf("unexpected result: %v", res)
	}

	this := r.NewObject()
	res, err = r.CallWithThis(fn, nil, this, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.SameAs(this) {
		t.Fatal("the explicit this value must reach the callee")
	}
}

func TestCallNonCallable(t *testing.T) {
	r := New()
	if _, err := r.CallWithThis(intToValue(1), nil, Undefined(), nil); err == nil {
		t.Fatal("calling a number must fail")
	}
	if _, err := r.CallWithThis(r.NewObject(), nil, Undefined(), nil); err == nil {
		t.Fatal("calling a plain object must fail")
	}
}

func TestNativeConstructor(t *testing.T) {
	r := New()
	ctor := r.NewNativeConstructor("Point", 2, func(call ConstructorCall) *Object {
		call.This.self._putProp("x", call.Argument(0), true, true, true)
		return nil
	})
	res, err := r.CallWithThis(ctor, []Value{intToValue(3)}, Undefined(), ctor)
	if err != nil {
		t.Fatal(err)
	}
	inst, ok := res.(*Object)
	if !ok {
		t.Fatalf("construct must produce an object, got %v", res)
	}
	if !inst.Get("x").SameAs(intToValue(3)) {
		t.Fatal("constructor body must run against the fresh this")
	}
	proto, ok := ctor.Get("prototype").(*Object)
	if !ok {
		t.Fatal("constructor must carry a prototype object")
	}
	if inst.Prototype() != proto {
		t.Fatal("instances must be wired to the constructor's prototype")
	}
	if !proto.Get("constructor").SameAs(ctor) {
		t.Fatal("prototype.constructor must point back")
	}
}

func TestConstructorExplicitResult(t *testing.T) {
	r := New()
	replacement := r.NewObject()
	ctor := r.NewNativeConstructor("F", 0, func(ConstructorCall) *Object {
		return replacement
	})
	res, err := r.CallWithThis(ctor, nil, Undefined(), ctor)
	if err != nil {
		t.Fatal(err)
	}
	if !res.SameAs(replacement) {
		t.Fatal("an explicit object result must replace the allocated this")
	}
}

func TestConstructNonConstructor(t *testing.T) {
	r := New()
	fn := r.NewNativeFunction("f", 0, func(FunctionCall) Value {
		return Undefined()
	})
	_, err := r.CallWithThis(fn, nil, Undefined(), fn)
	if _, ok := err.(*TypeCoercionError); !ok {
		t.Fatalf("expected TypeCoercionError, got %v", err)
	}
}

func TestCallStackOverflow(t *testing.T) {
	r := New(WithMaxCallStackDepth(16))
	var fn *Object
	fn = r.NewNativeFunction("recurse", 0, func(FunctionCall) Value {
		return r.invoke(fn, Undefined())
	})
	_, err := r.CallWithThis(fn, nil, Undefined(), nil)
	if _, ok := err.(*StackOverflowError); !ok {
		t.Fatalf("expected StackOverflowError, got %v", err)
	}
	if r.StackDepth() != 0 {
		t.Fatalf("the context stack must be fully unwound, depth %d", r.StackDepth())
	}
}

func TestContextStackBalanced(t *testing.T) {
	r := New()
	var depthInside int
	fn := r.NewNativeFunction("probe", 0, func(FunctionCall) Value {
		depthInside = r.StackDepth()
		return Undefined()
	})
	if _, err := r.CallWithThis(fn, nil, Undefined(), nil); err != nil {
		t.Fatal(err)
	}
	if depthInside != 1 {
		t.Fatalf("expected depth 1 inside the call, got %d", depthInside)
	}
	if r.StackDepth() != 0 {
		t.Fatalf("expected empty stack after the call, got %d", r.StackDepth())
	}
}

func TestContextMetadata(t *testing.T) {
	r := New()
	var ctx *Context
	fn := r.NewNativeFunction("meta", 0, func(FunctionCall) Value {
		ctx = r.CurrentContext()
		return Undefined()
	})
	this := r.NewObject()
	args := []Value{intToValue(1), intToValue(2)}
	if _, err := r.CallWithThis(fn, args, this, nil); err != nil {
		t.Fatal(err)
	}
	if ctx == nil || !ctx.Function.SameAs(fn) {
		t.Fatal("the active context must carry the callee")
	}
	if len(ctx.Arguments) != 2 || !ctx.This.SameAs(this) {
		t.Fatal("the active context must carry arguments and this")
	}
}

func TestResolveAssignIdentifier(t *testing.T) {
	r := New()
	if err := r.AssignIdentifier("g", intToValue(1)); err != nil {
		t.Fatal(err)
	}
	v, err := r.ResolveIdentifier("g")
	if err != nil {
		t.Fatal(err)
	}
	if !v.SameAs(intToValue(1)) {
		t.Fatalf("unexpected value: %v", v)
	}
	// Sloppy top-level assignment lands on the global object.
	if !r.GlobalObject().Get("g").SameAs(intToValue(1)) {
		t.Fatal("top-level assignment must write the global object")
	}
	if _, err := r.ResolveIdentifier("missing"); err == nil {
		t.Fatal("resolving an unbound name must fail")
	}
}

func TestGetSetProperty(t *testing.T) {
	r := New()
	o := r.NewObject()
	if err := r.SetProperty(o, newStringValue("k"), intToValue(1)); err != nil {
		t.Fatal(err)
	}
	v, err := r.GetProperty(o, newStringValue("k"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.SameAs(intToValue(1)) {
		t.Fatalf("unexpected value: %v", v)
	}
	v, err = r.GetProperty(o, newStringValue("absent"))
	if err != nil {
		t.Fatal(err)
	}
	if !IsUndefined(v) {
		t.Fatal("a missing property reads as undefined")
	}
	// Numeric keys stringify before lookup.
	if err := r.SetProperty(o, intToValue(0), intToValue(42)); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.GetProperty(o, newStringValue("0")); !v.SameAs(intToValue(42)) {
		t.Fatal("numeric and string forms of a key must address the same property")
	}
	if _, err := r.GetProperty(Null(), newStringValue("k")); err == nil {
		t.Fatal("property access on null must fail")
	}
}

func TestCustomInvoker(t *testing.T) {
	r := New(WithInvoker(prefixInvoker{}))
	fn := r.NewNativeFunction("f", 0, func(FunctionCall) Value {
		return newStringValue("body")
	})
	res, err := r.CallWithThis(fn, nil, Undefined(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.String() != "wrapped:body" {
		t.Fatalf("the injected invoker must route the call, got %q", res.String())
	}
}

type prefixInvoker struct{}

func (prefixInvoker) Invoke(fn *Object, this Value, args []Value) Value {
	call, ok := fn.self.assertCallable()
	if !ok {
		throwTypeError("not a function")
	}
	res := call(FunctionCall{This: this, Arguments: args})
	return newStringValue("wrapped:" + res.String())
}
