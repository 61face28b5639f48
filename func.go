package sazan

type baseFuncObject struct {
	baseObject

	nameProp, lenProp valueProperty
}

// nativeFuncObject is a function implemented in Go. It is the only
// callable kind the core itself provides; the evaluator installs its
// interpreted functions through the same shape.
type nativeFuncObject struct {
	baseFuncObject

	f         func(FunctionCall) Value
	construct func(args []Value, newTarget Value) *Object
}

// init installs the name and length properties with the standard
// attribute flags (configurable, non-writable, non-enumerable).
func (f *baseFuncObject) init(name string, length int) {
	f.baseObject.init()

	f.nameProp.configurable = true
	f.nameProp.value = newStringValue(name)
	f._put("name", &f.nameProp)

	f.lenProp.configurable = true
	f.lenProp.value = intToValue(int64(length))
	f._put("length", &f.lenProp)
}

func (f *nativeFuncObject) assertCallable() (func(FunctionCall) Value, bool) {
	if f.f != nil {
		return f.f, true
	}
	return nil, false
}

func (f *nativeFuncObject) assertConstructor() (func(args []Value, newTarget Value) *Object, bool) {
	if f.construct != nil {
		return f.construct, true
	}
	return nil, false
}

// defaultConstruct allocates a this object wired to fn.prototype, runs
// the constructor body and returns its explicit object result, if any.
func (f *nativeFuncObject) defaultConstruct(ccall func(ConstructorCall) *Object, args []Value) *Object {
	proto := f.val.getStr("prototype", nil)
	var protoObj *Object
	if p, ok := proto.(*Object); ok {
		protoObj = p
	} else {
		protoObj = f.val.runtime.global.ObjectPrototype
	}
	obj := f.val.runtime.newBaseObject(protoObj, classObject).val
	ret := ccall(ConstructorCall{
		This:      obj,
		Arguments: args,
	})

	if ret != nil {
		return ret
	}
	return obj
}

// AssertCallable returns the call entry point of a function object.
func (o *Object) AssertCallable() (func(FunctionCall) Value, bool) {
	return o.self.assertCallable()
}

func toMethod(v Value) *Object {
	if v == nil || IsUndefined(v) || IsNull(v) {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj
		}
	}
	throwTypeError("%s is not a function", v.String())
	return nil
}
