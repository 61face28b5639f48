package sazan

import (
	"sort"
	"strconv"
)

const (
	classObject    = "Object"
	classFunction  = "Function"
	classNumber    = "Number"
	classString    = "String"
	classBoolean   = "Boolean"
	classBigInt    = "BigInt"
	classGenerator = "Generator"
)

// Flag is a three-state boolean used in property descriptors so that a
// partial descriptor can redefine only the attributes it names.
type Flag int

const (
	FLAG_NOT_SET Flag = iota
	FLAG_FALSE
	FLAG_TRUE
)

func (f Flag) Bool() bool {
	return f == FLAG_TRUE
}

func ToFlag(b bool) Flag {
	if b {
		return FLAG_TRUE
	}
	return FLAG_FALSE
}

// PropertyDescriptor describes one own property: either a data variant
// (Value/Writable) or an accessor variant (Getter/Setter), never both.
type PropertyDescriptor struct {
	Value Value

	Writable, Configurable, Enumerable Flag

	Getter, Setter Value
}

// IsAccessor reports whether the descriptor describes the accessor
// variant.
func (p PropertyDescriptor) IsAccessor() bool {
	return p.Getter != nil || p.Setter != nil
}

// IsData reports whether the descriptor describes the data variant.
func (p PropertyDescriptor) IsData() bool {
	return p.Value != nil || p.Writable != FLAG_NOT_SET
}

// Object is a reference value: an ordered key->descriptor store, a
// nullable shared prototype reference and an extensible flag. The
// concrete behaviour lives behind self so that callable and exotic
// objects can override individual own-property hooks.
type Object struct {
	runtime *Runtime
	self    objectImpl
}

type objectImpl interface {
	className() string

	getOwnPropStr(name string) Value
	getOwnPropSym(s *Symbol) Value
	setOwnStr(name string, val Value, throw bool) bool
	setOwnSym(s *Symbol, val Value, throw bool) bool
	defineOwnPropertyStr(name string, descr PropertyDescriptor, throw bool) bool
	defineOwnPropertySym(s *Symbol, descr PropertyDescriptor, throw bool) bool
	deleteStr(name string, throw bool) bool
	deleteSym(s *Symbol, throw bool) bool
	hasOwnPropertyStr(name string) bool
	hasOwnPropertySym(s *Symbol) bool

	ownKeys(all bool, accum []Value) []Value
	ownSymbols() []*Symbol
	ownIter() iterNextFunc

	proto() *Object
	setProto(proto *Object, throw bool) bool
	isExtensible() bool
	preventExtensions(throw bool) bool

	assertCallable() (call func(FunctionCall) Value, ok bool)
	assertConstructor() (ctor func(args []Value, newTarget Value) *Object, ok bool)

	_putProp(name string, value Value, writable, enumerable, configurable bool) Value
	_putSym(s *Symbol, prop Value)
}

// valueProperty is the stored form of a property that carries attribute
// flags or accessors. A plain Value in the store stands for a fully
// writable/enumerable/configurable data property.
type valueProperty struct {
	value        Value
	writable     bool
	configurable bool
	enumerable   bool
	accessor     bool
	getterFunc   *Object
	setterFunc   *Object
}

func (p *valueProperty) isWritable() bool {
	return p.writable || p.setterFunc != nil
}

func (p *valueProperty) get(this Value) Value {
	if p.getterFunc == nil {
		if p.value != nil {
			return p.value
		}
		return _undefined
	}
	return p.getterFunc.runtime.invoke(p.getterFunc, this)
}

func (p *valueProperty) set(this, v Value) {
	if p.setterFunc == nil {
		p.value = v
		return
	}
	p.setterFunc.runtime.invoke(p.setterFunc, this, v)
}

func (p *valueProperty) descriptor() PropertyDescriptor {
	d := PropertyDescriptor{
		Configurable: ToFlag(p.configurable),
		Enumerable:   ToFlag(p.enumerable),
	}
	if p.accessor {
		if p.getterFunc != nil {
			d.Getter = p.getterFunc
		} else {
			d.Getter = _undefined
		}
		if p.setterFunc != nil {
			d.Setter = p.setterFunc
		} else {
			d.Setter = _undefined
		}
	} else {
		d.Value = p.value
		d.Writable = ToFlag(p.writable)
	}
	return d
}

// valueProperty values never leak to script; the Value methods exist
// only because descriptors share the store with plain values.
func (p *valueProperty) Tag() Tag              { return TagUndefined }
func (p *valueProperty) ToInteger() int64      { return 0 }
func (p *valueProperty) toString() valueString { return stringEmpty }
func (p *valueProperty) String() string        { return "" }
func (p *valueProperty) ToFloat() float64      { return 0 }
func (p *valueProperty) ToNumber() Value       { return nil }
func (p *valueProperty) ToBoolean() bool       { return false }

func (p *valueProperty) ToObject(*Runtime) *Object { return nil }

func (p *valueProperty) SameAs(other Value) bool {
	if o, ok := other.(*valueProperty); ok {
		return p == o
	}
	return false
}

func (p *valueProperty) Equals(Value) bool       { return false }
func (p *valueProperty) StrictEquals(Value) bool { return false }

func (p *valueProperty) baseObject(r *Runtime) *Object {
	panic("BUG: baseObject() called on valueProperty")
}

type baseObject struct {
	class      string
	val        *Object
	prototype  *Object
	extensible bool

	values    map[string]Value
	propNames []string

	symValues map[*Symbol]Value
	symNames  []*Symbol
}

type primitiveValueObject struct {
	baseObject
	pValue Value
}

// FunctionCall carries the this value and arguments of an invocation.
type FunctionCall struct {
	This      Value
	Arguments []Value
}

// ConstructorCall carries the freshly allocated this object and the
// arguments of a [[Construct]] invocation.
type ConstructorCall struct {
	This      *Object
	Arguments []Value
}

func (f FunctionCall) Argument(idx int) Value {
	if idx < len(f.Arguments) {
		return f.Arguments[idx]
	}
	return _undefined
}

func (f ConstructorCall) Argument(idx int) Value {
	if idx < len(f.Arguments) {
		return f.Arguments[idx]
	}
	return _undefined
}

func (o *baseObject) init() {
	o.values = make(map[string]Value)
}

func (o *baseObject) className() string {
	return o.class
}

func (o *baseObject) getOwnPropStr(name string) Value {
	return o.values[name]
}

func (o *baseObject) getOwnPropSym(s *Symbol) Value {
	return o.symValues[s]
}

func (o *baseObject) hasOwnPropertyStr(name string) bool {
	_, exists := o.values[name]
	return exists
}

func (o *baseObject) hasOwnPropertySym(s *Symbol) bool {
	_, exists := o.symValues[s]
	return exists
}

func (o *baseObject) setOwnStr(name string, val Value, throw bool) bool {
	own := o.values[name]
	if own == nil {
		if !o.extensible {
			return rejectResult(throw, "Cannot add property %s, object is not extensible", name)
		}
		o.values[name] = val
		o.propNames = append(o.propNames, name)
		return true
	}
	if prop, ok := own.(*valueProperty); ok {
		if prop.accessor {
			if prop.setterFunc == nil {
				return rejectResult(throw, "Cannot set property %s which has only a getter", name)
			}
			prop.set(o.val, val)
			return true
		}
		if !prop.writable {
			return rejectResult(throw, "Cannot assign to read only property '%s'", name)
		}
		prop.value = val
		return true
	}
	o.values[name] = val
	return true
}

func (o *baseObject) setOwnSym(s *Symbol, val Value, throw bool) bool {
	own := o.symValues[s]
	if own == nil {
		if !o.extensible {
			return rejectResult(throw, "Cannot add property %s, object is not extensible", s.descString())
		}
		o._putSym(s, val)
		return true
	}
	if prop, ok := own.(*valueProperty); ok {
		if prop.accessor {
			if prop.setterFunc == nil {
				return rejectResult(throw, "Cannot set property %s which has only a getter", s.descString())
			}
			prop.set(o.val, val)
			return true
		}
		if !prop.writable {
			return rejectResult(throw, "Cannot assign to read only property '%s'", s.descString())
		}
		prop.value = val
		return true
	}
	o.symValues[s] = val
	return true
}

func (o *baseObject) checkDelete(name string, val Value, throw bool) bool {
	if prop, ok := val.(*valueProperty); ok && !prop.configurable {
		return rejectResult(throw, "Cannot delete property '%s' of %s", name, o.class)
	}
	return true
}

func (o *baseObject) _delete(name string) {
	delete(o.values, name)
	for i, n := range o.propNames {
		if n == name {
			copy(o.propNames[i:], o.propNames[i+1:])
			o.propNames = o.propNames[:len(o.propNames)-1]
			break
		}
	}
}

func (o *baseObject) deleteStr(name string, throw bool) bool {
	if val, exists := o.values[name]; exists {
		if !o.checkDelete(name, val, throw) {
			return false
		}
		o._delete(name)
	}
	return true
}

func (o *baseObject) deleteSym(s *Symbol, throw bool) bool {
	if val, exists := o.symValues[s]; exists {
		if !o.checkDelete(s.descString(), val, throw) {
			return false
		}
		delete(o.symValues, s)
		for i, n := range o.symNames {
			if n == s {
				copy(o.symNames[i:], o.symNames[i+1:])
				o.symNames = o.symNames[:len(o.symNames)-1]
				break
			}
		}
	}
	return true
}

// _defineOwnProperty validates descr against the existing property per
// the attribute invariants. A non-configurable property accepts only
// narrowing changes: writable may go true->false, nothing else moves.
func (o *baseObject) _defineOwnProperty(name string, existingValue Value, descr PropertyDescriptor, throw bool) (val Value, ok bool) {
	getterObj, _ := descr.Getter.(*Object)
	setterObj, _ := descr.Setter.(*Object)

	var existing *valueProperty

	if existingValue == nil {
		if !o.extensible {
			rejectResult(throw, "Cannot define property %s, object is not extensible", name)
			return nil, false
		}
		existing = &valueProperty{}
	} else {
		if existing, ok = existingValue.(*valueProperty); !ok {
			existing = &valueProperty{
				writable:     true,
				enumerable:   true,
				configurable: true,
				value:        existingValue,
			}
		}

		if !existing.configurable {
			if descr.Configurable == FLAG_TRUE {
				goto Reject
			}
			if descr.Enumerable != FLAG_NOT_SET && descr.Enumerable.Bool() != existing.enumerable {
				goto Reject
			}
		}
		if existing.accessor && descr.IsData() || !existing.accessor && descr.IsAccessor() {
			if !existing.configurable {
				goto Reject
			}
		} else if !existing.accessor {
			if !existing.configurable && !existing.writable {
				if descr.Writable == FLAG_TRUE {
					goto Reject
				}
				if descr.Value != nil && !descr.Value.SameAs(existing.value) {
					goto Reject
				}
			}
		} else {
			if !existing.configurable {
				if descr.Getter != nil && existing.getterFunc != getterObj ||
					descr.Setter != nil && existing.setterFunc != setterObj {
					goto Reject
				}
			}
		}
	}

	if descr.Writable == FLAG_TRUE && descr.Enumerable == FLAG_TRUE && descr.Configurable == FLAG_TRUE && descr.Value != nil {
		return descr.Value, true
	}

	if descr.Writable != FLAG_NOT_SET {
		existing.writable = descr.Writable.Bool()
	}
	if descr.Enumerable != FLAG_NOT_SET {
		existing.enumerable = descr.Enumerable.Bool()
	}
	if descr.Configurable != FLAG_NOT_SET {
		existing.configurable = descr.Configurable.Bool()
	}

	if descr.Value != nil {
		existing.value = descr.Value
		existing.getterFunc = nil
		existing.setterFunc = nil
	}

	if descr.Value != nil || descr.Writable != FLAG_NOT_SET {
		existing.accessor = false
	}

	if descr.Getter != nil {
		existing.getterFunc = propGetter(descr.Getter)
		existing.value = nil
		existing.accessor = true
	}

	if descr.Setter != nil {
		existing.setterFunc = propSetter(descr.Setter)
		existing.value = nil
		existing.accessor = true
	}

	if !existing.accessor && existing.value == nil {
		existing.value = _undefined
	}

	return existing, true

Reject:
	rejectResult(throw, "Cannot redefine property: %s", name)
	return nil, false
}

func (o *baseObject) defineOwnPropertyStr(name string, descr PropertyDescriptor, throw bool) bool {
	existingVal := o.values[name]
	if v, ok := o._defineOwnProperty(name, existingVal, descr, throw); ok {
		o.values[name] = v
		if existingVal == nil {
			o.propNames = append(o.propNames, name)
		}
		return true
	}
	return false
}

func (o *baseObject) defineOwnPropertySym(s *Symbol, descr PropertyDescriptor, throw bool) bool {
	existingVal := o.symValues[s]
	if v, ok := o._defineOwnProperty(s.descString(), existingVal, descr, throw); ok {
		if existingVal == nil {
			o._putSym(s, v)
		} else {
			o.symValues[s] = v
		}
		return true
	}
	return false
}

func propGetter(v Value) *Object {
	if v == _undefined {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj
		}
	}
	throwTypeError("Getter must be a function")
	return nil
}

func propSetter(v Value) *Object {
	if v == _undefined {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj
		}
	}
	throwTypeError("Setter must be a function")
	return nil
}

func (o *baseObject) _put(name string, v Value) {
	if _, exists := o.values[name]; !exists {
		o.propNames = append(o.propNames, name)
	}
	o.values[name] = v
}

func valueProp(value Value, writable, enumerable, configurable bool) Value {
	if writable && enumerable && configurable {
		return value
	}
	return &valueProperty{
		value:        value,
		writable:     writable,
		enumerable:   enumerable,
		configurable: configurable,
	}
}

func (o *baseObject) _putProp(name string, value Value, writable, enumerable, configurable bool) Value {
	prop := valueProp(value, writable, enumerable, configurable)
	o._put(name, prop)
	return prop
}

func (o *baseObject) _putSym(s *Symbol, prop Value) {
	if o.symValues == nil {
		o.symValues = make(map[*Symbol]Value, 1)
	}
	if _, exists := o.symValues[s]; !exists {
		o.symNames = append(o.symNames, s)
	}
	o.symValues[s] = prop
}

func (o *baseObject) proto() *Object {
	return o.prototype
}

// setProto replaces the prototype reference. Cycles are legal here; all
// chain traversals carry a step budget instead.
func (o *baseObject) setProto(proto *Object, throw bool) bool {
	if o.prototype.SameAs(proto) {
		return true
	}
	if !o.extensible {
		return rejectResult(throw, "%s is not extensible", o.class)
	}
	o.prototype = proto
	return true
}

func (o *baseObject) isExtensible() bool {
	return o.extensible
}

func (o *baseObject) preventExtensions(bool) bool {
	o.extensible = false
	return true
}

func (o *baseObject) assertCallable() (func(FunctionCall) Value, bool) {
	return nil, false
}

func (o *baseObject) assertConstructor() (func(args []Value, newTarget Value) *Object, bool) {
	return nil, false
}

// isIntegerKey reports whether name is a canonical array-index string.
// Such keys enumerate first, in ascending numeric order.
func isIntegerKey(name string) (uint64, bool) {
	if name == "" || (len(name) > 1 && name[0] == '0') {
		return 0, false
	}
	u, err := strconv.ParseUint(name, 10, 53)
	if err != nil {
		return 0, false
	}
	return u, true
}

func (o *baseObject) orderedNames() []string {
	var intKeys []string
	var strKeys []string
	for _, k := range o.propNames {
		if _, ok := isIntegerKey(k); ok {
			intKeys = append(intKeys, k)
		} else {
			strKeys = append(strKeys, k)
		}
	}
	sort.Slice(intKeys, func(i, j int) bool {
		a, _ := isIntegerKey(intKeys[i])
		b, _ := isIntegerKey(intKeys[j])
		return a < b
	})
	return append(intKeys, strKeys...)
}

func (o *baseObject) ownKeys(all bool, keys []Value) []Value {
	for _, k := range o.orderedNames() {
		if !all {
			if prop, ok := o.values[k].(*valueProperty); ok && !prop.enumerable {
				continue
			}
		}
		keys = append(keys, newStringValue(k))
	}
	return keys
}

func (o *baseObject) ownSymbols() []*Symbol {
	res := make([]*Symbol, len(o.symNames))
	copy(res, o.symNames)
	return res
}

// ---- chain-walking resolution ----

// protoBudget returns the per-walk hop budget. Prototype cycles are
// legal, so every traversal is bounded and faults instead of hanging.
func (o *Object) protoBudget() int {
	return o.runtime.limits.maxPrototypeDepth
}

func (o *Object) budgetHop(budget *int) {
	*budget--
	if *budget < 0 {
		throwStackOverflow("Maximum prototype chain depth exceeded")
	}
}

// getStr walks the prototype chain for name. A data property returns
// its value; an accessor invokes the getter with this=receiver (the
// original target, not the owner). Absence yields nil.
func (o *Object) getStr(name string, receiver Value) Value {
	if receiver == nil {
		receiver = o
	}
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		if prop := cur.self.getOwnPropStr(name); prop != nil {
			if p, ok := prop.(*valueProperty); ok {
				return p.get(receiver)
			}
			return prop
		}
	}
	return nil
}

func (o *Object) getSym(s *Symbol, receiver Value) Value {
	if receiver == nil {
		receiver = o
	}
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		if prop := cur.self.getOwnPropSym(s); prop != nil {
			if p, ok := prop.(*valueProperty); ok {
				return p.get(receiver)
			}
			return prop
		}
	}
	return nil
}

func (o *Object) get(p Value, receiver Value) Value {
	if s, ok := p.(*Symbol); ok {
		return o.getSym(s, receiver)
	}
	return o.getStr(p.toString().String(), receiver)
}

// setStr walks the chain looking for an inherited accessor or a
// read-only data property; otherwise it creates or updates an own data
// property on the receiver.
func (o *Object) setStr(name string, val Value, receiver Value, throw bool) bool {
	if receiver == nil {
		receiver = o
	}
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		prop := cur.self.getOwnPropStr(name)
		if prop == nil {
			continue
		}
		if p, ok := prop.(*valueProperty); ok {
			if p.accessor {
				if p.setterFunc == nil {
					return rejectResult(throw, "Cannot set property %s which has only a getter", name)
				}
				p.set(receiver, val)
				return true
			}
			if !p.writable {
				return rejectResult(throw, "Cannot assign to read only property '%s'", name)
			}
		}
		break
	}

	robj, ok := receiver.(*Object)
	if !ok {
		return rejectResult(throw, "Cannot create property '%s' on primitive", name)
	}
	return robj.self.setOwnStr(name, val, throw)
}

func (o *Object) setSym(s *Symbol, val Value, receiver Value, throw bool) bool {
	if receiver == nil {
		receiver = o
	}
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		prop := cur.self.getOwnPropSym(s)
		if prop == nil {
			continue
		}
		if p, ok := prop.(*valueProperty); ok {
			if p.accessor {
				if p.setterFunc == nil {
					return rejectResult(throw, "Cannot set property %s which has only a getter", s.descString())
				}
				p.set(receiver, val)
				return true
			}
			if !p.writable {
				return rejectResult(throw, "Cannot assign to read only property '%s'", s.descString())
			}
		}
		break
	}

	robj, ok := receiver.(*Object)
	if !ok {
		return rejectResult(throw, "Cannot create property '%s' on primitive", s.descString())
	}
	return robj.self.setOwnSym(s, val, throw)
}

func (o *Object) set(p Value, val Value, receiver Value, throw bool) bool {
	if s, ok := p.(*Symbol); ok {
		return o.setSym(s, val, receiver, throw)
	}
	return o.setStr(p.toString().String(), val, receiver, throw)
}

func (o *Object) hasPropertyStr(name string) bool {
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		if cur.self.hasOwnPropertyStr(name) {
			return true
		}
	}
	return false
}

func (o *Object) hasPropertySym(s *Symbol) bool {
	budget := o.protoBudget()
	for cur := o; cur != nil; cur = cur.self.proto() {
		o.budgetHop(&budget)
		if cur.self.hasOwnPropertySym(s) {
			return true
		}
	}
	return false
}

func (o *Object) hasProperty(p Value) bool {
	if s, ok := p.(*Symbol); ok {
		return o.hasPropertySym(s)
	}
	return o.hasPropertyStr(p.toString().String())
}

// ---- enumeration ----

type propIterItem struct {
	name  string
	value Value
}

type iterNextFunc func() (propIterItem, iterNextFunc)

type objectPropIter struct {
	o         *baseObject
	propNames []string
	idx       int
}

// next walks a snapshot of the key list taken before any user code ran,
// so mutation during enumeration is well-defined: deleted entries are
// skipped, additions are not visited.
func (i *objectPropIter) next() (propIterItem, iterNextFunc) {
	for i.idx < len(i.propNames) {
		name := i.propNames[i.idx]
		i.idx++
		if prop, exists := i.o.values[name]; exists {
			return propIterItem{name: name, value: prop}, i.next
		}
	}
	return propIterItem{}, nil
}

func (o *baseObject) ownIter() iterNextFunc {
	names := o.orderedNames()
	return (&objectPropIter{
		o:         o,
		propNames: names,
	}).next
}

type propFilterIter struct {
	wrapped iterNextFunc
	all     bool
	seen    map[string]bool
}

func (i *propFilterIter) next() (propIterItem, iterNextFunc) {
	for {
		var item propIterItem
		item, i.wrapped = i.wrapped()
		if i.wrapped == nil {
			return propIterItem{}, nil
		}
		if i.seen[item.name] {
			continue
		}
		i.seen[item.name] = true
		if !i.all {
			if prop, ok := item.value.(*valueProperty); ok && !prop.enumerable {
				continue
			}
		}
		return item, i.next
	}
}

type recursiveIter struct {
	o       *Object
	wrapped iterNextFunc
	budget  int
}

func (iter *recursiveIter) next() (propIterItem, iterNextFunc) {
	item, next := iter.wrapped()
	if next != nil {
		iter.wrapped = next
		return item, iter.next
	}
	if proto := iter.o.self.proto(); proto != nil {
		iter.budget--
		if iter.budget < 0 {
			throwStackOverflow("Maximum prototype chain depth exceeded")
		}
		iter.o = proto
		iter.wrapped = proto.self.ownIter()
		return iter.next()
	}
	return propIterItem{}, nil
}

// enumerate iterates enumerable string-keyed properties of o and its
// prototype chain, shadowed names reported once. Symbol keys are
// excluded from this enumeration mode.
func (o *Object) enumerate() iterNextFunc {
	return (&propFilterIter{
		wrapped: (&recursiveIter{
			o:       o,
			wrapped: o.self.ownIter(),
			budget:  o.protoBudget(),
		}).next,
		seen: make(map[string]bool),
	}).next
}

// ---- public surface ----

// ClassName returns the object's class string.
func (o *Object) ClassName() string {
	return o.self.className()
}

// PrimitiveValue returns the boxed primitive of a wrapper object
// produced by ToObject on a primitive, or nil for ordinary objects.
func (o *Object) PrimitiveValue() Value {
	if p, ok := o.self.(*primitiveValueObject); ok {
		return p.pValue
	}
	return nil
}

// Get returns the value of the named property, walking the prototype
// chain. A missing property yields nil.
func (o *Object) Get(name string) Value {
	return o.getStr(name, nil)
}

// GetSymbol is Get for a symbol key.
func (o *Object) GetSymbol(s *Symbol) Value {
	return o.getSym(s, nil)
}

// Set assigns the named property following the full resolve-set
// protocol and returns an error on rejection.
func (o *Object) Set(name string, value Value) error {
	return tryFunc(func() {
		o.setStr(name, value, o, true)
	})
}

// SetSymbol is Set for a symbol key.
func (o *Object) SetSymbol(s *Symbol, value Value) error {
	return tryFunc(func() {
		o.setSym(s, value, o, true)
	})
}

// Has reports whether the key exists on o or anywhere on its chain.
func (o *Object) Has(name string) bool {
	return o.hasPropertyStr(name)
}

// Delete removes an own property. Deleting a non-configurable property
// fails without mutation.
func (o *Object) Delete(name string) bool {
	return o.self.deleteStr(name, false)
}

// DeleteSymbol is Delete for a symbol key.
func (o *Object) DeleteSymbol(s *Symbol) bool {
	return o.self.deleteSym(s, false)
}

// DefineDataProperty is the Go equivalent of Object.defineProperty with
// a data descriptor.
func (o *Object) DefineDataProperty(name string, value Value, writable, configurable, enumerable Flag) error {
	return tryFunc(func() {
		o.self.defineOwnPropertyStr(name, PropertyDescriptor{
			Value:        value,
			Writable:     writable,
			Configurable: configurable,
			Enumerable:   enumerable,
		}, true)
	})
}

// DefineAccessorProperty is the Go equivalent of Object.defineProperty
// with an accessor descriptor.
func (o *Object) DefineAccessorProperty(name string, getter, setter Value, configurable, enumerable Flag) error {
	return tryFunc(func() {
		o.self.defineOwnPropertyStr(name, PropertyDescriptor{
			Getter:       getter,
			Setter:       setter,
			Configurable: configurable,
			Enumerable:   enumerable,
		}, true)
	})
}

// DefineOwnProperty applies descr to the given key, returning false on
// invariant violation.
func (o *Object) DefineOwnProperty(key Value, descr PropertyDescriptor) bool {
	if s, ok := key.(*Symbol); ok {
		return o.self.defineOwnPropertySym(s, descr, false)
	}
	return o.self.defineOwnPropertyStr(key.toString().String(), descr, false)
}

// GetOwnPropertyDescriptor returns the descriptor tuple for an own
// property, or a zero descriptor if absent. The tuple matches the
// introspection surface bit-for-bit: plain stored values report
// writable/enumerable/configurable all true.
func (o *Object) GetOwnPropertyDescriptor(name string) PropertyDescriptor {
	prop := o.self.getOwnPropStr(name)
	if prop == nil {
		return PropertyDescriptor{}
	}
	if p, ok := prop.(*valueProperty); ok {
		return p.descriptor()
	}
	return PropertyDescriptor{
		Value:        prop,
		Writable:     FLAG_TRUE,
		Enumerable:   FLAG_TRUE,
		Configurable: FLAG_TRUE,
	}
}

// Keys returns the enumerable own string keys in enumeration order.
func (o *Object) Keys() []string {
	names := o.self.ownKeys(false, nil)
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, name.String())
	}
	return keys
}

// OwnKeys returns own string keys in enumeration order; all includes
// non-enumerable keys. Symbol keys are never included here.
func (o *Object) OwnKeys(all bool) []string {
	names := o.self.ownKeys(all, nil)
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, name.String())
	}
	return keys
}

// OwnSymbols returns own symbol keys in insertion order.
func (o *Object) OwnSymbols() []*Symbol {
	return o.self.ownSymbols()
}

// Prototype returns the prototype object, or nil.
func (o *Object) Prototype() *Object {
	return o.self.proto()
}

// SetPrototype replaces the prototype reference.
func (o *Object) SetPrototype(proto *Object) error {
	return tryFunc(func() {
		o.self.setProto(proto, true)
	})
}

// IsExtensible reports whether new properties may be added.
func (o *Object) IsExtensible() bool {
	return o.self.isExtensible()
}

// PreventExtensions clears the extensible flag.
func (o *Object) PreventExtensions() {
	o.self.preventExtensions(false)
}

// Freeze makes every own property non-writable and non-configurable and
// prevents extensions. The object stays alive and readable.
func (o *Object) Freeze() {
	for _, name := range o.OwnKeys(true) {
		if prop, ok := o.self.getOwnPropStr(name).(*valueProperty); ok {
			prop.configurable = false
			if !prop.accessor {
				prop.writable = false
			}
		} else if v := o.self.getOwnPropStr(name); v != nil {
			o.self.defineOwnPropertyStr(name, PropertyDescriptor{
				Value:        v,
				Writable:     FLAG_FALSE,
				Configurable: FLAG_FALSE,
				Enumerable:   FLAG_TRUE,
			}, false)
		}
	}
	for _, s := range o.self.ownSymbols() {
		if prop, ok := o.self.getOwnPropSym(s).(*valueProperty); ok {
			prop.configurable = false
			if !prop.accessor {
				prop.writable = false
			}
		} else if v := o.self.getOwnPropSym(s); v != nil {
			o.self.defineOwnPropertySym(s, PropertyDescriptor{
				Value:        v,
				Writable:     FLAG_FALSE,
				Configurable: FLAG_FALSE,
				Enumerable:   FLAG_TRUE,
			}, false)
		}
	}
	o.self.preventExtensions(false)
}

// IsFrozen reports whether the object is non-extensible and every own
// property is non-configurable and, for data properties, non-writable.
func (o *Object) IsFrozen() bool {
	if o.self.isExtensible() {
		return false
	}
	for _, name := range o.OwnKeys(true) {
		prop, ok := o.self.getOwnPropStr(name).(*valueProperty)
		if !ok {
			return false
		}
		if prop.configurable || (!prop.accessor && prop.writable) {
			return false
		}
	}
	for _, s := range o.self.ownSymbols() {
		prop, ok := o.self.getOwnPropSym(s).(*valueProperty)
		if !ok {
			return false
		}
		if prop.configurable || (!prop.accessor && prop.writable) {
			return false
		}
	}
	return true
}
