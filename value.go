package sazan

import (
	"fmt"
	"math"
	"strconv"
)

// Tag identifies the language-level kind of a value.
type Tag int

const (
	TagUndefined Tag = iota
	TagNull
	TagBoolean
	TagNumber
	TagString
	TagSymbol
	TagBigInt
	TagObject
	TagFunction
)

func (t Tag) String() string {
	switch t {
	case TagUndefined:
		return "undefined"
	case TagNull:
		return "null"
	case TagBoolean:
		return "boolean"
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagSymbol:
		return "symbol"
	case TagBigInt:
		return "bigint"
	case TagObject:
		return "object"
	case TagFunction:
		return "function"
	}
	return "unknown"
}

var (
	valueFalse    Value = valueBool(false)
	valueTrue     Value = valueBool(true)
	_null         Value = valueNull{}
	_NaN          Value = valueFloat(math.NaN())
	_positiveInf  Value = valueFloat(math.Inf(+1))
	_negativeInf  Value = valueFloat(math.Inf(-1))
	_positiveZero Value = valueInt(0)
	negativeZero        = math.Float64frombits(1 << 63)
	_negativeZero Value = valueFloat(negativeZero)
	_undefined    Value = valueUndefined{}
)

var intCache [256]Value

// Value is the engine's tagged union. Primitive kinds carry their
// payload directly; *Object values are compared by identity. Conversions
// on primitives never run user code; conversions on objects delegate to
// the coercion engine and may re-enter arbitrary script code.
type Value interface {
	Tag() Tag
	ToInteger() int64
	toString() valueString
	String() string
	ToFloat() float64
	ToNumber() Value
	ToBoolean() bool
	ToObject(r *Runtime) *Object

	// SameAs implements SameValue: NaN equals itself, +0 and -0 differ.
	SameAs(Value) bool
	// Equals implements loose equality: coerce, then compare.
	Equals(Value) bool
	// StrictEquals implements strict equality: same tag, NaN never
	// equals NaN, +0 equals -0.
	StrictEquals(Value) bool

	baseObject(r *Runtime) *Object
}

type valueInt int64
type valueFloat float64
type valueBool bool
type valueNull struct{}
type valueUndefined struct {
	valueNull
}

// Symbol is a unique property key. Two symbols are equal only if they
// are the same instance, regardless of description.
type Symbol struct {
	desc string
}

// NewSymbol creates a fresh, unregistered symbol.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// valueUnresolved is the poisoned result of a failed identifier lookup.
// It defers the UnboundIdentifierError until the value is actually used.
type valueUnresolved struct {
	ref string
}

func intToValue(i int64) Value {
	if i >= -128 && i <= 127 {
		return intCache[i+128]
	}
	return valueInt(i)
}

func floatToValue(f float64) Value {
	return valueFloat(f)
}

// floatToIntValue normalizes a float holding an integral value into the
// int representation, preserving -0 as a float.
func floatToIntValue(f float64) Value {
	if i := int64(f); float64(i) == f && !(i == 0 && math.Signbit(f)) {
		return intToValue(i)
	}
	return valueFloat(f)
}

func (i valueInt) Tag() Tag { return TagNumber }

func (i valueInt) ToInteger() int64 {
	return int64(i)
}

func (i valueInt) toString() valueString {
	return valueString(i.String())
}

func (i valueInt) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i valueInt) ToFloat() float64 {
	return float64(int64(i))
}

func (i valueInt) ToBoolean() bool {
	return i != 0
}

func (i valueInt) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(i, r.global.ObjectPrototype, classNumber)
}

func (i valueInt) ToNumber() Value {
	return i
}

func (i valueInt) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return o.SameAs(i)
	}
	return false
}

func (i valueInt) Equals(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return float64(i) == float64(o)
	case valueString:
		return o.ToNumber().Equals(i)
	case valueBool:
		return int64(i) == o.ToInteger()
	case valueBigInt:
		return o.Equals(i)
	case *Object:
		return i.Equals(o.runtime.toPrimitive(o, hintDefault))
	}

	return false
}

func (i valueInt) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return float64(i) == float64(o)
	}

	return false
}

func (i valueInt) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}

func (b valueBool) Tag() Tag { return TagBoolean }

func (b valueBool) ToInteger() int64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) toString() valueString {
	if b {
		return stringTrue
	}
	return stringFalse
}

func (b valueBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b valueBool) ToFloat() float64 {
	if b {
		return 1.0
	}
	return 0
}

func (b valueBool) ToBoolean() bool {
	return bool(b)
}

func (b valueBool) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(b, r.global.ObjectPrototype, classBoolean)
}

func (b valueBool) ToNumber() Value {
	if b {
		return intToValue(1)
	}
	return intToValue(0)
}

func (b valueBool) SameAs(other Value) bool {
	if o, ok := other.(valueBool); ok {
		return b == o
	}
	return false
}

func (b valueBool) Equals(other Value) bool {
	if o, ok := other.(valueBool); ok {
		return b == o
	}

	if b {
		return other.Equals(intToValue(1))
	}
	return other.Equals(intToValue(0))
}

func (b valueBool) StrictEquals(other Value) bool {
	if o, ok := other.(valueBool); ok {
		return b == o
	}
	return false
}

func (b valueBool) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}

func (n valueNull) Tag() Tag { return TagNull }

func (n valueNull) ToInteger() int64 {
	return 0
}

func (n valueNull) toString() valueString {
	return stringNull
}

func (n valueNull) String() string {
	return "null"
}

func (n valueNull) ToFloat() float64 {
	return 0
}

func (n valueNull) ToBoolean() bool {
	return false
}

func (n valueNull) ToObject(r *Runtime) *Object {
	throwTypeError("Cannot convert undefined or null to object")
	return nil
}

func (n valueNull) ToNumber() Value {
	return intToValue(0)
}

func (n valueNull) SameAs(other Value) bool {
	_, same := other.(valueNull)
	return same
}

func (n valueNull) Equals(other Value) bool {
	switch other.(type) {
	case valueUndefined, valueNull:
		return true
	}
	return false
}

func (n valueNull) StrictEquals(other Value) bool {
	_, same := other.(valueNull)
	return same
}

func (n valueNull) baseObject(*Runtime) *Object {
	return nil
}

func (u valueUndefined) Tag() Tag { return TagUndefined }

func (u valueUndefined) toString() valueString {
	return stringUndefined
}

func (u valueUndefined) String() string {
	return "undefined"
}

func (u valueUndefined) ToNumber() Value {
	return _NaN
}

func (u valueUndefined) ToFloat() float64 {
	return math.NaN()
}

func (u valueUndefined) SameAs(other Value) bool {
	_, same := other.(valueUndefined)
	return same
}

func (u valueUndefined) StrictEquals(other Value) bool {
	_, same := other.(valueUndefined)
	return same
}

func (f valueFloat) Tag() Tag { return TagNumber }

func (f valueFloat) ToInteger() int64 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case math.IsInf(float64(f), 1):
		return math.MaxInt64
	case math.IsInf(float64(f), -1):
		return math.MinInt64
	}
	return int64(f)
}

func (f valueFloat) toString() valueString {
	return valueString(f.String())
}

func (f valueFloat) String() string {
	return fToStr(float64(f))
}

func (f valueFloat) ToFloat() float64 {
	return float64(f)
}

func (f valueFloat) ToBoolean() bool {
	return float64(f) != 0 && !math.IsNaN(float64(f))
}

func (f valueFloat) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(f, r.global.ObjectPrototype, classNumber)
}

func (f valueFloat) ToNumber() Value {
	return f
}

func (f valueFloat) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		this := float64(f)
		that := float64(o)
		if math.IsNaN(this) && math.IsNaN(that) {
			return true
		}
		ret := this == that
		if ret && this == 0 {
			ret = math.Signbit(this) == math.Signbit(that)
		}
		return ret
	case valueInt:
		this := float64(f)
		ret := this == float64(o)
		if ret && this == 0 {
			ret = !math.Signbit(this)
		}
		return ret
	}

	return false
}

func (f valueFloat) Equals(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		return f == o
	case valueInt:
		return float64(f) == float64(o)
	case valueString, valueBool:
		return float64(f) == o.ToFloat()
	case valueBigInt:
		return o.Equals(f)
	case *Object:
		return f.Equals(o.runtime.toPrimitive(o, hintDefault))
	}

	return false
}

func (f valueFloat) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		return f == o
	case valueInt:
		return float64(f) == float64(o)
	}

	return false
}

func (f valueFloat) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}

func (o *Object) Tag() Tag {
	if _, ok := o.self.assertCallable(); ok {
		return TagFunction
	}
	return TagObject
}

func (o *Object) ToInteger() int64 {
	return o.runtime.toPrimitive(o, hintNumber).ToNumber().ToInteger()
}

func (o *Object) toString() valueString {
	return o.runtime.toPrimitive(o, hintString).toString()
}

func (o *Object) String() string {
	return o.runtime.toPrimitive(o, hintString).String()
}

func (o *Object) ToFloat() float64 {
	return o.runtime.toPrimitive(o, hintNumber).ToFloat()
}

func (o *Object) ToBoolean() bool {
	return true
}

func (o *Object) ToObject(*Runtime) *Object {
	return o
}

func (o *Object) ToNumber() Value {
	return o.runtime.toPrimitive(o, hintNumber).ToNumber()
}

func (o *Object) SameAs(other Value) bool {
	if other, ok := other.(*Object); ok {
		return o == other
	}
	return false
}

func (o *Object) Equals(other Value) bool {
	if other, ok := other.(*Object); ok {
		return o == other
	}

	switch o1 := other.(type) {
	case valueInt, valueFloat, valueString, valueBigInt:
		return o.runtime.toPrimitive(o, hintDefault).Equals(other)
	case valueBool:
		return o.Equals(o1.ToNumber())
	}

	return false
}

func (o *Object) StrictEquals(other Value) bool {
	if other, ok := other.(*Object); ok {
		return o == other
	}
	return false
}

func (o *Object) baseObject(*Runtime) *Object {
	return o
}

func (s *Symbol) Tag() Tag { return TagSymbol }

// Description returns the symbol's description string.
func (s *Symbol) Description() string {
	return s.desc
}

func (s *Symbol) ToInteger() int64 {
	throwTypeError("Cannot convert a Symbol value to a number")
	return 0
}

func (s *Symbol) toString() valueString {
	throwTypeError("Cannot convert a Symbol value to a string")
	return stringEmpty
}

func (s *Symbol) String() string {
	return s.descString()
}

func (s *Symbol) ToFloat() float64 {
	throwTypeError("Cannot convert a Symbol value to a number")
	return 0
}

func (s *Symbol) ToNumber() Value {
	throwTypeError("Cannot convert a Symbol value to a number")
	return nil
}

func (s *Symbol) ToBoolean() bool {
	return true
}

func (s *Symbol) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(s, r.global.ObjectPrototype, classObject)
}

func (s *Symbol) SameAs(other Value) bool {
	if s1, ok := other.(*Symbol); ok {
		return s == s1
	}
	return false
}

func (s *Symbol) Equals(o Value) bool {
	return s.SameAs(o)
}

func (s *Symbol) StrictEquals(o Value) bool {
	return s.SameAs(o)
}

func (s *Symbol) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}

func (s *Symbol) descString() string {
	return fmt.Sprintf("Symbol(%s)", s.desc)
}

func (o valueUnresolved) throw() {
	panic(&UnboundIdentifierError{Name: o.ref})
}

func (o valueUnresolved) Tag() Tag {
	o.throw()
	return TagUndefined
}

func (o valueUnresolved) ToInteger() int64 {
	o.throw()
	return 0
}

func (o valueUnresolved) toString() valueString {
	o.throw()
	return stringEmpty
}

func (o valueUnresolved) String() string {
	o.throw()
	return ""
}

func (o valueUnresolved) ToFloat() float64 {
	o.throw()
	return 0
}

func (o valueUnresolved) ToBoolean() bool {
	o.throw()
	return false
}

func (o valueUnresolved) ToObject(*Runtime) *Object {
	o.throw()
	return nil
}

func (o valueUnresolved) ToNumber() Value {
	o.throw()
	return nil
}

func (o valueUnresolved) SameAs(Value) bool {
	o.throw()
	return false
}

func (o valueUnresolved) Equals(Value) bool {
	o.throw()
	return false
}

func (o valueUnresolved) StrictEquals(Value) bool {
	o.throw()
	return false
}

func (o valueUnresolved) baseObject(*Runtime) *Object {
	o.throw()
	return nil
}

// Undefined returns the undefined value.
func Undefined() Value { return _undefined }

// Null returns the null value.
func Null() Value { return _null }

// IsUndefined reports whether v is the undefined value.
func IsUndefined(v Value) bool {
	_, ok := v.(valueUndefined)
	return ok
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	_, ok := v.(valueNull)
	return ok
}

func init() {
	for i := 0; i < 256; i++ {
		intCache[i] = valueInt(i - 128)
	}
	_positiveZero = intToValue(0)
}
