package sazan

import (
	"math"
	"regexp"
	"strconv"
)

type valueString string

const (
	stringEmpty     valueString = ""
	stringTrue      valueString = "true"
	stringFalse     valueString = "false"
	stringNull      valueString = "null"
	stringUndefined valueString = "undefined"
	stringNaN       valueString = "NaN"
)

func newStringValue(s string) Value {
	return valueString(s)
}

var matchLeading0Exponent = regexp.MustCompile(`([eE][+\-])0+([1-9])`) // 1e-07 => 1e-7

// fToStr formats a float the way the language specification prints
// numbers: integral doubles without a trailing fraction, NaN/Infinity as
// literal words, exponent notation outside [1e-6, 1e21).
func fToStr(value float64) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	if math.IsInf(value, 0) {
		if math.Signbit(value) {
			return "-Infinity"
		}
		return "Infinity"
	}
	if value == 0 {
		return "0"
	}
	exponent := math.Log10(math.Abs(value))
	if exponent >= 21 || exponent < -6 {
		return matchLeading0Exponent.ReplaceAllString(strconv.FormatFloat(value, 'g', -1, 64), "$1$2")
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (s valueString) Tag() Tag { return TagString }

func (s valueString) ToInteger() int64 {
	return s.ToNumber().ToInteger()
}

func (s valueString) toString() valueString {
	return s
}

func (s valueString) String() string {
	return string(s)
}

func (s valueString) ToFloat() float64 {
	return s.ToNumber().ToFloat()
}

func (s valueString) ToNumber() Value {
	return parseNumericString(string(s))
}

func (s valueString) ToBoolean() bool {
	return len(s) > 0
}

func (s valueString) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(s, r.global.ObjectPrototype, classString)
}

func (s valueString) SameAs(other Value) bool {
	if o, ok := other.(valueString); ok {
		return s == o
	}
	return false
}

func (s valueString) Equals(other Value) bool {
	switch o := other.(type) {
	case valueString:
		return s == o
	case valueInt, valueFloat:
		return s.ToNumber().Equals(o)
	case valueBool:
		return s.ToNumber().Equals(o.ToNumber())
	case valueBigInt:
		return o.Equals(s)
	case *Object:
		return s.Equals(o.runtime.toPrimitive(o, hintDefault))
	}
	return false
}

func (s valueString) StrictEquals(other Value) bool {
	if o, ok := other.(valueString); ok {
		return s == o
	}
	return false
}

func (s valueString) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}

func (s valueString) concat(other valueString) valueString {
	return s + other
}

func (s valueString) length() int {
	return len(s)
}
