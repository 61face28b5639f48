package sazan

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

type hint int

const (
	hintDefault hint = iota
	hintNumber
	hintString
)

func (h hint) String() string {
	switch h {
	case hintNumber:
		return "number"
	case hintString:
		return "string"
	}
	return "default"
}

// decimalLiteral is the numeric-literal grammar used by string->number
// coercion. Compiled in the ECMAScript dialect so the accepted forms
// track the specification grammar rather than Go's.
var decimalLiteral = regexp2.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`, regexp2.ECMAScript)

// toPrimitive converts v to a primitive value. Primitives pass through
// untouched. For objects the user-overridable protocol runs: the
// well-known toPrimitive symbol method first, then valueOf/toString in
// hint order. The method calls may run arbitrary user code, including
// code that mutates the object or re-enters coercion; nothing here is
// cached or short-circuited around that.
func (r *Runtime) toPrimitive(v Value, h hint) Value {
	o, ok := v.(*Object)
	if !ok {
		return v
	}

	if exotic := toMethod(o.getSym(r.symToPrimitive, nil)); exotic != nil {
		res := r.invoke(exotic, o, newStringValue(h.String()))
		if _, stillObject := res.(*Object); !stillObject {
			return res
		}
		throwTypeError("Cannot convert object to primitive value")
	}

	if h == hintNumber {
		if res := r.tryPrimitiveMethod(o, "valueOf"); res != nil {
			return res
		}
		if res := r.tryPrimitiveMethod(o, "toString"); res != nil {
			return res
		}
	} else {
		if res := r.tryPrimitiveMethod(o, "toString"); res != nil {
			return res
		}
		if res := r.tryPrimitiveMethod(o, "valueOf"); res != nil {
			return res
		}
	}

	throwTypeError("Cannot convert object to primitive value")
	return nil
}

// tryPrimitiveMethod invokes the named method if it is callable and
// returns its result when that result is primitive; nil means "keep
// trying".
func (r *Runtime) tryPrimitiveMethod(o *Object, methodName string) Value {
	method, ok := o.getStr(methodName, nil).(*Object)
	if !ok {
		return nil
	}
	if _, ok := method.self.assertCallable(); !ok {
		return nil
	}
	v := r.invoke(method, o)
	if _, fail := v.(*Object); !fail {
		return v
	}
	return nil
}

// ToBoolean converts any value to a boolean. Never runs user code.
func (r *Runtime) ToBoolean(v Value) bool {
	return v.ToBoolean()
}

// ToNumber converts v to a number value, running the object-to-primitive
// protocol for objects. Symbols and bigints fail.
func (r *Runtime) ToNumber(v Value) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = r.toNumber(v)
	})
	return res, err
}

func (r *Runtime) toNumber(v Value) Value {
	if o, ok := v.(*Object); ok {
		return r.toPrimitive(o, hintNumber).ToNumber()
	}
	return v.ToNumber()
}

// ToString converts v to a string value. Objects convert through
// ToPrimitive with the string hint, then the primitive stringifies.
func (r *Runtime) ToString(v Value) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = r.toString(v)
	})
	return res, err
}

func (r *Runtime) toString(v Value) valueString {
	if o, ok := v.(*Object); ok {
		return r.toPrimitive(o, hintString).toString()
	}
	return v.toString()
}

// ToPrimitiveNumber applies ToPrimitive with the number hint.
func (r *Runtime) ToPrimitiveNumber(v Value) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = r.toPrimitive(v, hintNumber)
	})
	return res, err
}

// ToPrimitiveString applies ToPrimitive with the string hint.
func (r *Runtime) ToPrimitiveString(v Value) (Value, error) {
	var res Value
	err := tryFunc(func() {
		res = r.toPrimitive(v, hintString)
	})
	return res, err
}

// isStrWhiteSpace matches the specification's StrWhiteSpaceChar set.
func isStrWhiteSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\n', '\r', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// parseNumericString implements the string numeric-literal grammar:
// empty or whitespace-only is 0, radix prefixes are honoured, Infinity
// is literal, anything unparsable is NaN.
func parseNumericString(s string) Value {
	s = strings.TrimFunc(s, isStrWhiteSpace)
	if s == "" {
		return intToValue(0)
	}

	switch s {
	case "Infinity", "+Infinity":
		return _positiveInf
	case "-Infinity":
		return _negativeInf
	}

	if len(s) > 2 && s[0] == '0' {
		var base int
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if u, err := strconv.ParseUint(s[2:], base, 64); err == nil {
				return floatToIntValue(float64(u))
			}
			if i, ok := new(big.Int).SetString(s[2:], base); ok {
				f, _ := new(big.Float).SetInt(i).Float64()
				return floatToValue(f)
			}
			return _NaN
		}
	}

	if match, _ := decimalLiteral.MatchString(s); !match {
		return _NaN
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return _NaN
	}
	return floatToIntValue(f)
}
