package sazan

import (
	"math"
	"math/big"
)

type valueBigInt struct {
	*big.Int
}

func newBigInt(i *big.Int) valueBigInt {
	return valueBigInt{Int: i}
}

// NewBigInt wraps a big integer as an engine value.
func NewBigInt(i *big.Int) Value {
	return newBigInt(new(big.Int).Set(i))
}

func isBigInt(v Value) bool {
	_, ok := v.(valueBigInt)
	return ok
}

func (b valueBigInt) Tag() Tag { return TagBigInt }

func (b valueBigInt) ToInteger() int64 {
	throwTypeError("Cannot convert a BigInt value to a number")
	return 0
}

func (b valueBigInt) toString() valueString {
	return valueString(b.Int.String())
}

func (b valueBigInt) String() string {
	return b.Int.String()
}

func (b valueBigInt) ToFloat() float64 {
	throwTypeError("Cannot convert a BigInt value to a number")
	return 0
}

// ToNumber is a hard failure: bigint to number conversion must be
// requested explicitly (toFloatExplicit), never implied by arithmetic.
func (b valueBigInt) ToNumber() Value {
	throwTypeError("Cannot convert a BigInt value to a number")
	return nil
}

// toFloatExplicit is the explicit conversion used by Number(bigint).
func (b valueBigInt) toFloatExplicit() float64 {
	f, _ := new(big.Float).SetInt(b.Int).Float64()
	return f
}

func (b valueBigInt) ToBoolean() bool {
	return b.Int.Sign() != 0
}

func (b valueBigInt) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(b, r.global.ObjectPrototype, classBigInt)
}

func (b valueBigInt) SameAs(other Value) bool {
	if o, ok := other.(valueBigInt); ok {
		return b.Int.Cmp(o.Int) == 0
	}
	return false
}

func (b valueBigInt) Equals(other Value) bool {
	switch o := other.(type) {
	case valueBigInt:
		return b.Int.Cmp(o.Int) == 0
	case valueInt:
		return b.Int.IsInt64() && b.Int.Int64() == int64(o)
	case valueFloat:
		f := float64(o)
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
			return false
		}
		fi, acc := big.NewFloat(f).Int(nil)
		return acc == big.Exact && b.Int.Cmp(fi) == 0
	case valueString:
		if i, ok := new(big.Int).SetString(string(o), 10); ok {
			return b.Int.Cmp(i) == 0
		}
		return false
	case valueBool:
		return b.Equals(o.ToNumber())
	case *Object:
		return b.Equals(o.runtime.toPrimitive(o, hintDefault))
	}
	return false
}

func (b valueBigInt) StrictEquals(other Value) bool {
	if o, ok := other.(valueBigInt); ok {
		return b.Int.Cmp(o.Int) == 0
	}
	return false
}

func (b valueBigInt) baseObject(r *Runtime) *Object {
	return r.global.ObjectPrototype
}
