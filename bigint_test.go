package sazan

import (
	"math/big"
	"testing"
)

func TestBigIntEquality(t *testing.T) {
	one := NewBigInt(big.NewInt(1))
	if !one.Equals(intToValue(1)) {
		t.Fatal("1n == 1 must hold")
	}
	if !one.Equals(floatToValue(1.0)) {
		t.Fatal("1n == 1.0 must hold")
	}
	if one.Equals(floatToValue(1.5)) {
		t.Fatal("1n == 1.5 must not hold")
	}
	if one.Equals(_NaN) {
		t.Fatal("1n == NaN must not hold")
	}
	if !one.Equals(newStringValue("1")) {
		t.Fatal("1n == '1' must hold")
	}
	if one.Equals(newStringValue("1.0")) {
		t.Fatal("1n == '1.0' must not hold; bigint strings are integral")
	}
	if one.StrictEquals(intToValue(1)) {
		t.Fatal("1n === 1 must not hold across tags")
	}
	if !one.StrictEquals(NewBigInt(big.NewInt(1))) {
		t.Fatal("bigints compare by numeric value")
	}
	if !one.SameAs(NewBigInt(big.NewInt(1))) {
		t.Fatal("SameValue on bigints compares numerically")
	}
}

func TestBigIntImplicitNumberFails(t *testing.T) {
	v := NewBigInt(big.NewInt(7))
	err := tryFunc(func() {
		_ = v.ToNumber()
	})
	if _, ok := err.(*TypeCoercionError); !ok {
		t.Fatalf("expected TypeCoercionError, got %v", err)
	}
	err = tryFunc(func() {
		_ = v.ToFloat()
	})
	if _, ok := err.(*TypeCoercionError); !ok {
		t.Fatalf("expected TypeCoercionError from ToFloat, got %v", err)
	}
}

func TestBigIntExplicitConversion(t *testing.T) {
	v := newBigInt(big.NewInt(1 << 40))
	if f := v.toFloatExplicit(); f != float64(1<<40) {
		t.Fatalf("unexpected explicit conversion: %v", f)
	}
	if v.String() != "1099511627776" {
		t.Fatalf("unexpected string form: %q", v.String())
	}
	if !v.ToBoolean() {
		t.Fatal("non-zero bigint must be truthy")
	}
	if NewBigInt(big.NewInt(0)).ToBoolean() {
		t.Fatal("zero bigint must be falsy")
	}
}

func TestBigIntIndependentCopy(t *testing.T) {
	src := big.NewInt(5)
	v := NewBigInt(src)
	src.SetInt64(99)
	if !v.Equals(intToValue(5)) {
		t.Fatal("NewBigInt must copy its argument")
	}
	if v.Tag() != TagBigInt {
		t.Fatalf("unexpected tag: %v", v.Tag())
	}
}
