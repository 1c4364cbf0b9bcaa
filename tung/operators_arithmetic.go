package tung

import (
	"fmt"
	"math"
	"strings"
)

// maxRepeatLength bounds the size of a repeated string or array.
const maxRepeatLength = 1 << 20

func addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() + right.Int()), nil
	case left.IsNumeric() && right.IsNumeric():
		return NewFloat(left.Float() + right.Float()), nil
	case left.Kind() == KindString || right.Kind() == KindString:
		return NewString(left.String() + right.String()), nil
	case left.Kind() == KindArray && right.Kind() == KindArray:
		lArr, rArr := left.Array(), right.Array()
		out := make([]Value, len(lArr)+len(rArr))
		copy(out, lArr)
		copy(out[len(lArr):], rArr)
		return NewArray(out), nil
	case left.Kind() == KindArray:
		lArr := left.Array()
		out := make([]Value, len(lArr), len(lArr)+1)
		copy(out, lArr)
		return NewArray(append(out, right)), nil
	case right.Kind() == KindArray:
		rArr := right.Array()
		out := make([]Value, 0, len(rArr)+1)
		out = append(out, left)
		return NewArray(append(out, rArr...)), nil
	default:
		return NewUndefined(), unsupported("+", left, right)
	}
}

func subtractValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() - right.Int()), nil
	case left.IsNumeric() && right.IsNumeric():
		return NewFloat(left.Float() - right.Float()), nil
	default:
		return NewUndefined(), unsupported("-", left, right)
	}
}

func multiplyValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() * right.Int()), nil
	case left.IsNumeric() && right.IsNumeric():
		return NewFloat(left.Float() * right.Float()), nil
	case left.Kind() == KindString && right.Kind() == KindInt:
		return repeatString(left.Str(), right.Int())
	case left.Kind() == KindInt && right.Kind() == KindString:
		return repeatString(right.Str(), left.Int())
	case left.Kind() == KindArray && right.Kind() == KindInt:
		return repeatArray(left.Array(), right.Int())
	case left.Kind() == KindInt && right.Kind() == KindArray:
		return repeatArray(right.Array(), left.Int())
	default:
		return NewUndefined(), unsupported("*", left, right)
	}
}

func divideValues(left, right Value) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return NewUndefined(), unsupported("/", left, right)
	}
	if isZero(right) {
		return NewUndefined(), ErrDivisionByZero
	}
	return NewFloat(left.Float() / right.Float()), nil
}

func floorDivideValues(left, right Value) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return NewUndefined(), unsupported("//", left, right)
	}
	if isZero(right) {
		return NewUndefined(), ErrDivisionByZero
	}
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return NewInt(q), nil
	}
	return NewInt(int64(math.Floor(left.Float() / right.Float()))), nil
}

func moduloValues(left, right Value) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return NewUndefined(), unsupported("%", left, right)
	}
	if isZero(right) {
		return NewUndefined(), ErrDivisionByZero
	}
	if left.Kind() == KindInt && right.Kind() == KindInt {
		return NewInt(left.Int() % right.Int()), nil
	}
	return NewFloat(math.Mod(left.Float(), right.Float())), nil
}

func powerValues(left, right Value) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return NewUndefined(), unsupported("**", left, right)
	}
	return NewFloat(math.Pow(left.Float(), right.Float())), nil
}

func isZero(v Value) bool {
	if v.Kind() == KindInt {
		return v.Int() == 0
	}
	return v.Float() == 0
}

func repeatString(s string, n int64) (Value, error) {
	if n <= 0 || s == "" {
		return NewString(""), nil
	}
	if n > maxRepeatLength/int64(len(s)) {
		return NewUndefined(), fmt.Errorf("string repeat of %d exceeds %d bytes", n, maxRepeatLength)
	}
	return NewString(strings.Repeat(s, int(n))), nil
}

func repeatArray(elems []Value, n int64) (Value, error) {
	if n <= 0 || len(elems) == 0 {
		return NewArray([]Value{}), nil
	}
	if n > maxRepeatLength/int64(len(elems)) {
		return NewUndefined(), fmt.Errorf("array repeat of %d exceeds %d elements", n, maxRepeatLength)
	}
	out := make([]Value, 0, len(elems)*int(n))
	for range n {
		out = append(out, elems...)
	}
	return NewArray(out), nil
}
