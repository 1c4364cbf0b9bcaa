package tung

import (
	"math"
	"strconv"
	"unicode/utf8"
)

func builtinLen(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	switch arg := args[0]; arg.Kind() {
	case KindString:
		return NewInt(int64(utf8.RuneCountInString(arg.Str()))), nil
	case KindArray:
		return NewInt(int64(len(arg.Array()))), nil
	case KindDict:
		return NewInt(int64(len(arg.Dict()))), nil
	default:
		return NewUndefined(), nil
	}
}

func builtinAbs(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	switch arg := args[0]; arg.Kind() {
	case KindInt:
		switch n := arg.Int(); {
		case n == math.MinInt64:
			// -MinInt64 overflows int64.
			return NewFloat(-float64(n)), nil
		case n < 0:
			return NewInt(-n), nil
		}
		return arg, nil
	case KindFloat:
		return NewFloat(math.Abs(arg.Float())), nil
	default:
		return NewUndefined(), nil
	}
}

func builtinInt(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	switch arg := args[0]; arg.Kind() {
	case KindInt:
		return arg, nil
	case KindFloat:
		f := arg.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NewUndefined(), nil
		}
		return NewInt(int64(f)), nil
	case KindString:
		i, err := strconv.ParseInt(arg.Str(), 10, 64)
		if err != nil {
			return NewUndefined(), nil
		}
		return NewInt(i), nil
	case KindBool:
		if arg.Bool() {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	default:
		return NewUndefined(), nil
	}
}

// builtinStr renders a value the way print does.
func builtinStr(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	return NewString(args[0].String()), nil
}

func builtinFloat(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	switch arg := args[0]; arg.Kind() {
	case KindInt, KindFloat:
		return NewFloat(arg.Float()), nil
	case KindString:
		f, err := strconv.ParseFloat(arg.Str(), 64)
		if err != nil {
			return NewUndefined(), nil
		}
		return NewFloat(f), nil
	case KindBool:
		if arg.Bool() {
			return NewFloat(1), nil
		}
		return NewFloat(0), nil
	default:
		return NewUndefined(), nil
	}
}

func builtinBool(_ *Registry, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewUndefined(), nil
	}
	return NewBool(args[0].Truthy()), nil
}
