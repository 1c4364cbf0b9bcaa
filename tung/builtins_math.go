package tung

import (
	"fmt"
	"math"
)

// builtinRange returns [0, end) for one argument and [start, end) for two.
// Anything other than one or two Integers is misuse.
func builtinRange(_ *Registry, args []Value) (Value, error) {
	var start, end int64
	switch {
	case len(args) == 1 && args[0].Kind() == KindInt:
		end = args[0].Int()
	case len(args) == 2 && args[0].Kind() == KindInt && args[1].Kind() == KindInt:
		start, end = args[0].Int(), args[1].Int()
	default:
		return NewUndefined(), nil
	}
	if end <= start {
		return NewArray([]Value{}), nil
	}
	if uint64(end-start) > maxRepeatLength {
		return NewUndefined(), fmt.Errorf("range of %d elements exceeds %d", uint64(end-start), maxRepeatLength)
	}
	out := make([]Value, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, NewInt(i))
	}
	return NewArray(out), nil
}

func builtinMin(_ *Registry, args []Value) (Value, error) {
	return extremum(args, -1), nil
}

func builtinMax(_ *Registry, args []Value) (Value, error) {
	return extremum(args, 1), nil
}

// extremum scans either a single array argument or the argument list and
// keeps the element that orders as want (-1 for min, 1 for max) against the
// current pick. Pairs with no defined order are skipped.
func extremum(args []Value, want int) Value {
	candidates := args
	if len(args) > 0 && args[0].Kind() == KindArray {
		candidates = args[0].Array()
	}
	if len(candidates) == 0 {
		return NewUndefined()
	}
	best := candidates[0]
	for _, v := range candidates[1:] {
		if cmp, ok := orderValues(v, best); ok && cmp == want {
			best = v
		}
	}
	return best
}

// builtinSum adds the numbers in an array, staying Integer until a Float
// appears.
func builtinSum(_ *Registry, args []Value) (Value, error) {
	if len(args) == 0 {
		return NewInt(0), nil
	}
	if args[0].Kind() != KindArray {
		return NewUndefined(), nil
	}
	var (
		sumInt   int64
		sumFloat float64
		isFloat  bool
	)
	for _, v := range args[0].Array() {
		switch v.Kind() {
		case KindInt:
			if isFloat {
				sumFloat += v.Float()
			} else {
				sumInt += v.Int()
			}
		case KindFloat:
			if !isFloat {
				sumFloat = float64(sumInt)
				isFloat = true
			}
			sumFloat += v.Float()
		default:
			return NewUndefined(), nil
		}
	}
	if isFloat {
		return NewFloat(sumFloat), nil
	}
	return NewInt(sumInt), nil
}

// builtinRound rounds half away from zero. Without digits the result is an
// Integer; with digits it stays a Float.
func builtinRound(_ *Registry, args []Value) (Value, error) {
	if len(args) == 0 {
		return NewUndefined(), nil
	}
	var digits int64
	if len(args) > 1 && args[1].Kind() == KindInt {
		digits = args[1].Int()
	}
	switch v := args[0]; v.Kind() {
	case KindInt:
		return v, nil
	case KindFloat:
		if digits == 0 {
			r := math.Round(v.Float())
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return NewUndefined(), nil
			}
			return NewInt(int64(r)), nil
		}
		factor := math.Pow(10, float64(digits))
		return NewFloat(math.Round(v.Float()*factor) / factor), nil
	default:
		return NewUndefined(), nil
	}
}
