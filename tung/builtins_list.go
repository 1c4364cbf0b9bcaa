package tung

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// List builtins never modify their argument; they return a fresh array.

func builtinAppend(_ *Registry, args []Value) (Value, error) {
	if len(args) < 2 || args[0].Kind() != KindArray {
		return NewUndefined(), nil
	}
	arr := args[0].Array()
	out := make([]Value, len(arr), len(arr)+1)
	copy(out, arr)
	return NewArray(append(out, args[1])), nil
}

// builtinInsert places a value before the given position. Negative
// positions count from the end and the position is clamped to the array.
func builtinInsert(_ *Registry, args []Value) (Value, error) {
	if len(args) < 3 || args[0].Kind() != KindArray || args[1].Kind() != KindInt {
		return NewUndefined(), nil
	}
	arr := args[0].Array()
	idx := clampPosition(args[1].Int(), len(arr))
	out := make([]Value, 0, len(arr)+1)
	out = append(out, arr[:idx]...)
	out = append(out, args[2])
	out = append(out, arr[idx:]...)
	return NewArray(out), nil
}

// builtinPop returns the element at the given position, the last one by
// default.
func builtinPop(_ *Registry, args []Value) (Value, error) {
	if len(args) == 0 || args[0].Kind() != KindArray {
		return NewUndefined(), nil
	}
	arr := args[0].Array()
	if len(arr) == 0 {
		return NewUndefined(), nil
	}
	idx := len(arr) - 1
	if len(args) > 1 && args[1].Kind() == KindInt {
		idx = clampPosition(args[1].Int(), len(arr))
	}
	if idx >= len(arr) {
		return NewUndefined(), nil
	}
	return arr[idx], nil
}

// clampPosition resolves a possibly negative position against length,
// saturating at zero and at length.
func clampPosition(pos int64, length int) int {
	if pos < 0 {
		pos += int64(length)
		if pos < 0 {
			return 0
		}
	}
	if pos > int64(length) {
		return length
	}
	return int(pos)
}

// builtinIndex finds the first position of a value in an array or of a
// substring in a string, or -1.
func builtinIndex(_ *Registry, args []Value) (Value, error) {
	if len(args) < 2 {
		return NewUndefined(), nil
	}
	switch haystack := args[0]; haystack.Kind() {
	case KindArray:
		return NewInt(int64(slices.IndexFunc(haystack.Array(), args[1].Equal))), nil
	case KindString:
		if args[1].Kind() != KindString {
			return NewInt(-1), nil
		}
		s := haystack.Str()
		at := strings.Index(s, args[1].Str())
		if at < 0 {
			return NewInt(-1), nil
		}
		return NewInt(int64(utf8.RuneCountInString(s[:at]))), nil
	default:
		return NewUndefined(), nil
	}
}

// builtinSort returns a stably sorted copy. Numbers come first in numeric
// order, then strings in lexicographic order; other values keep their
// relative order at the end.
func builtinSort(_ *Registry, args []Value) (Value, error) {
	if len(args) == 0 || args[0].Kind() != KindArray {
		return NewUndefined(), nil
	}
	out := slices.Clone(args[0].Array())
	if out == nil {
		out = []Value{}
	}
	slices.SortStableFunc(out, func(a, b Value) int {
		if c := cmp.Compare(sortGroup(a), sortGroup(b)); c != 0 {
			return c
		}
		c, _ := orderValues(a, b)
		return c
	})
	return NewArray(out), nil
}

// sortGroup ranks values so that every group is totally ordered by
// orderValues, or not ordered at all.
func sortGroup(v Value) int {
	switch {
	case v.IsNumeric():
		return 0
	case v.Kind() == KindString:
		return 1
	default:
		return 2
	}
}
