package tung

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindInt:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBool:
		return "Boolean"
	case KindArray:
		return "Array"
	case KindDict:
		return "Dict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value the way print shows it: strings bare, numbers as
// digits, nested strings inside arrays and dicts quoted.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindUndefined:
		return "undefined"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindArray:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Inspect()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		entries := v.data.(map[string]Value)
		if len(entries) == 0 {
			return "{}"
		}
		keys := sortedKeys(entries)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, entries[k].Inspect()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Inspect renders the value as it appears nested in a collection.
func (v Value) Inspect() string {
	if v.kind == KindString {
		return strconv.Quote(v.data.(string))
	}
	return v.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Truthy maps a value onto the boolean used by if/elif/while conditions.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindUndefined:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	case KindArray:
		return len(v.data.([]Value)) > 0
	case KindDict:
		return len(v.data.(map[string]Value)) > 0
	default:
		return false
	}
}

// Equal reports structural equality. Values of different kinds are never
// equal, so Integer 1 and Float 1.0 differ here; numeric promotion is the
// operator algebra's job.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindArray:
		return slices.EqualFunc(v.data.([]Value), other.data.([]Value), Value.Equal)
	case KindDict:
		left, right := v.data.(map[string]Value), other.data.(map[string]Value)
		if len(left) != len(right) {
			return false
		}
		for k, lv := range left {
			rv, ok := right[k]
			if !ok || !lv.Equal(rv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
