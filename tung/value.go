package tung

type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindArray
	KindDict
)

// Value is an immutable runtime value. Arrays and dicts are never mutated in
// place; builtins that change them return fresh copies.
type Value struct {
	kind ValueKind
	data any
}
