package tung

import (
	"fmt"
	"slices"
)

// Env maps variable names to values for one executing block. Blocks do not
// chain to a parent; they run against a Snapshot of the enclosing Env and
// MergeBack copies values for names the enclosing Env already held.
type Env struct {
	values   map[string]Value
	declared map[string]struct{}
}

func NewEnv() *Env {
	return &Env{values: make(map[string]Value), declared: make(map[string]struct{})}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Declare binds name in this scope. A name may be declared once per scope;
// names inherited through a snapshot can be declared again and the new value
// leaks back like any other update to a pre-existing name.
func (e *Env) Declare(name string, val Value) error {
	if _, ok := e.declared[name]; ok {
		return fmt.Errorf("%w: %s", ErrVariableAlreadyDeclared, name)
	}
	e.declared[name] = struct{}{}
	e.values[name] = val
	return nil
}

// Assign rebinds a visible name.
func (e *Env) Assign(name string, val Value) error {
	if _, ok := e.values[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUndeclaredAssignment, name)
	}
	e.values[name] = val
	return nil
}

// Snapshot copies every visible binding into a fresh scope with an empty
// declaration set.
func (e *Env) Snapshot() *Env {
	clone := &Env{values: make(map[string]Value, len(e.values)), declared: make(map[string]struct{})}
	for k, v := range e.values {
		clone.values[k] = v
	}
	return clone
}

// MergeBack copies into e the values child holds for names e already binds.
// Names that only exist in child are dropped. It returns the number of names
// copied.
func (e *Env) MergeBack(child *Env) int {
	copied := 0
	for k := range e.values {
		if v, ok := child.values[k]; ok {
			e.values[k] = v
			copied++
		}
	}
	return copied
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func (e *Env) Len() int { return len(e.values) }
