package tung

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strings"
)

// BuiltinFunc is a native function callable from scripts. It receives the
// evaluated arguments and reports misuse by returning Undefined; errors are
// reserved for failures that must abort the run, such as broken I/O.
type BuiltinFunc func(reg *Registry, args []Value) (Value, error)

// builtinNames lists the standard library in registration order.
var builtinNames = []string{
	"print", "input", "len", "abs", "range",
	"int", "str", "float", "bool",
	"min", "max", "sum", "round",
	"append", "insert", "pop", "index", "sort",
}

func standardBuiltins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"print":  builtinPrint,
		"input":  builtinInput,
		"len":    builtinLen,
		"abs":    builtinAbs,
		"range":  builtinRange,
		"int":    builtinInt,
		"str":    builtinStr,
		"float":  builtinFloat,
		"bool":   builtinBool,
		"min":    builtinMin,
		"max":    builtinMax,
		"sum":    builtinSum,
		"round":  builtinRound,
		"append": builtinAppend,
		"insert": builtinInsert,
		"pop":    builtinPop,
		"index":  builtinIndex,
		"sort":   builtinSort,
	}
}

// Registry is the name table consulted by call expressions, together with
// the streams print and input use. It does not change once built.
type Registry struct {
	functions map[string]BuiltinFunc
	in        *bufio.Reader
	out       io.Writer
}

// NewRegistry returns a registry holding the standard builtins. A nil reader
// makes input yield Undefined; a nil writer discards output.
func NewRegistry(in io.Reader, out io.Writer) *Registry {
	return newRegistry(in, out, nil)
}

// newRegistry layers extra over the standard builtins; extra wins on name
// clashes.
func newRegistry(in io.Reader, out io.Writer, extra map[string]BuiltinFunc) *Registry {
	functions := standardBuiltins()
	maps.Copy(functions, extra)
	if out == nil {
		out = io.Discard
	}
	if in == nil {
		in = strings.NewReader("")
	}
	return &Registry{functions: functions, in: bufio.NewReader(in), out: out}
}

func (r *Registry) Lookup(name string) (BuiltinFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.functions[name]
	return fn, ok
}

// Names returns every registered function name in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.functions))
}

// Output is the writer print uses.
func (r *Registry) Output() io.Writer { return r.out }
