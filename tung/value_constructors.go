package tung

func NewUndefined() Value      { return Value{kind: KindUndefined} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewArray(a []Value) Value { return Value{kind: KindArray, data: a} }
func NewDict(d map[string]Value) Value {
	if d == nil {
		d = make(map[string]Value)
	}
	return Value{kind: KindDict, data: d}
}
