package tung

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.data.(string)
}

func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) Dict() map[string]Value {
	if v.kind != KindDict {
		return nil
	}
	return v.data.(map[string]Value)
}
