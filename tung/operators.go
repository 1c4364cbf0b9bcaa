package tung

import "slices"

// ApplyOperator combines two values with a binary operator. Operand order
// matters for the heterogeneous string and array forms.
func ApplyOperator(left, right Value, op string) (Value, error) {
	switch op {
	case "+":
		return addValues(left, right)
	case "-":
		return subtractValues(left, right)
	case "*":
		return multiplyValues(left, right)
	case "/":
		return divideValues(left, right)
	case "//":
		return floorDivideValues(left, right)
	case "%":
		return moduloValues(left, right)
	case "**":
		return powerValues(left, right)
	case "==", "!=":
		return equalityValues(left, right, op)
	case "<", ">", "<=", ">=":
		return compareValues(left, right, op)
	case "&&", "||":
		return logicalValues(left, right, op)
	case "in":
		return membershipValues(left, right, op, false)
	case "not in":
		return membershipValues(left, right, op, true)
	default:
		return NewUndefined(), unsupported(op, left, right)
	}
}

// ApplyUnary applies a prefix operator.
func ApplyUnary(op string, operand Value) (Value, error) {
	switch op {
	case "-":
		switch operand.Kind() {
		case KindInt:
			return NewInt(-operand.Int()), nil
		case KindFloat:
			return NewFloat(-operand.Float()), nil
		}
	case "!":
		if operand.Kind() == KindBool {
			return NewBool(!operand.Bool()), nil
		}
	}
	return NewUndefined(), unsupportedUnary(op, operand)
}

func equalityValues(left, right Value, op string) (Value, error) {
	var equal bool
	switch {
	case left.IsNumeric() && right.IsNumeric():
		if left.Kind() == KindInt && right.Kind() == KindInt {
			equal = left.Int() == right.Int()
		} else {
			equal = left.Float() == right.Float()
		}
	case left.Kind() != right.Kind():
		return NewUndefined(), unsupported(op, left, right)
	case left.Kind() == KindUndefined:
		return NewUndefined(), unsupported(op, left, right)
	default:
		equal = left.Equal(right)
	}
	if op == "!=" {
		return NewBool(!equal), nil
	}
	return NewBool(equal), nil
}

func compareValues(left, right Value, op string) (Value, error) {
	cmp, ok := orderValues(left, right)
	if !ok {
		return NewUndefined(), unsupported(op, left, right)
	}
	switch op {
	case "<":
		return NewBool(cmp < 0), nil
	case ">":
		return NewBool(cmp > 0), nil
	case "<=":
		return NewBool(cmp <= 0), nil
	default:
		return NewBool(cmp >= 0), nil
	}
}

// orderValues compares numbers numerically and strings lexicographically.
// The second result is false for pairs with no defined order.
func orderValues(left, right Value) (int, bool) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return cmpOrdered(left.Int(), right.Int()), true
	case left.IsNumeric() && right.IsNumeric():
		return cmpOrdered(left.Float(), right.Float()), true
	case left.Kind() == KindString && right.Kind() == KindString:
		return cmpOrdered(left.Str(), right.Str()), true
	default:
		return 0, false
	}
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func logicalValues(left, right Value, op string) (Value, error) {
	if left.Kind() != KindBool || right.Kind() != KindBool {
		return NewUndefined(), unsupported(op, left, right)
	}
	if op == "&&" {
		return NewBool(left.Bool() && right.Bool()), nil
	}
	return NewBool(left.Bool() || right.Bool()), nil
}

func membershipValues(left, right Value, op string, negate bool) (Value, error) {
	var found bool
	switch {
	case right.Kind() == KindArray:
		found = slices.ContainsFunc(right.Array(), left.Equal)
	case right.Kind() == KindDict && left.Kind() == KindString:
		_, found = right.Dict()[left.Str()]
	default:
		return NewUndefined(), unsupported(op, left, right)
	}
	return NewBool(found != negate), nil
}
