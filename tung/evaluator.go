package tung

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// evaluator resolves expression nodes against an Env it never mutates.
type evaluator struct {
	env      *Env
	registry *Registry
	source   string
}

// Evaluate computes the value of an expression node. Failures are returned
// as *RuntimeError values carrying the span of the failing node.
func Evaluate(node *Node, env *Env, registry *Registry) (Value, error) {
	ev := &evaluator{env: env, registry: registry}
	return ev.eval(node)
}

func (ev *evaluator) eval(node *Node) (Value, error) {
	if node == nil {
		return NewUndefined(), ev.errorAt(nil, fmt.Errorf("%w: missing node", ErrInvalidExpression))
	}
	switch node.Kind {
	case NodeNumber:
		return ev.evalNumber(node)
	case NodeString:
		return NewString(unquoteString(node.Text)), nil
	case NodeBoolean:
		return NewBool(node.Text == "true"), nil
	case NodeIdentifier:
		val, ok := ev.env.Get(node.Text)
		if !ok {
			return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: %s", ErrVariableNotFound, node.Text))
		}
		return val, nil
	case NodeExpression:
		if len(node.Children) != 1 {
			return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: grouping with %d children", ErrInvalidExpression, len(node.Children)))
		}
		return ev.eval(node.Children[0])
	case NodeLogical, NodeComparison, NodeSum, NodeTerm:
		return ev.evalChain(node)
	case NodeUnary:
		return ev.evalUnary(node)
	case NodeCall:
		return ev.evalCall(node)
	case NodeArray:
		return ev.evalArray(node)
	case NodeDict:
		return ev.evalDict(node)
	case NodeIndex:
		return ev.evalIndex(node)
	default:
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: %s node", ErrInvalidExpression, node.Kind))
	}
}

func (ev *evaluator) evalNumber(node *Node) (Value, error) {
	if strings.Contains(node.Text, ".") {
		f, err := strconv.ParseFloat(node.Text, 64)
		if err != nil {
			return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: float literal %q", ErrInvalidExpression, node.Text))
		}
		return NewFloat(f), nil
	}
	i, err := strconv.ParseInt(node.Text, 10, 64)
	if err != nil {
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: integer literal %q", ErrInvalidExpression, node.Text))
	}
	return NewInt(i), nil
}

// evalChain folds `operand (Operator operand)*` from the left.
func (ev *evaluator) evalChain(node *Node) (Value, error) {
	if len(node.Children)%2 == 0 {
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: %s chain with %d children", ErrInvalidExpression, node.Kind, len(node.Children)))
	}
	acc, err := ev.eval(node.Children[0])
	if err != nil {
		return NewUndefined(), err
	}
	for i := 1; i < len(node.Children); i += 2 {
		op := node.Children[i]
		if op == nil || op.Kind != NodeOperator {
			return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: expected operator in %s chain", ErrInvalidExpression, node.Kind))
		}
		right, err := ev.eval(node.Children[i+1])
		if err != nil {
			return NewUndefined(), err
		}
		acc, err = ApplyOperator(acc, right, op.Text)
		if err != nil {
			return NewUndefined(), ev.errorIn(spanning(node.Children[0].Span, node.Children[i+1].Span), err)
		}
	}
	return acc, nil
}

func (ev *evaluator) evalUnary(node *Node) (Value, error) {
	op, operand := node.Child(0), node.Child(1)
	if op == nil || operand == nil || op.Kind != NodeOperator {
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: malformed unary", ErrInvalidExpression))
	}
	val, err := ev.eval(operand)
	if err != nil {
		return NewUndefined(), err
	}
	result, err := ApplyUnary(op.Text, val)
	if err != nil {
		return NewUndefined(), ev.errorAt(node, err)
	}
	return result, nil
}

func (ev *evaluator) evalCall(node *Node) (Value, error) {
	callee := node.Child(0)
	if callee == nil || callee.Kind != NodeIdentifier {
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: call without function name", ErrInvalidExpression))
	}
	args, err := ev.evalList(node.Children[1:])
	if err != nil {
		return NewUndefined(), err
	}
	fn, ok := ev.registry.Lookup(callee.Text)
	if !ok {
		return NewUndefined(), ev.errorAt(callee, fmt.Errorf("%w: %s", ErrUnknownFunction, callee.Text))
	}
	result, err := fn(ev.registry, args)
	if err != nil {
		return NewUndefined(), ev.errorAt(node, fmt.Errorf("%s: %w", callee.Text, err))
	}
	return result, nil
}

func (ev *evaluator) evalList(nodes []*Node) ([]Value, error) {
	out := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		val, err := ev.eval(n)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func (ev *evaluator) evalArray(node *Node) (Value, error) {
	elems, err := ev.evalList(node.Children)
	if err != nil {
		return NewUndefined(), err
	}
	return NewArray(elems), nil
}

func (ev *evaluator) evalDict(node *Node) (Value, error) {
	entries := make(map[string]Value, len(node.Children))
	for _, entry := range node.Children {
		if entry == nil {
			return NewUndefined(), ev.errorAt(node, fmt.Errorf("%w: missing dict entry", ErrInvalidExpression))
		}
		keyNode, valueNode := entry.Child(0), entry.Child(1)
		if entry.Kind != NodeDictEntry || keyNode == nil || valueNode == nil {
			return NewUndefined(), ev.errorAt(entry, fmt.Errorf("%w: malformed dict entry", ErrInvalidExpression))
		}
		var key string
		switch keyNode.Kind {
		case NodeString:
			key = unquoteString(keyNode.Text)
		case NodeIdentifier:
			key = keyNode.Text
		default:
			return NewUndefined(), ev.errorAt(keyNode, fmt.Errorf("%w: %s dict key", ErrInvalidExpression, keyNode.Kind))
		}
		val, err := ev.eval(valueNode)
		if err != nil {
			return NewUndefined(), err
		}
		entries[key] = val
	}
	return NewDict(entries), nil
}

// evalIndex reads one element. Out-of-range positions and missing keys
// yield Undefined; negative positions count from the end.
func (ev *evaluator) evalIndex(node *Node) (Value, error) {
	target, err := ev.eval(node.Child(0))
	if err != nil {
		return NewUndefined(), err
	}
	index, err := ev.eval(node.Child(1))
	if err != nil {
		return NewUndefined(), err
	}
	switch {
	case target.Kind() == KindArray && index.Kind() == KindInt:
		arr := target.Array()
		if i, ok := normalizeIndex(index.Int(), len(arr)); ok {
			return arr[i], nil
		}
		return NewUndefined(), nil
	case target.Kind() == KindString && index.Kind() == KindInt:
		runes := []rune(target.Str())
		if i, ok := normalizeIndex(index.Int(), len(runes)); ok {
			return NewString(string(runes[i])), nil
		}
		return NewUndefined(), nil
	case target.Kind() == KindDict && index.Kind() == KindString:
		if val, ok := target.Dict()[index.Str()]; ok {
			return val, nil
		}
		return NewUndefined(), nil
	default:
		return NewUndefined(), ev.errorAt(node, unsupported("[]", target, index))
	}
}

func normalizeIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

// errorAt lifts err into a *RuntimeError located at node. Errors that are
// already runtime errors or host control signals pass through unchanged.
func (ev *evaluator) errorAt(node *Node, err error) error {
	var span Span
	if node != nil {
		span = node.Span
	}
	return ev.errorIn(span, err)
}

// errorIn is errorAt for a span that is not a single node, such as the
// operands of one step of a chain.
func (ev *evaluator) errorIn(span Span, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) || isHostControlSignal(err) {
		return err
	}
	return &RuntimeError{
		Type:      classifyRuntimeErrorType(err),
		Message:   err.Error(),
		Span:      span,
		CodeFrame: formatCodeFrame(ev.source, span),
		Err:       err,
	}
}

// unquoteString strips the surrounding quotes from a string literal and
// decodes its escapes. Unknown escapes keep the escaped character.
func unquoteString(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}
	if !strings.ContainsRune(literal, '\\') {
		return literal
	}
	var sb strings.Builder
	sb.Grow(len(literal))
	escaped := false
	for _, r := range literal {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			sb.WriteRune(r)
			continue
		}
		escaped = false
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteRune(r)
		}
	}
	if escaped {
		sb.WriteByte('\\')
	}
	return sb.String()
}
