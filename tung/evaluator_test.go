package tung

import (
	"errors"
	"testing"
)

func parseExpr(t *testing.T, source string) *Node {
	t.Helper()
	program := mustParse(t, source)
	if len(program.Children) != 1 || program.Children[0].Kind != NodeExprStmt {
		t.Fatalf("expected a single expression statement, got:\n%s", program.Dump())
	}
	return program.Children[0].Child(0)
}

func TestEvaluateLiterals(t *testing.T) {
	env := NewEnv()
	reg := NewRegistry(nil, nil)
	tests := []struct {
		source string
		want   Value
	}{
		{"42", NewInt(42)},
		{"4.0", NewFloat(4)},
		{`"tab\there \"q\""`, NewString("tab\there \"q\"")},
		{"false", NewBool(false)},
		{"(1 + 2) * 3", NewInt(9)},
		{"-2 ** 2", NewFloat(4)},
		{"[1, [2]]", NewArray([]Value{NewInt(1), NewArray([]Value{NewInt(2)})})},
		{`{"a": 1, b: "x"}`, NewDict(map[string]Value{"a": NewInt(1), "b": NewString("x")})},
		{"[10, 20, 30][-1]", NewInt(30)},
		{"[10][5]", NewUndefined()},
		{`"héllo"[1]`, NewString("é")},
		{`{k: 2}["k"]`, NewInt(2)},
		{`{k: 2}["z"]`, NewUndefined()},
	}
	for _, tt := range tests {
		got, err := Evaluate(parseExpr(t, tt.source), env, reg)
		if err != nil {
			t.Fatalf("%s: evaluate failed: %v", tt.source, err)
		}
		if got.Kind() != tt.want.Kind() || (!got.IsUndefined() && !got.Equal(tt.want)) {
			t.Fatalf("%s = %s (%s), want %s (%s)", tt.source, got.Inspect(), got.Kind(), tt.want.Inspect(), tt.want.Kind())
		}
	}
}

func TestEvaluateHandBuiltChains(t *testing.T) {
	// A Sum chain folds left to right: 10 - 3 - 2.
	sum := newNode(NodeSum, "", Span{},
		newNode(NodeNumber, "10", Span{}),
		newNode(NodeOperator, "-", Span{}),
		newNode(NodeNumber, "3", Span{}),
		newNode(NodeOperator, "-", Span{}),
		newNode(NodeNumber, "2", Span{}),
	)
	got, err := Evaluate(sum, NewEnv(), NewRegistry(nil, nil))
	if err != nil || got.Int() != 5 {
		t.Fatalf("expected 5, got %s (%v)", got.Inspect(), err)
	}

	// Single-operand tiers are accepted as well as collapsed ones.
	wrapped := newNode(NodeComparison, "", Span{}, newNode(NodeTerm, "", Span{}, newNode(NodeNumber, "7", Span{})))
	got, err = Evaluate(wrapped, NewEnv(), NewRegistry(nil, nil))
	if err != nil || got.Int() != 7 {
		t.Fatalf("expected 7, got %s (%v)", got.Inspect(), err)
	}
}

func TestEvaluateErrors(t *testing.T) {
	env := NewEnv()
	reg := NewRegistry(nil, nil)
	tests := []struct {
		node *Node
		want error
	}{
		{parseExpr(t, "missing"), ErrVariableNotFound},
		{parseExpr(t, "nope(1)"), ErrUnknownFunction},
		{parseExpr(t, "1 + true"), ErrUnsupportedOperation},
		{parseExpr(t, "[1][true]"), ErrUnsupportedOperation},
		{parseExpr(t, "3 % 0"), ErrDivisionByZero},
		{newNode(NodeWhile, "", Span{}), ErrInvalidExpression},
		{newNode(NodeSum, "", Span{}, newNode(NodeNumber, "1", Span{}), newNode(NodeOperator, "+", Span{})), ErrInvalidExpression},
		{newNode(NodeNumber, "1x", Span{}), ErrInvalidExpression},
		{&Node{Kind: NodeDict, Children: []*Node{nil}}, ErrInvalidExpression},
		{&Node{Kind: NodeSum, Children: []*Node{newNode(NodeNumber, "1", Span{}), nil, newNode(NodeNumber, "2", Span{})}}, ErrInvalidExpression},
		{&Node{Kind: NodeArray, Children: []*Node{nil}}, ErrInvalidExpression},
	}
	for _, tt := range tests {
		_, err := Evaluate(tt.node, env, reg)
		if !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.node.Kind, tt.want, err)
		}
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			t.Fatalf("%s: expected *RuntimeError, got %T", tt.node.Kind, err)
		}
	}
}

func TestEvaluateDoesNotMutateEnv(t *testing.T) {
	env := NewEnv()
	xs := NewArray([]Value{NewInt(1)})
	_ = env.Declare("xs", xs)
	got, err := Evaluate(parseExpr(t, "append(xs, 2) + [3]"), env, NewRegistry(nil, nil))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if got.String() != "[1, 2, 3]" {
		t.Fatalf("unexpected result %s", got)
	}
	if current, _ := env.Get("xs"); !current.Equal(xs) || env.Len() != 1 {
		t.Fatalf("evaluation changed the environment: xs=%s len=%d", current, env.Len())
	}
}

func TestUnquoteString(t *testing.T) {
	tests := map[string]string{
		`"plain"`:  "plain",
		`"a\nb"`:   "a\nb",
		`"back\\"`: `back\`,
		`"keep\q"`: "keepq",
		`""`:       "",
		`"unié"`:   "unié",
	}
	for literal, want := range tests {
		if got := unquoteString(literal); got != want {
			t.Fatalf("unquoteString(%s) = %q, want %q", literal, got, want)
		}
	}
}
