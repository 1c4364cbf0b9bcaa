package tung

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestEndToEndPrecedence(t *testing.T) {
	if out := mustRun(t, "var a = 2; var b = 3; print(a + b * 2)"); out != "8\n" {
		t.Fatalf("expected 8, got %q", out)
	}
}

func TestEndToEndMembership(t *testing.T) {
	if out := mustRun(t, `print("x" in [1, 2, "x"])`); out != "true\n" {
		t.Fatalf("expected true, got %q", out)
	}
}

// The block scope policy is leak-back: updates to names the enclosing scope
// already had survive the block, names first bound in the block do not.
func TestScopePolicyLeakBack(t *testing.T) {
	source := `
var x = 1
if true: {
  x = 2
  var y = 3
}
print(x)
print(y)
`
	out, err := runSource(t, source)
	if out != "2\n" {
		t.Fatalf("expected outer x updated to 2, got output %q", out)
	}
	if !errors.Is(err, ErrVariableNotFound) {
		t.Fatalf("expected y to be discarded with the block, got %v", err)
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Type != "VariableNotFound" {
		t.Fatalf("expected VariableNotFound runtime error, got %#v", err)
	}
}

func TestScopePolicyShadowingDeclarationLeaksBack(t *testing.T) {
	source := `
var x = 1
while x < 2 { var x = 5 }
print(x)
`
	if out := mustRun(t, source); out != "5\n" {
		t.Fatalf("expected shadowing declaration to leak back, got %q", out)
	}
}

func TestScopePolicyNestedBlocks(t *testing.T) {
	source := `
var total = 0
var i = 0
while i < 3 {
  var step = i * 10
  if step > 0 { total += step }
  i += 1
}
print(total, i)
`
	if out := mustRun(t, source); out != "30 3\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	_, err := runSource(t, "var x = 1\nvar x = 2")
	if !errors.Is(err, ErrVariableAlreadyDeclared) {
		t.Fatalf("expected ErrVariableAlreadyDeclared, got %v", err)
	}
}

func TestAssignmentToUndeclaredFails(t *testing.T) {
	for _, source := range []string{"x = 1", "x += 1", "if true { y = 2 }"} {
		_, err := runSource(t, source)
		if !errors.Is(err, ErrUndeclaredAssignment) {
			t.Fatalf("%q: expected ErrUndeclaredAssignment, got %v", source, err)
		}
	}
}

func TestWhileLoopRunsExactIterations(t *testing.T) {
	source := `
var x = 0
var iterations = 0
while x < 3: { x = x + 1; iterations += 1 }
print(x, iterations)
`
	if out := mustRun(t, source); out != "3 3\n" {
		t.Fatalf("expected x=3 after 3 iterations, got %q", out)
	}
}

func TestIfElifElseChain(t *testing.T) {
	source := `
var n = %s
if n > 10 {
  print("big")
} elif n > 5 {
  print("medium")
} elif n > 0 {
  print("small")
} else {
  print("none")
}
`
	cases := map[string]string{"20": "big\n", "7": "medium\n", "1": "small\n", "0": "none\n"}
	for n, want := range cases {
		if out := mustRun(t, strings.Replace(source, "%s", n, 1)); out != want {
			t.Fatalf("n=%s: expected %q, got %q", n, want, out)
		}
	}
}

func TestAugmentedAssignment(t *testing.T) {
	source := `
var n = 7
n += 3
n -= 1
n *= 2
n //= 4
n %= 3
print(n)
var s = "ab"
s *= 2
print(s)
var f = 2
f **= 2
f /= 8
print(f)
`
	if out := mustRun(t, source); out != "1\nabab\n0.5\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPrintUndefinedRendersSentinel(t *testing.T) {
	if out := mustRun(t, `print(int("nope"))`); out != "undefined\n" {
		t.Fatalf("expected undefined, got %q", out)
	}
}

func TestFailureAbortsRunAfterEarlierOutput(t *testing.T) {
	out, err := runSource(t, "print(1)\nprint(1 / 0)\nprint(2)")
	if out != "1\n" {
		t.Fatalf("expected output before the failure only, got %q", out)
	}
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestRuntimeErrorCodeFrame(t *testing.T) {
	_, err := runSource(t, "var a = 1\nprint(a / 0)")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if rerr.Type != "DivisionByZero" {
		t.Fatalf("unexpected type %q", rerr.Type)
	}
	if rerr.Span.Line != 2 || rerr.Span.Column != 7 || rerr.Span.Length != len("a / 0") {
		t.Fatalf("expected a / 0 at 2:7, got %+v", rerr.Span)
	}
	want := "  --> line 2, column 7\n 2 | print(a / 0)\n   |       ^^^^^"
	if rerr.CodeFrame != want {
		t.Fatalf("unexpected code frame:\n%s\nwant:\n%s", rerr.CodeFrame, want)
	}
	if !strings.HasPrefix(err.Error(), "DivisionByZero: division by zero") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRuntimeErrorUnderlineStopsAtLineEnd(t *testing.T) {
	_, err := runSource(t, "var x = [1,\n2] - true")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if !strings.HasSuffix(rerr.CodeFrame, " | "+strings.Repeat(" ", 8)+"^^^") {
		t.Fatalf("unexpected code frame:\n%s", rerr.CodeFrame)
	}

	frame := formatCodeFrame("[1,\n2] + 3", Span{Offset: 0, Length: 9, Line: 1, Column: 1})
	if !strings.HasSuffix(frame, " | ^^^") {
		t.Fatalf("multi-line span should be cut at the line end:\n%s", frame)
	}
}

func TestUnknownFunction(t *testing.T) {
	_, err := runSource(t, "launch(1)")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestStepQuotaStopsRunawayLoop(t *testing.T) {
	engine := MustNewEngine(Config{StepQuota: 50, Stdout: &bytes.Buffer{}})
	script := mustCompile(t, engine, "var x = 0\nwhile true { x += 1 }")
	err := script.Run(context.Background())
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected ErrStepQuotaExceeded, got %v", err)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	engine := MustNewEngine(Config{Stdout: &bytes.Buffer{}})
	script := mustCompile(t, engine, "var x = 0\nwhile true { x += 1 }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := script.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNegativeStepQuotaRejected(t *testing.T) {
	if _, err := NewEngine(Config{StepQuota: -1}); err == nil {
		t.Fatalf("expected error for negative step quota")
	}
}

func TestExecuteProgramEntryPoint(t *testing.T) {
	program, err := Parse("var s = 0\nvar i = 1\nwhile i <= 4 { s += i; i += 1 }\nprint(s)", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var out bytes.Buffer
	if err := ExecuteProgram(context.Background(), program.Children, NewRegistry(nil, &out)); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out.String() != "10\n" {
		t.Fatalf("expected 10, got %q", out.String())
	}
}

func TestExecuteProgramRejectsNonStatement(t *testing.T) {
	truth := func() *Node { return newNode(NodeBoolean, "true", Span{}) }
	falsity := func() *Node { return newNode(NodeBoolean, "false", Span{}) }
	tests := map[string]*Node{
		"literal":         newNode(NodeNumber, "1", Span{}),
		"nil statement":   nil,
		"if without body": {Kind: NodeIf, Children: []*Node{truth(), nil}},
		"nil elif clause": {Kind: NodeIf, Children: []*Node{falsity(), newNode(NodeBlock, "", Span{}), nil}},
		"else without body": {Kind: NodeIf, Children: []*Node{
			falsity(), newNode(NodeBlock, "", Span{}), {Kind: NodeElse, Children: []*Node{nil}},
		}},
		"while without body": {Kind: NodeWhile, Children: []*Node{truth(), nil}},
		"aug assign without operator": {Kind: NodeAugAssign, Children: []*Node{
			newNode(NodeIdentifier, "x", Span{}), nil, newNode(NodeNumber, "1", Span{}),
		}},
	}
	for name, stmt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ExecuteProgram(context.Background(), []*Node{stmt}, NewRegistry(nil, nil))
			if !errors.Is(err, ErrInvalidStatement) {
				t.Fatalf("expected ErrInvalidStatement, got %v", err)
			}
		})
	}
}

func TestRegisterBuiltinOverridesPrint(t *testing.T) {
	var captured []string
	engine := MustNewEngine(Config{Stdout: &bytes.Buffer{}})
	engine.RegisterBuiltin("print", func(reg *Registry, args []Value) (Value, error) {
		for _, arg := range args {
			captured = append(captured, arg.String())
		}
		return NewUndefined(), nil
	})
	engine.RegisterBuiltin("double", func(reg *Registry, args []Value) (Value, error) {
		return ApplyOperator(args[0], NewInt(2), "*")
	})
	if err := engine.Execute(context.Background(), "print(double(21))"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(captured) != 1 || captured[0] != "42" {
		t.Fatalf("unexpected captured output %v", captured)
	}
}

func TestDebugLoggingRecordsBlockMerges(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := MustNewEngine(Config{Stdout: &bytes.Buffer{}, Logger: logger})
	if err := engine.Execute(context.Background(), "var x = 1\nif true { x = 2 }"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(logs.String(), "block merged") || !strings.Contains(logs.String(), "copied=1") {
		t.Fatalf("expected block merge debug record, got:\n%s", logs.String())
	}
}
