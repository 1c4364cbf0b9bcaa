package tung

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *Node {
	t.Helper()
	program, err := Parse(source, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func TestParsePrecedenceNesting(t *testing.T) {
	program := mustParse(t, "var a = 2 + 3 * 4")
	want := strings.Join([]string{
		"Program",
		"  VarDecl",
		"    Identifier a",
		"    Sum",
		"      Number 2",
		"      Operator +",
		"      Term",
		"        Number 3",
		"        Operator *",
		"        Number 4",
		"",
	}, "\n")
	if got := program.Dump(); got != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseLogicalAndMembershipOperators(t *testing.T) {
	program := mustParse(t, `var ok = 1 < 2 and "k" not in {k: 1} or not false`)
	expr := program.Children[0].Child(1)
	if expr.Kind != NodeLogical || len(expr.Children) != 5 {
		t.Fatalf("expected a five-child Logical chain, got:\n%s", expr.Dump())
	}
	if expr.Child(1).Text != "&&" || expr.Child(3).Text != "||" {
		t.Fatalf("keyword operators not normalised:\n%s", expr.Dump())
	}
	membership := expr.Child(2)
	if membership.Kind != NodeComparison || membership.Child(1).Text != "not in" {
		t.Fatalf("expected not in comparison, got:\n%s", membership.Dump())
	}
	if unary := expr.Child(4); unary.Kind != NodeUnary || unary.Child(0).Text != "!" {
		t.Fatalf("expected unary not, got:\n%s", unary.Dump())
	}
}

func TestParseStatements(t *testing.T) {
	source := `
# counters
var x = 0
x = 1; x += 2
print(x, "done")
if x > 2: { print("a") } elif x == 2 { print("b") } else: { print("c") }
while x < 10: {
  x *= 2
}
append([1], 2)
`
	program := mustParse(t, source)
	kinds := []NodeKind{NodeVarDecl, NodeAssign, NodeAugAssign, NodePrint, NodeIf, NodeWhile, NodeExprStmt}
	if len(program.Children) != len(kinds) {
		t.Fatalf("expected %d statements, got:\n%s", len(kinds), program.Dump())
	}
	for i, kind := range kinds {
		if program.Children[i].Kind != kind {
			t.Fatalf("statement %d: expected %s, got %s", i, kind, program.Children[i].Kind)
		}
	}
	ifStmt := program.Children[4]
	if len(ifStmt.Children) != 4 || ifStmt.Child(2).Kind != NodeElif || ifStmt.Child(3).Kind != NodeElse {
		t.Fatalf("unexpected if shape:\n%s", ifStmt.Dump())
	}
	if aug := program.Children[2]; aug.Child(1).Text != "+=" {
		t.Fatalf("unexpected augmented operator %q", aug.Child(1).Text)
	}
}

func TestParseStringKeepsQuotes(t *testing.T) {
	program := mustParse(t, `print("a\"b")`)
	str := program.Children[0].Child(0)
	if str.Kind != NodeString || str.Text != `"a\"b"` {
		t.Fatalf("expected raw literal with quotes, got %q", str.Text)
	}
	if str.Source(`print("a\"b")`) != str.Text {
		t.Fatalf("span does not cover the literal: %+v", str.Span)
	}
}

func TestParseIndexDoesNotSpanLines(t *testing.T) {
	program := mustParse(t, "var a = [1, 2]\n[3]")
	if len(program.Children) != 2 {
		t.Fatalf("expected two statements, got:\n%s", program.Dump())
	}
	program = mustParse(t, "var b = [1, 2][0]")
	if program.Children[0].Child(1).Kind != NodeIndex {
		t.Fatalf("expected index expression, got:\n%s", program.Dump())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"var = 3", "parse error at 1:5: expected variable name, got '='"},
		{"var a = 1 var b = 2", "unexpected 'var'"},
		{"if x { print(1)", "expected '}', got end of input"},
		{"print(\"open)", "unterminated string"},
		{"else { }", "'else' without matching 'if'"},
		{"var a = (1 + 2", "expected ')'"},
		{"var d = {1: 2}", "expected dict key"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.source, nil)
		if err == nil {
			t.Fatalf("%q: expected parse error", tt.source)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected error containing %q, got %q", tt.source, tt.want, err.Error())
		}
	}
}

func TestParseErrorIncludesCodeFrame(t *testing.T) {
	_, err := Parse("var a = 1\nvar = 2", nil)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "--> line 2, column 5") || !strings.Contains(msg, " 2 | var = 2") {
		t.Fatalf("missing code frame:\n%s", msg)
	}

	_, err = Parse("var 123 = 2", nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if !strings.HasSuffix(perr.Error(), "\n   |     ^^^") {
		t.Fatalf("expected the whole token underlined:\n%s", perr.Error())
	}
}

func TestParseResolvesAliases(t *testing.T) {
	program, err := Parse(`la_vaca x > 1: { tung(sahur()) } saturnita { bombadillo false { } }`, DefaultAliases())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	stmt := program.Children[0]
	if stmt.Kind != NodeIf {
		t.Fatalf("expected If, got:\n%s", program.Dump())
	}
	body := stmt.Child(1)
	if body.Child(0).Kind != NodePrint || body.Child(0).Child(0).Child(0).Text != "input" {
		t.Fatalf("aliases not resolved in body:\n%s", body.Dump())
	}
	if stmt.Child(2).Kind != NodeElse || stmt.Child(2).Child(0).Child(0).Kind != NodeWhile {
		t.Fatalf("aliases not resolved in else:\n%s", stmt.Dump())
	}
}
