package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tunglang/tung/tung"
)

func newTestModel(t *testing.T) replModel {
	t.Helper()
	m, err := newREPLModel(nil, 0)
	if err != nil {
		t.Fatalf("newREPLModel: %v", err)
	}
	return m
}

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newTestModel(t), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newTestModel(t), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluateDeclarationPersistsAcrossInputs(t *testing.T) {
	m := newTestModel(t)

	if output, isErr := m.evaluate("var score = 40"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output, isErr := m.evaluate("score += 2"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	score, ok := m.session.Lookup("score")
	if !ok {
		t.Fatalf("expected score to be bound in the session")
	}
	if score.Kind() != tung.KindInt || score.Int() != 42 {
		t.Fatalf("unexpected score value: %#v", score)
	}

	output, isErr := m.evaluate("score == 42")
	if isErr || output != "true" {
		t.Fatalf("unexpected comparison output %q (err=%v)", output, isErr)
	}
}

func TestEvaluateCapturesPrintOutput(t *testing.T) {
	m := newTestModel(t)

	output, isErr := m.evaluate(`print("a", 1); "b"`)
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "a 1\n\"b\"" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	m := newTestModel(t)

	output, isErr := m.evaluate("missing + 1")
	if !isErr {
		t.Fatalf("expected error for unknown variable")
	}
	if !strings.Contains(output, "VariableNotFound") {
		t.Fatalf("unexpected error output %q", output)
	}
}

func TestEvaluateInputYieldsUndefined(t *testing.T) {
	m := newTestModel(t)

	output, isErr := m.evaluate("input()")
	if isErr || output != "undefined" {
		t.Fatalf("unexpected input() result %q (err=%v)", output, isErr)
	}
}

func TestResetCommandClearsSession(t *testing.T) {
	m := newTestModel(t)
	if output, isErr := m.evaluate("var x = 1"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	rm, _ := submit(t, m, ":reset")
	if rm.session.Len() != 0 {
		t.Fatalf("expected empty session after reset, got %v", rm.session.Names())
	}
	last := rm.history[len(rm.history)-1]
	if last.output != "Environment reset" {
		t.Fatalf("unexpected history entry %#v", last)
	}
}

func TestUnknownCommandIsRecordedAsError(t *testing.T) {
	rm, _ := submit(t, newTestModel(t), ":bogus")
	last := rm.history[len(rm.history)-1]
	if !last.isErr || !strings.Contains(last.output, ":bogus") {
		t.Fatalf("unexpected history entry %#v", last)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newTestModel(t)
	if output, isErr := m.evaluate("var counter = 0"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	m.textInput.SetValue("x = coun")
	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "x = counter" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteIncludesAliases(t *testing.T) {
	m := newTestModel(t)

	m.textInput.SetValue("bomba")
	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "bombadillo" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteListsMultipleMatches(t *testing.T) {
	m := newTestModel(t)

	m.textInput.SetValue("in")
	m = m.handleAutocomplete()
	if len(m.history) != 1 {
		t.Fatalf("expected completions entry, got %d entries", len(m.history))
	}
	out := m.history[0].output
	for _, want := range []string{"in", "index", "input", "insert", "int"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q among completions: %s", want, out)
		}
	}
}

func TestViewRendersVariables(t *testing.T) {
	m := newTestModel(t)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	if output, isErr := m.evaluate(`var name = "tung"`); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	m.showVars = true

	view := m.View()
	if !strings.Contains(view, "Tung REPL") || !strings.Contains(view, `"tung"`) {
		t.Fatalf("unexpected view:\n%s", view)
	}
}
