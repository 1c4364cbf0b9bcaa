package tung

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func mustCompile(t *testing.T, engine *Engine, source string) *Script {
	t.Helper()
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return script
}

// runSourceWithInput runs source with the given stdin and returns what it
// printed.
func runSourceWithInput(t *testing.T, source, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	engine := MustNewEngine(Config{Stdin: strings.NewReader(input), Stdout: &out})
	script := mustCompile(t, engine, source)
	err := script.Run(context.Background())
	return out.String(), err
}

func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	return runSourceWithInput(t, source, "")
}

func mustRun(t *testing.T, source string) string {
	t.Helper()
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out
}
