package tung

import (
	"bytes"
	"strings"
	"testing"
)

func FuzzParseDoesNotPanic(f *testing.F) {
	f.Add("")
	f.Add("var x = 1 + 2 * 3")
	f.Add("if x { print(1) } elif y { } else { ")
	f.Add(`print("unterminated`)
	f.Add("la_vaca x > 1 { tung(sahur()) }")
	f.Add("[[[[")

	aliases := DefaultAliases()
	f.Fuzz(func(t *testing.T, source string) {
		_, _ = Parse(source, aliases)
	})
}

func FuzzRunDoesNotPanic(f *testing.F) {
	f.Add("var x = [1, 2] * 3; print(x[-1], len(x))")
	f.Add(`var d = {a: 1}; print("a" in d, d["b"])`)
	f.Add("var n = 0; while n < 5 { n += 1 }")
	f.Add("print(sort([3, \"a\", 1.5]), 7 // 0)")

	f.Fuzz(func(t *testing.T, source string) {
		if len(source) > 2048 {
			source = source[:2048]
		}
		engine := MustNewEngine(Config{StepQuota: 1000, Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
		script, err := engine.Compile(source)
		if err != nil {
			return
		}
		_ = script.Run(t.Context())
	})
}
