package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/tunglang/tung/tung"
)

// plainError disables colored rendering for the error it wraps.
type plainError struct{ err error }

func (e plainError) Error() string { return e.err.Error() }

func (e plainError) Unwrap() error { return e.err }

var (
	diagHeaderStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	diagFrameStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

// colorEnabled reports whether diagnostics written to f may use color.
func colorEnabled(f *os.File, err error) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	var plain plainError
	if errors.As(err, &plain) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderDiagnostic formats err for the terminal. Runtime and parse errors
// get a header line followed by their code frame.
func renderDiagnostic(err error, color bool) string {
	header, frame := splitDiagnostic(err)
	if !color {
		if frame == "" {
			return header
		}
		return header + "\n" + frame
	}
	out := diagHeaderStyle.Render(header)
	if frame != "" {
		out += "\n" + diagFrameStyle.Render(frame)
	}
	return out
}

func splitDiagnostic(err error) (string, string) {
	var rerr *tung.RuntimeError
	if errors.As(err, &rerr) {
		return "error[" + rerr.Type + "]: " + rerr.Message, rerr.CodeFrame
	}
	var perr *tung.ParseError
	if errors.As(err, &perr) {
		msg := err.Error()
		if i := strings.Index(msg, "\n"); i >= 0 {
			return msg[:i], msg[i+1:]
		}
		return msg, ""
	}
	return "error: " + err.Error(), ""
}
