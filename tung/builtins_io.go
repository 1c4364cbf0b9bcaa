package tung

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// builtinPrint writes its arguments separated by spaces and a trailing
// newline.
func builtinPrint(reg *Registry, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	if _, err := fmt.Fprintln(reg.out, strings.Join(parts, " ")); err != nil {
		return NewUndefined(), err
	}
	return NewUndefined(), nil
}

// builtinInput writes an optional string prompt, then reads one line. The
// text becomes an Integer or Float when it parses as one.
func builtinInput(reg *Registry, args []Value) (Value, error) {
	if len(args) > 0 && args[0].Kind() == KindString {
		if _, err := io.WriteString(reg.out, args[0].Str()); err != nil {
			return NewUndefined(), err
		}
	}

	line, err := reg.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return NewUndefined(), err
		}
		if line == "" {
			return NewUndefined(), nil
		}
	}
	line = strings.TrimRight(line, "\r\n")

	if i, err := strconv.ParseInt(line, 10, 64); err == nil {
		return NewInt(i), nil
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return NewFloat(f), nil
	}
	return NewString(line), nil
}
