package tung

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVariableNotFound        = errors.New("variable not found")
	ErrVariableAlreadyDeclared = errors.New("variable already declared")
	ErrUndeclaredAssignment    = errors.New("assignment to undeclared variable")
	ErrUnsupportedOperation    = errors.New("unsupported operation")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrUnknownFunction         = errors.New("unknown function")
	ErrInvalidExpression       = errors.New("invalid expression")
	ErrInvalidStatement        = errors.New("invalid statement")

	ErrStepQuotaExceeded = errors.New("step quota exceeded")
)

const runtimeErrorTypeBase = "RuntimeError"

var runtimeErrorTypes = []struct {
	sentinel error
	name     string
}{
	{ErrVariableNotFound, "VariableNotFound"},
	{ErrVariableAlreadyDeclared, "VariableAlreadyDeclared"},
	{ErrUndeclaredAssignment, "UndeclaredAssignment"},
	{ErrUnsupportedOperation, "UnsupportedOperation"},
	{ErrDivisionByZero, "DivisionByZero"},
	{ErrUnknownFunction, "UnknownFunction"},
	{ErrInvalidExpression, "InvalidExpression"},
	{ErrInvalidStatement, "InvalidStatement"},
}

// UnsupportedOperationError reports an (operator, left, right) triple the
// operator algebra does not define. Unary operators leave Right empty.
type UnsupportedOperationError struct {
	Op    string
	Left  ValueKind
	Right ValueKind
	Unary bool
}

func (e *UnsupportedOperationError) Error() string {
	if e.Unary {
		return fmt.Sprintf("unsupported operation: %s %s", e.Op, e.Left)
	}
	return fmt.Sprintf("unsupported operation: %s %s %s", e.Left, e.Op, e.Right)
}

func (e *UnsupportedOperationError) Unwrap() error { return ErrUnsupportedOperation }

func unsupported(op string, left, right Value) error {
	return &UnsupportedOperationError{Op: op, Left: left.Kind(), Right: right.Kind()}
}

func unsupportedUnary(op string, operand Value) error {
	return &UnsupportedOperationError{Op: op, Left: operand.Kind(), Unary: true}
}

// RuntimeError is the fault surfaced to hosts. Type names the error kind
// (VariableNotFound, DivisionByZero, ...) and Err keeps the underlying cause
// so errors.Is works against the package sentinels.
type RuntimeError struct {
	Type      string
	Message   string
	Span      Span
	CodeFrame string
	Err       error
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Type)
	b.WriteString(": ")
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	return b.String()
}

func (re *RuntimeError) Unwrap() error { return re.Err }

func classifyRuntimeErrorType(err error) string {
	for _, t := range runtimeErrorTypes {
		if errors.Is(err, t.sentinel) {
			return t.name
		}
	}
	return runtimeErrorTypeBase
}

func isHostControlSignal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrStepQuotaExceeded)
}
