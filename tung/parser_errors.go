package tung

import (
	"fmt"
	"strings"
)

// ParseError reports a syntax error with the offending source line.
type ParseError struct {
	Pos    Position
	Span   Span
	Msg    string
	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Span); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.span(), fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addParseError(tok.span(), fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

func (p *parser) addParseError(span Span, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: span.Pos(), Span: span, Msg: msg, source: p.l.input})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenVar, tokenIf, tokenElif, tokenElse, tokenWhile, tokenTrue, tokenFalse, tokenIn, tokenNot:
		return "'" + tok.Literal + "'"
	default:
		return "'" + string(tok.Type) + "'"
	}
}
