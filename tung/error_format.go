package tung

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// formatCodeFrame renders the source line holding span with the span's
// text underlined. Spans running past the end of the line are cut at the
// line end; an empty span gets a single caret.
func formatCodeFrame(source string, span Span) string {
	if source == "" || span.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if span.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[span.Line-1], "\r")
	lineRunes := utf8.RuneCountInString(lineText)

	column := min(max(span.Column, 1), lineRunes+1)
	width := min(max(underlineWidth(source, span), 1), max(lineRunes-column+1, 1))

	lineLabel := strconv.Itoa(span.Line)
	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s%s",
		span.Line,
		column,
		lineLabel,
		lineText,
		strings.Repeat(" ", len(lineLabel)),
		strings.Repeat(" ", column-1),
		strings.Repeat("^", width),
	)
}

// underlineWidth counts the runes the span covers on its first line. Spans
// whose offsets fall outside source count as empty.
func underlineWidth(source string, span Span) int {
	start, end := span.Offset, span.Offset+span.Length
	if span.Length <= 0 || start < 0 || end > len(source) {
		return 0
	}
	text := source[start:end]
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	return utf8.RuneCountInString(text)
}
