package tung

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input   string
	aliases *AliasTable

	offset int
	width  int

	line   int
	column int

	ch rune
}

// operatorTokens is ordered longest literal first so the scan below always
// takes the longest match.
var operatorTokens = []struct {
	literal string
	tt      TokenType
}{
	{"**=", tokenPowAssign},
	{"//=", tokenFloorAssign},
	{"**", tokenPower},
	{"//", tokenFloorDiv},
	{"+=", tokenPlusAssign},
	{"-=", tokenMinusAssign},
	{"*=", tokenStarAssign},
	{"/=", tokenSlashAssign},
	{"%=", tokenModAssign},
	{"==", tokenEQ},
	{"!=", tokenNotEQ},
	{"<=", tokenLTE},
	{">=", tokenGTE},
	{"&&", tokenAnd},
	{"||", tokenOr},
	{"+", tokenPlus},
	{"-", tokenMinus},
	{"*", tokenAsterisk},
	{"/", tokenSlash},
	{"%", tokenPercent},
	{"<", tokenLT},
	{">", tokenGT},
	{"!", tokenBang},
	{"=", tokenAssign},
	{",", tokenComma},
	{":", tokenColon},
	{";", tokenSemicolon},
	{"(", tokenLParen},
	{")", tokenRParen},
	{"{", tokenLBrace},
	{"}", tokenRBrace},
	{"[", tokenLBracket},
	{"]", tokenRBracket},
}

func newLexer(input string, aliases *AliasTable) *lexer {
	l := &lexer{input: input, aliases: aliases, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) NextToken() Token {
	newline := l.skipWhitespaceAndComments()

	tok := Token{
		Pos:           Position{Line: l.line, Column: l.column},
		Offset:        l.currentOffset(),
		NewlineBefore: newline,
	}

	switch {
	case l.ch == 0:
		tok.Type = tokenEOF
	case l.ch == '"':
		literal, msg := l.readString()
		if msg != "" {
			tok.Type = tokenIllegal
			tok.Literal = msg
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	case isIdentifierStart(l.ch):
		word := l.readIdentifier()
		if l.aliases != nil {
			word = l.aliases.Resolve(word)
		}
		tok.Type = lookupIdent(word)
		tok.Literal = word
	case isDigit(l.ch):
		literal, isFloat := l.readNumber()
		tok.Literal = literal
		if isFloat {
			tok.Type = tokenFloat
		} else {
			tok.Type = tokenInt
		}
	default:
		l.readOperator(&tok)
	}

	tok.End = l.currentOffset()
	return tok
}

func (l *lexer) readOperator(tok *Token) {
	rest := l.input[l.currentOffset():]
	for _, op := range operatorTokens {
		if strings.HasPrefix(rest, op.literal) {
			for range len(op.literal) {
				l.readRune()
			}
			tok.Type = op.tt
			tok.Literal = op.literal
			return
		}
	}
	tok.Type = tokenIllegal
	tok.Literal = string(l.ch)
	l.readRune()
}

// skipWhitespaceAndComments reports whether a line break was skipped.
func (l *lexer) skipWhitespaceAndComments() bool {
	newline := false
	for {
		switch l.ch {
		case '\n':
			newline = true
			l.readRune()
		case ' ', '\t', '\r':
			l.readRune()
		case '#':
			for l.ch != 0 && l.ch != '\n' {
				l.readRune()
			}
		default:
			return newline
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() (string, bool) {
	start := l.currentOffset()
	hasDot := false
	for {
		r := l.peekRune()
		if isDigit(r) {
			l.readRune()
			continue
		}
		if r == '.' && !hasDot && isDigit(l.peekRuneAfterNext()) {
			hasDot = true
			l.readRune()
			continue
		}
		break
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal, hasDot
}

func (l *lexer) peekRuneAfterNext() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.offset:])
	if l.offset+w >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset+w:])
	return r
}

// readString returns the literal with its surrounding quotes. Escapes are
// left in place; the evaluator decodes them.
func (l *lexer) readString() (string, string) {
	start := l.currentOffset()
	for {
		l.readRune()
		switch l.ch {
		case 0:
			return "", "unterminated string"
		case '\\':
			l.readRune()
			if l.ch == 0 {
				return "", "unterminated string"
			}
		case '"':
			l.readRune()
			return l.input[start:l.currentOffset()], ""
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
