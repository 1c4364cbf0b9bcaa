package tung

import (
	"maps"
	"slices"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenFloat  TokenType = "FLOAT"
	tokenString TokenType = "STRING"

	tokenAssign      TokenType = "="
	tokenPlus        TokenType = "+"
	tokenMinus       TokenType = "-"
	tokenBang        TokenType = "!"
	tokenAsterisk    TokenType = "*"
	tokenPower       TokenType = "**"
	tokenSlash       TokenType = "/"
	tokenFloorDiv    TokenType = "//"
	tokenPercent     TokenType = "%"
	tokenLT          TokenType = "<"
	tokenGT          TokenType = ">"
	tokenLTE         TokenType = "<="
	tokenGTE         TokenType = ">="
	tokenEQ          TokenType = "=="
	tokenNotEQ       TokenType = "!="
	tokenAnd         TokenType = "&&"
	tokenOr          TokenType = "||"
	tokenPlusAssign  TokenType = "+="
	tokenMinusAssign TokenType = "-="
	tokenStarAssign  TokenType = "*="
	tokenPowAssign   TokenType = "**="
	tokenSlashAssign TokenType = "/="
	tokenFloorAssign TokenType = "//="
	tokenModAssign   TokenType = "%="

	tokenComma     TokenType = ","
	tokenColon     TokenType = ":"
	tokenSemicolon TokenType = ";"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"

	tokenVar   TokenType = "VAR"
	tokenIf    TokenType = "IF"
	tokenElif  TokenType = "ELIF"
	tokenElse  TokenType = "ELSE"
	tokenWhile TokenType = "WHILE"
	tokenTrue  TokenType = "TRUE"
	tokenFalse TokenType = "FALSE"
	tokenIn    TokenType = "IN"
	tokenNot   TokenType = "NOT"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	Offset  int
	End     int

	// NewlineBefore is set when a line break separates the token from the
	// one before it.
	NewlineBefore bool
}

func (t Token) span() Span {
	return Span{Offset: t.Offset, Length: t.End - t.Offset, Line: t.Pos.Line, Column: t.Pos.Column}
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"var":   tokenVar,
	"if":    tokenIf,
	"elif":  tokenElif,
	"else":  tokenElse,
	"while": tokenWhile,
	"true":  tokenTrue,
	"false": tokenFalse,
	"in":    tokenIn,
	"not":   tokenNot,
	"and":   tokenAnd,
	"or":    tokenOr,
}

// augmentedOperators maps an augmented assignment token to the operator it
// applies.
var augmentedOperators = map[TokenType]string{
	tokenPlusAssign:  "+",
	tokenMinusAssign: "-",
	tokenStarAssign:  "*",
	tokenPowAssign:   "**",
	tokenSlashAssign: "/",
	tokenFloorAssign: "//",
	tokenModAssign:   "%",
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
