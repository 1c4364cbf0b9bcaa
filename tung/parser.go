package tung

import "errors"

type parser struct {
	l *lexer

	// curToken is the next token to consume; prevToken the last one consumed.
	curToken  Token
	peekToken Token
	prevToken Token

	errors []error
}

func newParser(input string, aliases *AliasTable) *parser {
	p := &parser{l: newLexer(input, aliases)}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse turns source text into a Program node. Aliases, when non-nil, are
// resolved to their canonical spelling while lexing.
func Parse(source string, aliases *AliasTable) (*Node, error) {
	p := newParser(source, aliases)
	program := p.parseProgram()
	if len(p.errors) > 0 {
		return nil, combineErrors(p.errors)
	}
	return program, nil
}

func (p *parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *parser) curIs(tt TokenType) bool { return p.curToken.Type == tt }

func (p *parser) peekIs(tt TokenType) bool { return p.peekToken.Type == tt }

// expect consumes the current token when it has type tt and records a parse
// error otherwise.
func (p *parser) expect(tt TokenType, label string) bool {
	if p.curToken.Type != tt {
		p.errorExpected(p.curToken, label)
		return false
	}
	p.nextToken()
	return true
}

// spanFrom covers everything from start to the last consumed token.
func (p *parser) spanFrom(start Token) Span {
	return spanning(start.span(), p.prevToken.span())
}

func (p *parser) parseProgram() *Node {
	start := p.curToken
	program := newNode(NodeProgram, "", start.span())
	for !p.curIs(tokenEOF) {
		if p.curIs(tokenSemicolon) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		program.Children = append(program.Children, stmt)
		p.endStatement()
	}
	program.Span = spanning(start.span(), p.curToken.span())
	return program
}

// endStatement requires a separator between statements on the same line.
func (p *parser) endStatement() {
	switch {
	case p.curIs(tokenSemicolon):
		p.nextToken()
	case p.curIs(tokenEOF), p.curIs(tokenRBrace), p.curToken.NewlineBefore:
	case p.prevToken.Type == tokenRBrace:
	default:
		p.errorUnexpected(p.curToken)
		p.synchronize()
	}
}

// synchronize skips ahead to a plausible statement start after an error.
func (p *parser) synchronize() {
	p.nextToken()
	for !p.curIs(tokenEOF) && !p.curIs(tokenRBrace) && !p.curToken.NewlineBefore {
		if p.curIs(tokenSemicolon) {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}

func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
