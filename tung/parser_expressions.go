package tung

var (
	logicalOperators    = map[TokenType]bool{tokenAnd: true, tokenOr: true}
	comparisonOperators = map[TokenType]bool{
		tokenEQ: true, tokenNotEQ: true, tokenLT: true, tokenGT: true,
		tokenLTE: true, tokenGTE: true, tokenIn: true,
	}
	sumOperators  = map[TokenType]bool{tokenPlus: true, tokenMinus: true}
	termOperators = map[TokenType]bool{
		tokenAsterisk: true, tokenSlash: true, tokenFloorDiv: true,
		tokenPercent: true, tokenPower: true,
	}
)

func (p *parser) parseExpression() *Node {
	return p.parseChain(NodeLogical, logicalOperators, p.parseComparison)
}

func (p *parser) parseComparison() *Node {
	return p.parseChain(NodeComparison, comparisonOperators, p.parseSum)
}

func (p *parser) parseSum() *Node {
	return p.parseChain(NodeSum, sumOperators, p.parseTerm)
}

func (p *parser) parseTerm() *Node {
	return p.parseChain(NodeTerm, termOperators, p.parseUnary)
}

// parseChain parses `operand (operator operand)*` into a flat node of the
// given kind. A chain with a single operand collapses to that operand.
func (p *parser) parseChain(kind NodeKind, ops map[TokenType]bool, operand func() *Node) *Node {
	start := p.curToken
	first := operand()
	if first == nil {
		return nil
	}
	children := []*Node{first}
	for {
		op, ok := p.chainOperator(kind, ops)
		if !ok {
			break
		}
		next := operand()
		if next == nil {
			return nil
		}
		children = append(children, op, next)
	}
	if len(children) == 1 {
		return first
	}
	return newNode(kind, "", p.spanFrom(start), children...)
}

// chainOperator consumes the operator at the current token when it belongs to
// ops. `not in` is folded into one Comparison operator.
func (p *parser) chainOperator(kind NodeKind, ops map[TokenType]bool) (*Node, bool) {
	tok := p.curToken
	if kind == NodeComparison && tok.Type == tokenNot && p.peekIs(tokenIn) {
		p.nextToken()
		p.nextToken()
		return newNode(NodeOperator, "not in", p.spanFrom(tok)), true
	}
	if !ops[tok.Type] {
		return nil, false
	}
	p.nextToken()
	return newNode(NodeOperator, operatorSymbol(tok), tok.span()), true
}

// operatorSymbol maps keyword spellings onto their symbolic operator.
func operatorSymbol(tok Token) string {
	switch tok.Type {
	case tokenAnd, tokenOr, tokenBang:
		return string(tok.Type)
	case tokenNot:
		return "!"
	case tokenIn:
		return "in"
	default:
		return tok.Literal
	}
}

func (p *parser) parseUnary() *Node {
	tok := p.curToken
	switch tok.Type {
	case tokenMinus, tokenBang, tokenNot:
		p.nextToken()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		op := newNode(NodeOperator, operatorSymbol(tok), tok.span())
		return newNode(NodeUnary, "", p.spanFrom(tok), op, operand)
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles index suffixes. A `[` that starts a new line begins
// a new statement rather than indexing the previous one.
func (p *parser) parsePostfix() *Node {
	start := p.curToken
	target := p.parsePrimary()
	if target == nil {
		return nil
	}
	for p.curIs(tokenLBracket) && !p.curToken.NewlineBefore {
		p.nextToken()
		index := p.parseExpression()
		if index == nil {
			return nil
		}
		if !p.expect(tokenRBracket, "']'") {
			return nil
		}
		target = newNode(NodeIndex, "", p.spanFrom(start), target, index)
	}
	return target
}

func (p *parser) parsePrimary() *Node {
	tok := p.curToken
	switch tok.Type {
	case tokenInt, tokenFloat:
		p.nextToken()
		return newNode(NodeNumber, tok.Literal, tok.span())
	case tokenString:
		p.nextToken()
		return newNode(NodeString, tok.Literal, tok.span())
	case tokenTrue, tokenFalse:
		p.nextToken()
		return newNode(NodeBoolean, tok.Literal, tok.span())
	case tokenIdent:
		if p.peekIs(tokenLParen) {
			return p.parseCall()
		}
		return p.parseIdentifier()
	case tokenLParen:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(tokenRParen, "')'") {
			return nil
		}
		return newNode(NodeExpression, "", p.spanFrom(tok), inner)
	case tokenLBracket:
		return p.parseArrayLiteral()
	case tokenLBrace:
		return p.parseDictLiteral()
	case tokenIllegal:
		p.addParseError(tok.span(), tok.Literal)
		return nil
	default:
		p.errorExpected(tok, "expression")
		return nil
	}
}

func (p *parser) parseIdentifier() *Node {
	tok := p.curToken
	p.nextToken()
	return newNode(NodeIdentifier, tok.Literal, tok.span())
}

func (p *parser) parseCall() *Node {
	start := p.curToken
	name := p.parseIdentifier()
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	return newNode(NodeCall, "", p.spanFrom(start), append([]*Node{name}, args...)...)
}

// parseArguments parses a parenthesised, comma separated expression list.
func (p *parser) parseArguments() ([]*Node, bool) {
	return p.parseList(tokenLParen, tokenRParen, "')'", p.parseExpression)
}

func (p *parser) parseArrayLiteral() *Node {
	start := p.curToken
	elems, ok := p.parseList(tokenLBracket, tokenRBracket, "']'", p.parseExpression)
	if !ok {
		return nil
	}
	return newNode(NodeArray, "", p.spanFrom(start), elems...)
}

func (p *parser) parseDictLiteral() *Node {
	start := p.curToken
	entries, ok := p.parseList(tokenLBrace, tokenRBrace, "'}'", p.parseDictEntry)
	if !ok {
		return nil
	}
	return newNode(NodeDict, "", p.spanFrom(start), entries...)
}

func (p *parser) parseDictEntry() *Node {
	start := p.curToken
	var key *Node
	switch start.Type {
	case tokenString:
		p.nextToken()
		key = newNode(NodeString, start.Literal, start.span())
	case tokenIdent:
		key = p.parseIdentifier()
	default:
		p.errorExpected(start, "dict key")
		return nil
	}
	if !p.expect(tokenColon, "':'") {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return newNode(NodeDictEntry, "", p.spanFrom(start), key, value)
}

// parseList parses `open item (, item)* [,] close`.
func (p *parser) parseList(openTok, closeTok TokenType, closeLabel string, item func() *Node) ([]*Node, bool) {
	if !p.expect(openTok, "'"+string(openTok)+"'") {
		return nil, false
	}
	items := []*Node{}
	for !p.curIs(closeTok) {
		next := item()
		if next == nil {
			return nil, false
		}
		items = append(items, next)
		if !p.curIs(tokenComma) {
			break
		}
		p.nextToken()
	}
	if !p.expect(closeTok, closeLabel) {
		return nil, false
	}
	return items, true
}
