package tung

func (p *parser) parseStatement() *Node {
	switch p.curToken.Type {
	case tokenVar:
		return p.parseVarDecl()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenIdent:
		if p.curToken.Literal == "print" && p.peekIs(tokenLParen) {
			return p.parsePrintStatement()
		}
		if p.peekIs(tokenAssign) {
			return p.parseAssignment()
		}
		if _, ok := augmentedOperators[p.peekToken.Type]; ok {
			return p.parseAugAssignment()
		}
		return p.parseExpressionStatement()
	case tokenElif, tokenElse:
		p.addParseError(p.curToken.span(), "'"+p.curToken.Literal+"' without matching 'if'")
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarDecl() *Node {
	start := p.curToken
	p.nextToken()
	if !p.curIs(tokenIdent) {
		p.errorExpected(p.curToken, "variable name")
		return nil
	}
	name := p.parseIdentifier()
	if !p.expect(tokenAssign, "'='") {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return newNode(NodeVarDecl, "", p.spanFrom(start), name, value)
}

func (p *parser) parseAssignment() *Node {
	start := p.curToken
	name := p.parseIdentifier()
	p.nextToken()
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return newNode(NodeAssign, "", p.spanFrom(start), name, value)
}

func (p *parser) parseAugAssignment() *Node {
	start := p.curToken
	name := p.parseIdentifier()
	opTok := p.curToken
	op := newNode(NodeOperator, opTok.Literal, opTok.span())
	p.nextToken()
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return newNode(NodeAugAssign, "", p.spanFrom(start), name, op, value)
}

func (p *parser) parsePrintStatement() *Node {
	start := p.curToken
	p.nextToken()
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	return newNode(NodePrint, "", p.spanFrom(start), args...)
}

func (p *parser) parseExpressionStatement() *Node {
	start := p.curToken
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	return newNode(NodeExprStmt, "", p.spanFrom(start), expr)
}

// parseIfStatement builds If(cond, Block, Elif*, Else?).
func (p *parser) parseIfStatement() *Node {
	start := p.curToken
	p.nextToken()
	cond, body := p.parseConditionalBody()
	if body == nil {
		return nil
	}
	stmt := newNode(NodeIf, "", start.span(), cond, body)

	for p.curIs(tokenElif) {
		elifStart := p.curToken
		p.nextToken()
		cond, body := p.parseConditionalBody()
		if body == nil {
			return nil
		}
		stmt.Children = append(stmt.Children, newNode(NodeElif, "", p.spanFrom(elifStart), cond, body))
	}

	if p.curIs(tokenElse) {
		elseStart := p.curToken
		p.nextToken()
		if p.curIs(tokenColon) {
			p.nextToken()
		}
		body := p.parseBlock()
		if body == nil {
			return nil
		}
		stmt.Children = append(stmt.Children, newNode(NodeElse, "", p.spanFrom(elseStart), body))
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *parser) parseWhileStatement() *Node {
	start := p.curToken
	p.nextToken()
	cond, body := p.parseConditionalBody()
	if body == nil {
		return nil
	}
	return newNode(NodeWhile, "", p.spanFrom(start), cond, body)
}

// parseConditionalBody parses `cond [:] { ... }`.
func (p *parser) parseConditionalBody() (*Node, *Node) {
	cond := p.parseExpression()
	if cond == nil {
		return nil, nil
	}
	if p.curIs(tokenColon) {
		p.nextToken()
	}
	body := p.parseBlock()
	if body == nil {
		return nil, nil
	}
	return cond, body
}

func (p *parser) parseBlock() *Node {
	start := p.curToken
	if !p.expect(tokenLBrace, "'{'") {
		return nil
	}
	block := newNode(NodeBlock, "", start.span())
	for !p.curIs(tokenRBrace) && !p.curIs(tokenEOF) {
		if p.curIs(tokenSemicolon) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		block.Children = append(block.Children, stmt)
		p.endStatement()
	}
	if !p.expect(tokenRBrace, "'}'") {
		return nil
	}
	block.Span = p.spanFrom(start)
	return block
}
