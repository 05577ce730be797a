package parser

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.advance()
	v, _ := tok.Literal.(int64)
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	v, _ := tok.Literal.(float64)
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Lexeme}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	tok := p.advance()
	return &ast.NoneLiteral{Token: tok}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.advance()
	prec := UNARY
	if tok.Type == token.NOT {
		prec = NOT
	}
	operand := p.parseExpression(prec)
	return &ast.PrefixExpression{Token: tok, Operator: tok.Lexeme, Right: operand}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := p.curPrecedenceFor(tok.Type)
	right := p.parseExpression(prec)
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) curPrecedenceFor(tt token.TokenType) int {
	if pr, ok := precedences[tt]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseIsExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // 'is'
	negate := false
	if p.curIs(token.NOT) {
		negate = true
		p.advance()
	}
	right := p.parseExpression(COMPARISON)
	return &ast.IsExpression{Token: tok, Left: left, Right: right, Negate: negate}
}

func (p *Parser) parseGroupedOrTuple() ast.Expression {
	tok := p.advance() // '('
	if p.curIs(token.RPAREN) {
		p.advance()
		return &ast.TupleLiteral{Token: tok, Elements: nil}
	}
	first := p.parseExpression(LOWEST)
	if !p.curIs(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elements := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RPAREN) {
			break
		}
		elements = append(elements, p.parseExpression(LOWEST))
	}
	p.expect(token.RPAREN)
	return &ast.TupleLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseListOrComprehension() ast.Expression {
	tok := p.advance() // '['
	if p.curIs(token.RBRACKET) {
		p.advance()
		return &ast.ListLiteral{Token: tok}
	}
	first := p.parseExpression(LOWEST)
	if p.curIs(token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACKET)
		return &ast.ComprehensionExpression{Token: tok, Kind: ast.ListComp, Output: first, Clauses: clauses}
	}
	elements := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACKET) {
			break
		}
		elements = append(elements, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACKET)
	return &ast.ListLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseCompClauses() []*ast.CompClause {
	var clauses []*ast.CompClause
	for p.curIs(token.FOR) || p.curIs(token.IF) {
		if p.curIs(token.FOR) {
			p.advance()
			target := p.parseExpression(COMPARISON)
			p.expect(token.IN)
			iter := p.parseExpression(TERNARY)
			clauses = append(clauses, &ast.CompClause{Target: target, Iterable: iter})
		} else {
			p.advance()
			cond := p.parseExpression(TERNARY)
			clauses = append(clauses, &ast.CompClause{IsFilter: true, Cond: cond})
		}
	}
	return clauses
}

func (p *Parser) parseDictOrSetLiteral() ast.Expression {
	tok := p.advance() // '{'
	if p.curIs(token.RBRACE) {
		p.advance()
		return &ast.DictLiteral{Token: tok}
	}
	firstKey := p.parseExpression(LOWEST)
	if p.curIs(token.COLON) {
		p.advance()
		firstVal := p.parseExpression(LOWEST)
		if p.curIs(token.FOR) {
			clauses := p.parseCompClauses()
			p.expect(token.RBRACE)
			return &ast.ComprehensionExpression{Token: tok, Kind: ast.DictComp, Output: firstKey, Value: firstVal, Clauses: clauses}
		}
		entries := []ast.DictEntry{{Key: firstKey, Value: firstVal}}
		for p.curIs(token.COMMA) {
			p.advance()
			if p.curIs(token.RBRACE) {
				break
			}
			k := p.parseExpression(LOWEST)
			p.expect(token.COLON)
			v := p.parseExpression(LOWEST)
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		p.expect(token.RBRACE)
		return &ast.DictLiteral{Token: tok, Entries: entries}
	}
	// Set literal.
	if p.curIs(token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACE)
		return &ast.ComprehensionExpression{Token: tok, Kind: ast.SetComp, Output: firstKey, Clauses: clauses}
	}
	elements := []ast.Expression{firstKey}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACE) {
			break
		}
		elements = append(elements, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACE)
	return &ast.SetLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.advance() // 'lambda'
	var params []*ast.Parameter
	for !p.curIs(token.COLON) {
		nameTok := p.expect(token.IDENT)
		param := &ast.Parameter{Token: nameTok, Name: nameTok.Lexeme}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.COLON)
	body := p.parseExpression(LOWEST)
	return &ast.LambdaExpression{Token: tok, Parameters: params, Body: body}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.advance() // '('
	var args []*ast.Argument
	for !p.curIs(token.RPAREN) {
		arg := &ast.Argument{}
		if p.curIs(token.ASTERISK) {
			p.advance()
			arg.IsStar = true
			arg.Value = p.parseExpression(LOWEST)
		} else if p.curIs(token.POWER) {
			p.advance()
			arg.IsDStar = true
			arg.Value = p.parseExpression(LOWEST)
		} else if p.curIs(token.IDENT) && p.peekIs(token.ASSIGN) {
			name := p.advance()
			p.advance() // '='
			arg.Name = name.Lexeme
			arg.Value = p.parseExpression(LOWEST)
		} else {
			arg.Value = p.parseExpression(LOWEST)
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // '['
	var start, stop, step ast.Expression
	isSlice := false
	if !p.curIs(token.COLON) {
		start = p.parseExpression(LOWEST)
	}
	if p.curIs(token.COLON) {
		isSlice = true
		p.advance()
		if !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) {
			stop = p.parseExpression(LOWEST)
		}
		if p.curIs(token.COLON) {
			p.advance()
			if !p.curIs(token.RBRACKET) {
				step = p.parseExpression(LOWEST)
			}
		}
	}
	p.expect(token.RBRACKET)
	if isSlice {
		return &ast.IndexExpression{Token: tok, Left: left, Slice: &ast.SliceExpr{Start: start, Stop: stop, Step: step}}
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: start}
}

func (p *Parser) parseAttributeExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // '.'
	name := p.expect(token.IDENT)
	return &ast.AttributeExpression{Token: tok, Left: left, Name: name.Lexeme}
}
