package parser

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/token"
)

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	tok := p.advance() // 'import' or 'from'
	stmt := &ast.ImportStatement{Token: tok, Aliases: make(map[string]string)}
	if tok.Type == token.FROM {
		mod := p.expect(token.IDENT)
		stmt.FromModule = mod.Lexeme
		for p.curIs(token.DOT) {
			p.advance()
			part := p.expect(token.IDENT)
			stmt.FromModule += "." + part.Lexeme
		}
		p.expect(token.IMPORT)
		for {
			name := p.expect(token.IDENT)
			stmt.Names = append(stmt.Names, name.Lexeme)
			if p.curIs(token.AS) {
				p.advance()
				alias := p.expect(token.IDENT)
				stmt.Aliases[name.Lexeme] = alias.Lexeme
			}
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	} else {
		name := p.expect(token.IDENT)
		full := name.Lexeme
		for p.curIs(token.DOT) {
			p.advance()
			part := p.expect(token.IDENT)
			full += "." + part.Lexeme
		}
		stmt.Names = []string{full}
		if p.curIs(token.AS) {
			p.advance()
			alias := p.expect(token.IDENT)
			stmt.Aliases[full] = alias.Lexeme
		}
	}
	return stmt
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.DEF:
		return p.parseFunctionDeclaration(nil)
	case token.CLASS:
		return p.parseClassDeclaration(nil)
	case token.AT:
		return p.parseDecorated()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.PASS:
		tok := p.advance()
		return &ast.PassStatement{Token: tok}
	case token.BREAK:
		tok := p.advance()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		return &ast.ContinueStatement{Token: tok}
	case token.DEL:
		return p.parseDelStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.RAISE:
		return p.parseRaiseStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.GLOBAL:
		return p.parseGlobalStatement()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseDecorated() ast.Statement {
	var decorators []*ast.Decorator
	for p.curIs(token.AT) {
		tok := p.advance()
		expr := p.parseExpression(CALL)
		decorators = append(decorators, &ast.Decorator{Token: tok, Expr: expr})
		p.skipNewlines()
	}
	if p.curIs(token.CLASS) {
		return p.parseClassDeclaration(decorators)
	}
	return p.parseFunctionDeclaration(decorators)
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance()
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock()
	stmt := &ast.IfStatement{Token: tok, Condition: cond, Body: body}
	for p.curIs(token.ELIF) {
		p.advance()
		c := p.parseExpression(LOWEST)
		b := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, &ast.ElifClause{Condition: c, Body: b})
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance()
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock()
	stmt := &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.advance()
	target := p.parseExpression(COMPARISON)
	p.expect(token.IN)
	iter := p.parseExpression(LOWEST)
	body := p.parseBlock()
	stmt := &ast.ForStatement{Token: tok, Target: target, Iterable: iter, Body: body}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.advance()
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curIs(token.NEWLINE) && !p.curIs(token.RBRACE) && !p.curIs(token.SEMICOLON) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseDelStatement() ast.Statement {
	tok := p.advance()
	stmt := &ast.DelStatement{Token: tok}
	stmt.Targets = append(stmt.Targets, p.parseExpression(LOWEST))
	for p.curIs(token.COMMA) {
		p.advance()
		stmt.Targets = append(stmt.Targets, p.parseExpression(LOWEST))
	}
	return stmt
}

func (p *Parser) parseAssertStatement() ast.Statement {
	tok := p.advance()
	cond := p.parseExpression(LOWEST)
	stmt := &ast.AssertStatement{Token: tok, Cond: cond}
	if p.curIs(token.COMMA) {
		p.advance()
		stmt.Message = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseRaiseStatement() ast.Statement {
	tok := p.advance()
	stmt := &ast.RaiseStatement{Token: tok}
	if !p.curIs(token.NEWLINE) && !p.curIs(token.RBRACE) {
		stmt.Exc = p.parseExpression(LOWEST)
		if p.curIs(token.FROM) {
			p.advance()
			stmt.Cause = p.parseExpression(LOWEST)
		}
	}
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.advance()
	stmt := &ast.TryStatement{Token: tok, Body: p.parseBlock()}
	for p.curIs(token.EXCEPT) {
		p.advance()
		clause := &ast.ExceptClause{}
		if !p.curIs(token.LBRACE) && !p.curIs(token.COLON) {
			clause.Types = append(clause.Types, p.parseTypeAnnotation())
			for p.curIs(token.COMMA) {
				p.advance()
				clause.Types = append(clause.Types, p.parseTypeAnnotation())
			}
			if p.curIs(token.AS) {
				p.advance()
				name := p.expect(token.IDENT)
				clause.Name = name.Lexeme
			}
		}
		clause.Body = p.parseBlock()
		stmt.Excepts = append(stmt.Excepts, clause)
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	if p.curIs(token.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseGlobalStatement() ast.Statement {
	tok := p.advance()
	stmt := &ast.GlobalStatement{Token: tok}
	name := p.expect(token.IDENT)
	stmt.Names = append(stmt.Names, name.Lexeme)
	for p.curIs(token.COMMA) {
		p.advance()
		n := p.expect(token.IDENT)
		stmt.Names = append(stmt.Names, n.Lexeme)
	}
	return stmt
}

// parseSimpleStatement handles bare expressions, assignments (plain,
// annotated, augmented), which all start by parsing an expression first.
func (p *Parser) parseSimpleStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)

	if p.curIs(token.COLON) {
		// Annotated assignment: `name: Type [= value]`.
		p.advance()
		typ := p.parseTypeAnnotation()
		assign := &ast.AssignStatement{Token: tok, Targets: []ast.Expression{expr}, Annotation: typ}
		if p.curIs(token.ASSIGN) {
			p.advance()
			assign.Value = p.parseExpression(LOWEST)
		}
		return assign
	}

	if p.curIs(token.ASSIGN) {
		targets := []ast.Expression{expr}
		var value ast.Expression
		for p.curIs(token.ASSIGN) {
			p.advance()
			value = p.parseExpression(LOWEST)
			if p.curIs(token.ASSIGN) {
				targets = append(targets, value)
			}
		}
		return &ast.AssignStatement{Token: tok, Targets: targets, Value: value}
	}

	if aug, ok := augOperator(p.cur().Type); ok {
		p.advance()
		value := p.parseExpression(LOWEST)
		return &ast.AugAssignStatement{Token: tok, Target: expr, Operator: aug, Value: value}
	}

	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func augOperator(tt token.TokenType) (string, bool) {
	switch tt {
	case token.PLUS_ASSIGN:
		return "+=", true
	case token.MINUS_ASSIGN:
		return "-=", true
	case token.ASTERISK_ASSIGN:
		return "*=", true
	case token.SLASH_ASSIGN:
		return "/=", true
	case token.FLOORDIV_ASSIGN:
		return "//=", true
	case token.PERCENT_ASSIGN:
		return "%=", true
	case token.POWER_ASSIGN:
		return "**=", true
	case token.AMP_ASSIGN:
		return "&=", true
	case token.PIPE_ASSIGN:
		return "|=", true
	case token.CARET_ASSIGN:
		return "^=", true
	case token.LSHIFT_ASSIGN:
		return "<<=", true
	case token.RSHIFT_ASSIGN:
		return ">>=", true
	}
	return "", false
}
