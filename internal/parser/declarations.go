package parser

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/token"
)

func (p *Parser) parseTypeParams() []*ast.TypeVarDecl {
	if !p.curIs(token.LBRACKET) {
		return nil
	}
	p.advance()
	var params []*ast.TypeVarDecl
	for !p.curIs(token.RBRACKET) {
		variance := ast.Invariant
		if p.curIs(token.PLUS) {
			p.advance()
			variance = ast.Covariant
		} else if p.curIs(token.MINUS) {
			p.advance()
			variance = ast.Contravariant
		}
		tok := p.expect(token.IDENT)
		decl := &ast.TypeVarDecl{Token: tok, Name: tok.Lexeme, Variance: variance}
		if p.curIs(token.COLON) {
			p.advance()
			if p.curIs(token.LPAREN) {
				p.advance()
				for !p.curIs(token.RPAREN) {
					decl.Constraints = append(decl.Constraints, p.parseTypeAnnotation())
					if p.curIs(token.COMMA) {
						p.advance()
						continue
					}
					break
				}
				p.expect(token.RPAREN)
			} else {
				decl.Bound = p.parseTypeAnnotation()
			}
		}
		if p.curIs(token.ASSIGN) {
			p.advance()
			decl.Default = p.parseTypeAnnotation()
		}
		params = append(params, decl)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return params
}

func (p *Parser) parseParameters() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	seenStar := false
	for !p.curIs(token.RPAREN) {
		param := &ast.Parameter{Kind: ast.PositionalOrKeyword}
		if p.curIs(token.POWER) {
			p.advance()
			tok := p.expect(token.IDENT)
			param.Token = tok
			param.Name = tok.Lexeme
			param.Kind = ast.VarKwargs
		} else if p.curIs(token.ASTERISK) {
			p.advance()
			seenStar = true
			if p.curIs(token.IDENT) {
				tok := p.expect(token.IDENT)
				param.Token = tok
				param.Name = tok.Lexeme
				param.Kind = ast.VarArgs
			} else {
				params = append(params, nil) // bare '*' keyword-only marker
				if p.curIs(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		} else {
			tok := p.expect(token.IDENT)
			param.Token = tok
			param.Name = tok.Lexeme
			if seenStar {
				param.Kind = ast.KeywordOnly
			}
		}
		if p.curIs(token.COLON) {
			p.advance()
			param.Type = p.parseTypeAnnotation()
		}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	// Drop the bare '*' marker now that every later parameter's Kind has
	// been set to KeywordOnly.
	out := params[:0]
	for _, pa := range params {
		if pa != nil {
			out = append(out, pa)
		}
	}
	return out
}

func (p *Parser) parseFunctionDeclaration(decorators []*ast.Decorator) *ast.FunctionDeclaration {
	tok := p.advance() // 'def'
	name := p.expect(token.IDENT)
	fn := &ast.FunctionDeclaration{Token: tok, Name: name.Lexeme, Decorators: decorators}
	fn.TypeParams = p.parseTypeParams()
	fn.Parameters = p.parseParameters()
	if p.curIs(token.ARROW) {
		p.advance()
		fn.ReturnType = p.parseTypeAnnotation()
	}
	for _, d := range decorators {
		if ident, ok := d.Expr.(*ast.Identifier); ok {
			switch ident.Value {
			case "overload":
				fn.IsOverload = true
			case "property":
				fn.IsProperty = true
			case "staticmethod":
				fn.IsStatic = true
			case "classmethod":
				fn.IsClassMethod = true
			case "abstractmethod":
				fn.IsAbstract = true
			}
		}
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseClassDeclaration(decorators []*ast.Decorator) *ast.ClassDeclaration {
	tok := p.advance() // 'class'
	name := p.expect(token.IDENT)
	cls := &ast.ClassDeclaration{Token: tok, Name: name.Lexeme, Decorators: decorators, TotalTypedDict: true}
	cls.TypeParams = p.parseTypeParams()
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) {
			base := p.parseTypeAnnotation()
			cls.Bases = append(cls.Bases, &ast.ClassBase{Name: base})
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	for _, b := range cls.Bases {
		if named, ok := b.Name.(*ast.NamedTypeAnnotation); ok {
			switch named.Name {
			case "Protocol":
				cls.IsProtocol = true
			case "NamedTuple":
				cls.IsNamedTuple = true
			case "TypedDict":
				cls.IsTypedDict = true
			}
		}
	}
	blockTok := p.expect(token.LBRACE)
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			cls.Body = append(cls.Body, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	_ = blockTok
	return cls
}
