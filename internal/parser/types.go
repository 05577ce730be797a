package parser

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/token"
)

// parseTypeAnnotation parses a type expression as written in source:
// named types, subscripted generics, unions (`A | B`), tuple/callable
// special forms, and inline TypedMapping literals.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	left := p.parseTypeAtom()
	for p.curIs(token.PIPE) {
		tok := p.advance()
		right := p.parseTypeAtom()
		if u, ok := left.(*ast.UnionTypeAnnotation); ok {
			u.Types = append(u.Types, right)
		} else {
			left = &ast.UnionTypeAnnotation{Token: tok, Types: []ast.TypeAnnotation{left, right}}
		}
	}
	if p.curIs(token.QUESTION) {
		tok := p.advance()
		left = &ast.UnionTypeAnnotation{Token: tok, Types: []ast.TypeAnnotation{left, &ast.NamedTypeAnnotation{Token: tok, Name: "None"}}}
	}
	return left
}

func (p *Parser) parseTypeAtom() ast.TypeAnnotation {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseTypedMappingAnnotation()
	case token.LPAREN:
		return p.parseTupleTypeAnnotation()
	default:
		return p.parseNamedOrCallableType()
	}
}

func (p *Parser) parseNamedOrCallableType() ast.TypeAnnotation {
	var tok token.Token
	if p.curIs(token.NONE) {
		tok = p.advance()
	} else {
		tok = p.expect(token.IDENT)
	}
	if tok.Lexeme == "Any" {
		return &ast.AnyTypeAnnotation{Token: tok}
	}
	if tok.Lexeme == "Callable" && p.curIs(token.LBRACKET) {
		return p.parseCallableType(tok)
	}
	if tok.Lexeme == "Literal" && p.curIs(token.LBRACKET) {
		return p.parseLiteralType(tok)
	}
	named := &ast.NamedTypeAnnotation{Token: tok, Name: tok.Lexeme}
	for p.curIs(token.DOT) {
		p.advance()
		part := p.expect(token.IDENT)
		named.Name += "." + part.Lexeme
	}
	if p.curIs(token.LBRACKET) {
		p.advance()
		for !p.curIs(token.RBRACKET) {
			named.Args = append(named.Args, p.parseTypeAnnotation())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
	}
	return named
}

func (p *Parser) parseCallableType(tok token.Token) ast.TypeAnnotation {
	p.advance() // '['
	c := &ast.CallableTypeAnnotation{Token: tok}
	p.expect(token.LBRACKET)
	for !p.curIs(token.RBRACKET) {
		c.Params = append(c.Params, p.parseTypeAnnotation())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	p.expect(token.COMMA)
	c.ReturnType = p.parseTypeAnnotation()
	p.expect(token.RBRACKET)
	return c
}

func (p *Parser) parseLiteralType(tok token.Token) ast.TypeAnnotation {
	p.advance() // '['
	l := &ast.LiteralTypeAnnotation{Token: tok}
	for !p.curIs(token.RBRACKET) {
		l.Values = append(l.Values, p.parseExpression(LOWEST))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return l
}

func (p *Parser) parseTupleTypeAnnotation() ast.TypeAnnotation {
	tok := p.advance() // '('
	t := &ast.TupleTypeAnnotation{Token: tok, UnpackIndex: -1}
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ASTERISK) {
			p.advance()
			t.UnpackIndex = len(t.Elements)
		}
		t.Elements = append(t.Elements, p.parseTypeAnnotation())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return t
}

func (p *Parser) parseTypedMappingAnnotation() ast.TypeAnnotation {
	tok := p.advance() // '{'
	m := &ast.TypedMappingAnnotation{Token: tok, Total: true}
	for !p.curIs(token.RBRACE) {
		name := p.expect(token.IDENT)
		field := ast.MappingField{Name: name.Lexeme}
		if p.curIs(token.QUESTION) {
			p.advance()
			field.Optional = true
		}
		p.expect(token.COLON)
		field.Type = p.parseTypeAnnotation()
		m.Fields = append(m.Fields, field)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return m
}
