// Package parser implements a Pratt parser producing the internal/ast
// tree from a buffered token.Token slice: prefixParseFns/infixParseFns
// maps, precedence climbing, and depth-capped recursion.
package parser

import (
	"fmt"

	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/token"
)

const maxRecursionDepth = 200

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

const (
	_ int = iota
	LOWEST
	TERNARY     // a if c else b
	OR
	AND
	NOT
	COMPARISON  // == != < > <= >= is in
	BITOR
	BITXOR
	BITAND
	SHIFT
	SUM
	PRODUCT
	UNARY
	POWER
	CALL        // foo(), foo[i], foo.bar
)

var precedences = map[token.TokenType]int{
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       COMPARISON,
	token.NOT_EQ:   COMPARISON,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LTE:      COMPARISON,
	token.GTE:      COMPARISON,
	token.IS:       COMPARISON,
	token.IN:       COMPARISON,
	token.PIPE:     BITOR,
	token.CARET:    BITXOR,
	token.AMPERSAND: BITAND,
	token.LSHIFT:   SHIFT,
	token.RSHIFT:   SHIFT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.FLOORDIV: PRODUCT,
	token.PERCENT:  PRODUCT,
	token.POWER:    POWER,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

// Parser holds buffered tokens and the diagnostics bag errors are reported
// into.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  *diagnostics.Bag
	file   string
	depth  int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, diags *diagnostics.Bag, file string) *Parser {
	p := &Parser{tokens: tokens, diags: diags, file: file}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NONE:     p.parseNoneLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.TILDE:    p.parsePrefixExpression,
		token.NOT:      p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedOrTuple,
		token.LBRACKET: p.parseListOrComprehension,
		token.LBRACE:   p.parseDictOrSetLiteral,
		token.LAMBDA:   p.parseLambda,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:      p.parseInfixExpression,
		token.MINUS:     p.parseInfixExpression,
		token.ASTERISK:  p.parseInfixExpression,
		token.SLASH:     p.parseInfixExpression,
		token.FLOORDIV:  p.parseInfixExpression,
		token.PERCENT:   p.parseInfixExpression,
		token.POWER:     p.parseInfixExpression,
		token.AMPERSAND: p.parseInfixExpression,
		token.PIPE:      p.parseInfixExpression,
		token.CARET:     p.parseInfixExpression,
		token.LSHIFT:    p.parseInfixExpression,
		token.RSHIFT:    p.parseInfixExpression,
		token.EQ:        p.parseInfixExpression,
		token.NOT_EQ:    p.parseInfixExpression,
		token.LT:        p.parseInfixExpression,
		token.GT:        p.parseInfixExpression,
		token.LTE:       p.parseInfixExpression,
		token.GTE:       p.parseInfixExpression,
		token.AND:       p.parseInfixExpression,
		token.OR:        p.parseInfixExpression,
		token.IS:        p.parseIsExpression,
		token.LPAREN:    p.parseCallExpression,
		token.LBRACKET:  p.parseIndexExpression,
		token.DOT:       p.parseAttributeExpression,
	}

	return p
}

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(tt token.TokenType) bool  { return p.cur().Type == tt }
func (p *Parser) peekIs(tt token.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) expect(tt token.TokenType) token.Token {
	if p.curIs(tt) {
		return p.advance()
	}
	p.errorf("expected %s, got %s", tt, p.cur().Type)
	return p.cur()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	tok := p.cur()
	p.diags.Add(diagnostics.New(diagnostics.PhaseParser,
		diagnostics.Position{File: p.file, Line: tok.Line, Column: tok.Column},
		diagnostics.ErrorCode("parse-error"), fmt.Sprintf(format, args...)))
}

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) || p.curIs(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek().Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses a full compilation unit.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Token: p.cur(), File: p.file}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		if p.curIs(token.IMPORT) || p.curIs(token.FROM) {
			prog.Imports = append(prog.Imports, p.parseImportStatement())
		} else {
			stmt := p.parseStatement()
			if stmt != nil {
				prog.Statements = append(prog.Statements, stmt)
			}
		}
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		p.errorf("expression nesting too deep")
		return &ast.NoneLiteral{Token: p.cur()}
	}

	prefix := p.prefixParseFns[p.cur().Type]
	if prefix == nil {
		p.errorf("unexpected token %s in expression", p.cur().Type)
		p.advance()
		return &ast.NoneLiteral{Token: p.cur()}
	}
	left := prefix()

	for !p.curIs(token.NEWLINE) && precedence < p.curPrecedence() {
		infix := p.infixParseFns[p.cur().Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}

	if precedence < TERNARY && p.curIs(token.IF) {
		left = p.parseConditional(left)
	}

	return left
}

func (p *Parser) parseConditional(consequence ast.Expression) ast.Expression {
	tok := p.advance() // 'if'
	cond := p.parseExpression(LOWEST)
	p.expect(token.ELSE)
	alt := p.parseExpression(LOWEST)
	return &ast.ConditionalExpression{Token: tok, Consequence: consequence, Condition: cond, Alternative: alt}
}
