// Package ast defines the node types produced by the parser: module
// structure, class and function declarations, statements, and the
// expression/type-annotation surface the checker walks.
package ast

import "github.com/typewright/funxytc/internal/token"

// Node is the root interface every AST node implements.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a single parsed source file.
type Program struct {
	Token      token.Token
	File       string
	ModuleName string
	Imports    []*ImportStatement
	Statements []Statement
}

func (p *Program) TokenLiteral() string { return p.Token.Lexeme }
func (p *Program) GetToken() token.Token { return p.Token }

// ImportStatement corresponds to `import a.b.c` or `from a.b import c, d as e`.
type ImportStatement struct {
	Token      token.Token
	FromModule string   // empty for plain `import x`
	Names      []string // imported names, or the module name itself for plain import
	Aliases    map[string]string
}

func (s *ImportStatement) statementNode()       {}
func (s *ImportStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ImportStatement) GetToken() token.Token { return s.Token }

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// BlockStatement groups a sequence of statements under one scope.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BlockStatement) GetToken() token.Token { return b.Token }

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ExpressionStatement) GetToken() token.Token { return e.Token }
