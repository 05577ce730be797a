package ast

import "github.com/typewright/funxytc/internal/token"

// ParameterKind distinguishes the five parameter-passing shapes a function
// signature can mix, matching §3/§4.1's callable parameter-kind model.
type ParameterKind int

const (
	PositionalOrKeyword ParameterKind = iota
	PositionalOnly
	KeywordOnly
	VarArgs  // *args
	VarKwargs // **kwargs
)

// Parameter is one entry of a function's parameter list.
type Parameter struct {
	Token   token.Token
	Name    string
	Type    TypeAnnotation // nil if unannotated (defaults to Any under gradual typing)
	Kind    ParameterKind
	Default Expression // nil if no default
}

// Decorator is `@name` or `@name(args...)` applied to a function or class.
type Decorator struct {
	Token token.Token
	Expr  Expression // Identifier or CallExpression
}

// FunctionDeclaration is a `def` statement, possibly a method (Receiver
// non-empty), possibly decorated (@overload, @property, @staticmethod,
// @classmethod, @abstractmethod).
type FunctionDeclaration struct {
	Token        token.Token
	Name         string
	TypeParams   []*TypeVarDecl
	Parameters   []*Parameter
	ReturnType   TypeAnnotation // nil if unannotated
	Body         *BlockStatement
	Decorators   []*Decorator
	IsAsync      bool
	IsAbstract   bool
	IsOverload   bool
	IsProperty   bool
	IsStatic     bool
	IsClassMethod bool
	// TypeGuardParam is the parameter name narrowed when ReturnType is a
	// TypeGuard[T] or TypeIs[T] annotation, empty otherwise.
	TypeGuardParam string
	TypeGuardType  TypeAnnotation
	TypeGuardIs    bool // true for TypeIs (bidirectional), false for TypeGuard (one-directional)
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionDeclaration) GetToken() token.Token { return f.Token }

// ClassBase is one entry of a class's base-class list: `class C(Base[int]):`.
type ClassBase struct {
	Name TypeAnnotation
}

// ClassDeclaration is a `class` statement. IsProtocol marks a structural
// (duck-typed) class per spec's structural-class design note; IsNamedTuple
// marks a NamedTuple-derived class; IsTypedDict marks a TypedDict-derived
// class (fields come from annotated assignments in Body).
type ClassDeclaration struct {
	Token        token.Token
	Name         string
	TypeParams   []*TypeVarDecl
	Bases        []*ClassBase
	Body         []Statement
	Decorators   []*Decorator
	IsProtocol   bool
	IsNamedTuple bool
	IsTypedDict  bool
	IsAbstract   bool
	TotalTypedDict bool // totality for IsTypedDict classes, default true
}

func (c *ClassDeclaration) statementNode()       {}
func (c *ClassDeclaration) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ClassDeclaration) GetToken() token.Token { return c.Token }

// TypeAliasDeclaration is `type Name[params] = annotation` (or the legacy
// `Name = annotation` form without the `type` keyword, still accepted).
type TypeAliasDeclaration struct {
	Token      token.Token
	Name       string
	TypeParams []*TypeVarDecl
	Value      TypeAnnotation
}

func (t *TypeAliasDeclaration) statementNode()       {}
func (t *TypeAliasDeclaration) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TypeAliasDeclaration) GetToken() token.Token { return t.Token }
