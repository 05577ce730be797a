package ast

import "github.com/typewright/funxytc/internal/token"

// TypeAnnotation is the syntactic form of a type expression as written by
// the programmer: `int`, `list[str]`, `int | None`, `Callable[[int], str]`,
// a TypedDict literal, and so on. The checker's internal/typesystem package
// resolves these into internal Type values; this package only records what
// was written and where.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// NamedTypeAnnotation is a bare or parameterized nominal reference: `int`,
// `list[int]`, `dict[str, int]`, `MyClass[T]`.
type NamedTypeAnnotation struct {
	Token token.Token
	Name  string
	Args  []TypeAnnotation
}

func (n *NamedTypeAnnotation) typeAnnotationNode()  {}
func (n *NamedTypeAnnotation) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NamedTypeAnnotation) GetToken() token.Token { return n.Token }

// UnionTypeAnnotation is `A | B | C`; `T | None` sugar is represented as an
// ordinary two-element union containing a NamedTypeAnnotation{Name: "None"}.
type UnionTypeAnnotation struct {
	Token token.Token
	Types []TypeAnnotation
}

func (u *UnionTypeAnnotation) typeAnnotationNode()  {}
func (u *UnionTypeAnnotation) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnionTypeAnnotation) GetToken() token.Token { return u.Token }

// TupleTypeAnnotation is `tuple[int, str]` or `tuple[int, *Ts]` (one
// optional unpack element at any position, tracked by UnpackIndex >= 0).
type TupleTypeAnnotation struct {
	Token       token.Token
	Elements    []TypeAnnotation
	UnpackIndex int // -1 if no unpack element
}

func (t *TupleTypeAnnotation) typeAnnotationNode()  {}
func (t *TupleTypeAnnotation) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TupleTypeAnnotation) GetToken() token.Token { return t.Token }

// CallableTypeAnnotation is `Callable[[int, str], bool]`.
type CallableTypeAnnotation struct {
	Token      token.Token
	Params     []TypeAnnotation
	ReturnType TypeAnnotation
}

func (c *CallableTypeAnnotation) typeAnnotationNode()  {}
func (c *CallableTypeAnnotation) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallableTypeAnnotation) GetToken() token.Token { return c.Token }

// MappingField is one field of a TypedMapping annotation.
type MappingField struct {
	Name     string
	Type     TypeAnnotation
	Optional bool
	ReadOnly bool
}

// TypedMappingAnnotation is a TypedDict-shaped structural record literal
// type: `{x: int, y?: str}`. Total defaults to true (all fields required
// unless marked optional with `?`); ExtraItems controls whether keys
// outside Fields are tolerated.
type TypedMappingAnnotation struct {
	Token      token.Token
	Name       string // empty for an anonymous inline mapping type
	Fields     []MappingField
	Total      bool
	ExtraItems TypeAnnotation // never set by the parser; `extra: T` inside the braces is an ordinary field
}

func (t *TypedMappingAnnotation) typeAnnotationNode()  {}
func (t *TypedMappingAnnotation) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TypedMappingAnnotation) GetToken() token.Token { return t.Token }

// NamedTupleField is one ordered field of a NamedTuple declaration.
type NamedTupleField struct {
	Name    string
	Type    TypeAnnotation
	Default Expression // nil if no default
}

// NamedTupleAnnotation declares an immutable, ordered, named-field tuple
// type: `NamedTuple("Point", [("x", int), ("y", int)])` surface form, or
// the class-based `class Point(NamedTuple): x: int; y: int` form captured
// as a ClassDeclaration with IsNamedTuple set instead; this node covers
// only the functional form.
type NamedTupleAnnotation struct {
	Token  token.Token
	Name   string
	Fields []NamedTupleField
}

func (n *NamedTupleAnnotation) typeAnnotationNode()  {}
func (n *NamedTupleAnnotation) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NamedTupleAnnotation) GetToken() token.Token { return n.Token }

// LiteralTypeAnnotation is `Literal[1, 2, "x"]`.
type LiteralTypeAnnotation struct {
	Token  token.Token
	Values []Expression
}

func (l *LiteralTypeAnnotation) typeAnnotationNode()  {}
func (l *LiteralTypeAnnotation) TokenLiteral() string  { return l.Token.Lexeme }
func (l *LiteralTypeAnnotation) GetToken() token.Token { return l.Token }

// AnyTypeAnnotation is the literal `Any` (or `object`, by spec choice,
// folds to a distinct nominal rather than Any — only the keyword `Any`
// resolves to the dynamic type).
type AnyTypeAnnotation struct {
	Token token.Token
}

func (a *AnyTypeAnnotation) typeAnnotationNode()  {}
func (a *AnyTypeAnnotation) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AnyTypeAnnotation) GetToken() token.Token { return a.Token }

// TypeVarKind distinguishes plain TypeVars from ParamSpecs and TypeVarTuples.
type TypeVarKind int

const (
	TypeVarPlain TypeVarKind = iota
	TypeVarTuple
	ParamSpecVar
)

// TypeVarDecl is one entry of a generic declaration's parameter list:
// `T`, `T: int`, `T: (int, str)` (value constraint), `T = int` (default),
// with optional variance marker for class-level declarations.
type TypeVarDecl struct {
	Token      token.Token
	Name       string
	Kind       TypeVarKind
	Bound      TypeAnnotation
	Constraints []TypeAnnotation
	Default    TypeAnnotation
	Variance   Variance
}

// Variance is the declared variance of a class type parameter.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)
