package ast

import "github.com/typewright/funxytc/internal/token"

// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral, NoneLiteral are
// the atomic literal expression forms.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntLiteral) expressionNode()      {}
func (l *IntLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *IntLiteral) GetToken() token.Token { return l.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *FloatLiteral) GetToken() token.Token { return l.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *StringLiteral) GetToken() token.Token { return l.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *BoolLiteral) GetToken() token.Token { return l.Token }

type NoneLiteral struct {
	Token token.Token
}

func (l *NoneLiteral) expressionNode()      {}
func (l *NoneLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *NoneLiteral) GetToken() token.Token { return l.Token }

// ListLiteral, TupleLiteral, SetLiteral are bracketed/braced collection
// literals.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *ListLiteral) GetToken() token.Token { return l.Token }

type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *TupleLiteral) expressionNode()      {}
func (l *TupleLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *TupleLiteral) GetToken() token.Token { return l.Token }

type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *SetLiteral) expressionNode()      {}
func (l *SetLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *SetLiteral) GetToken() token.Token { return l.Token }

// DictEntry is one `key: value` pair of a dict/mapping literal.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k: v, ...}`, and is also the literal syntax used when
// the expected type is a TypedMapping.
type DictLiteral struct {
	Token   token.Token
	Entries []DictEntry
}

func (l *DictLiteral) expressionNode()      {}
func (l *DictLiteral) TokenLiteral() string  { return l.Token.Lexeme }
func (l *DictLiteral) GetToken() token.Token { return l.Token }

// PrefixExpression is a unary operator applied to an operand: `-x`, `not x`,
// `~x`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *PrefixExpression) GetToken() token.Token { return e.Token }

// InfixExpression is a binary operator expression, including boolean
// `and`/`or` and chained comparisons flattened pairwise by the parser.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *InfixExpression) GetToken() token.Token { return e.Token }

// IsExpression is `x is None`, `x is not None`, `x is OtherIdent`.
type IsExpression struct {
	Token  token.Token
	Left   Expression
	Right  Expression
	Negate bool
}

func (e *IsExpression) expressionNode()      {}
func (e *IsExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IsExpression) GetToken() token.Token { return e.Token }

// ConditionalExpression is the ternary `a if cond else b`.
type ConditionalExpression struct {
	Token       token.Token
	Consequence Expression
	Condition   Expression
	Alternative Expression
}

func (e *ConditionalExpression) expressionNode()      {}
func (e *ConditionalExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ConditionalExpression) GetToken() token.Token { return e.Token }

// Argument is one call argument: positional, or `name=value` keyword, or
// `*expr`/`**expr` unpacking.
type Argument struct {
	Name     string // empty for positional
	Value    Expression
	IsStar   bool
	IsDStar  bool
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     token.Token
	Function  Expression
	Arguments []*Argument
	TypeArgs  []TypeAnnotation // explicit `callee[int, str](...)` instantiation, may be empty
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *CallExpression) GetToken() token.Token { return e.Token }

// AttributeExpression is `obj.name`.
type AttributeExpression struct {
	Token token.Token
	Left  Expression
	Name  string
}

func (e *AttributeExpression) expressionNode()      {}
func (e *AttributeExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *AttributeExpression) GetToken() token.Token { return e.Token }

// IndexExpression is `obj[index]`; Slice is non-nil for `obj[a:b:c]`.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
	Slice *SliceExpr
}

func (e *IndexExpression) expressionNode()      {}
func (e *IndexExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IndexExpression) GetToken() token.Token { return e.Token }

// SliceExpr holds the optional start/stop/step of a slice subscript.
type SliceExpr struct {
	Start Expression
	Stop  Expression
	Step  Expression
}

// LambdaExpression is `lambda params: body`.
type LambdaExpression struct {
	Token      token.Token
	Parameters []*Parameter
	Body       Expression
}

func (e *LambdaExpression) expressionNode()      {}
func (e *LambdaExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *LambdaExpression) GetToken() token.Token { return e.Token }

// CompClause is one `for target in iter` or `if cond` clause of a
// comprehension.
type CompClause struct {
	IsFilter bool
	Target   Expression // for-clauses
	Iterable Expression // for-clauses
	Cond     Expression // if-clauses
}

// ComprehensionExpression covers list/set/dict/generator comprehensions;
// Kind distinguishes the bracketing that produced it. For dict
// comprehensions, Value holds the value expression and Output holds the key.
type ComprehensionKind int

const (
	ListComp ComprehensionKind = iota
	SetComp
	DictComp
	GeneratorComp
)

type ComprehensionExpression struct {
	Token   token.Token
	Kind    ComprehensionKind
	Output  Expression
	Value   Expression // only for DictComp
	Clauses []*CompClause
}

func (e *ComprehensionExpression) expressionNode()      {}
func (e *ComprehensionExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ComprehensionExpression) GetToken() token.Token { return e.Token }

// AnnotatedExpression wraps an expression with an explicit `expr: Type`
// type-comment/cast-like annotation used in a few positions (e.g. `cast`).
type AnnotatedExpression struct {
	Token      token.Token
	Expression Expression
	Type       TypeAnnotation
}

func (e *AnnotatedExpression) expressionNode()      {}
func (e *AnnotatedExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *AnnotatedExpression) GetToken() token.Token { return e.Token }
