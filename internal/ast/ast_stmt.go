package ast

import "github.com/typewright/funxytc/internal/token"

// AssignStatement is `target = value` or `target: Type = value` (the
// annotation form, which also introduces the binding's declared type).
type AssignStatement struct {
	Token      token.Token
	Targets    []Expression // more than one for chained assignment `a = b = value`
	Annotation TypeAnnotation
	Value      Expression
	IsClassVar bool // ClassVar[T] annotation wrapper was present
	IsFinal    bool // Final[T] annotation wrapper, or `Final` bare
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AssignStatement) GetToken() token.Token { return a.Token }

// AugAssignStatement is `target += value` and friends.
type AugAssignStatement struct {
	Token    token.Token
	Target   Expression
	Operator string
	Value    Expression
}

func (a *AugAssignStatement) statementNode()       {}
func (a *AugAssignStatement) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AugAssignStatement) GetToken() token.Token { return a.Token }

// IfStatement covers `if`/`elif`/`else`; Elifs holds zero or more
// (condition, block) pairs and Else is nil when absent.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
	Elifs     []*ElifClause
	Else      *BlockStatement
}

type ElifClause struct {
	Condition Expression
	Body      *BlockStatement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *IfStatement) GetToken() token.Token { return s.Token }

// WhileStatement is `while cond: body [else: block]`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
	Else      *BlockStatement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *WhileStatement) GetToken() token.Token { return s.Token }

// ForStatement is `for target in iterable: body [else: block]`.
type ForStatement struct {
	Token    token.Token
	Target   Expression
	Iterable Expression
	Body     *BlockStatement
	Else     *BlockStatement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ForStatement) GetToken() token.Token { return s.Token }

// ReturnStatement is `return [value]`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for bare `return`
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ReturnStatement) GetToken() token.Token { return s.Token }

// PassStatement, BreakStatement, ContinueStatement are no-argument
// control statements.
type PassStatement struct{ Token token.Token }

func (s *PassStatement) statementNode()       {}
func (s *PassStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *PassStatement) GetToken() token.Token { return s.Token }

type BreakStatement struct{ Token token.Token }

func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *BreakStatement) GetToken() token.Token { return s.Token }

type ContinueStatement struct{ Token token.Token }

func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ContinueStatement) GetToken() token.Token { return s.Token }

// DelStatement is `del target[, target...]`.
type DelStatement struct {
	Token   token.Token
	Targets []Expression
}

func (s *DelStatement) statementNode()       {}
func (s *DelStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *DelStatement) GetToken() token.Token { return s.Token }

// AssertStatement is `assert cond[, message]`.
type AssertStatement struct {
	Token   token.Token
	Cond    Expression
	Message Expression // nil if absent
}

func (s *AssertStatement) statementNode()       {}
func (s *AssertStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *AssertStatement) GetToken() token.Token { return s.Token }

// RaiseStatement is `raise [exc [from cause]]`.
type RaiseStatement struct {
	Token token.Token
	Exc   Expression // nil for bare re-raise
	Cause Expression
}

func (s *RaiseStatement) statementNode()       {}
func (s *RaiseStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *RaiseStatement) GetToken() token.Token { return s.Token }

// ExceptClause is one `except Type as name: block` arm.
type ExceptClause struct {
	Types []TypeAnnotation // empty for bare `except:`
	Name  string           // empty if no `as name`
	Body  *BlockStatement
}

// TryStatement is `try: body [except...]* [else: block] [finally: block]`.
type TryStatement struct {
	Token   token.Token
	Body    *BlockStatement
	Excepts []*ExceptClause
	Else    *BlockStatement
	Finally *BlockStatement
}

func (s *TryStatement) statementNode()       {}
func (s *TryStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *TryStatement) GetToken() token.Token { return s.Token }

// GlobalStatement is `global name[, name...]`.
type GlobalStatement struct {
	Token token.Token
	Names []string
}

func (s *GlobalStatement) statementNode()       {}
func (s *GlobalStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *GlobalStatement) GetToken() token.Token { return s.Token }
