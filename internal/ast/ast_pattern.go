package ast

import "github.com/typewright/funxytc/internal/token"

// Pattern is a `match`/`case` pattern. The parser does not produce
// patterns, and the checker has no narrowing case for them.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is the bare `_`.
type WildcardPattern struct{ Token token.Token }

func (p *WildcardPattern) patternNode()        {}
func (p *WildcardPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token { return p.Token }

// CapturePattern binds the matched value to Name (possibly `_` handled as
// WildcardPattern instead).
type CapturePattern struct {
	Token token.Token
	Name  string
}

func (p *CapturePattern) patternNode()        {}
func (p *CapturePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *CapturePattern) GetToken() token.Token { return p.Token }

// LiteralPattern matches against a literal value.
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (p *LiteralPattern) patternNode()        {}
func (p *LiteralPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *LiteralPattern) GetToken() token.Token { return p.Token }

// ClassPattern is `ClassName(pos_pattern, ..., field=pattern, ...)`; it is
// the narrowing-relevant pattern form, equivalent to an `isinstance` check
// against ClassName followed by per-field destructuring.
type ClassPattern struct {
	Token        token.Token
	ClassName    string
	Positional   []Pattern
	Keyword      map[string]Pattern
}

func (p *ClassPattern) patternNode()        {}
func (p *ClassPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ClassPattern) GetToken() token.Token { return p.Token }

// SequencePattern is `[a, b, *rest]` or `(a, b)`.
type SequencePattern struct {
	Token       token.Token
	Elements    []Pattern
	StarIndex   int // -1 if no star element
}

func (p *SequencePattern) patternNode()        {}
func (p *SequencePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *SequencePattern) GetToken() token.Token { return p.Token }

// OrPattern is `pat1 | pat2 | ...`.
type OrPattern struct {
	Token token.Token
	Alts  []Pattern
}

func (p *OrPattern) patternNode()        {}
func (p *OrPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *OrPattern) GetToken() token.Token { return p.Token }

// CaseClause is one `case pattern [if guard]: body` arm of a match
// statement.
type CaseClause struct {
	Pattern Pattern
	Guard   Expression // nil if absent
	Body    *BlockStatement
}

// MatchStatement is `match subject: case ...`.
type MatchStatement struct {
	Token   token.Token
	Subject Expression
	Cases   []*CaseClause
}

func (s *MatchStatement) statementNode()       {}
func (s *MatchStatement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *MatchStatement) GetToken() token.Token { return s.Token }
