package parser

import (
	"testing"

	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/lexer"
	"github.com/typewright/funxytc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*ast.Program, *diagnostics.Bag) {
	t.Helper()
	l := lexer.New(src)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	bag := diagnostics.NewBag()
	p := New(tokens, bag, "test.py")
	return p.ParseProgram(), bag
}

func TestParseFunctionDeclaration(t *testing.T) {
	src := "def add(a: int, b: int) -> int {\n    return a + b\n}\n"
	prog, bag := parseSource(t, src)
	require.False(t, bag.HasErrors(), bag.All())
	require.Len(t, prog.Statements, 1)
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Parameters, 2)
	require.NotNil(t, fn.ReturnType)
}

func TestParseClassWithBase(t *testing.T) {
	src := "class Dog(Animal) {\n    def bark(self) -> None {\n        pass\n    }\n}\n"
	prog, bag := parseSource(t, src)
	require.False(t, bag.HasErrors(), bag.All())
	cls, ok := prog.Statements[0].(*ast.ClassDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Dog", cls.Name)
	require.Len(t, cls.Bases, 1)
}

func TestParseIfElifElse(t *testing.T) {
	src := "if x {\n    pass\n} elif y {\n    pass\n} else {\n    pass\n}\n"
	prog, bag := parseSource(t, src)
	require.False(t, bag.HasErrors(), bag.All())
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.Len(t, stmt.Elifs, 1)
	assert.NotNil(t, stmt.Else)
}

func TestParseTernaryAndUnion(t *testing.T) {
	src := "x: int | None = 1 if flag else None\n"
	prog, bag := parseSource(t, src)
	require.False(t, bag.HasErrors(), bag.All())
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	require.True(t, ok)
	_, ok = assign.Annotation.(*ast.UnionTypeAnnotation)
	assert.True(t, ok)
	_, ok = assign.Value.(*ast.ConditionalExpression)
	assert.True(t, ok)
}

func TestParseListComprehension(t *testing.T) {
	src := "xs = [y for y in ys if y]\n"
	prog, bag := parseSource(t, src)
	require.False(t, bag.HasErrors(), bag.All())
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	require.True(t, ok)
	comp, ok := assign.Value.(*ast.ComprehensionExpression)
	require.True(t, ok)
	assert.Equal(t, ast.ListComp, comp.Kind)
	assert.Len(t, comp.Clauses, 2)
}
