package checker

import (
	"testing"

	"github.com/typewright/funxytc/internal/config"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/lexer"
	"github.com/typewright/funxytc/internal/parser"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) *diagnostics.Bag {
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
	p := parser.New(tokens, bag, "t.py")
	prog := p.ParseProgram()
	require.False(t, bag.HasErrors(), bag.All())

	table := symbols.NewSymbolTable(symbols.ScopeModule, "t", nil)
	c := New(table, config.Default(), bag, "t.py")
	c.CheckProgram(prog)
	return bag
}

func TestIncompatibleAssignmentReported(t *testing.T) {
	bag := check(t, "x: int = \"hello\"\n")
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrIncompatibleAssignment, bag.All()[0].Code)
}

func TestCompatibleAssignmentIsClean(t *testing.T) {
	bag := check(t, "x: int = 1\n")
	assert.False(t, bag.HasErrors())
}

func TestUndefinedNameReported(t *testing.T) {
	bag := check(t, "y = z\n")
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrNameUndefined, bag.All()[0].Code)
}

func TestFunctionCallArgumentChecked(t *testing.T) {
	src := "def f(a: int) -> int {\n    return a\n}\nf(\"bad\")\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrIncompatibleArgument, bag.All()[0].Code)
}

func TestClassAttributeAccess(t *testing.T) {
	src := "class Point {\n    x: int\n}\ndef f(p: Point) -> int {\n    return p.x\n}\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestIsinstanceNarrowingAllowsMemberAccess(t *testing.T) {
	src := "class Dog {\n    name: str\n}\ndef greet(x) -> str {\n    if isinstance(x, Dog) {\n        return x.name\n    }\n    return \"\"\n}\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestPartialPluginNarrowsSignature(t *testing.T) {
	src := "def add(a: int, b: int) -> int {\n    return a + b\n}\nadd_one = partial(add, 1)\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestPlainReassignmentIsNotReportedAsFinal(t *testing.T) {
	src := "x: int = 1\nx = 2\n"
	bag := check(t, src)
	_ = bag // Final tracking requires the Final[T] wrapper form, covered at the annotation-parsing layer; here we assert no false positive on a plain re-assignment.
	assert.False(t, bag.HasErrors())
}
