package plugins

import (
	"testing"

	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intInstance() typesystem.Type {
	return typesystem.Instance{ClassName: "int", ClassID: "builtin:int"}
}

func TestPartialHookFixesLeadingParameters(t *testing.T) {
	hook, ok := CallHookFor("partial")
	require.True(t, ok)

	fn := typesystem.Callable{
		Params: []typesystem.CallableParam{
			{Name: "a", Type: intInstance(), Kind: typesystem.PositionalOrKeyword},
			{Name: "b", Type: intInstance(), Kind: typesystem.PositionalOrKeyword},
		},
		Return: intInstance(),
	}
	result, handled, diags := hook([]typesystem.Type{fn, intInstance()}, diagnostics.Position{})
	require.True(t, handled)
	assert.Empty(t, diags)

	callable, ok := result.(typesystem.Callable)
	require.True(t, ok)
	assert.Len(t, callable.Params, 1)
	assert.Equal(t, "b", callable.Params[0].Name)
}

func TestPartialHookRejectsNonCallable(t *testing.T) {
	hook, ok := CallHookFor("functools.partial")
	require.True(t, ok)

	_, handled, diags := hook([]typesystem.Type{intInstance()}, diagnostics.Position{})
	assert.True(t, handled)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ErrIncompatibleArgument, diags[0].Code)
}

func TestClassHookRegistryRoundTrips(t *testing.T) {
	_, ok := ClassHookFor("NoSuchHook")
	assert.False(t, ok)

	called := false
	RegisterClassHook("Widget", func(info *symbols.ClassInfo, cls *ast.ClassDeclaration) {
		called = true
	})
	hook, ok := ClassHookFor("Widget")
	require.True(t, ok)
	hook(&symbols.ClassInfo{Name: "Widget"}, &ast.ClassDeclaration{Name: "Widget"})
	assert.True(t, called)
}
