package symbols

import (
	"testing"

	"github.com/typewright/funxytc/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWalksOuterScopeChain(t *testing.T) {
	module := NewSymbolTable(ScopeModule, "m", nil)
	module.Define(&Symbol{Name: "x", Type: typesystem.AnyType{}, Kind: VariableSymbol})

	fn := NewSymbolTable(ScopeFunction, "f", module)
	_, ok := fn.FindLocal("x")
	assert.False(t, ok, "FindLocal must not walk outward")

	sym, ok := fn.Find("x")
	require.True(t, ok)
	assert.Equal(t, "m", sym.ScopeID)
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	module := NewSymbolTable(ScopeModule, "m", nil)
	module.Define(&Symbol{Name: "x", Type: typesystem.Instance{ClassName: "int"}, Kind: VariableSymbol})

	fn := NewSymbolTable(ScopeFunction, "f", module)
	fn.Define(&Symbol{Name: "x", Type: typesystem.Instance{ClassName: "str"}, Kind: VariableSymbol})

	sym, ok := fn.Find("x")
	require.True(t, ok)
	assert.Equal(t, "str", sym.Type.(typesystem.Instance).ClassName)

	outer, ok := module.Find("x")
	require.True(t, ok)
	assert.Equal(t, "int", outer.Type.(typesystem.Instance).ClassName)
}

func TestResolveAliasWalksOuterScopeChain(t *testing.T) {
	module := NewSymbolTable(ScopeModule, "m", nil)
	module.DefineAlias("IntList", typesystem.Instance{ClassName: "list"}, nil)

	inner := NewSymbolTable(ScopeFunction, "f", module)
	underlying, params, ok := inner.ResolveAlias("IntList")
	require.True(t, ok)
	assert.Empty(t, params)
	assert.Equal(t, "list", underlying.(typesystem.Instance).ClassName)

	_, _, ok = inner.ResolveAlias("NoSuchAlias")
	assert.False(t, ok)
}

func TestOverloadGroupAccumulatesSignaturesInOrder(t *testing.T) {
	table := NewSymbolTable(ScopeModule, "m", nil)
	intSig := typesystem.Callable{Return: typesystem.Instance{ClassName: "int"}}
	strSig := typesystem.Callable{Return: typesystem.Instance{ClassName: "str"}}

	table.DefineOverload("f", intSig)
	table.DefineOverload("f", strSig)
	table.SetOverloadImplementation("f", typesystem.Callable{Return: typesystem.Union{}})

	g, ok := table.FindOverloadGroup("f")
	require.True(t, ok)
	require.Len(t, g.Signatures, 2)
	assert.Equal(t, "int", g.Signatures[0].Return.(typesystem.Instance).ClassName)
	assert.Equal(t, "str", g.Signatures[1].Return.(typesystem.Instance).ClassName)
	require.NotNil(t, g.Implementation)
}

func TestFindMemberPrefersNearestClassInMRO(t *testing.T) {
	base := &ClassInfo{Name: "Animal", ClassID: "animal-1", Members: map[string]*Symbol{
		"speak": {Name: "speak", Type: typesystem.Instance{ClassName: "str"}},
	}}
	derived := &ClassInfo{Name: "Dog", ClassID: "dog-1",
		Bases:   []typesystem.Instance{{ClassName: "Animal", ClassID: "animal-1"}},
		Members: map[string]*Symbol{"speak": {Name: "speak", Type: typesystem.Instance{ClassName: "int"}}},
	}
	RegisterClass(base)
	RegisterClass(derived)

	sym, ok := FindMember("dog-1", "speak")
	require.True(t, ok)
	assert.Equal(t, "int", sym.Type.(typesystem.Instance).ClassName, "derived class's own member wins over the base's")

	mro := LinearizeMRO("dog-1")
	require.Equal(t, []string{"dog-1", "animal-1"}, mro)
}

func TestLookupClassByNameAndID(t *testing.T) {
	info := &ClassInfo{Name: "Widget", ClassID: "widget-1"}
	RegisterClass(info)

	byID, ok := LookupClass("widget-1")
	require.True(t, ok)
	assert.Equal(t, "Widget", byID.Name)

	byName, ok := LookupClassByName("Widget")
	require.True(t, ok)
	assert.Equal(t, "widget-1", byName.ClassID)
}
