package solver

import (
	"testing"

	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inst(name string) typesystem.Type {
	return typesystem.Instance{ClassName: name, ClassID: name}
}

func TestSolveFromLowerBoundsJoinsArguments(t *testing.T) {
	s := NewSet()
	tv := typesystem.NewTypeVarRef("T")
	s.AddLower(tv, inst("int"))
	s.AddLower(tv, inst("int"))

	subst, diags := Solve(s, diagnostics.Position{File: "x.py"})
	require.Empty(t, diags)
	assert.Equal(t, "int", subst[tv.ID].String())
}

func TestSolveFallsBackToDefaultWhenUnconstrained(t *testing.T) {
	s := NewSet()
	tv := typesystem.NewTypeVarRef("T")
	tv.Default = inst("str")
	s.Declare(tv)

	subst, diags := Solve(s, diagnostics.Position{File: "x.py"})
	require.Empty(t, diags)
	assert.Equal(t, "str", subst[tv.ID].String())
}

func TestSolveConstrainedPicksFirstConsistentConstraint(t *testing.T) {
	s := NewSet()
	tv := typesystem.NewTypeVarRef("T")
	tv.Constraints = []typesystem.Type{inst("int"), inst("str")}
	s.AddLower(tv, inst("str"))

	subst, diags := Solve(s, diagnostics.Position{File: "x.py"})
	require.Empty(t, diags)
	assert.Equal(t, "str", subst[tv.ID].String())
}

func TestSolveConstrainedFailsWhenNoConstraintFits(t *testing.T) {
	s := NewSet()
	tv := typesystem.NewTypeVarRef("T")
	tv.Constraints = []typesystem.Type{inst("int"), inst("str")}
	s.AddLower(tv, inst("float"))

	subst, diags := Solve(s, diagnostics.Position{File: "x.py"})
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ErrTypeVariableUnsolved, diags[0].Code)
	assert.Equal(t, "Any", subst[tv.ID].String())
}

func TestSolveReportsUnsolvedWithNoBoundsOrDefault(t *testing.T) {
	s := NewSet()
	tv := typesystem.NewTypeVarRef("T")
	s.Declare(tv)

	subst, diags := Solve(s, diagnostics.Position{File: "x.py"})
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ErrTypeVariableUnsolved, diags[0].Code)
	assert.Equal(t, "Any", subst[tv.ID].String())
}
