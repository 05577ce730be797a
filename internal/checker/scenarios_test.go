package checker

import (
	"testing"

	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generic identity: a type variable bound to the call site's argument
// type must reappear, unchanged, at the return type.
func TestScenarioGenericIdentity(t *testing.T) {
	src := "def identity[T](x: T) -> T {\n    return x\n}\nn: int = identity(1)\ns: str = identity(\"a\")\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestScenarioGenericIdentityRejectsMismatchedResult(t *testing.T) {
	src := "def identity[T](x: T) -> T {\n    return x\n}\nn: str = identity(1)\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrIncompatibleAssignment, bag.All()[0].Code)
}

// Overload selection: the first matching declared signature wins, and
// calls matching none of them are rejected.
func TestScenarioOverloadSelectionPicksFirstMatch(t *testing.T) {
	src := "@overload\ndef describe(x: int) -> str {\n    pass\n}\n" +
		"@overload\ndef describe(x: str) -> int {\n    pass\n}\n" +
		"def describe(x) {\n    return x\n}\n" +
		"a: str = describe(1)\nb: int = describe(\"x\")\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestScenarioOverloadSelectionRejectsNoMatch(t *testing.T) {
	src := "@overload\ndef describe(x: int) -> str {\n    pass\n}\n" +
		"@overload\ndef describe(x: str) -> int {\n    pass\n}\n" +
		"def describe(x) {\n    return x\n}\n" +
		"c = describe(1.5)\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrNoOverloadMatch, bag.All()[0].Code)
}

// Type-guard narrowing: a user function declared `-> TypeIs[int]` narrows
// its argument to int in the then-branch and away from int (to the
// remaining str alternative) in the else-branch.
func TestScenarioTypeGuardNarrowing(t *testing.T) {
	src := "def is_int(x: int | str) -> TypeIs[int] {\n    return True\n}\n" +
		"def double_or_shout(x: int | str) -> int {\n" +
		"    if is_int(x) {\n        y: int = x\n        return y + y\n    }\n" +
		"    z: str = x\n    return 0\n}\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

// The then-branch of a TypeIs guard rejects an assignment inconsistent
// with the narrowed type, proving the narrowing actually took effect
// rather than leaving the parameter at its declared union type.
func TestScenarioTypeGuardNarrowingThenBranchRejectsMismatch(t *testing.T) {
	src := "def is_int(x: int | str) -> TypeIs[int] {\n    return True\n}\n" +
		"def f(x: int | str) -> int {\n" +
		"    if is_int(x) {\n        y: str = x\n        return 0\n    }\n    return 0\n}\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrIncompatibleAssignment, bag.All()[0].Code)
}

// Value-constrained generics: a type variable restricted to `(int, str)`
// accepts either listed type at the call site and rejects anything else.
func TestScenarioValueConstrainedGenericAcceptsListedType(t *testing.T) {
	src := "def echo[T: (int, str)](x: T) -> T {\n    return x\n}\nn: int = echo(1)\ns: str = echo(\"a\")\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestScenarioValueConstrainedGenericRejectsUnlistedType(t *testing.T) {
	src := "def echo[T: (int, str)](x: T) -> T {\n    return x\n}\nf: float = echo(1.5)\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
}

// Variance enforcement: a class declaring a type parameter contravariant
// while only ever returning it (a covariant usage) is rejected under
// variance-check.
func TestScenarioVarianceEnforcementRejectsContravariantReturn(t *testing.T) {
	src := "class Box[-T] {\n    def get(self) -> T {\n        pass\n    }\n}\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrVarianceViolation, bag.All()[0].Code)
}

func TestScenarioVarianceEnforcementAcceptsCovariantReturn(t *testing.T) {
	src := "class Box[+T] {\n    def get(self) -> T {\n        pass\n    }\n}\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

// TypedDict field access: a structural mapping annotation exposes its
// declared fields through string-literal subscripting, and rejects keys
// it never declared.
func TestScenarioTypedMappingFieldAccess(t *testing.T) {
	src := "def get_x(p: {x: int, y: int}) -> int {\n    return p[\"x\"]\n}\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}

func TestScenarioTypedMappingRejectsUnknownKey(t *testing.T) {
	src := "def get_z(p: {x: int, y: int}) -> int {\n    return p[\"z\"]\n}\n"
	bag := check(t, src)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostics.ErrMappingExtraKey, bag.All()[0].Code)
}

// Partial-application plugin: functools.partial (or the bare builtin)
// fixes the leading parameters of a callable and returns a callable over
// the remainder.
func TestScenarioPartialApplicationPlugin(t *testing.T) {
	src := "def add(a: int, b: int) -> int {\n    return a + b\n}\nadd_one = partial(add, 1)\nn: int = add_one(2)\n"
	bag := check(t, src)
	assert.False(t, bag.HasErrors(), bag.All())
}
