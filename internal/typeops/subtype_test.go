package typeops

import (
	"testing"

	"github.com/typewright/funxytc/internal/typesystem"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func intType() typesystem.Type  { return typesystem.Instance{ClassName: "int", ClassID: "int"} }
func strType() typesystem.Type  { return typesystem.Instance{ClassName: "str", ClassID: "str"} }
func boolType() typesystem.Type { return typesystem.Instance{ClassName: "bool", ClassID: "bool"} }

func TestSubtypeReflexive(t *testing.T) {
	assert.True(t, IsSubtype(intType(), intType()))
	assert.True(t, IsSubtype(strType(), strType()))
}

func TestAnyAbsorbsEverything(t *testing.T) {
	assert.True(t, IsSubtype(typesystem.AnyType{}, intType()))
	assert.True(t, IsSubtype(intType(), typesystem.AnyType{}))
}

func TestNeverIsBottom(t *testing.T) {
	assert.True(t, IsSubtype(typesystem.NeverType{}, intType()))
	assert.False(t, IsSubtype(intType(), typesystem.NeverType{}))
}

func TestUnionSubtyping(t *testing.T) {
	u := typesystem.NormalizeUnion([]typesystem.Type{intType(), strType()})
	assert.True(t, IsSubtype(intType(), u))
	assert.True(t, IsSubtype(strType(), u))
	assert.False(t, IsSubtype(boolType(), u))
	assert.False(t, IsSubtype(u, intType()))
}

func TestNominalHierarchy(t *testing.T) {
	RegisterBases("dog", []typesystem.Instance{{ClassName: "Animal", ClassID: "animal"}})
	dog := typesystem.Instance{ClassName: "Dog", ClassID: "dog"}
	animal := typesystem.Instance{ClassName: "Animal", ClassID: "animal"}
	assert.True(t, IsSubtype(dog, animal))
	assert.False(t, IsSubtype(animal, dog))
}

func TestTypedMappingWidthSubtyping(t *testing.T) {
	narrow := typesystem.TypedMapping{Fields: map[string]typesystem.MappingField{
		"x": {Type: intType()},
	}}
	wide := typesystem.TypedMapping{Fields: map[string]typesystem.MappingField{
		"x": {Type: intType()},
		"y": {Type: strType(), Optional: true},
	}}
	assert.True(t, IsSubtype(narrow, wide))
}

func TestCallableContravariantParamsCovariantReturn(t *testing.T) {
	narrowParam := typesystem.Callable{
		Params: []typesystem.CallableParam{{Name: "x", Type: intType()}},
		Return: boolType(),
	}
	wideParam := typesystem.Callable{
		Params: []typesystem.CallableParam{{Name: "x", Type: typesystem.AnyType{}}},
		Return: boolType(),
	}
	// A function accepting Any can be used where one accepting int is
	// expected (wider parameter acceptance is fine contravariantly).
	assert.True(t, IsSubtype(wideParam, narrowParam))
}

func TestJoinProducesUnionForUnrelatedTypes(t *testing.T) {
	j := Join(intType(), strType())
	u, ok := j.(typesystem.Union)
	assert.True(t, ok)
	assert.Len(t, u.Alternatives, 2)
}

func TestJoinSubtypeShortcut(t *testing.T) {
	RegisterBases("cat", []typesystem.Instance{{ClassName: "Animal", ClassID: "animal"}})
	cat := typesystem.Instance{ClassName: "Cat", ClassID: "cat"}
	animal := typesystem.Instance{ClassName: "Animal", ClassID: "animal"}
	assert.Equal(t, animal, Join(cat, animal))
}

func TestMeetNarrowsUnion(t *testing.T) {
	u := typesystem.NormalizeUnion([]typesystem.Type{intType(), strType()})
	assert.Equal(t, intType().String(), Meet(u, intType()).String())
}

func TestUnionNormalizationIsOrderIndependent(t *testing.T) {
	a := typesystem.NormalizeUnion([]typesystem.Type{intType(), strType(), boolType()})
	b := typesystem.NormalizeUnion([]typesystem.Type{boolType(), intType(), strType()})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("normalized union depends on input order (-got +want):\n%s", diff)
	}
}
