package typesystem

import "testing"

func TestNormalizeUnionFlattensDedupesAndSorts(t *testing.T) {
	intT := Instance{ClassName: "int"}
	strT := Instance{ClassName: "str"}
	nested := Union{Alternatives: []Type{strT, intT}}

	got := NormalizeUnion([]Type{intT, nested, intT})
	union, ok := got.(Union)
	if !ok {
		t.Fatalf("NormalizeUnion() = %v, want a Union", got)
	}
	if len(union.Alternatives) != 2 {
		t.Fatalf("NormalizeUnion() kept %d alternatives, want 2 (duplicate int dropped)", len(union.Alternatives))
	}
	if union.Alternatives[0].String() != "int" || union.Alternatives[1].String() != "str" {
		t.Errorf("NormalizeUnion() = %s, want sorted int | str", union.String())
	}
}

func TestNormalizeUnionOfOneCollapses(t *testing.T) {
	intT := Instance{ClassName: "int"}
	got := NormalizeUnion([]Type{intT, intT})
	if _, ok := got.(Union); ok {
		t.Fatalf("NormalizeUnion() of a single repeated member should collapse, got %v", got)
	}
	if got.String() != "int" {
		t.Errorf("NormalizeUnion() = %s, want int", got.String())
	}
}

func TestTypeVarRefApplySubstitutesByIdentity(t *testing.T) {
	tv := NewTypeVarRef("T")
	other := NewTypeVarRef("T") // same name, different identity
	subst := Subst{tv.ID: Instance{ClassName: "int"}}

	if got := tv.Apply(subst); got.String() != "int" {
		t.Errorf("tv.Apply(subst) = %s, want int", got.String())
	}
	if got := other.Apply(subst); got != Type(other) {
		t.Errorf("a same-named but differently-stamped TypeVarRef must not be substituted")
	}
}

func TestNewClassIDProducesDistinctTokens(t *testing.T) {
	a := NewClassID()
	b := NewClassID()
	if a == b {
		t.Errorf("NewClassID() returned the same token twice: %s", a)
	}
	if a == "" || b == "" {
		t.Errorf("NewClassID() must not return an empty token")
	}
}

func TestInstanceApplySubstitutesTypeArguments(t *testing.T) {
	tv := NewTypeVarRef("T")
	list := Instance{ClassName: "list", Args: []Type{tv}}
	subst := Subst{tv.ID: Instance{ClassName: "str"}}

	got := list.Apply(subst).(Instance)
	if len(got.Args) != 1 || got.Args[0].String() != "str" {
		t.Errorf("Instance.Apply() = %s, want list[str]", got.String())
	}
}
