package typeops

import "github.com/typewright/funxytc/internal/typesystem"

// Join computes the least upper bound of a and b used when branches merge
// (§4.4 branch join) or when inferring a container literal's element type
// from mixed element types. If one operand is a subtype of the other the
// wider one is returned; otherwise the result is Any if either operand is
// Any, else their union. No common ancestor is computed: two Instances
// that share a base but are not subtypes of each other join to a union.
func Join(a, b typesystem.Type) typesystem.Type {
	if IsSubtype(a, b) {
		return b
	}
	if IsSubtype(b, a) {
		return a
	}
	if _, ok := a.(typesystem.AnyType); ok {
		return a
	}
	if _, ok := b.(typesystem.AnyType); ok {
		return b
	}
	return typesystem.NormalizeUnion([]typesystem.Type{a, b})
}

// JoinAll folds Join over a non-empty slice; an empty slice returns Never
// (the bottom of the lattice, the join of nothing).
func JoinAll(ts []typesystem.Type) typesystem.Type {
	if len(ts) == 0 {
		return typesystem.NeverType{}
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		acc = Join(acc, t)
	}
	return acc
}

// Meet computes the greatest lower bound, used when narrowing intersects
// two constraints on the same binding (e.g. `isinstance(x, A)` inside a
// branch where x was already known to be `A | B`).
func Meet(a, b typesystem.Type) typesystem.Type {
	if IsSubtype(a, b) {
		return a
	}
	if IsSubtype(b, a) {
		return b
	}
	if _, ok := a.(typesystem.AnyType); ok {
		return b
	}
	if _, ok := b.(typesystem.AnyType); ok {
		return a
	}
	ua, aIsUnion := a.(typesystem.Union)
	if aIsUnion {
		var kept []typesystem.Type
		for _, alt := range ua.Alternatives {
			if IsSubtype(alt, b) {
				kept = append(kept, alt)
			}
		}
		if len(kept) > 0 {
			return typesystem.NormalizeUnion(kept)
		}
	}
	ub, bIsUnion := b.(typesystem.Union)
	if bIsUnion {
		var kept []typesystem.Type
		for _, alt := range ub.Alternatives {
			if IsSubtype(alt, a) {
				kept = append(kept, alt)
			}
		}
		if len(kept) > 0 {
			return typesystem.NormalizeUnion(kept)
		}
	}
	return typesystem.NeverType{}
}
