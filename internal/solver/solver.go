package solver

import (
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/typeops"
	"github.com/typewright/funxytc/internal/typesystem"
)

// maxFixpointRounds bounds the widening loop below; a real solve set never
// needs more than a handful of passes since each round only ever joins or
// meets, both of which are monotone here.
const maxFixpointRounds = 64

// Solve resolves every variable in s to a concrete Type and returns the
// resulting substitution. pos is used to attach any unsolved-variable
// diagnostics to the call site that triggered inference.
func Solve(s *Set, pos diagnostics.Position) (typesystem.Subst, []diagnostics.Diagnostic) {
	result := make(typesystem.Subst)
	var diags []diagnostics.Diagnostic

	for _, tv := range s.vars {
		b := s.byID[tv.ID]
		solved, ok := solveOne(tv, b)
		if !ok {
			diags = append(diags, diagnostics.New(diagnostics.PhaseChecker, pos,
				diagnostics.ErrTypeVariableUnsolved, tv.Name))
			solved = typesystem.AnyType{}
		}
		result[tv.ID] = solved
	}
	return result, diags
}

// solveOne picks tv's concrete value. If tv declares value constraints
// (`T: (int, str)` rather than a bound), the first constraint consistent
// with every collected lower- and upper-bound witness wins; if none is
// consistent, the declared default is used, and without one the solve
// fails. Otherwise it follows the fallback chain from §4.2: join of
// lower-bound witnesses, else meet of upper-bound witnesses, else the
// variable's declared default, else its declared bound, else Any.
func solveOne(tv *typesystem.TypeVarRef, b *bounds) (typesystem.Type, bool) {
	if len(tv.Constraints) > 0 {
		return solveConstrained(tv, b)
	}
	if b != nil && len(b.lowers) > 0 {
		joined := typeops.JoinAll(b.lowers)
		joined = widenAgainstUppers(joined, b.uppers)
		return joined, true
	}
	if b != nil && len(b.uppers) > 0 {
		met := meetAll(b.uppers)
		return met, true
	}
	if tv.Default != nil {
		return tv.Default, true
	}
	if tv.Bound != nil {
		return tv.Bound, true
	}
	return typesystem.AnyType{}, false
}

// solveConstrained picks the first of tv's declared value constraints
// that every lower-bound witness is a subtype of and every upper-bound
// witness is a supertype of (with no witnesses at all, the first
// constraint qualifies). If none qualifies, tv's default is used; with no
// default the solve fails. A bound is not consulted here.
func solveConstrained(tv *typesystem.TypeVarRef, b *bounds) (typesystem.Type, bool) {
	for _, candidate := range tv.Constraints {
		ok := true
		if b != nil {
			for _, lower := range b.lowers {
				if !typeops.IsSubtype(lower, candidate) {
					ok = false
					break
				}
			}
			if ok {
				for _, upper := range b.uppers {
					if !typeops.IsSubtype(candidate, upper) {
						ok = false
						break
					}
				}
			}
		}
		if ok {
			return candidate, true
		}
	}
	if tv.Default != nil {
		return tv.Default, true
	}
	return typesystem.AnyType{}, false
}

// widenAgainstUppers re-checks a lower-bound join against every recorded
// upper bound; if the join doesn't satisfy an upper bound, we fall back
// to that upper bound itself rather than produce an inconsistent result.
func widenAgainstUppers(t typesystem.Type, uppers []typesystem.Type) typesystem.Type {
	round := 0
	for _, u := range uppers {
		round++
		if round > maxFixpointRounds {
			break
		}
		if !typeops.IsSubtype(t, u) {
			t = typeops.Meet(t, u)
		}
	}
	return t
}

func meetAll(ts []typesystem.Type) typesystem.Type {
	if len(ts) == 0 {
		return typesystem.AnyType{}
	}
	result := ts[0]
	for _, t := range ts[1:] {
		result = typeops.Meet(result, t)
	}
	return result
}
