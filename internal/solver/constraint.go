// Package solver implements §4.2's generic-call constraint solver: it
// collects lower/upper bound witnesses per type variable while checking
// call arguments, then resolves each variable to a concrete type in a
// single pass with a default/bound/Any fallback chain.
//
// Solve binds each type variable to the join of its lower-bound
// witnesses (met against its upper bounds) or the meet of its upper
// bounds, falling back through a default/bound/Any chain rather than
// unifying type-class witnesses, since this domain has no type classes.
// Set keeps witnesses in its own per-variable lists; the Constraint
// struct below is not used by Set or Solve.
package solver

import (
	"github.com/typewright/funxytc/internal/typesystem"
)

// Constraint records one occurrence of a type variable being used as a
// subtype (lower bound, from an argument) or supertype (upper bound,
// from an expected-type context) during a single call's inference.
type Constraint struct {
	Var   *typesystem.TypeVarRef
	Lower typesystem.Type // nil if this occurrence is only an upper bound
	Upper typesystem.Type // nil if this occurrence is only a lower bound
}

// Set accumulates constraints for every type variable introduced by one
// generic call, keyed by variable ID so repeated occurrences widen the
// same bound set instead of creating independent variables.
type Set struct {
	byID map[string]*bounds
	vars []*typesystem.TypeVarRef
}

type bounds struct {
	lowers []typesystem.Type
	uppers []typesystem.Type
}

func NewSet() *Set {
	return &Set{byID: make(map[string]*bounds)}
}

// Declare registers tv as a variable this set is responsible for solving,
// even if no constraint ever mentions it (so it can still fall back to
// its default or bound).
func (s *Set) Declare(tv *typesystem.TypeVarRef) {
	if _, ok := s.byID[tv.ID]; !ok {
		s.byID[tv.ID] = &bounds{}
		s.vars = append(s.vars, tv)
	}
}

// AddLower records that tv must be a supertype of t (t flowed in as an
// argument where tv was expected).
func (s *Set) AddLower(tv *typesystem.TypeVarRef, t typesystem.Type) {
	s.Declare(tv)
	s.byID[tv.ID].lowers = append(s.byID[tv.ID].lowers, t)
}

// AddUpper records that tv must be a subtype of t (tv flowed into a
// position expecting t).
func (s *Set) AddUpper(tv *typesystem.TypeVarRef, t typesystem.Type) {
	s.Declare(tv)
	s.byID[tv.ID].uppers = append(s.byID[tv.ID].uppers, t)
}
