// Package typeops implements §4.1: subtyping, join, meet, and recursive
// alias expansion over the internal/typesystem data model.
//
// The visited-pair cycle-detection invariant (if we're already in the
// middle of comparing A against B, assume the comparison succeeds) is a
// co-induction technique adapted from symmetric unification to
// asymmetric subtyping.
package typeops

import (
	"sync"

	"github.com/typewright/funxytc/internal/typesystem"
)

type pair struct{ a, b string }

// visitedSet tracks (sub, super) string-keyed pairs currently being
// compared, to terminate on recursive/cyclic class hierarchies and
// recursive aliases.
type visitedSet map[pair]bool

func (v visitedSet) seen(a, b typesystem.Type) (pair, bool) {
	p := pair{a: a.String(), b: b.String()}
	return p, v[p]
}

// IsSubtype reports whether sub is a subtype of super under gradual
// typing: Any is consistent with everything in both directions, Never is
// a subtype of everything, everything is a subtype of object's top
// (the nominal Instance with ClassID "object" that the annotation
// `object` resolves to).
func IsSubtype(sub, super typesystem.Type) bool {
	return isSubtype(sub, super, visitedSet{})
}

func isSubtype(sub, super typesystem.Type, visited visitedSet) bool {
	if _, ok := sub.(typesystem.AnyType); ok {
		return true
	}
	if _, ok := super.(typesystem.AnyType); ok {
		return true
	}
	if _, ok := sub.(typesystem.NeverType); ok {
		return true
	}
	if inst, ok := super.(typesystem.Instance); ok && inst.ClassID == "object" {
		return true
	}

	p, done := visited.seen(sub, super)
	if done {
		return true
	}
	visited[p] = true

	switch s := sub.(type) {
	case typesystem.NoneType:
		_, ok := super.(typesystem.NoneType)
		if ok {
			return true
		}
		if u, ok := super.(typesystem.Union); ok {
			return unionMember(s, u, visited)
		}
		return false

	case typesystem.Literal:
		switch sup := super.(type) {
		case typesystem.Literal:
			return s.Underlying == sup.Underlying && s.Value == sup.Value
		case typesystem.Instance:
			return sup.ClassName == s.Underlying || sup.ClassName == literalWidenedName(s.Underlying)
		case typesystem.Union:
			return unionMember(s, sup, visited)
		}
		return false

	case typesystem.Instance:
		return instanceSubtype(s, super, visited)

	case typesystem.ClassObject:
		sup, ok := super.(typesystem.ClassObject)
		return ok && sup.ClassID == s.ClassID

	case typesystem.Tuple:
		return tupleSubtype(s, super, visited)

	case typesystem.TypedMapping:
		return mappingSubtype(s, super, visited)

	case typesystem.NamedTupleType:
		return namedTupleSubtype(s, super, visited)

	case typesystem.Union:
		for _, alt := range s.Alternatives {
			if !isSubtype(alt, super, visited) {
				return false
			}
		}
		return true

	case typesystem.Callable:
		return callableSubtype(s, super, visited)

	case typesystem.TypeGuard:
		if sup, ok := super.(typesystem.TypeGuard); ok {
			return s.TwoWay == sup.TwoWay && isSubtype(s.Target, sup.Target, visited) && isSubtype(sup.Target, s.Target, visited)
		}
		if sup, ok := super.(typesystem.Instance); ok {
			return sup.ClassName == "bool"
		}
		return false

	case typesystem.Overloaded:
		// An overloaded value is a subtype of super if every one of its
		// signatures is (the caller can only rely on the intersection).
		for _, sig := range s.Signatures {
			if !isSubtype(sig, super, visited) {
				return false
			}
		}
		return true

	case typesystem.Partial:
		return isSubtype(s.Remaining, super, visited)

	case *typesystem.TypeVarRef:
		if s.Bound != nil {
			return isSubtype(s.Bound, super, visited)
		}
		if sup, ok := super.(*typesystem.TypeVarRef); ok {
			return sup.ID == s.ID
		}
		return false
	}
	return false
}

func unionMember(t typesystem.Type, u typesystem.Union, visited visitedSet) bool {
	for _, alt := range u.Alternatives {
		if isSubtype(t, alt, visited) {
			return true
		}
	}
	return false
}

func literalWidenedName(underlying string) string { return underlying }

func instanceSubtype(s typesystem.Instance, super typesystem.Type, visited visitedSet) bool {
	switch sup := super.(type) {
	case typesystem.Instance:
		if s.ClassID == sup.ClassID {
			return argsCompatible(s.ClassID, s.Args, sup.Args, visited)
		}
		for _, base := range baseInstances(s) {
			if isSubtype(base, sup, visited) {
				return true
			}
		}
		return false
	case typesystem.Union:
		return unionMember(s, sup, visited)
	}
	return false
}

// classHierarchy is filled in by the checker's class registry via
// RegisterBases/RegisterVariance before subtyping queries run against user
// classes; tests register the hierarchies they need directly. Guarded by a
// mutex since the driver checks compilation units concurrently and every
// unit's header pass writes here, the same way the teacher guards its
// ext-builtins registry.
var classHierarchy = struct {
	mu       sync.RWMutex
	bases    map[string][]typesystem.Instance
	variance map[string][]int
}{
	bases:    make(map[string][]typesystem.Instance),
	variance: make(map[string][]int),
}

// RegisterBases records the immediate base-class instances for a class,
// keyed by ClassID, so that subtyping can walk the hierarchy without
// internal/typeops importing internal/symbols (which would cycle back).
func RegisterBases(classID string, bases []typesystem.Instance) {
	classHierarchy.mu.Lock()
	defer classHierarchy.mu.Unlock()
	classHierarchy.bases[classID] = bases
}

// RegisterVariance records the declared variance of a class's own type
// parameters, in declaration order (-1 contravariant, 0 invariant, 1
// covariant), so argsCompatible can compare an Instance's type arguments
// against that class's declared variance instead of always requiring
// mutual subtyping.
func RegisterVariance(classID string, variance []int) {
	classHierarchy.mu.Lock()
	defer classHierarchy.mu.Unlock()
	classHierarchy.variance[classID] = variance
}

func baseInstances(i typesystem.Instance) []typesystem.Instance {
	classHierarchy.mu.RLock()
	defer classHierarchy.mu.RUnlock()
	return classHierarchy.bases[i.ClassID]
}

func varianceOf(classID string) []int {
	classHierarchy.mu.RLock()
	defer classHierarchy.mu.RUnlock()
	return classHierarchy.variance[classID]
}

// argsCompatible checks type-argument compatibility at each position
// according to the class's declared variance for that type parameter: a
// covariant position only requires subArgs[i] <: superArgs[i], a
// contravariant position only requires the reverse, and an invariant (or
// unregistered, e.g. a test-constructed Instance) position requires both.
func argsCompatible(classID string, subArgs, superArgs []typesystem.Type, visited visitedSet) bool {
	if len(subArgs) != len(superArgs) {
		return false
	}
	variance := varianceOf(classID)
	for i := range subArgs {
		v := 0
		if i < len(variance) {
			v = variance[i]
		}
		switch {
		case v > 0: // covariant
			if !isSubtype(subArgs[i], superArgs[i], visited) {
				return false
			}
		case v < 0: // contravariant
			if !isSubtype(superArgs[i], subArgs[i], visited) {
				return false
			}
		default: // invariant
			if !isSubtype(subArgs[i], superArgs[i], visited) || !isSubtype(superArgs[i], subArgs[i], visited) {
				return false
			}
		}
	}
	return true
}

func tupleSubtype(s typesystem.Tuple, super typesystem.Type, visited visitedSet) bool {
	sup, ok := super.(typesystem.Tuple)
	if !ok {
		if u, ok := super.(typesystem.Union); ok {
			return unionMember(s, u, visited)
		}
		return false
	}
	if s.UnpackIndex < 0 && sup.UnpackIndex < 0 {
		if len(s.Elements) != len(sup.Elements) {
			return false
		}
		for i := range s.Elements {
			if !isSubtype(s.Elements[i], sup.Elements[i], visited) {
				return false
			}
		}
		return true
	}
	// With an unpack segment on either side, only an elementwise prefix
	// check up to the shorter length is enforced; the lengths and the
	// unpacked segment itself are not compared.
	n := len(s.Elements)
	if len(sup.Elements) < n {
		n = len(sup.Elements)
	}
	for i := 0; i < n; i++ {
		if !isSubtype(s.Elements[i], sup.Elements[i], visited) {
			return false
		}
	}
	return true
}

func mappingSubtype(s typesystem.TypedMapping, super typesystem.Type, visited visitedSet) bool {
	sup, ok := super.(typesystem.TypedMapping)
	if !ok {
		if u, ok := super.(typesystem.Union); ok {
			return unionMember(s, u, visited)
		}
		return false
	}
	// Width subtyping: s must provide every field super requires, with a
	// subtype value type for read-only fields; read-write fields must
	// match invariantly since a caller could write through s.
	for name, supField := range sup.Fields {
		subField, ok := s.Fields[name]
		if !ok {
			if supField.Optional {
				continue
			}
			return false
		}
		if supField.ReadOnly {
			if !isSubtype(subField.Type, supField.Type, visited) {
				return false
			}
		} else {
			if !isSubtype(subField.Type, supField.Type, visited) || !isSubtype(supField.Type, subField.Type, visited) {
				return false
			}
		}
		if !supField.Optional && subField.Optional {
			return false
		}
	}
	return true
}

func namedTupleSubtype(s typesystem.NamedTupleType, super typesystem.Type, visited visitedSet) bool {
	switch sup := super.(type) {
	case typesystem.NamedTupleType:
		return s.Name == sup.Name
	case typesystem.Tuple:
		els := make([]typesystem.Type, len(s.Fields))
		for i, f := range s.Fields {
			els[i] = f.Type
		}
		return tupleSubtype(typesystem.Tuple{Elements: els, UnpackIndex: -1}, sup, visited)
	case typesystem.Union:
		return unionMember(s, sup, visited)
	}
	return false
}

func callableSubtype(s typesystem.Callable, super typesystem.Type, visited visitedSet) bool {
	sup, ok := super.(typesystem.Callable)
	if !ok {
		if u, ok := super.(typesystem.Union); ok {
			return unionMember(s, u, visited)
		}
		if o, ok := super.(typesystem.Overloaded); ok {
			for _, sig := range o.Signatures {
				if !isSubtype(s, sig, visited) {
					return false
				}
			}
			return true
		}
		return false
	}
	// Contravariant in parameters, covariant in return. Parameters are
	// compared positionally; a looser arity check (sub may accept a
	// superset via *args/**kwargs) is left to the checker's call-arity
	// check, which has the call-site argument list to reason about.
	if len(s.Params) < len(sup.Params) {
		hasVarArgs := false
		for _, p := range s.Params {
			if p.Kind == typesystem.VarArgs || p.Kind == typesystem.VarKwargs {
				hasVarArgs = true
			}
		}
		if !hasVarArgs {
			return false
		}
	} else {
		for i := range sup.Params {
			if !isSubtype(sup.Params[i].Type, s.Params[i].Type, visited) {
				return false
			}
		}
	}
	return isSubtype(s.Return, sup.Return, visited)
}
