package typeops

import (
	"sync"

	"github.com/typewright/funxytc/internal/typesystem"
)

// AliasResolver looks up the right-hand side of a declared type alias by
// name. The checker's symbol table implements this; internal/typeops
// takes it as an interface to avoid an import cycle.
type AliasResolver interface {
	ResolveAlias(name string) (typesystem.Type, []Type, bool)
}

// Type is re-exported for AliasResolver's signature convenience.
type Type = typesystem.Type

// expandCache memoizes alias expansion by name; the driver checks
// compilation units concurrently and every unit can populate it, so access
// is guarded the same way the teacher guards its ext-builtins registry.
var expandCache = struct {
	mu    sync.RWMutex
	types map[string]typesystem.Type
}{
	types: make(map[string]typesystem.Type),
}

// Expand unfolds a possibly-aliased type one or more levels until it
// reaches a non-alias head, memoizing recursive aliases by name so that a
// self-referential alias (`type JSON = int | str | list[JSON] | dict[str,
// JSON]`) terminates instead of looping forever.
func Expand(t typesystem.Type, resolver AliasResolver) typesystem.Type {
	return expand(t, resolver, map[string]bool{})
}

func expand(t typesystem.Type, resolver AliasResolver, visiting map[string]bool) typesystem.Type {
	inst, ok := t.(typesystem.Instance)
	if !ok {
		return t
	}
	if len(inst.Args) == 0 {
		expandCache.mu.RLock()
		cached, ok := expandCache.types[inst.ClassName]
		expandCache.mu.RUnlock()
		if ok {
			return cached
		}
	}
	if visiting[inst.ClassName] {
		// Recursive alias cycle reached during expansion: stop unfolding
		// and return the reference itself, leaving the recursive
		// structure intact rather than looping.
		return inst
	}
	underlying, params, isAlias := resolver.ResolveAlias(inst.ClassName)
	if !isAlias {
		return t
	}
	visiting[inst.ClassName] = true
	subst := make(typesystem.Subst, len(params))
	for i, p := range params {
		if tv, ok := p.(*typesystem.TypeVarRef); ok && i < len(inst.Args) {
			subst[tv.ID] = inst.Args[i]
		}
	}
	resolved := underlying.Apply(subst)
	result := expand(resolved, resolver, visiting)
	if len(inst.Args) == 0 {
		expandCache.mu.Lock()
		expandCache.types[inst.ClassName] = result
		expandCache.mu.Unlock()
	}
	return result
}
