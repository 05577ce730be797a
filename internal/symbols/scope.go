package symbols

import (
	"github.com/typewright/funxytc/internal/typesystem"
)

// SymbolTable is one scope in the chain; Outer links toward the module
// scope.
type SymbolTable struct {
	store         map[string]*Symbol
	typeAliases   map[string]aliasDef
	outer         *SymbolTable
	scopeType     ScopeType
	id            string
	overloads     map[string]*OverloadGroup
	namedTuples   map[string]typesystem.NamedTupleType
	typedMappings map[string]typesystem.TypedMapping
}

type aliasDef struct {
	Underlying typesystem.Type
	Params     []typesystem.Type
}

func NewSymbolTable(scopeType ScopeType, id string, outer *SymbolTable) *SymbolTable {
	return &SymbolTable{
		store:         make(map[string]*Symbol),
		typeAliases:   make(map[string]aliasDef),
		outer:         outer,
		scopeType:     scopeType,
		id:            id,
		overloads:     make(map[string]*OverloadGroup),
		namedTuples:   make(map[string]typesystem.NamedTupleType),
		typedMappings: make(map[string]typesystem.TypedMapping),
	}
}

func (t *SymbolTable) ScopeType() ScopeType { return t.scopeType }
func (t *SymbolTable) ID() string           { return t.id }
func (t *SymbolTable) Outer() *SymbolTable  { return t.outer }

// Define introduces or overwrites a binding in this exact scope.
func (t *SymbolTable) Define(sym *Symbol) {
	sym.ScopeID = t.id
	t.store[sym.Name] = sym
}

// Find walks the scope chain outward and returns the nearest binding.
func (t *SymbolTable) Find(name string) (*Symbol, bool) {
	for s := t; s != nil; s = s.outer {
		if sym, ok := s.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FindLocal looks up name only in this exact scope, without walking outward.
func (t *SymbolTable) FindLocal(name string) (*Symbol, bool) {
	sym, ok := t.store[name]
	return sym, ok
}

// DefineAlias registers a type alias and its (possibly empty) generic
// parameter list.
func (t *SymbolTable) DefineAlias(name string, underlying typesystem.Type, params []typesystem.Type) {
	t.typeAliases[name] = aliasDef{Underlying: underlying, Params: params}
}

// ResolveAlias implements internal/typeops.AliasResolver.
func (t *SymbolTable) ResolveAlias(name string) (typesystem.Type, []typesystem.Type, bool) {
	for s := t; s != nil; s = s.outer {
		if a, ok := s.typeAliases[name]; ok {
			return a.Underlying, a.Params, true
		}
	}
	return nil, nil, false
}

// DefineOverload appends sig to name's overload group, creating the group
// on first use.
func (t *SymbolTable) DefineOverload(name string, sig typesystem.Callable) {
	g, ok := t.overloads[name]
	if !ok {
		g = &OverloadGroup{Name: name}
		t.overloads[name] = g
	}
	g.Signatures = append(g.Signatures, sig)
}

func (t *SymbolTable) SetOverloadImplementation(name string, sig typesystem.Callable) {
	g, ok := t.overloads[name]
	if !ok {
		g = &OverloadGroup{Name: name}
		t.overloads[name] = g
	}
	g.Implementation = &sig
}

func (t *SymbolTable) FindOverloadGroup(name string) (*OverloadGroup, bool) {
	for s := t; s != nil; s = s.outer {
		if g, ok := s.overloads[name]; ok {
			return g, true
		}
	}
	return nil, false
}

func (t *SymbolTable) DefineNamedTuple(nt typesystem.NamedTupleType) {
	t.namedTuples[nt.Name] = nt
}

func (t *SymbolTable) DefineTypedMapping(tm typesystem.TypedMapping) {
	t.typedMappings[tm.Name] = tm
}

func (t *SymbolTable) FindTypedMapping(name string) (typesystem.TypedMapping, bool) {
	for s := t; s != nil; s = s.outer {
		if m, ok := s.typedMappings[name]; ok {
			return m, true
		}
	}
	return typesystem.TypedMapping{}, false
}
