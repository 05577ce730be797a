// Package typesystem implements the §3 data model: the closed set of type
// values the checker reasons about, substitution, and free-variable
// collection. Subtyping, join, meet and alias expansion live in the
// sibling internal/typeops package; constraint solving lives in
// internal/solver.
//
// Every Type implements String/Apply/FreeTypeVariables; ApplyGuarded
// (subst.go) adds a cycle guard keyed by type-variable ID, adapted from
// unification's co-induction technique to substitution.
package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Type is implemented by every member of the §3 data model.
type Type interface {
	String() string
	Apply(s Subst) Type
	FreeTypeVariables() []*TypeVarRef
	Kind() string
}

// Subst maps a type variable's identity token to its replacement type.
type Subst map[string]Type

// Compose returns a substitution equivalent to applying s2 then s1.
func (s Subst) Compose(s2 Subst) Subst {
	out := make(Subst, len(s)+len(s2))
	for k, v := range s2 {
		out[k] = v.Apply(s)
	}
	for k, v := range s {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// --- Any / Never / NoneType -------------------------------------------------

type AnyType struct{}

func (AnyType) String() string                      { return "Any" }
func (a AnyType) Apply(Subst) Type                  { return a }
func (AnyType) FreeTypeVariables() []*TypeVarRef     { return nil }
func (AnyType) Kind() string                        { return "Any" }

type NeverType struct{}

func (NeverType) String() string                  { return "Never" }
func (n NeverType) Apply(Subst) Type               { return n }
func (NeverType) FreeTypeVariables() []*TypeVarRef { return nil }
func (NeverType) Kind() string                     { return "Never" }

type NoneType struct{}

func (NoneType) String() string                  { return "None" }
func (n NoneType) Apply(Subst) Type               { return n }
func (NoneType) FreeTypeVariables() []*TypeVarRef { return nil }
func (NoneType) Kind() string                     { return "None" }

// --- Instance / ClassObject -------------------------------------------------

// Instance is a nominal reference to a class, optionally parameterized:
// `list[int]`, `MyClass`, `dict[str, int]`.
type Instance struct {
	ClassName string
	ClassID   string // stable identity token of the class declaration, see NewClassID
	Args      []Type
}

func (i Instance) String() string {
	if len(i.Args) == 0 {
		return i.ClassName
	}
	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = a.String()
	}
	return fmt.Sprintf("%s[%s]", i.ClassName, strings.Join(parts, ", "))
}

func (i Instance) Apply(s Subst) Type {
	if len(i.Args) == 0 {
		return i
	}
	args := make([]Type, len(i.Args))
	for idx, a := range i.Args {
		args[idx] = a.Apply(s)
	}
	return Instance{ClassName: i.ClassName, ClassID: i.ClassID, Args: args}
}

func (i Instance) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	for _, a := range i.Args {
		out = append(out, a.FreeTypeVariables()...)
	}
	return out
}

func (Instance) Kind() string { return "Instance" }

// ClassObject is the type of a class itself (as used for `type[C]`,
// constructor calls, and classmethod receivers).
type ClassObject struct {
	ClassName string
	ClassID   string
}

func (c ClassObject) String() string                  { return fmt.Sprintf("type[%s]", c.ClassName) }
func (c ClassObject) Apply(Subst) Type                 { return c }
func (ClassObject) FreeTypeVariables() []*TypeVarRef   { return nil }
func (ClassObject) Kind() string                       { return "ClassObject" }

// --- Tuple -------------------------------------------------------------------

// Tuple has a fixed element list with at most one unpack segment
// (UnpackIndex >= 0), matching §3's "Tuple with at most one unpack".
type Tuple struct {
	Elements    []Type
	UnpackIndex int // -1 if no unpack segment
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		if i == t.UnpackIndex {
			parts[i] = "*" + e.String()
		} else {
			parts[i] = e.String()
		}
	}
	return fmt.Sprintf("tuple[%s]", strings.Join(parts, ", "))
}

func (t Tuple) Apply(s Subst) Type {
	els := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		els[i] = e.Apply(s)
	}
	return Tuple{Elements: els, UnpackIndex: t.UnpackIndex}
}

func (t Tuple) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	for _, e := range t.Elements {
		out = append(out, e.FreeTypeVariables()...)
	}
	return out
}

func (Tuple) Kind() string { return "Tuple" }

// --- TypedMapping (TypedDict) ------------------------------------------------

type MappingField struct {
	Type     Type
	Optional bool
	ReadOnly bool
}

// TypedMapping is a TypedDict-shaped structural record: a fixed set of
// named fields, each required or optional, each read-only or not, plus an
// optional extra-items policy for keys outside Fields.
type TypedMapping struct {
	Name       string // empty for an anonymous inline mapping
	Fields     map[string]MappingField
	ExtraItems Type // nil if extra keys are forbidden
}

func (m TypedMapping) String() string {
	if m.Name != "" {
		return m.Name
	}
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		f := m.Fields[k]
		mark := ""
		if f.Optional {
			mark = "?"
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", k, mark, f.Type.String()))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (m TypedMapping) Apply(s Subst) Type {
	fields := make(map[string]MappingField, len(m.Fields))
	for k, f := range m.Fields {
		fields[k] = MappingField{Type: f.Type.Apply(s), Optional: f.Optional, ReadOnly: f.ReadOnly}
	}
	var extra Type
	if m.ExtraItems != nil {
		extra = m.ExtraItems.Apply(s)
	}
	return TypedMapping{Name: m.Name, Fields: fields, ExtraItems: extra}
}

func (m TypedMapping) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, m.Fields[k].Type.FreeTypeVariables()...)
	}
	if m.ExtraItems != nil {
		out = append(out, m.ExtraItems.FreeTypeVariables()...)
	}
	return out
}

func (TypedMapping) Kind() string { return "TypedMapping" }

// --- NamedTuple ---------------------------------------------------------------

type NamedTupleField struct {
	Name string
	Type Type
}

// NamedTupleType is an ordered, named, immutable tuple type: field access
// both by name (attribute) and by position (indexing) is valid.
type NamedTupleType struct {
	Name   string
	Fields []NamedTupleField
}

func (n NamedTupleType) String() string { return n.Name }

func (n NamedTupleType) Apply(s Subst) Type {
	fields := make([]NamedTupleField, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = NamedTupleField{Name: f.Name, Type: f.Type.Apply(s)}
	}
	return NamedTupleType{Name: n.Name, Fields: fields}
}

func (n NamedTupleType) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	for _, f := range n.Fields {
		out = append(out, f.Type.FreeTypeVariables()...)
	}
	return out
}

func (NamedTupleType) Kind() string { return "NamedTuple" }

// --- Union ---------------------------------------------------------------------

// Union is a flattened, deduplicated, order-insensitive set of alternative
// types; NormalizeUnion enforces the canonical form.
type Union struct {
	Alternatives []Type
}

func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

func (u Union) Apply(s Subst) Type {
	alts := make([]Type, len(u.Alternatives))
	for i, a := range u.Alternatives {
		alts[i] = a.Apply(s)
	}
	return NormalizeUnion(alts)
}

func (u Union) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	for _, a := range u.Alternatives {
		out = append(out, a.FreeTypeVariables()...)
	}
	return out
}

func (Union) Kind() string { return "Union" }

// NormalizeUnion flattens nested unions, drops duplicate members (by
// canonical String()), and sorts for a stable textual form. A union of one
// member collapses to that member.
func NormalizeUnion(members []Type) Type {
	seen := make(map[string]bool)
	var flat []Type
	var flatten func(Type)
	flatten = func(t Type) {
		if u, ok := t.(Union); ok {
			for _, m := range u.Alternatives {
				flatten(m)
			}
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		flat = append(flat, t)
	}
	for _, m := range members {
		flatten(m)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].String() < flat[j].String() })
	return Union{Alternatives: flat}
}

// --- Callable / Overloaded -------------------------------------------------

type ParamKind int

const (
	PositionalOrKeyword ParamKind = iota
	PositionalOnly
	KeywordOnly
	VarArgs
	VarKwargs
)

type CallableParam struct {
	Name     string
	Type     Type
	Kind     ParamKind
	HasDefault bool
}

// Callable is a single function signature. ParamSpec, when non-nil, is the
// bound parameter-specification variable a decorator-shaped generic
// quantifies over instead of (or alongside) ordinary type variables.
// Guard, when non-nil, marks the declared return type as a TypeGuard[T]/
// TypeIs[T] narrowing annotation rather than an ordinary bool.
type Callable struct {
	TypeParams []*TypeVarRef
	ParamSpec  *TypeVarRef
	Params     []CallableParam
	Return     Type
	Guard      *TypeGuard
}

// TypeGuard is a declared narrowing on a function's return type: a truthy
// return narrows the guarded argument to Target, and, if TwoWay (TypeIs
// rather than TypeGuard), a falsy return also narrows it away from Target
// in the negative branch.
type TypeGuard struct {
	Target Type
	TwoWay bool
}

func (g TypeGuard) String() string {
	if g.TwoWay {
		return "TypeIs[" + g.Target.String() + "]"
	}
	return "TypeGuard[" + g.Target.String() + "]"
}

func (g TypeGuard) Apply(s Subst) Type { return TypeGuard{Target: g.Target.Apply(s), TwoWay: g.TwoWay} }

func (g TypeGuard) FreeTypeVariables() []*TypeVarRef { return g.Target.FreeTypeVariables() }

func (TypeGuard) Kind() string { return "TypeGuard" }

func (c Callable) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		switch p.Kind {
		case VarArgs:
			parts[i] = "*" + p.Name + ": " + p.Type.String()
		case VarKwargs:
			parts[i] = "**" + p.Name + ": " + p.Type.String()
		default:
			parts[i] = p.Type.String()
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), c.Return.String())
}

func (c Callable) Apply(s Subst) Type {
	params := make([]CallableParam, len(c.Params))
	for i, p := range c.Params {
		params[i] = CallableParam{Name: p.Name, Type: p.Type.Apply(s), Kind: p.Kind, HasDefault: p.HasDefault}
	}
	var guard *TypeGuard
	if c.Guard != nil {
		applied := c.Guard.Apply(s).(TypeGuard)
		guard = &applied
	}
	return Callable{TypeParams: c.TypeParams, ParamSpec: c.ParamSpec, Params: params, Return: c.Return.Apply(s), Guard: guard}
}

func (c Callable) FreeTypeVariables() []*TypeVarRef {
	bound := make(map[string]bool, len(c.TypeParams))
	for _, tv := range c.TypeParams {
		bound[tv.ID] = true
	}
	var out []*TypeVarRef
	for _, p := range c.Params {
		for _, fv := range p.Type.FreeTypeVariables() {
			if !bound[fv.ID] {
				out = append(out, fv)
			}
		}
	}
	for _, fv := range c.Return.FreeTypeVariables() {
		if !bound[fv.ID] {
			out = append(out, fv)
		}
	}
	return out
}

func (Callable) Kind() string { return "Callable" }

// Overloaded is an ordered list of Callable signatures, matching §4.5's
// overload dispatcher input.
type Overloaded struct {
	Signatures []Callable
}

func (o Overloaded) String() string {
	parts := make([]string, len(o.Signatures))
	for i, s := range o.Signatures {
		parts[i] = s.String()
	}
	return strings.Join(parts, " & ")
}

func (o Overloaded) Apply(s Subst) Type {
	sigs := make([]Callable, len(o.Signatures))
	for i, sig := range o.Signatures {
		applied := sig.Apply(s)
		sigs[i] = applied.(Callable)
	}
	return Overloaded{Signatures: sigs}
}

func (o Overloaded) FreeTypeVariables() []*TypeVarRef {
	var out []*TypeVarRef
	for _, s := range o.Signatures {
		out = append(out, s.FreeTypeVariables()...)
	}
	return out
}

func (Overloaded) Kind() string { return "Overloaded" }

// --- TypeVarRef ---------------------------------------------------------------

// TypeVarRef is a reference to a declared type variable, ParamSpec, or
// TypeVarTuple. ID is a uuid-stamped identity token so that two
// textually-identical generic declarations in different scopes never
// alias during substitution (see SPEC_FULL.md §11 — wiring google/uuid).
type TypeVarRef struct {
	Name        string
	ID          string
	Bound       Type // nil if unbounded
	Constraints []Type
	Default     Type // nil if no default
	Variance    int  // 0 invariant, 1 covariant, -1 contravariant
	IsParamSpec bool
	IsTuple     bool
}

// NewTypeVarRef stamps a fresh identity token for a type variable
// declaration site.
func NewTypeVarRef(name string) *TypeVarRef {
	return &TypeVarRef{Name: name, ID: uuid.NewString()}
}

func (t *TypeVarRef) String() string { return t.Name }

func (t *TypeVarRef) Apply(s Subst) Type {
	if repl, ok := s[t.ID]; ok {
		return repl
	}
	return t
}

func (t *TypeVarRef) FreeTypeVariables() []*TypeVarRef { return []*TypeVarRef{t} }

func (*TypeVarRef) Kind() string { return "TypeVarRef" }

// --- Literal -------------------------------------------------------------------

// Literal is `Literal[value]` — a type inhabited by exactly one concrete
// constant value of a given underlying kind (int, str, bool).
type Literal struct {
	Underlying string // "int" | "str" | "bool"
	Value      interface{}
}

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case string:
		return fmt.Sprintf("Literal[%q]", v)
	default:
		return fmt.Sprintf("Literal[%v]", v)
	}
}

func (l Literal) Apply(Subst) Type                 { return l }
func (Literal) FreeTypeVariables() []*TypeVarRef    { return nil }
func (Literal) Kind() string                       { return "Literal" }

// --- Partial -------------------------------------------------------------------

// Partial represents a Callable with a leading prefix of parameters
// already bound (§4.6). The built-in partial plugin returns a plain
// Callable over the remaining parameters, so the checker never builds a
// Partial.
type Partial struct {
	Remaining Callable
	BoundFrom Callable
}

func (p Partial) String() string { return "partial(" + p.Remaining.String() + ")" }

func (p Partial) Apply(s Subst) Type {
	r := p.Remaining.Apply(s).(Callable)
	b := p.BoundFrom.Apply(s).(Callable)
	return Partial{Remaining: r, BoundFrom: b}
}

func (p Partial) FreeTypeVariables() []*TypeVarRef {
	return p.Remaining.FreeTypeVariables()
}

func (Partial) Kind() string { return "Partial" }

// NewClassID stamps a fresh identity token for a class declaration.
func NewClassID() string { return uuid.NewString() }
