package checker

import "github.com/typewright/funxytc/internal/typesystem"

// Env is the flow-sensitive narrowing environment threaded through
// statement checking: a binding's declared type lives in the symbol
// table, but its narrowed type at a given program point lives here,
// keyed by the narrowKey text of the narrowed expression (a bare name or
// a dotted attribute path such as `p.x`), not by symbol identity — a
// per-branch "refined type" map kept alongside the symbol table rather
// than mutating declared types in place.
type Env struct {
	narrowed map[string]typesystem.Type
}

func NewEnv() *Env {
	return &Env{narrowed: make(map[string]typesystem.Type)}
}

func (e *Env) Clone() *Env {
	n := make(map[string]typesystem.Type, len(e.narrowed))
	for k, v := range e.narrowed {
		n[k] = v
	}
	return &Env{narrowed: n}
}

func (e *Env) Narrow(key string, t typesystem.Type) {
	e.narrowed[key] = t
}

func (e *Env) Lookup(key string) (typesystem.Type, bool) {
	t, ok := e.narrowed[key]
	return t, ok
}

// Join merges two branch environments: a key narrowed identically in both
// stays narrowed, a key narrowed in only one or narrowed to different
// types in each reverts (the declared type takes over again), matching
// mypy's "forget the narrowing across a join unless both branches agree".
func Join(a, b *Env) *Env {
	out := NewEnv()
	for k, ta := range a.narrowed {
		if tb, ok := b.narrowed[k]; ok && ta.String() == tb.String() {
			out.narrowed[k] = ta
		}
	}
	return out
}
