package typesystem

// ApplyGuarded applies s to t, but refuses to recurse into a type variable
// already on the visited path — a co-induction technique that guards
// substitution against a TypeVarRef that maps back into its own
// replacement (which can arise from a malformed recursive alias before
// internal/typeops/expand.go has a chance to memoize it).
func ApplyGuarded(t Type, s Subst, visited map[string]bool) Type {
	if tv, ok := t.(*TypeVarRef); ok {
		if visited[tv.ID] {
			return tv
		}
		repl, ok := s[tv.ID]
		if !ok {
			return tv
		}
		nv := make(map[string]bool, len(visited)+1)
		for k := range visited {
			nv[k] = true
		}
		nv[tv.ID] = true
		return ApplyGuarded(repl, s, nv)
	}
	return t.Apply(s)
}
