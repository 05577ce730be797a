package symbols

import (
	"sync"

	"github.com/typewright/funxytc/internal/typesystem"
)

// ClassInfo is the registered shape of one user-defined class: its base
// list (for MRO and attribute lookup), whether it is a structural
// (Protocol-like) class, and its declared type parameters' variance.
type ClassInfo struct {
	Name       string
	ClassID    string
	Bases      []typesystem.Instance
	MRO        []string // linearized base ClassIDs, module scope computes this once all bases are known
	IsProtocol bool
	IsAbstract bool
	TypeParams []*typesystem.TypeVarRef
	Members    map[string]*Symbol
}

// classes is process-wide because class identity (ClassID) is a uuid
// stamped once per declaration and never reused, so collisions across
// compilation units cannot occur. The driver checks compilation units
// concurrently (one goroutine per file via errgroup), and every unit's
// header pass writes here, so access is guarded by a mutex the same way
// the teacher guards its ext-builtins registry.
var classes = struct {
	mu     sync.RWMutex
	byID   map[string]*ClassInfo
	byName map[string]*ClassInfo
}{
	byID:   make(map[string]*ClassInfo),
	byName: make(map[string]*ClassInfo),
}

func RegisterClass(info *ClassInfo) {
	classes.mu.Lock()
	defer classes.mu.Unlock()
	classes.byID[info.ClassID] = info
	classes.byName[info.Name] = info
}

func LookupClass(classID string) (*ClassInfo, bool) {
	classes.mu.RLock()
	defer classes.mu.RUnlock()
	info, ok := classes.byID[classID]
	return info, ok
}

// LookupClassByName finds a registered class by its declared name. Like
// classes.byID, this is process-wide; the last class registered under a
// given name wins, which matches the single-compilation-unit assumption
// the rest of the checker makes.
func LookupClassByName(name string) (*ClassInfo, bool) {
	classes.mu.RLock()
	defer classes.mu.RUnlock()
	info, ok := classes.byName[name]
	return info, ok
}

// LinearizeMRO computes a simple depth-first, left-to-right, duplicates-
// removed linearization. It is not full C3 linearization; SPEC_FULL.md's
// class model only requires a deterministic, ancestors-after-descendants
// order for attribute lookup, which this satisfies.
func LinearizeMRO(classID string) []string {
	classes.mu.RLock()
	defer classes.mu.RUnlock()
	var order []string
	seen := make(map[string]bool)
	var visit func(id string)
	visit = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
		info, ok := classes.byID[id]
		if !ok {
			return
		}
		for _, base := range info.Bases {
			visit(base.ClassID)
		}
	}
	visit(classID)
	return order
}

// FindMember walks classID's MRO looking for a member named name,
// returning the first match (nearest-class-wins).
func FindMember(classID, name string) (*Symbol, bool) {
	for _, id := range LinearizeMRO(classID) {
		classes.mu.RLock()
		info, ok := classes.byID[id]
		classes.mu.RUnlock()
		if !ok {
			continue
		}
		if sym, ok := info.Members[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
