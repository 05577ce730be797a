// Package plugins implements §4.6: a small hook registry keyed by
// (NominalName, HookKind) that lets a handful of well-known library
// functions and decorators participate in type checking beyond what
// ordinary signature lookup can express — hooks the checker consults
// during its main walk, before or in place of the ordinary rule at that
// point, registered by name the same way a config-driven extension point
// would be.
package plugins

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typesystem"
)

// HookKind distinguishes the three points in the checker a plugin can
// attach to.
type HookKind int

const (
	ClassHookKind HookKind = iota
	CallHookKind
	AttributeHookKind
)

// ClassHook runs once per class-body declaration whose name matches the
// registration key, after the class's members and MRO have been built
// but before any method body is checked. It may mutate info in place
// (adding synthesized members, for instance).
type ClassHook func(info *symbols.ClassInfo, cls *ast.ClassDeclaration)

// CallHook replaces ordinary call-site checking for a call whose callee
// name matches the registration key. The checker looks hooks up by the
// callee's bare name, or for an attribute call by the attribute name
// alone, so `functools.partial(...)` also finds the "partial" key and a
// dotted key such as "functools.partial" is never looked up. It receives the
// already-inferred argument types and the call site's position, and
// returns the call's result type. ok is false if the hook declines to
// handle this particular call (falls back to ordinary dispatch, which
// for an unresolvable name like a module-level builtin still reports
// ErrNameUndefined).
type CallHook func(args []typesystem.Type, pos diagnostics.Position) (result typesystem.Type, ok bool, diags []diagnostics.Diagnostic)

// AttributeHook replaces ordinary member lookup for an attribute access
// on a value whose nominal type name matches the registration key.
type AttributeHook func(base typesystem.Type, attr string) (result typesystem.Type, ok bool)

type registry struct {
	class     map[string]ClassHook
	call      map[string]CallHook
	attribute map[string]AttributeHook
}

var reg = &registry{
	class:     make(map[string]ClassHook),
	call:      make(map[string]CallHook),
	attribute: make(map[string]AttributeHook),
}

func RegisterClassHook(name string, h ClassHook)         { reg.class[name] = h }
func RegisterCallHook(name string, h CallHook)           { reg.call[name] = h }
func RegisterAttributeHook(name string, h AttributeHook) { reg.attribute[name] = h }

func ClassHookFor(name string) (ClassHook, bool) {
	h, ok := reg.class[name]
	return h, ok
}

func CallHookFor(name string) (CallHook, bool) {
	h, ok := reg.call[name]
	return h, ok
}

func AttributeHookFor(name string) (AttributeHook, bool) {
	h, ok := reg.attribute[name]
	return h, ok
}

func init() {
	RegisterCallHook("partial", partialCallHook)
	RegisterCallHook("functools.partial", partialCallHook)
	RegisterCallHook("isinstance", isinstanceCallHook)
}
