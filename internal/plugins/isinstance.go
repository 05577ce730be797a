package plugins

import (
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/typesystem"
)

// isinstanceCallHook gives the builtin `isinstance(x, C)` a signature
// without requiring it to be declared anywhere: it always returns bool,
// the same way a hand-written stub `def isinstance(x: object, c: type) ->
// bool` would. The narrowing isinstance performs on its first argument is
// applied separately by the statement checker's flow analysis, not here.
func isinstanceCallHook(args []typesystem.Type, pos diagnostics.Position) (typesystem.Type, bool, []diagnostics.Diagnostic) {
	boolType := typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}
	if len(args) != 2 {
		direction := "few"
		if len(args) > 2 {
			direction = "many"
		}
		return boolType, true, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrCallArity, direction, "2"),
		}
	}
	return boolType, true, nil
}
