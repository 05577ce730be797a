package plugins

import (
	"strconv"

	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/typesystem"
)

// partialCallHook implements the §8 partial-application scenario:
// `partial(f, a, b)` fixes f's first len(args)-1 positional parameters
// and returns a Callable over whatever parameters remain, carrying f's
// original return type and type parameters forward unchanged.
func partialCallHook(args []typesystem.Type, pos diagnostics.Position) (typesystem.Type, bool, []diagnostics.Diagnostic) {
	if len(args) == 0 {
		return typesystem.AnyType{}, true, nil
	}
	fn, ok := args[0].(typesystem.Callable)
	if !ok {
		return typesystem.AnyType{}, true, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrIncompatibleArgument,
				"partial", "callable", args[0].String()),
		}
	}

	fixed := args[1:]
	var positional []typesystem.CallableParam
	var rest []typesystem.CallableParam
	for _, p := range fn.Params {
		if p.Kind == typesystem.PositionalOrKeyword || p.Kind == typesystem.PositionalOnly {
			positional = append(positional, p)
		} else {
			rest = append(rest, p)
		}
	}

	var diags []diagnostics.Diagnostic
	n := len(fixed)
	if n > len(positional) {
		n = len(positional)
		diags = append(diags, diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrCallArity,
			"many", strconv.Itoa(len(positional))))
	}
	remaining := append([]typesystem.CallableParam{}, positional[n:]...)
	remaining = append(remaining, rest...)

	return typesystem.Callable{
		TypeParams: fn.TypeParams,
		Params:     remaining,
		Return:     fn.Return,
	}, true, diags
}
