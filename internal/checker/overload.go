package checker

import (
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/typeops"
	"github.com/typewright/funxytc/internal/typesystem"
)

// ResolveOverload implements §4.5: try each signature in declaration
// order, return the first whose parameter types each accept the
// corresponding argument type (first-applicable-signature-wins). An
// earlier signature that matches everything a later signature also
// matches makes the later one unreachable. When more than one signature
// matches only because an Any-typed argument is consistent with every
// candidate's parameter types, and those candidates disagree on return
// type, the call's result is the union of their returns (with a warning)
// rather than an error; a multi-match caused by anything other than an
// Any argument is a genuine ambiguity and still reported as an error.
func ResolveOverload(sigs []typesystem.Callable, argTypes []typesystem.Type, pos diagnostics.Position, funcName string) (typesystem.Callable, []diagnostics.Diagnostic) {
	var matches []int
	for i, sig := range sigs {
		if signatureAccepts(sig, argTypes) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return typesystem.Callable{}, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrNoOverloadMatch, funcName),
		}
	}
	chosen := sigs[matches[0]]
	if len(matches) == 1 {
		return chosen, nil
	}

	sameReturn := true
	returns := []typesystem.Type{chosen.Return}
	for _, idx := range matches[1:] {
		if sigs[idx].Return.String() != chosen.Return.String() {
			sameReturn = false
		}
		returns = append(returns, sigs[idx].Return)
	}
	if sameReturn {
		return chosen, nil
	}
	if hasAnyArgument(argTypes) {
		union := chosen
		union.Return = typesystem.NormalizeUnion(returns)
		return union, []diagnostics.Diagnostic{
			diagnostics.NewWarning(diagnostics.PhaseChecker, pos, diagnostics.WarnOverloadAnyUnion, funcName),
		}
	}
	return chosen, []diagnostics.Diagnostic{
		diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrAmbiguousOverload, funcName),
	}
}

func hasAnyArgument(argTypes []typesystem.Type) bool {
	for _, t := range argTypes {
		if _, ok := t.(typesystem.AnyType); ok {
			return true
		}
	}
	return false
}

func signatureAccepts(sig typesystem.Callable, argTypes []typesystem.Type) bool {
	positional := make([]typesystem.CallableParam, 0, len(sig.Params))
	for _, p := range sig.Params {
		if p.Kind == typesystem.PositionalOrKeyword || p.Kind == typesystem.PositionalOnly {
			positional = append(positional, p)
		}
	}
	hasVarArgs := false
	for _, p := range sig.Params {
		if p.Kind == typesystem.VarArgs {
			hasVarArgs = true
		}
	}
	if len(argTypes) > len(positional) && !hasVarArgs {
		return false
	}
	for i, at := range argTypes {
		if i >= len(positional) {
			break
		}
		if !typeops.IsSubtype(at, positional[i].Type) {
			return false
		}
	}
	for i := len(argTypes); i < len(positional); i++ {
		if !positional[i].HasDefault {
			return false
		}
	}
	return true
}

// UnreachableOverloads reports any signature fully shadowed by an earlier
// one (every argument type the later signature's params would accept is
// already accepted by an earlier signature, so it can never be selected).
func UnreachableOverloads(sigs []typesystem.Callable, pos diagnostics.Position, funcName string) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	for i := 1; i < len(sigs); i++ {
		for j := 0; j < i; j++ {
			if shadows(sigs[j], sigs[i]) {
				diags = append(diags, diagnostics.New(diagnostics.PhaseChecker, pos,
					diagnostics.ErrUnreachableOverload, funcName))
				break
			}
		}
	}
	return diags
}

func shadows(earlier, later typesystem.Callable) bool {
	if len(earlier.Params) != len(later.Params) {
		return false
	}
	for i := range earlier.Params {
		if !typeops.IsSubtype(later.Params[i].Type, earlier.Params[i].Type) {
			return false
		}
	}
	return true
}
