package checker

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typesystem"
)

// usage bits describe the positions a type variable was observed in
// across a class's member signatures.
const (
	usedCovariant     = 1 << iota // appears where only a supplier of the type is required (e.g. a return type)
	usedContravariant             // appears where only a consumer of the type is required (e.g. a parameter type)
)

// checkDeclaredVariance enforces `variance-check`: a type parameter used
// only in output position is covariant, one used only in input position is
// contravariant, and one used in both is invariant. A declared variance
// that disagrees with the inferred usage is reported once per parameter.
func (c *Checker) checkDeclaredVariance(cls *ast.ClassDeclaration, info *symbols.ClassInfo) {
	for i, tv := range info.TypeParams {
		mask := 0
		for _, member := range cls.Body {
			fn, ok := member.(*ast.FunctionDeclaration)
			if !ok {
				continue
			}
			sig, ok := info.Members[fn.Name]
			if !ok {
				continue
			}
			callable, ok := sig.Type.(typesystem.Callable)
			if !ok {
				continue
			}
			for i, p := range callable.Params {
				if i == 0 && !fn.IsStatic {
					continue // self/cls carries no variance information
				}
				mask |= varianceUsage(p.Type, tv.Name, -1)
			}
			mask |= varianceUsage(callable.Return, tv.Name, 1)
		}
		if mask == 0 {
			continue // unused type parameter; nothing to contradict
		}
		inferred := 0 // invariant
		switch mask {
		case usedCovariant:
			inferred = 1
		case usedContravariant:
			inferred = -1
		}
		if tv.Variance != 0 && tv.Variance != inferred {
			decl := cls.TypeParams[i].Token
			pos := diagnostics.Position{File: c.File, Line: decl.Line, Column: decl.Column}
			c.Diags.Add(diagnostics.New(diagnostics.PhaseChecker, pos, diagnostics.ErrVarianceViolation, tv.Name))
		}
	}
}

// varianceUsage walks a resolved type looking for occurrences of the type
// variable named `name`, tagging each occurrence with the bit for the
// position (covariant/contravariant) it was found in. `position` is +1 in
// an output (covariant) context and -1 in an input (contravariant)
// context; it flips on every arrow crossed into a callable's parameters.
func varianceUsage(t typesystem.Type, name string, position int) int {
	toBit := func() int {
		if position > 0 {
			return usedCovariant
		}
		return usedContravariant
	}
	switch v := t.(type) {
	case *typesystem.TypeVarRef:
		if v != nil && v.Name == name {
			return toBit()
		}
	case typesystem.Instance:
		mask := 0
		for _, arg := range v.Args {
			mask |= varianceUsage(arg, name, position)
		}
		return mask
	case typesystem.Tuple:
		mask := 0
		for _, e := range v.Elements {
			mask |= varianceUsage(e, name, position)
		}
		return mask
	case typesystem.Union:
		mask := 0
		for _, a := range v.Alternatives {
			mask |= varianceUsage(a, name, position)
		}
		return mask
	case typesystem.TypedMapping:
		mask := 0
		for _, f := range v.Fields {
			mask |= varianceUsage(f.Type, name, position)
		}
		return mask
	case typesystem.Callable:
		mask := 0
		for _, p := range v.Params {
			mask |= varianceUsage(p.Type, name, -position)
		}
		mask |= varianceUsage(v.Return, name, position)
		return mask
	}
	return 0
}
