package checker

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typesystem"
)

// ResolveAnnotation turns a written TypeAnnotation into an internal Type,
// looking up named types (classes, aliases, type variables in scope)
// through table. A name that is not a class, alias or type variable in
// scope becomes a nominal Instance keyed by the name itself (see the end
// of resolveNamed), and annotation kinds with no case below resolve to
// Any; neither case reports a diagnostic.
func ResolveAnnotation(t ast.TypeAnnotation, table *symbols.SymbolTable) typesystem.Type {
	switch n := t.(type) {
	case nil:
		return typesystem.AnyType{}
	case *ast.AnyTypeAnnotation:
		return typesystem.AnyType{}
	case *ast.NamedTypeAnnotation:
		return resolveNamed(n, table)
	case *ast.UnionTypeAnnotation:
		alts := make([]typesystem.Type, len(n.Types))
		for i, part := range n.Types {
			alts[i] = ResolveAnnotation(part, table)
		}
		return typesystem.NormalizeUnion(alts)
	case *ast.TupleTypeAnnotation:
		els := make([]typesystem.Type, len(n.Elements))
		for i, e := range n.Elements {
			els[i] = ResolveAnnotation(e, table)
		}
		return typesystem.Tuple{Elements: els, UnpackIndex: n.UnpackIndex}
	case *ast.CallableTypeAnnotation:
		params := make([]typesystem.CallableParam, len(n.Params))
		for i, p := range n.Params {
			params[i] = typesystem.CallableParam{Type: ResolveAnnotation(p, table)}
		}
		return typesystem.Callable{Params: params, Return: ResolveAnnotation(n.ReturnType, table)}
	case *ast.TypedMappingAnnotation:
		fields := make(map[string]typesystem.MappingField, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Name] = typesystem.MappingField{
				Type:     ResolveAnnotation(f.Type, table),
				Optional: f.Optional || !n.Total,
				ReadOnly: f.ReadOnly,
			}
		}
		var extra typesystem.Type
		if n.ExtraItems != nil {
			extra = ResolveAnnotation(n.ExtraItems, table)
		}
		return typesystem.TypedMapping{Name: n.Name, Fields: fields, ExtraItems: extra}
	case *ast.LiteralTypeAnnotation:
		// Values narrow to their literal type; the checker only needs the
		// widened underlying kind plus the concrete value for equality.
		if len(n.Values) == 0 {
			return typesystem.NeverType{}
		}
		alts := make([]typesystem.Type, len(n.Values))
		for i, v := range n.Values {
			alts[i] = literalFromExpr(v)
		}
		return typesystem.NormalizeUnion(alts)
	default:
		return typesystem.AnyType{}
	}
}

func literalFromExpr(e ast.Expression) typesystem.Type {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return typesystem.Literal{Underlying: "int", Value: v.Value}
	case *ast.StringLiteral:
		return typesystem.Literal{Underlying: "str", Value: v.Value}
	case *ast.BoolLiteral:
		return typesystem.Literal{Underlying: "bool", Value: v.Value}
	default:
		return typesystem.AnyType{}
	}
}

func resolveNamed(n *ast.NamedTypeAnnotation, table *symbols.SymbolTable) typesystem.Type {
	switch n.Name {
	case "None":
		return typesystem.NoneType{}
	case "object":
		return typesystem.Instance{ClassName: "object", ClassID: "object"}
	case "TypeGuard", "TypeIs":
		if len(n.Args) != 1 {
			return typesystem.AnyType{}
		}
		return typesystem.TypeGuard{Target: ResolveAnnotation(n.Args[0], table), TwoWay: n.Name == "TypeIs"}
	}

	if underlying, params, ok := table.ResolveAlias(n.Name); ok {
		if len(params) == 0 || len(n.Args) == 0 {
			return underlying
		}
		subst := make(typesystem.Subst, len(params))
		for i, p := range params {
			if tv, ok := p.(*typesystem.TypeVarRef); ok && i < len(n.Args) {
				subst[tv.ID] = ResolveAnnotation(n.Args[i], table)
			}
		}
		return underlying.Apply(subst)
	}

	// A bare name bound as a TypeVarDecl in the enclosing generic
	// declaration resolves to that variable's ref rather than a nominal
	// instance.
	if sym, ok := table.Find(n.Name); ok {
		if tv, ok := sym.Type.(*typesystem.TypeVarRef); ok {
			return tv
		}
	}

	if cls, ok := symbols.LookupClassByName(n.Name); ok {
		args := make([]typesystem.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = ResolveAnnotation(a, table)
		}
		return typesystem.Instance{ClassName: cls.Name, ClassID: cls.ClassID, Args: args}
	}

	// Unknown/builtin name (int, str, list, dict, ...): treat as a
	// nominal instance keyed by its own name, so every use of the same
	// name gets the same ClassID "builtin:<name>"; there is no builtin
	// class registry.
	args := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = ResolveAnnotation(a, table)
	}
	return typesystem.Instance{ClassName: n.Name, ClassID: "builtin:" + n.Name, Args: args}
}
