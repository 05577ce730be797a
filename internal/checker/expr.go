package checker

import (
	"strconv"

	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/plugins"
	"github.com/typewright/funxytc/internal/solver"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typeops"
	"github.com/typewright/funxytc/internal/typesystem"
)

// InferExpr implements §4.3: post-order inference over an expression.
// The expected type is consulted only by conditional expressions (which
// pass it to both arms) and annotated expressions; literal containers
// and generic calls are inferred from their own parts without it.
// Results are cached onto c.TypeMap keyed by the AST node.
func (c *Checker) InferExpr(e ast.Expression, env *Env, expected typesystem.Type) typesystem.Type {
	t := c.inferExpr(e, env, expected)
	c.TypeMap[e] = t
	return t
}

func (c *Checker) inferExpr(e ast.Expression, env *Env, expected typesystem.Type) typesystem.Type {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return typesystem.Instance{ClassName: "int", ClassID: "builtin:int"}
	case *ast.FloatLiteral:
		return typesystem.Instance{ClassName: "float", ClassID: "builtin:float"}
	case *ast.StringLiteral:
		return typesystem.Instance{ClassName: "str", ClassID: "builtin:str"}
	case *ast.BoolLiteral:
		return typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}
	case *ast.NoneLiteral:
		return typesystem.NoneType{}

	case *ast.Identifier:
		if narrowed, ok := env.Lookup(n.Value); ok {
			return narrowed
		}
		if sym, ok := c.Table.Find(n.Value); ok {
			return sym.Type
		}
		c.err(n, diagnostics.ErrNameUndefined, n.Value)
		return typesystem.AnyType{}

	case *ast.ListLiteral:
		return c.inferHomogeneous(n.Elements, "list", env)
	case *ast.SetLiteral:
		return c.inferHomogeneous(n.Elements, "set", env)
	case *ast.TupleLiteral:
		els := make([]typesystem.Type, len(n.Elements))
		for i, el := range n.Elements {
			els[i] = c.InferExpr(el, env, nil)
		}
		return typesystem.Tuple{Elements: els, UnpackIndex: -1}
	case *ast.DictLiteral:
		if len(n.Entries) == 0 {
			return typesystem.Instance{ClassName: "dict", ClassID: "builtin:dict",
				Args: []typesystem.Type{typesystem.AnyType{}, typesystem.AnyType{}}}
		}
		var keyTypes, valTypes []typesystem.Type
		for _, entry := range n.Entries {
			keyTypes = append(keyTypes, c.InferExpr(entry.Key, env, nil))
			valTypes = append(valTypes, c.InferExpr(entry.Value, env, nil))
		}
		return typesystem.Instance{ClassName: "dict", ClassID: "builtin:dict",
			Args: []typesystem.Type{typeops.JoinAll(keyTypes), typeops.JoinAll(valTypes)}}

	case *ast.PrefixExpression:
		operand := c.InferExpr(n.Right, env, nil)
		if n.Operator == "not" {
			return typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}
		}
		return operand

	case *ast.InfixExpression:
		return c.inferInfix(n, env)

	case *ast.IsExpression:
		c.InferExpr(n.Left, env, nil)
		c.InferExpr(n.Right, env, nil)
		return typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}

	case *ast.ConditionalExpression:
		c.InferExpr(n.Condition, env, nil)
		thenT := c.InferExpr(n.Consequence, env, expected)
		elseT := c.InferExpr(n.Alternative, env, expected)
		return typeops.Join(thenT, elseT)

	case *ast.AttributeExpression:
		return c.inferAttribute(n, env)

	case *ast.IndexExpression:
		return c.inferIndex(n, env)

	case *ast.CallExpression:
		return c.inferCall(n, env)

	case *ast.LambdaExpression:
		return c.inferLambda(n, env)

	case *ast.ComprehensionExpression:
		return c.inferComprehension(n, env)

	case *ast.AnnotatedExpression:
		want := ResolveAnnotation(n.Type, c.Table)
		c.InferExpr(n.Expression, env, want)
		return want

	default:
		return typesystem.AnyType{}
	}
}

func (c *Checker) inferHomogeneous(elements []ast.Expression, className string, env *Env) typesystem.Type {
	if len(elements) == 0 {
		return typesystem.Instance{ClassName: className, ClassID: "builtin:" + className, Args: []typesystem.Type{typesystem.AnyType{}}}
	}
	elemTypes := make([]typesystem.Type, len(elements))
	for i, el := range elements {
		elemTypes[i] = c.InferExpr(el, env, nil)
	}
	return typesystem.Instance{ClassName: className, ClassID: "builtin:" + className, Args: []typesystem.Type{typeops.JoinAll(elemTypes)}}
}

func (c *Checker) inferInfix(n *ast.InfixExpression, env *Env) typesystem.Type {
	left := c.InferExpr(n.Left, env, nil)
	right := c.InferExpr(n.Right, env, nil)
	switch n.Operator {
	case "==", "!=", "<", ">", "<=", ">=", "in", "not in":
		return typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}
	case "and", "or":
		return typeops.Join(left, right)
	default:
		if _, isAny := left.(typesystem.AnyType); isAny {
			return typesystem.AnyType{}
		}
		return typeops.Join(left, right)
	}
}

func (c *Checker) inferAttribute(n *ast.AttributeExpression, env *Env) typesystem.Type {
	base := c.InferExpr(n.Left, env, nil)
	if key, ok := narrowKey(n); ok {
		if narrowed, ok := env.Lookup(key); ok {
			return narrowed
		}
	}
	switch b := base.(type) {
	case typesystem.AnyType:
		return typesystem.AnyType{}
	case typesystem.Instance:
		if hook, ok := plugins.AttributeHookFor(b.ClassName); ok {
			if result, ok := hook(base, n.Name); ok {
				return result
			}
		}
		if sym, ok := symbols.FindMember(b.ClassID, n.Name); ok {
			return sym.Type
		}
	case typesystem.ClassObject:
		if sym, ok := symbols.FindMember(b.ClassID, n.Name); ok {
			return sym.Type
		}
	case typesystem.NamedTupleType:
		for _, f := range b.Fields {
			if f.Name == n.Name {
				return f.Type
			}
		}
	}
	c.err(n, diagnostics.ErrAttributeMissing, base.String(), n.Name)
	return typesystem.AnyType{}
}

func (c *Checker) inferIndex(n *ast.IndexExpression, env *Env) typesystem.Type {
	base := c.InferExpr(n.Left, env, nil)
	if n.Slice != nil {
		if n.Slice.Start != nil {
			c.InferExpr(n.Slice.Start, env, nil)
		}
		if n.Slice.Stop != nil {
			c.InferExpr(n.Slice.Stop, env, nil)
		}
		if n.Slice.Step != nil {
			c.InferExpr(n.Slice.Step, env, nil)
		}
		return base
	}
	idx := c.InferExpr(n.Index, env, nil)
	switch b := base.(type) {
	case typesystem.AnyType:
		return typesystem.AnyType{}
	case typesystem.Tuple:
		if lit, ok := idx.(typesystem.Literal); ok {
			if i, ok := lit.Value.(int64); ok && int(i) >= 0 && int(i) < len(b.Elements) {
				return b.Elements[i]
			}
		}
		return typeops.JoinAll(b.Elements)
	case typesystem.Instance:
		if b.ClassName == "list" || b.ClassName == "set" {
			if len(b.Args) > 0 {
				return b.Args[0]
			}
		}
		if b.ClassName == "dict" && len(b.Args) > 1 {
			return b.Args[1]
		}
	case typesystem.TypedMapping:
		if lit, ok := n.Index.(*ast.StringLiteral); ok {
			if f, ok := b.Fields[lit.Value]; ok {
				return f.Type
			}
			c.err(n, diagnostics.ErrMappingExtraKey, lit.Value, b.String())
		}
	}
	return typesystem.AnyType{}
}

func (c *Checker) inferLambda(n *ast.LambdaExpression, env *Env) typesystem.Type {
	inner := env.Clone()
	params := make([]typesystem.CallableParam, len(n.Parameters))
	for i, p := range n.Parameters {
		var pt typesystem.Type = typesystem.AnyType{}
		if p.Type != nil {
			pt = ResolveAnnotation(p.Type, c.Table)
		}
		params[i] = typesystem.CallableParam{Name: p.Name, Type: pt, Kind: typesystem.ParamKind(p.Kind)}
		inner.Narrow(p.Name, pt)
	}
	ret := c.InferExpr(n.Body, inner, nil)
	return typesystem.Callable{Params: params, Return: ret}
}

func (c *Checker) inferComprehension(n *ast.ComprehensionExpression, env *Env) typesystem.Type {
	inner := env.Clone()
	for _, clause := range n.Clauses {
		if clause.IsFilter {
			c.InferExpr(clause.Cond, inner, nil)
			continue
		}
		iterT := c.InferExpr(clause.Iterable, inner, nil)
		elemT := elementTypeOf(iterT)
		if id, ok := clause.Target.(*ast.Identifier); ok {
			inner.Narrow(id.Value, elemT)
		}
	}
	switch n.Kind {
	case ast.DictComp:
		k := c.InferExpr(n.Output, inner, nil)
		v := c.InferExpr(n.Value, inner, nil)
		return typesystem.Instance{ClassName: "dict", ClassID: "builtin:dict", Args: []typesystem.Type{k, v}}
	case ast.SetComp:
		v := c.InferExpr(n.Output, inner, nil)
		return typesystem.Instance{ClassName: "set", ClassID: "builtin:set", Args: []typesystem.Type{v}}
	default:
		v := c.InferExpr(n.Output, inner, nil)
		return typesystem.Instance{ClassName: "list", ClassID: "builtin:list", Args: []typesystem.Type{v}}
	}
}

func elementTypeOf(t typesystem.Type) typesystem.Type {
	if inst, ok := t.(typesystem.Instance); ok && len(inst.Args) > 0 {
		return inst.Args[0]
	}
	if _, ok := t.(typesystem.AnyType); ok {
		return typesystem.AnyType{}
	}
	return typesystem.AnyType{}
}

// inferCall implements the generic-call-instantiation half of §4.3: it
// binds each declared type variable of the callee's signature to a
// constraint set from the argument types using internal/solver, then
// substitutes the solved variables into the return type. Non-generic and
// overloaded calls skip straight to plain argument checking or §4.5
// dispatch.
func (c *Checker) inferCall(n *ast.CallExpression, env *Env) typesystem.Type {
	name := calleeName(n.Function)
	if hook, ok := plugins.CallHookFor(name); ok {
		argTypes := make([]typesystem.Type, 0, len(n.Arguments))
		for _, a := range n.Arguments {
			argTypes = append(argTypes, c.InferExpr(a.Value, env, nil))
		}
		result, handled, diags := hook(argTypes, c.pos(n))
		if handled {
			for _, d := range diags {
				c.Diags.Add(d)
			}
			return result
		}
	}

	calleeT := c.InferExpr(n.Function, env, nil)

	argTypes := make([]typesystem.Type, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		argTypes = append(argTypes, c.InferExpr(a.Value, env, nil))
	}

	switch callee := calleeT.(type) {
	case typesystem.AnyType:
		return typesystem.AnyType{}

	case typesystem.Overloaded:
		chosen, diags := ResolveOverload(callee.Signatures, argTypes, c.pos(n), calleeName(n.Function))
		for _, d := range diags {
			c.Diags.Add(d)
		}
		return chosen.Return

	case typesystem.Callable:
		return c.checkCallableCall(n, callee, argTypes, env)

	case typesystem.ClassObject:
		if sym, ok := symbols.FindMember(callee.ClassID, "__init__"); ok {
			if ctor, ok := sym.Type.(typesystem.Callable); ok {
				c.checkCallableCall(n, ctor, argTypes, env)
			}
		}
		return typesystem.Instance{ClassName: callee.ClassName, ClassID: callee.ClassID}

	default:
		c.err(n, diagnostics.ErrIncompatibleArgument, "callee", "callable", calleeT.String())
		return typesystem.AnyType{}
	}
}

func calleeName(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Value
	case *ast.AttributeExpression:
		return v.Name
	default:
		return "<expr>"
	}
}

func (c *Checker) checkCallableCall(n *ast.CallExpression, callee typesystem.Callable, argTypes []typesystem.Type, env *Env) typesystem.Type {
	if len(callee.TypeParams) == 0 {
		c.checkArity(n, callee, argTypes)
		return callee.Return
	}

	set := solver.NewSet()
	for _, tv := range callee.TypeParams {
		set.Declare(tv)
	}
	positional := positionalParams(callee)
	for i, at := range argTypes {
		if i >= len(positional) {
			break
		}
		collectLowerBounds(positional[i].Type, at, set)
	}
	subst, diags := solver.Solve(set, c.pos(n))
	for _, d := range diags {
		c.Diags.Add(d)
	}
	instantiated := callee.Apply(subst).(typesystem.Callable)
	c.checkArity(n, instantiated, argTypes)
	return instantiated.Return
}

func positionalParams(c typesystem.Callable) []typesystem.CallableParam {
	var out []typesystem.CallableParam
	for _, p := range c.Params {
		if p.Kind == typesystem.PositionalOrKeyword || p.Kind == typesystem.PositionalOnly {
			out = append(out, p)
		}
	}
	return out
}

// collectLowerBounds walks the expected (possibly generic) parameter type
// alongside the concrete argument type, recording a lower-bound
// constraint for every type variable it finds in a matching position.
func collectLowerBounds(expected, actual typesystem.Type, set *solver.Set) {
	switch e := expected.(type) {
	case *typesystem.TypeVarRef:
		set.AddLower(e, actual)
	case typesystem.Instance:
		if a, ok := actual.(typesystem.Instance); ok {
			for i := 0; i < len(e.Args) && i < len(a.Args); i++ {
				collectLowerBounds(e.Args[i], a.Args[i], set)
			}
		}
	}
}

func (c *Checker) checkArity(n *ast.CallExpression, callee typesystem.Callable, argTypes []typesystem.Type) {
	positional := positionalParams(callee)
	hasVarArgs := false
	for _, p := range callee.Params {
		if p.Kind == typesystem.VarArgs {
			hasVarArgs = true
		}
	}
	if len(argTypes) > len(positional) && !hasVarArgs {
		c.err(n, diagnostics.ErrCallArity, "many", strconv.Itoa(len(positional)))
		return
	}
	for i, at := range argTypes {
		if i >= len(positional) {
			break
		}
		if !typeops.IsSubtype(at, positional[i].Type) {
			c.err(n, diagnostics.ErrIncompatibleArgument, positional[i].Name, positional[i].Type.String(), at.String())
		}
	}
	for i := len(argTypes); i < len(positional); i++ {
		if !positional[i].HasDefault {
			c.err(n, diagnostics.ErrMissingArgument, positional[i].Name)
		}
	}
}
