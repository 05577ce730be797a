package checker

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typeops"
	"github.com/typewright/funxytc/internal/typesystem"
)

// checkStatement implements §4.4: statement-level checking threaded
// through a narrowing Env over this domain's Python-shaped statement set.
func (c *Checker) checkStatement(s ast.Statement, env *Env) {
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		c.checkFunctionBody(n, env)

	case *ast.ClassDeclaration:
		c.checkClassBody(n)

	case *ast.TypeAliasDeclaration:
		// Already fully handled in declareHeader.

	case *ast.AssignStatement:
		c.checkAssign(n, env)

	case *ast.AugAssignStatement:
		left := c.InferExpr(n.Target, env, nil)
		right := c.InferExpr(n.Value, env, nil)
		result := typeops.Join(left, right)
		if key, ok := narrowKey(n.Target); ok {
			env.Narrow(key, result)
		}

	case *ast.ExpressionStatement:
		c.InferExpr(n.Expression, env, nil)

	case *ast.IfStatement:
		c.checkIf(n, env)

	case *ast.WhileStatement:
		c.InferExpr(n.Condition, env, nil)
		c.loopDepth++
		c.checkBlock(n.Body, env.Clone())
		c.loopDepth--
		if n.Else != nil {
			c.checkBlock(n.Else, env.Clone())
		}

	case *ast.ForStatement:
		iterT := c.InferExpr(n.Iterable, env, nil)
		body := env.Clone()
		if key, ok := narrowKey(n.Target); ok {
			body.Narrow(key, elementTypeOf(iterT))
		}
		c.loopDepth++
		c.checkBlock(n.Body, body)
		c.loopDepth--
		if n.Else != nil {
			c.checkBlock(n.Else, env.Clone())
		}

	case *ast.ReturnStatement:
		if n.Value != nil {
			t := c.InferExpr(n.Value, env, c.currentReturn)
			if c.currentReturn != nil {
				if !typeops.IsSubtype(t, c.currentReturn) {
					c.err(n, diagnostics.ErrIncompatibleReturn, c.currentReturn.String(), t.String())
				}
			}
		}

	case *ast.PassStatement, *ast.BreakStatement, *ast.ContinueStatement, *ast.GlobalStatement:
		// No type-level effect.

	case *ast.DelStatement:
		for _, target := range n.Targets {
			c.InferExpr(target, env, nil)
		}

	case *ast.AssertStatement:
		c.InferExpr(n.Cond, env, nil)
		if n.Message != nil {
			c.InferExpr(n.Message, env, nil)
		}
		c.applyNarrowing(n.Cond, env, true)

	case *ast.RaiseStatement:
		if n.Exc != nil {
			c.InferExpr(n.Exc, env, nil)
		}
		if n.Cause != nil {
			c.InferExpr(n.Cause, env, nil)
		}

	case *ast.TryStatement:
		c.checkBlock(n.Body, env.Clone())
		for _, ex := range n.Excepts {
			exEnv := env.Clone()
			if len(ex.Types) > 0 && ex.Name != "" {
				t := ResolveAnnotation(ex.Types[0], c.Table)
				exEnv.Narrow(ex.Name, t)
			}
			c.checkBlock(ex.Body, exEnv)
		}
		if n.Else != nil {
			c.checkBlock(n.Else, env.Clone())
		}
		if n.Finally != nil {
			c.checkBlock(n.Finally, env.Clone())
		}

	default:
		// Unrecognized statement forms are a parser/checker mismatch the
		// front end should have already rejected; nothing more to check.
	}
}

func (c *Checker) checkBlock(b *ast.BlockStatement, env *Env) {
	for _, stmt := range b.Statements {
		c.declareHeader(stmt)
	}
	for _, stmt := range b.Statements {
		c.checkStatement(stmt, env)
	}
}

func (c *Checker) checkIf(n *ast.IfStatement, env *Env) {
	c.InferExpr(n.Condition, env, nil)

	thenEnv := env.Clone()
	c.applyNarrowing(n.Condition, thenEnv, true)
	c.checkBlock(n.Body, thenEnv)

	elseEnv := env.Clone()
	c.applyNarrowing(n.Condition, elseEnv, false)

	// A branch whose block ends in return/raise never reaches the code
	// after the if, so its narrowing takes no part in the join.
	exits := func(b *ast.BlockStatement) bool {
		if b == nil || len(b.Statements) == 0 {
			return false
		}
		switch b.Statements[len(b.Statements)-1].(type) {
		case *ast.ReturnStatement, *ast.RaiseStatement:
			return true
		}
		return false
	}
	var branches []*Env
	if !exits(n.Body) {
		branches = append(branches, thenEnv)
	}
	if len(n.Elifs) > 0 {
		for _, elif := range n.Elifs {
			c.InferExpr(elif.Condition, elseEnv, nil)
			branchEnv := elseEnv.Clone()
			c.applyNarrowing(elif.Condition, branchEnv, true)
			c.checkBlock(elif.Body, branchEnv)
			if !exits(elif.Body) {
				branches = append(branches, branchEnv)
			}
			c.applyNarrowing(elif.Condition, elseEnv, false)
		}
	}
	if n.Else != nil {
		c.checkBlock(n.Else, elseEnv)
		if !exits(n.Else) {
			branches = append(branches, elseEnv)
		}
	} else {
		branches = append(branches, elseEnv)
	}
	if len(branches) == 0 {
		return
	}

	joined := branches[0]
	for _, b := range branches[1:] {
		joined = Join(joined, b)
	}
	for k, t := range joined.narrowed {
		env.Narrow(k, t)
	}
}

// applyNarrowing implements the TypeGuard/TypeIs/isinstance narrowing
// named in §4.4: `if isinstance(x, C)` narrows x to C in the positive
// branch, `if x is None` / `if x is not None` narrows None in/out, and a
// user function whose return type is TypeGuard[T]/TypeIs[T] narrows its
// first argument the same way a built-in isinstance check would — a
// TypeIs additionally narrows away Target in the negative branch, when
// the argument's current type is a Union it can subtract Target from.
func (c *Checker) applyNarrowing(cond ast.Expression, env *Env, positive bool) {
	switch n := cond.(type) {
	case *ast.PrefixExpression:
		if n.Operator == "not" {
			c.applyNarrowing(n.Right, env, !positive)
		}
	case *ast.IsExpression:
		want := positive != n.Negate
		if _, ok := n.Right.(*ast.NoneLiteral); ok {
			if key, ok := narrowKey(n.Left); ok {
				if want {
					env.Narrow(key, typesystem.NoneType{})
				} else if current, ok := env.Lookup(key); ok {
					if u, ok := current.(typesystem.Union); ok {
						var rest []typesystem.Type
						for _, alt := range u.Alternatives {
							if _, isNone := alt.(typesystem.NoneType); !isNone {
								rest = append(rest, alt)
							}
						}
						if len(rest) > 0 && len(rest) < len(u.Alternatives) {
							env.Narrow(key, typesystem.NormalizeUnion(rest))
						}
					}
				}
			}
		}
	case *ast.CallExpression:
		id, ok := n.Function.(*ast.Identifier)
		if !ok {
			return
		}
		if id.Value == "isinstance" && len(n.Arguments) == 2 {
			if !positive {
				return
			}
			key, ok := narrowKey(n.Arguments[0].Value)
			if !ok {
				return
			}
			if clsID, ok := n.Arguments[1].Value.(*ast.Identifier); ok {
				if info, ok := symbols.LookupClassByName(clsID.Value); ok {
					env.Narrow(key, typesystem.Instance{ClassName: info.Name, ClassID: info.ClassID})
				}
			}
			return
		}
		c.applyTypeGuardNarrowing(id.Value, n, env, positive)
	case *ast.InfixExpression:
		if n.Operator == "and" && positive {
			c.applyNarrowing(n.Left, env, true)
			c.applyNarrowing(n.Right, env, true)
		}
		if n.Operator == "or" && !positive {
			c.applyNarrowing(n.Left, env, false)
			c.applyNarrowing(n.Right, env, false)
		}
	}
}

func (c *Checker) applyTypeGuardNarrowing(funcName string, call *ast.CallExpression, env *Env, positive bool) {
	sym, ok := c.Table.Find(funcName)
	if !ok || len(call.Arguments) == 0 {
		return
	}
	callable, ok := sym.Type.(typesystem.Callable)
	if !ok || callable.Guard == nil {
		return
	}
	key, ok := narrowKey(call.Arguments[0].Value)
	if !ok {
		return
	}
	if positive {
		env.Narrow(key, callable.Guard.Target)
		return
	}
	if !callable.Guard.TwoWay {
		return
	}
	current, ok := env.Lookup(key)
	if !ok {
		return
	}
	u, ok := current.(typesystem.Union)
	if !ok {
		return
	}
	var remaining []typesystem.Type
	for _, alt := range u.Alternatives {
		if !typeops.IsSubtype(alt, callable.Guard.Target) {
			remaining = append(remaining, alt)
		}
	}
	if len(remaining) == 0 {
		env.Narrow(key, typesystem.NeverType{})
		return
	}
	env.Narrow(key, typesystem.NormalizeUnion(remaining))
}

func (c *Checker) checkAssign(n *ast.AssignStatement, env *Env) {
	var declared typesystem.Type
	if n.Annotation != nil {
		declared = ResolveAnnotation(n.Annotation, c.Table)
	}
	var valueType typesystem.Type
	if n.Value != nil {
		valueType = c.InferExpr(n.Value, env, declared)
	}

	for _, target := range n.Targets {
		id, ok := target.(*ast.Identifier)
		if !ok {
			c.InferExpr(target, env, nil)
			continue
		}
		if sym, found := c.Table.Find(id.Value); found {
			if sym.IsFinal {
				c.err(n, diagnostics.ErrFinalReassignment, id.Value)
				continue
			}
			if n.Annotation == nil && sym.IsDeclared && !c.Opts.RedefinitionAllowed && valueType != nil {
				if !typeops.IsSubtype(valueType, sym.Type) {
					c.err(n, diagnostics.ErrIncompatibleAssignment, sym.Type.String(), valueType.String())
				}
				env.Narrow(id.Value, valueType)
				continue
			}
		}
		declType := declared
		if declType == nil {
			declType = valueType
		}
		if declType == nil {
			declType = typesystem.AnyType{}
		}
		if declared != nil && valueType != nil && !typeops.IsSubtype(valueType, declared) {
			c.err(n, diagnostics.ErrIncompatibleAssignment, declared.String(), valueType.String())
		}
		c.Table.Define(&symbols.Symbol{Name: id.Value, Type: declType, Kind: symbols.VariableSymbol,
			IsDeclared: n.Annotation != nil, IsClassVar: n.IsClassVar, IsFinal: n.IsFinal,
			DefinitionNode: n, DefinitionFile: c.File})
		if valueType != nil {
			env.Narrow(id.Value, valueType)
		}
	}
}

func (c *Checker) checkFunctionBody(fn *ast.FunctionDeclaration, outer *Env) {
	if fn.IsOverload {
		return // overload stubs have no body to check beyond the signature itself
	}
	// Always rebuild the signature from this declaration rather than
	// pulling the table entry: for the implementation of an overloaded
	// name, the table entry holds the Overloaded group, not the impl's
	// own (usually wider) signature the body must be checked against.
	sig := c.functionSignature(fn)

	inner := symbols.NewSymbolTable(symbols.ScopeFunction, fn.Name, c.Table)
	for _, tv := range sig.TypeParams {
		inner.Define(&symbols.Symbol{Name: tv.Name, Type: tv, Kind: symbols.VariableSymbol})
	}
	env := NewEnv()
	for i, p := range fn.Parameters {
		var pt typesystem.Type = typesystem.AnyType{}
		if i < len(sig.Params) {
			pt = sig.Params[i].Type
		}
		inner.Define(&symbols.Symbol{Name: p.Name, Type: pt, Kind: symbols.ParameterSymbol, IsDeclared: p.Type != nil})
		env.Narrow(p.Name, pt)
	}

	sub := New(inner, c.Opts, c.Diags, c.File)
	sub.TypeMap = c.TypeMap
	sub.currentReturn = sig.Return
	if fn.Body != nil {
		sub.checkBlock(fn.Body, env)
	}
}

func (c *Checker) checkClassBody(cls *ast.ClassDeclaration) {
	info, ok := symbols.LookupClassByName(cls.Name)
	if !ok {
		return
	}
	inner := symbols.NewSymbolTable(symbols.ScopeClass, cls.Name, c.Table)
	for _, tv := range info.TypeParams {
		inner.Define(&symbols.Symbol{Name: tv.Name, Type: tv, Kind: symbols.VariableSymbol})
	}
	selfType := typesystem.Instance{ClassName: info.Name, ClassID: info.ClassID}
	for _, member := range cls.Body {
		switch m := member.(type) {
		case *ast.FunctionDeclaration:
			sub := New(inner, c.Opts, c.Diags, c.File)
			sub.TypeMap = c.TypeMap
			if !m.IsStatic && len(m.Parameters) > 0 {
				inner.Define(&symbols.Symbol{Name: m.Parameters[0].Name, Type: selfType, Kind: symbols.ParameterSymbol})
			}
			sub.checkFunctionBody(m, NewEnv())
		case *ast.ClassDeclaration:
			c.declareHeader(m)
			sub := New(inner, c.Opts, c.Diags, c.File)
			sub.checkClassBody(m)
		case *ast.AssignStatement:
			sub := New(inner, c.Opts, c.Diags, c.File)
			sub.TypeMap = c.TypeMap
			sub.checkAssign(m, NewEnv())
		}
	}
}
