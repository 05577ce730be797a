// Package checker implements §4.3 (expression inference), §4.4 (statement
// and flow checking with narrowing), §4.5 (overload dispatch) and wires
// §4.2's internal/solver for generic call instantiation, via a two-pass
// walk: a headers pass that registers every module-level declaration's
// type before any body is checked (so forward references and mutual
// recursion between functions and classes resolve), followed by a
// bodies pass that walks statements and expressions post-order.
package checker

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/config"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/plugins"
	"github.com/typewright/funxytc/internal/symbols"
	"github.com/typewright/funxytc/internal/typeops"
	"github.com/typewright/funxytc/internal/typesystem"
)

// Checker walks one module's files twice: once to declare headers, once
// to check bodies against those headers.
type Checker struct {
	Table   *symbols.SymbolTable
	Opts    config.Options
	Diags   *diagnostics.Bag
	File    string
	TypeMap map[ast.Node]typesystem.Type

	currentReturn typesystem.Type
	loopDepth     int
}

func New(table *symbols.SymbolTable, opts config.Options, diags *diagnostics.Bag, file string) *Checker {
	return &Checker{
		Table:   table,
		Opts:    opts,
		Diags:   diags,
		File:    file,
		TypeMap: make(map[ast.Node]typesystem.Type),
	}
}

func (c *Checker) pos(n ast.Node) diagnostics.Position {
	t := n.GetToken()
	return diagnostics.Position{File: c.File, Line: t.Line, Column: t.Column}
}

func (c *Checker) err(n ast.Node, code diagnostics.ErrorCode, args ...interface{}) {
	c.Diags.Add(diagnostics.New(diagnostics.PhaseChecker, c.pos(n), code, args...))
}

// CheckProgram runs both passes over a single parsed file.
func (c *Checker) CheckProgram(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		c.declareHeader(stmt)
	}
	env := NewEnv()
	for _, stmt := range prog.Statements {
		c.checkStatement(stmt, env)
	}
}

// declareHeader registers the declared type of a module-level (or
// class-level) declaration without checking its body, so every sibling
// declaration is visible regardless of textual order.
func (c *Checker) declareHeader(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		sig := c.functionSignature(s)
		kind := symbols.FunctionSymbol
		var t typesystem.Type = sig
		if s.IsOverload {
			c.Table.DefineOverload(s.Name, sig)
			if existing, ok := c.Table.Find(s.Name); ok {
				if group, ok := existing.Type.(typesystem.Overloaded); ok {
					t = typesystem.Overloaded{Signatures: append(group.Signatures, sig)}
				} else {
					t = typesystem.Overloaded{Signatures: []typesystem.Callable{sig}}
				}
			} else {
				t = typesystem.Overloaded{Signatures: []typesystem.Callable{sig}}
			}
		} else if g, ok := c.Table.FindOverloadGroup(s.Name); ok && len(g.Signatures) > 0 {
			c.Table.SetOverloadImplementation(s.Name, sig)
			t = typesystem.Overloaded{Signatures: g.Signatures}
		}
		c.Table.Define(&symbols.Symbol{Name: s.Name, Type: t, Kind: kind, IsDeclared: true, DefinitionNode: s, DefinitionFile: c.File})

	case *ast.ClassDeclaration:
		c.declareClassHeader(s)

	case *ast.TypeAliasDeclaration:
		tvs := make([]typesystem.Type, len(s.TypeParams))
		inner := symbols.NewSymbolTable(symbols.ScopeClass, s.Name, c.Table)
		for i, tp := range s.TypeParams {
			tv := typesystem.NewTypeVarRef(tp.Name)
			tvs[i] = tv
			inner.Define(&symbols.Symbol{Name: tp.Name, Type: tv, Kind: symbols.VariableSymbol})
		}
		underlying := ResolveAnnotation(s.Value, inner)
		c.Table.DefineAlias(s.Name, underlying, tvs)
		c.Table.Define(&symbols.Symbol{Name: s.Name, Kind: symbols.TypeAliasSymbol, DefinitionNode: s, DefinitionFile: c.File})

	case *ast.AssignStatement:
		if s.Annotation != nil {
			t := ResolveAnnotation(s.Annotation, c.Table)
			for _, target := range s.Targets {
				if id, ok := target.(*ast.Identifier); ok {
					c.Table.Define(&symbols.Symbol{Name: id.Value, Type: t, Kind: symbols.VariableSymbol,
						IsDeclared: true, IsClassVar: s.IsClassVar, IsFinal: s.IsFinal, DefinitionNode: s, DefinitionFile: c.File})
				}
			}
		}
	}
}

func (c *Checker) functionSignature(fn *ast.FunctionDeclaration) typesystem.Callable {
	inner := symbols.NewSymbolTable(symbols.ScopeFunction, fn.Name, c.Table)
	tvs := make([]*typesystem.TypeVarRef, len(fn.TypeParams))
	for i, tp := range fn.TypeParams {
		tv := typesystem.NewTypeVarRef(tp.Name)
		if tp.Bound != nil {
			tv.Bound = ResolveAnnotation(tp.Bound, inner)
		}
		if tp.Default != nil {
			tv.Default = ResolveAnnotation(tp.Default, inner)
		}
		if len(tp.Constraints) > 0 {
			tv.Constraints = make([]typesystem.Type, len(tp.Constraints))
			for j, c := range tp.Constraints {
				tv.Constraints[j] = ResolveAnnotation(c, inner)
			}
		}
		tvs[i] = tv
		inner.Define(&symbols.Symbol{Name: tp.Name, Type: tv, Kind: symbols.VariableSymbol})
	}
	params := make([]typesystem.CallableParam, len(fn.Parameters))
	for i, p := range fn.Parameters {
		var pt typesystem.Type = typesystem.AnyType{}
		if p.Type != nil {
			pt = ResolveAnnotation(p.Type, inner)
		}
		params[i] = typesystem.CallableParam{
			Name:       p.Name,
			Type:       pt,
			Kind:       typesystem.ParamKind(p.Kind),
			HasDefault: p.Default != nil,
		}
	}
	var ret typesystem.Type = typesystem.NoneType{}
	var guard *typesystem.TypeGuard
	if fn.ReturnType != nil {
		ret = ResolveAnnotation(fn.ReturnType, inner)
		if g, ok := ret.(typesystem.TypeGuard); ok {
			guard = &g
			ret = typesystem.Instance{ClassName: "bool", ClassID: "builtin:bool"}
		}
	}
	return typesystem.Callable{TypeParams: tvs, Params: params, Return: ret, Guard: guard}
}

func (c *Checker) declareClassHeader(cls *ast.ClassDeclaration) {
	classID := typesystem.NewClassID()
	inner := symbols.NewSymbolTable(symbols.ScopeClass, cls.Name, c.Table)
	tvs := make([]*typesystem.TypeVarRef, len(cls.TypeParams))
	for i, tp := range cls.TypeParams {
		tv := typesystem.NewTypeVarRef(tp.Name)
		switch tp.Variance {
		case ast.Covariant:
			tv.Variance = 1
		case ast.Contravariant:
			tv.Variance = -1
		}
		if tp.Bound != nil {
			tv.Bound = ResolveAnnotation(tp.Bound, inner)
		}
		if tp.Default != nil {
			tv.Default = ResolveAnnotation(tp.Default, inner)
		}
		if len(tp.Constraints) > 0 {
			tv.Constraints = make([]typesystem.Type, len(tp.Constraints))
			for j, c := range tp.Constraints {
				tv.Constraints[j] = ResolveAnnotation(c, inner)
			}
		}
		tvs[i] = tv
		inner.Define(&symbols.Symbol{Name: tp.Name, Type: tv, Kind: symbols.VariableSymbol})
	}
	var bases []typesystem.Instance
	for _, b := range cls.Bases {
		resolved := ResolveAnnotation(b.Name, inner)
		if inst, ok := resolved.(typesystem.Instance); ok {
			bases = append(bases, inst)
		}
	}
	info := &symbols.ClassInfo{
		Name: cls.Name, ClassID: classID, Bases: bases,
		IsProtocol: cls.IsProtocol, IsAbstract: cls.IsAbstract,
		TypeParams: tvs, Members: make(map[string]*symbols.Symbol),
	}
	symbols.RegisterClass(info)
	typeops.RegisterBases(classID, bases)
	variance := make([]int, len(tvs))
	for i, tv := range tvs {
		variance[i] = tv.Variance
	}
	typeops.RegisterVariance(classID, variance)

	for _, member := range cls.Body {
		switch m := member.(type) {
		case *ast.FunctionDeclaration:
			sub := New(inner, c.Opts, c.Diags, c.File)
			sig := sub.functionSignature(m)
			info.Members[m.Name] = &symbols.Symbol{Name: m.Name, Type: sig, Kind: symbols.FunctionSymbol, DefinitionNode: m, DefinitionFile: c.File}
		case *ast.AssignStatement:
			if m.Annotation != nil {
				t := ResolveAnnotation(m.Annotation, inner)
				for _, target := range m.Targets {
					if id, ok := target.(*ast.Identifier); ok {
						info.Members[id.Value] = &symbols.Symbol{Name: id.Value, Type: t, Kind: symbols.VariableSymbol,
							IsClassVar: m.IsClassVar, IsFinal: m.IsFinal, DefinitionNode: m, DefinitionFile: c.File}
					}
				}
			}
		}
	}

	if cls.IsTypedDict {
		tm := typesystem.TypedMapping{Name: cls.Name, Fields: make(map[string]typesystem.MappingField)}
		for _, member := range cls.Body {
			if m, ok := member.(*ast.AssignStatement); ok && m.Annotation != nil {
				for _, target := range m.Targets {
					if id, ok := target.(*ast.Identifier); ok {
						tm.Fields[id.Value] = typesystem.MappingField{Type: ResolveAnnotation(m.Annotation, inner), Optional: !cls.TotalTypedDict}
					}
				}
			}
		}
		c.Table.DefineTypedMapping(tm)
	}
	if cls.IsNamedTuple {
		nt := typesystem.NamedTupleType{Name: cls.Name}
		for _, member := range cls.Body {
			if m, ok := member.(*ast.AssignStatement); ok && m.Annotation != nil {
				for _, target := range m.Targets {
					if id, ok := target.(*ast.Identifier); ok {
						nt.Fields = append(nt.Fields, typesystem.NamedTupleField{Name: id.Value, Type: ResolveAnnotation(m.Annotation, inner)})
					}
				}
			}
		}
		c.Table.DefineNamedTuple(nt)
	}

	info.MRO = symbols.LinearizeMRO(classID)
	if c.Opts.VarianceCheck {
		c.checkDeclaredVariance(cls, info)
	}
	if hook, ok := plugins.ClassHookFor(cls.Name); ok {
		hook(info, cls)
	}
	c.Table.Define(&symbols.Symbol{
		Name: cls.Name,
		Type: typesystem.ClassObject{ClassName: cls.Name, ClassID: classID},
		Kind: symbols.ClassSymbol, IsDeclared: true, DefinitionNode: cls, DefinitionFile: c.File,
	})
}

func narrowKey(e ast.Expression) (string, bool) {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Value, true
	case *ast.AttributeExpression:
		if base, ok := narrowKey(v.Left); ok {
			return base + "." + v.Name, true
		}
	}
	return "", false
}
