package symbols

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/typesystem"
)

// SymbolKind classifies what a Symbol names.
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	ClassSymbol
	TypeAliasSymbol
	ModuleSymbol
	ParameterSymbol
)

// ScopeType classifies a SymbolTable's place in the scope chain.
type ScopeType int

const (
	ScopeModule ScopeType = iota
	ScopeClass
	ScopeFunction
	ScopeComprehension
)

// Symbol is one binding: its declared or inferred type, its kind, and the
// flags §3 names (final, classvar, abstract, overload-group member).
type Symbol struct {
	Name           string
	Type           typesystem.Type
	Kind           SymbolKind
	IsDeclared     bool // true if the binding carries an explicit annotation
	IsFinal        bool
	IsClassVar     bool
	IsAbstract     bool
	IsOverloadImpl bool // true for the final, unconditional overload-group implementation
	DefinitionNode ast.Node
	DefinitionFile string
	ScopeID        string
}

// OverloadGroup is the ordered list of @overload-decorated signatures for
// one function name, plus the implementation signature recorded by
// SetOverloadImplementation (nil if none was recorded). The
// implementation is never a candidate during dispatch (§4.5), and the
// checker does not otherwise read it.
type OverloadGroup struct {
	Name           string
	Signatures     []typesystem.Callable
	Implementation *typesystem.Callable
}
