// Package modules discovers source files, groups them into one Module per
// directory, and resolves import names between them — "one package per
// directory", with no package-declaration/export-list/trait machinery to
// parse out of the entry file.
package modules

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/symbols"
)

// Module is one loaded compilation unit: every source file found in one
// directory, sharing one module-scope SymbolTable.
type Module struct {
	Name        string
	Dir         string
	Files       []*ast.Program
	SymbolTable *symbols.SymbolTable
	Imports     map[string]*Module

	HeadersAnalyzed bool
	BodiesAnalyzed  bool
}

func NewModule(name, dir string) *Module {
	return &Module{
		Name:        name,
		Dir:         dir,
		SymbolTable: symbols.NewSymbolTable(symbols.ScopeModule, dir, nil),
		Imports:     make(map[string]*Module),
	}
}
