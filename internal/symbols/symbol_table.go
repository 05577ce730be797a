// symbols/symbol_table.go - Main symbol table entry point
//
// This file has been split into focused modules, one per concern:
// - symbol.go: Symbol struct, flags, kind enum
// - scope.go: SymbolTable scope-chain struct, chain-walking operations,
//   and the type alias and overload-group registries
// - classes.go: class hierarchy (MRO) registry
//
// Package symbols models §3's Symbols/Scopes: a scope chain from module
// down through class, function, and comprehension/lambda scopes, holding
// declared-vs-inferred bindings plus the class-hierarchy, TypedDict,
// NamedTuple, and overload-group registries the checker consults.
package symbols
