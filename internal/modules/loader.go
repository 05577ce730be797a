package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/config"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/lexer"
	"github.com/typewright/funxytc/internal/logging"
	"github.com/typewright/funxytc/internal/parser"
	"github.com/typewright/funxytc/internal/pipeline"
	"github.com/typewright/funxytc/internal/utils"
)

// Loader discovers source files under a root directory and resolves the
// import graph between them, one Module per directory — a plain
// directory traversal with no virtual-package resolution or compiled-
// bundle loading, since this domain has no compiled-bundle runtime to
// load modules from.
type Loader struct {
	Root       string
	Modules    map[string]*Module
	Processing map[string]bool
	Diags      *diagnostics.Bag
}

func NewLoader(root string, diags *diagnostics.Bag) *Loader {
	return &Loader{
		Root:       root,
		Modules:    make(map[string]*Module),
		Processing: make(map[string]bool),
		Diags:      diags,
	}
}

// Load resolves and parses entryPath plus every module it transitively
// imports, returning the entry Module.
func (l *Loader) Load(entryPath string) (*Module, error) {
	name := l.moduleNameForPath(entryPath)
	return l.loadNamed(name)
}

func (l *Loader) loadNamed(name string) (*Module, error) {
	if l.Processing[name] {
		l.Diags.Add(diagnostics.New(diagnostics.PhaseChecker, diagnostics.Position{File: name}, diagnostics.ErrCircularImport, name))
		return nil, nil
	}
	if m, ok := l.Modules[name]; ok {
		return m, nil
	}
	l.Processing[name] = true
	defer delete(l.Processing, name)

	logging.Debug("resolving module", "name", name)
	dir := l.dirForModuleName(name)
	files, err := l.sourceFilesIn(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		single := l.fileForModuleName(name)
		if _, statErr := os.Stat(single); statErr == nil {
			files = []string{single}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("module %q: no source files found", name)
	}

	mod := NewModule(name, dir)
	l.Modules[name] = mod
	logging.Debug("loading module files", "name", name, "count", len(files))

	for _, path := range files {
		prog, diags, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		for _, d := range diags.All() {
			l.Diags.Add(d)
		}
		mod.Files = append(mod.Files, prog)
	}

	for _, prog := range mod.Files {
		for _, imp := range prog.Imports {
			importName := imp.FromModule
			if importName == "" && len(imp.Names) > 0 {
				importName = imp.Names[0]
			}
			if importName == "" {
				continue
			}
			resolved := utils.ResolveImportPath(dir, importName)
			logging.Debug("resolving import", "from", name, "import", importName, "resolved", resolved)
			imported, err := l.loadNamed(resolved)
			if err != nil {
				return nil, err
			}
			if imported != nil {
				mod.Imports[importName] = imported
			}
		}
	}

	return mod, nil
}

func parseFile(path string) (*ast.Program, *diagnostics.Bag, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	ctx := pipeline.NewPipelineContext(path, string(src))
	pl := pipeline.New(lexer.Processor{}, parser.Processor{})
	ctx = pl.Run(ctx)
	return ctx.AstRoot, ctx.Diagnostics, nil
}

func (l *Loader) moduleNameForPath(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		rel = path
	}
	// Trim the source extension but keep the directory structure intact:
	// utils.ExtractModuleName discards everything but the base name,
	// which is right for naming a single file but wrong for deriving a
	// dotted module path from a nested directory.
	rel = config.TrimSourceExt(rel)
	rel = strings.TrimSuffix(rel, string(filepath.Separator))
	return strings.ReplaceAll(rel, string(filepath.Separator), ".")
}

func (l *Loader) dirForModuleName(name string) string {
	return filepath.Join(l.Root, strings.ReplaceAll(name, ".", string(filepath.Separator)))
}

func (l *Loader) fileForModuleName(name string) string {
	return l.dirForModuleName(name) + config.SourceFileExt
}

// sourceFilesIn returns every recognized source file directly inside dir,
// sorted for deterministic module-file ordering.
func (l *Loader) sourceFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if config.HasSourceExt(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
