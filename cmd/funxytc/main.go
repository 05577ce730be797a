// Command funxytc type-checks one or more compilation units and prints
// their diagnostics. The driver shape — flag parsing, module loading, a
// per-file execution loop — follows "parse, check, print diagnostics";
// there is no backend selection flag here since there is no execution
// backend at all.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/typewright/funxytc/internal/checker"
	"github.com/typewright/funxytc/internal/config"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/logging"
	"github.com/typewright/funxytc/internal/modules"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("funxytc", flag.ContinueOnError)
	configPath := fs.String("config", "funxytc.yaml", "path to the checker's configuration file")
	noColor := fs.Bool("no-color", false, "disable colored diagnostic output")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	logging.SetLevel(*logLevel)
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: funxytc [-config path] [-no-color] [-log-level level] FILE...")
		return 2
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "funxytc: loading %s: %v\n", *configPath, err)
		return 2
	}
	logging.Debug("loaded configuration", "path", *configPath)

	color := !*noColor && isatty.IsTerminal(stdout.Fd())

	results := make([]*diagnostics.Bag, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			logging.Info("checking compilation unit", "path", path)
			bag := checkOne(path, opts)
			logging.Debug("finished compilation unit", "path", path, "diagnostics", len(bag.All()))
			results[i] = bag
			return nil
		})
	}
	_ = g.Wait()

	hadErrors := false
	for _, bag := range results {
		for _, d := range bag.All() {
			hadErrors = true
			printDiagnostic(stdout, d, color)
		}
	}
	if hadErrors {
		return 1
	}
	return 0
}

// checkOne loads one compilation unit (and whatever it transitively
// imports) and runs the checker over every file it owns. Each unit gets
// its own diagnostics bag so concurrent units never share mutable state
// beyond the read-only class/alias registries internal/symbols keeps
// process-wide.
func checkOne(path string, opts config.Options) *diagnostics.Bag {
	bag := diagnostics.NewBag()
	loader := modules.NewLoader(".", bag)
	mod, err := loader.Load(path)
	if err != nil {
		logging.Error("failed to load module", "path", path, "error", err)
		bag.Add(diagnostics.Internal(diagnostics.Position{File: path}, err.Error()))
		return bag
	}
	if mod == nil {
		return bag
	}

	for _, prog := range mod.Files {
		c := checker.New(mod.SymbolTable, opts, bag, prog.File)
		c.CheckProgram(prog)
	}
	return bag
}

func printDiagnostic(w *os.File, d diagnostics.Diagnostic, color bool) {
	if !color {
		fmt.Fprintln(w, d.Error())
		return
	}
	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	fmt.Fprintf(w, "%s%s%s\n", red, d.Error(), reset)
}
