// Package stubfixture bundles a stub module plus the source files that
// import it into a single checked-in txtar archive, so an end-to-end
// scenario (module loading, stub-index lookup, cross-module checking)
// reads as one fixture file instead of a directory of loose .fxt files.
package stubfixture

import (
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// Fixture is a parsed archive: file name (relative, forward-slash
// separated, matching the archive's own convention) to its contents.
type Fixture struct {
	Comment string
	Files   map[string]string
}

// Parse reads a txtar archive's raw bytes into a Fixture.
func Parse(data []byte) Fixture {
	arc := txtar.Parse(data)
	fx := Fixture{Comment: string(arc.Comment), Files: make(map[string]string, len(arc.Files))}
	for _, f := range arc.Files {
		fx.Files[f.Name] = string(f.Data)
	}
	return fx
}

// Materialize writes every file in the fixture under dir, creating
// intermediate directories as needed, and returns dir for chaining into
// a loader call.
func Materialize(dir string, fx Fixture) (string, error) {
	for name, content := range fx.Files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// Format serializes a Fixture back into canonical txtar bytes, preserving
// the order supplied in names so a round trip through Parse is stable.
func Format(fx Fixture, names []string) []byte {
	arc := &txtar.Archive{Comment: []byte(fx.Comment)}
	for _, name := range names {
		arc.Files = append(arc.Files, txtar.File{Name: name, Data: []byte(fx.Files[name])})
	}
	return txtar.Format(arc)
}
