// Package stubindex persists an index of stub module *declarations* —
// the textual signature of every class and function a stub file
// exports — so a driver checking many compilation units across runs
// doesn't re-lex and re-parse an unchanged stub file just to learn its
// exported names. This is explicitly not a cache of any type-checking
// result: nothing here stores a Type, a Subst, or a diagnostic: only
// the declaration text the checker would otherwise re-derive by
// parsing.
//
// Grounded on `_examples/mcgru-funxy/internal/evaluator/builtins_sql.go`'s
// use of `database/sql` over the `modernc.org/sqlite` driver (the
// corpus's one example of a SQL-backed store), adapted from a
// runtime-facing SQL builtin to an on-disk front-end index.
package stubindex

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Index is a handle onto one SQLite-backed declaration store.
type Index struct {
	db *sql.DB
}

// Open creates (if necessary) and opens the declaration index at path.
// An empty path opens a private in-memory database, useful for tests.
func Open(path string) (*Index, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("stubindex: open %s: %w", path, err)
	}
	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS stub_declarations (
	module_name    TEXT PRIMARY KEY,
	content_hash   TEXT NOT NULL,
	signature_text TEXT NOT NULL,
	updated_unix   INTEGER NOT NULL
);`
	_, err := idx.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("stubindex: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Declaration is one module's indexed signature text alongside the
// content hash it was derived from.
type Declaration struct {
	ModuleName    string
	ContentHash   string
	SignatureText string
	UpdatedUnix   int64
}

// Lookup returns the indexed declaration for moduleName, if any.
func (idx *Index) Lookup(moduleName string) (Declaration, bool, error) {
	row := idx.db.QueryRow(
		`SELECT module_name, content_hash, signature_text, updated_unix FROM stub_declarations WHERE module_name = ?`,
		moduleName)
	var d Declaration
	err := row.Scan(&d.ModuleName, &d.ContentHash, &d.SignatureText, &d.UpdatedUnix)
	if err == sql.ErrNoRows {
		return Declaration{}, false, nil
	}
	if err != nil {
		return Declaration{}, false, fmt.Errorf("stubindex: lookup %s: %w", moduleName, err)
	}
	return d, true, nil
}

// NeedsReparse reports whether the indexed entry for moduleName is
// missing or stale relative to contentHash, meaning the caller must
// re-parse the stub file and call Put with the fresh declaration.
func (idx *Index) NeedsReparse(moduleName, contentHash string) (bool, error) {
	d, found, err := idx.Lookup(moduleName)
	if err != nil {
		return true, err
	}
	if !found {
		return true, nil
	}
	return d.ContentHash != contentHash, nil
}

// Put upserts the declaration for moduleName.
func (idx *Index) Put(d Declaration) error {
	_, err := idx.db.Exec(
		`INSERT INTO stub_declarations (module_name, content_hash, signature_text, updated_unix)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(module_name) DO UPDATE SET
			content_hash = excluded.content_hash,
			signature_text = excluded.signature_text,
			updated_unix = excluded.updated_unix`,
		d.ModuleName, d.ContentHash, d.SignatureText, d.UpdatedUnix)
	if err != nil {
		return fmt.Errorf("stubindex: put %s: %w", d.ModuleName, err)
	}
	return nil
}

// Forget removes any indexed declaration for moduleName, forcing the
// next NeedsReparse check to report true.
func (idx *Index) Forget(moduleName string) error {
	_, err := idx.db.Exec(`DELETE FROM stub_declarations WHERE module_name = ?`, moduleName)
	if err != nil {
		return fmt.Errorf("stubindex: forget %s: %w", moduleName, err)
	}
	return nil
}
