package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDerivesDottedModuleNameFromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "widgets.fxt"), "x: int = 1\n")

	bag := diagnostics.NewBag()
	loader := NewLoader(root, bag)
	mod, err := loader.Load(filepath.Join(root, "pkg", "widgets.fxt"))
	require.NoError(t, err)
	require.NotNil(t, mod)
	require.Equal(t, "pkg.widgets", mod.Name)
	require.Len(t, mod.Files, 1)
	require.False(t, bag.HasErrors(), bag.All())
}

func TestLoadResolvesPlainImportWithinRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "helper.fxt"), "y: int = 2\n")
	writeFile(t, filepath.Join(root, "main.fxt"), "import helper\nx: int = 1\n")

	bag := diagnostics.NewBag()
	loader := NewLoader(root, bag)
	mod, err := loader.Load(filepath.Join(root, "main.fxt"))
	require.NoError(t, err)
	require.NotNil(t, mod)
	require.Contains(t, mod.Imports, "helper")
	require.False(t, bag.HasErrors(), bag.All())
}

func TestLoadDetectsCircularImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.fxt"), "import b\n")
	writeFile(t, filepath.Join(root, "b.fxt"), "import a\n")

	bag := diagnostics.NewBag()
	loader := NewLoader(root, bag)
	_, err := loader.Load(filepath.Join(root, "a.fxt"))
	require.NoError(t, err)
	require.True(t, bag.HasErrors())
	require.Equal(t, diagnostics.ErrCircularImport, bag.All()[0].Code)
}
