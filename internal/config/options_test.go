package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesMypyConventions(t *testing.T) {
	opts := Default()
	assert.True(t, opts.StrictOptional)
	assert.True(t, opts.VarianceCheck)
	assert.False(t, opts.GradualAnyIsError)
	assert.False(t, opts.RedefinitionAllowed)
	assert.False(t, opts.ImplicitOptional)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadOverlaysYamlOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funxytc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gradual_any_is_error: true\nvariance_check: false\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.GradualAnyIsError)
	assert.False(t, opts.VarianceCheck)
	assert.True(t, opts.StrictOptional, "options not present in the file keep their default")
}

func TestHasSourceExtRecognizesBothExtensions(t *testing.T) {
	assert.True(t, HasSourceExt("mod.fxt"))
	assert.True(t, HasSourceExt("mod.py"))
	assert.False(t, HasSourceExt("mod.txt"))
}

func TestTrimSourceExt(t *testing.T) {
	assert.Equal(t, "mod", TrimSourceExt("mod.fxt"))
	assert.Equal(t, "mod", TrimSourceExt("mod.py"))
	assert.Equal(t, "mod.txt", TrimSourceExt("mod.txt"))
}
