package stubindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutThenLookupRoundTrips(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Put(Declaration{
		ModuleName:    "collections",
		ContentHash:   "abc123",
		SignatureText: "class OrderedDict: ...",
		UpdatedUnix:   1000,
	})
	require.NoError(t, err)

	d, found, err := idx.Lookup("collections")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "abc123", d.ContentHash)
	require.Equal(t, "class OrderedDict: ...", d.SignatureText)
}

func TestLookupMissingModuleReportsNotFound(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	_, found, err := idx.Lookup("nonexistent")
	require.NoError(t, err)
	require.False(t, found)
}

func TestNeedsReparseTracksContentHash(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	stale, err := idx.NeedsReparse("typing_extensions", "hash-v1")
	require.NoError(t, err)
	require.True(t, stale, "unseen module always needs parsing")

	require.NoError(t, idx.Put(Declaration{ModuleName: "typing_extensions", ContentHash: "hash-v1", SignatureText: "..."}))

	stale, err = idx.NeedsReparse("typing_extensions", "hash-v1")
	require.NoError(t, err)
	require.False(t, stale)

	stale, err = idx.NeedsReparse("typing_extensions", "hash-v2")
	require.NoError(t, err)
	require.True(t, stale, "changed content hash forces reparse")
}

func TestForgetClearsEntry(t *testing.T) {
	idx, err := Open("")
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Put(Declaration{ModuleName: "m", ContentHash: "h", SignatureText: "s"}))
	require.NoError(t, idx.Forget("m"))

	_, found, err := idx.Lookup("m")
	require.NoError(t, err)
	require.False(t, found)
}
