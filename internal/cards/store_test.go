package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name string `json:"name,omitempty"`
	Cost int    `json:"cost,omitempty"`
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	store, err := Open[testRecord](filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err := Open[testRecord](path)
	assert.Error(t, err, "corrupt cache is a fatal startup error")
}

func TestFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	store, err := Open[testRecord](path)
	require.NoError(t, err)
	store.Put("m21", "Shock", testRecord{Name: "Shock", Cost: 1})
	store.Put(DefaultBucket, "Uppercut", testRecord{Name: "Uppercut", Cost: 2})
	require.NoError(t, store.Flush())

	reloaded, err := Open[testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	rec, ok := reloaded.Get("m21", "Shock")
	require.True(t, ok)
	assert.Equal(t, testRecord{Name: "Shock", Cost: 1}, rec)
}

func TestFlushTolerantOfOldSchema(t *testing.T) {
	// A cache written before a field existed still loads; the field is just
	// zero.
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"_": {"Shock": {"name": "Shock"}}}`), 0644))

	store, err := Open[testRecord](path)
	require.NoError(t, err)
	rec, ok := store.Get(DefaultBucket, "Shock")
	require.True(t, ok)
	assert.Zero(t, rec.Cost)
}

func TestFlushSkipsUnchangedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store, err := Open[testRecord](path)
	require.NoError(t, err)
	store.Put(DefaultBucket, "Shock", testRecord{Name: "Shock"})
	require.NoError(t, store.Flush())

	info, err := os.Stat(path)
	require.NoError(t, err)
	first := info.ModTime()

	require.NoError(t, store.Flush())
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, first, info.ModTime(), "identical snapshot is not rewritten")
}
