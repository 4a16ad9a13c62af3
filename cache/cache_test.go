package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "fsprops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_PutGet(t *testing.T) {
	c := openTemp(t)
	mod := time.Unix(1_700_000_000, 0)
	require.NoError(t, c.Put(&Entry{Path: "/docs", Files: 3, Folders: 1, Size: 60, LastModifiedAt: mod, ScannedAt: mod}))

	got, err := c.Get("/docs")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Files)
	assert.Equal(t, int64(1), got.Folders)
	assert.Equal(t, int64(60), got.Size)
	assert.True(t, mod.Equal(got.LastModifiedAt))

	// upsert
	require.NoError(t, c.Put(&Entry{Path: "/docs", Files: 4, LastModifiedAt: mod, ScannedAt: mod}))
	got, err = c.Get("/docs")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Files)

	_, err = c.Get("/nope")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_Lookup(t *testing.T) {
	c := openTemp(t)
	latest := time.Unix(1_700_000_000, 500)
	stamp := scanner.Stamp{Folders: 2, Latest: latest}
	require.NoError(t, c.Put(&Entry{Path: "/docs", Files: 1, Folders: 2, LastModifiedAt: latest, ScannedAt: latest}))

	got, ok, err := c.Lookup("/docs", stamp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Files)

	for _, changed := range []scanner.Stamp{
		{Folders: 2, Latest: latest.Add(time.Nanosecond)},
		{Folders: 3, Latest: latest},
	} {
		require.NoError(t, c.Put(&Entry{Path: "/docs", Files: 1, Folders: 2, LastModifiedAt: latest, ScannedAt: latest}))
		_, ok, err = c.Lookup("/docs", changed)
		require.NoError(t, err)
		assert.False(t, ok, "%+v", changed)

		// stale rows are gone
		_, err = c.Get("/docs")
		assert.ErrorIs(t, err, ErrMiss)
	}

	_, ok, err = c.Lookup("/missing", stamp)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_OldSchemaIsDropped(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fsprops.db")
	c, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, c.Put(&Entry{Path: "/docs", Files: 1, LastModifiedAt: time.Now(), ScannedAt: time.Now()}))
	_, err = c.db.Exec(`PRAGMA user_version = 1;`)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open(dbPath)
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Get("/docs")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_DeleteTree(t *testing.T) {
	c := openTemp(t)
	now := time.Now()
	for _, p := range []string{"/docs", "/docs/a", "/docs/a/b", "/docs2", "/other"} {
		require.NoError(t, c.Put(&Entry{Path: filepath.FromSlash(p), LastModifiedAt: now, ScannedAt: now}))
	}

	require.NoError(t, c.DeleteTree(filepath.FromSlash("/docs")))

	all, err := c.GetAll()
	require.NoError(t, err)
	var paths []string
	for _, e := range all {
		paths = append(paths, filepath.ToSlash(e.Path))
	}
	assert.ElementsMatch(t, []string{"/docs2", "/other"}, paths)
}
