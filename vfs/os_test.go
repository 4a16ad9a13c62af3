package vfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, p string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
}

func TestOS_ReadDirAndStat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 12)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	o := NewOS()
	ctx := context.Background()

	names, err := o.ReadDir(ctx, root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, names)

	file, err := o.Stat(ctx, filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.False(t, file.IsDir)
	assert.Equal(t, int64(12), file.Size)
	assert.False(t, file.ModifiedAt.IsZero())
	assert.False(t, file.AccessedAt.IsZero())

	dir, err := o.Stat(ctx, filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.True(t, dir.IsDir)
	assert.Zero(t, dir.Size)
}

func TestOS_NotFound(t *testing.T) {
	o := NewOS()
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := o.Stat(context.Background(), missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = o.ReadDir(context.Background(), missing)
	assert.ErrorIs(t, err, ErrNotFound)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "readdir", pathErr.Op)
	assert.Equal(t, missing, pathErr.Path)
}

func TestOS_PermissionMapping(t *testing.T) {
	defer func(prev func(string) ([]os.DirEntry, error)) { osReadDir = prev }(osReadDir)
	osReadDir = func(name string) ([]os.DirEntry, error) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	_, err := NewOS().ReadDir(context.Background(), "/locked")
	assert.ErrorIs(t, err, ErrPermission)
}

func TestOS_Rename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "report.txt")
	writeFile(t, src, 3)
	writeFile(t, filepath.Join(root, "taken.txt"), 1)
	o := NewOS()
	ctx := context.Background()

	t.Run("conflict", func(t *testing.T) {
		err := o.Rename(ctx, src, filepath.Join(root, "taken.txt"))
		assert.ErrorIs(t, err, ErrNameConflict)
		assert.FileExists(t, src)
	})

	t.Run("invalid", func(t *testing.T) {
		err := o.Rename(ctx, src, root+string(filepath.Separator)+"..")
		assert.ErrorIs(t, err, ErrInvalidName)
		err = o.Rename(ctx, src, root+string(filepath.Separator))
		assert.ErrorIs(t, err, ErrInvalidName)
		assert.FileExists(t, src)
	})

	t.Run("stays_in_folder", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
		sep := string(filepath.Separator)
		for _, target := range []string{
			root + sep + "sub" + sep + "x.txt",
			root + sep + ".." + sep + "y.txt",
		} {
			err := o.Rename(ctx, src, target)
			assert.ErrorIs(t, err, ErrInvalidName, target)
		}
		assert.FileExists(t, src)
		assert.NoFileExists(t, filepath.Join(root, "sub", "x.txt"))
		assert.NoFileExists(t, filepath.Join(filepath.Dir(root), "y.txt"))
	})

	t.Run("missing_source", func(t *testing.T) {
		err := o.Rename(ctx, filepath.Join(root, "nope"), filepath.Join(root, "x"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ok", func(t *testing.T) {
		dst := filepath.Join(root, "summary.txt")
		require.NoError(t, o.Rename(ctx, src, dst))
		assert.NoFileExists(t, src)
		assert.FileExists(t, dst)
	})
}

func TestOS_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewOS().ReadDir(ctx, t.TempDir())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestValidName(t *testing.T) {
	for name, expected := range map[string]bool{
		"report.txt": true,
		"a b":        true,
		"":           false,
		"   ":        false,
		".":          false,
		"..":         false,
		"a/b":        false,
		"a\\b":       false,
		"a\x00":      false,
	} {
		assert.Equal(t, expected, ValidName(name), "%q", name)
	}
}

func TestSplitTarget(t *testing.T) {
	for _, tt := range []struct {
		in, dir, name string
	}{
		{in: "/docs/report.txt", dir: "/docs/", name: "report.txt"},
		{in: "/docs/", dir: "/docs/", name: ""},
		{in: "/docs/../x", dir: "/docs/../", name: "x"},
		{in: "/x", dir: "/", name: "x"},
		{in: "x", dir: ".", name: "x"},
	} {
		dir, name := splitTarget(tt.in, "/")
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}
