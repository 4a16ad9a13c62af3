package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riadafridishibly/fsprops/properties"
	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FSPROPS_LOG_FILE", filepath.Join(dir, "fsprops.log"))
	t.Setenv("FSPROPS_CACHE_PATH", filepath.Join(dir, "cache.db"))
	t.Setenv("FSPROPS_CACHE", "true")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatCmd_FolderIsCountedThenCached(t *testing.T) {
	testEnv(t)
	root := t.TempDir()
	for name, size := range map[string]int{"x": 10, "y": 20, "z": 30} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), make([]byte, size), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	out, err := execute(t, "stat", root)
	require.NoError(t, err)
	assert.Contains(t, out, "3 Files, 1 Folders")
	assert.Contains(t, out, "60 B (60 bytes)")
	assert.Contains(t, out, "File folder")
	assert.Contains(t, out, "Counted in")

	out, err = execute(t, "stat", root)
	require.NoError(t, err)
	assert.Contains(t, out, "3 Files, 1 Folders")
	assert.NotContains(t, out, "Counted in")
	assert.Contains(t, out, "may be stale")

	out, err = execute(t, "stat", "--fast", "--refresh", root)
	require.NoError(t, err)
	assert.Contains(t, out, "3 Files, 1 Folders")
	assert.Contains(t, out, "Counted in")
}

func TestStatCmd_NestedChangeInvalidatesCache(t *testing.T) {
	testEnv(t)
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a"), make([]byte, 10), 0o644))
	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, dir := range []string{root, sub} {
		require.NoError(t, os.Chtimes(dir, old, old))
	}

	out, err := execute(t, "stat", root)
	require.NoError(t, err)
	assert.Contains(t, out, "1 Files, 1 Folders")
	assert.Contains(t, out, "10 B (10 bytes)")

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b"), make([]byte, 5000), 0o644))

	out, err = execute(t, "stat", root)
	require.NoError(t, err)
	assert.Contains(t, out, "2 Files, 1 Folders")
	assert.Contains(t, out, "5.0 kB (5,010 bytes)")
	assert.Contains(t, out, "Counted in")
	assert.NotContains(t, out, "may be stale")
}

func TestStatCmd_File(t *testing.T) {
	testEnv(t)
	p := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	out, err := execute(t, "stat", "--pid", "MonacoEditor", p)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:      report.txt")
	assert.Contains(t, out, "Text Document (.txt)")
	assert.Contains(t, out, "Monaco Editor")
	assert.Contains(t, out, "5 B (5 bytes)")
}

func TestStatCmd_Missing(t *testing.T) {
	testEnv(t)
	_, err := execute(t, "stat", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestRenameCmd(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "game.lnk")
	require.NoError(t, os.WriteFile(src, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.lnk"), nil, 0o644))

	out, err := execute(t, "rename", "--shortcut", src, "game")
	require.NoError(t, err)
	assert.Contains(t, out, "Name unchanged.")

	out, err = execute(t, "rename", "--shortcut", src, "taken")
	assert.ErrorIs(t, err, vfs.ErrNameConflict)
	assert.Contains(t, out, "Refreshed "+dir)

	out, err = execute(t, "rename", "--shortcut", src, "game2")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed "+src+" to "+filepath.Join(dir, "game2.lnk"))
	assert.FileExists(t, filepath.Join(dir, "game2.lnk"))
}

func TestWithTotals(t *testing.T) {
	rows := []properties.Row{
		{Label: "Type:", Value: "File folder"},
		{Label: "Size:", Value: "0 bytes"},
		{Label: "Contains:", Value: "0 Files, 0 Folders"},
	}
	got := withTotals(rows, scanner.Totals{Files: 3, Folders: 1, Size: 60})
	assert.Equal(t, "File folder", got[0].Value)
	assert.Equal(t, "60 B (60 bytes)", got[1].Value)
	assert.Equal(t, "3 Files, 1 Folders", got[2].Value)
	assert.Equal(t, "0 bytes", rows[1].Value, "input is not modified")
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, "docs", []properties.Row{{Label: "Type:", Value: "File folder"}, {}, {Label: "Created:", Value: ""}})
	assert.Equal(t, "Name:      docs\nType:      File folder\n\nCreated:   \n", buf.String())
}
