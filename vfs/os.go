package vfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// seams for tests
var (
	osReadDir = os.ReadDir
	osStat    = os.Stat
	osLstat   = os.Lstat
	osRename  = os.Rename
)

var _ FS = (*OS)(nil)

// OS serves the capabilities from the local disk.
type OS struct{}

func NewOS() *OS {
	return &OS{}
}

func (o *OS) ReadDir(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := osReadDir(path)
	if err != nil {
		return nil, classify("readdir", path, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func (o *OS) Stat(ctx context.Context, path string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	// Symlinks are reported as themselves so a walk never leaves the tree.
	info, err := osLstat(path)
	if err != nil {
		return Entry{}, classify("stat", path, err)
	}
	e := Entry{
		Path:       path,
		IsDir:      info.IsDir(),
		ModifiedAt: info.ModTime(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	e.CreatedAt, e.AccessedAt = fileTimes(info)
	return e, nil
}

// Rename refuses to overwrite an existing target or to move oldPath out
// of its folder.
func (o *OS) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, name := splitTarget(newPath, osSeparators)
	if !ValidName(name) || filepath.Clean(dir) != filepath.Dir(filepath.Clean(oldPath)) {
		return &PathError{Op: "rename", Path: newPath, Err: ErrInvalidName}
	}
	if _, err := osStat(oldPath); err != nil {
		return classify("rename", oldPath, err)
	}
	if _, err := osLstat(newPath); err == nil {
		return &PathError{Op: "rename", Path: newPath, Err: ErrNameConflict}
	}
	if err := osRename(oldPath, newPath); err != nil {
		return classify("rename", newPath, err)
	}
	return nil
}

var osSeparators = "/" + string(filepath.Separator)

// splitTarget splits newPath after its last separator without cleaning it,
// so name is the final element exactly as typed.
func splitTarget(newPath, seps string) (dir, name string) {
	i := strings.LastIndexAny(newPath, seps)
	if i < 0 {
		return ".", newPath
	}
	return newPath[:i+1], newPath[i+1:]
}

// ValidName reports whether name can be used as a single path element.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
