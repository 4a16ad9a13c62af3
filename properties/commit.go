package properties

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/vfs"
	"go.uber.org/zap"
)

// RenameRequest is built when a changed name is committed.
type RenameRequest struct {
	OriginalPath string
	NewBasename  string
	IsShortcut   bool
}

// NewPath places NewBasename, uncleaned, in the entry's directory and, for
// shortcuts, keeps the original extension. A name such as "" or "../x"
// therefore reaches the rename capability as typed and is rejected there.
func (r RenameRequest) NewPath() string {
	dir := filepath.Dir(r.OriginalPath)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	p := dir + r.NewBasename
	if r.IsShortcut {
		p += filepath.Ext(r.OriginalPath)
	}
	return p
}

// RenameError wraps the rename capability's failure, typically
// vfs.ErrNameConflict or vfs.ErrInvalidName.
type RenameError struct {
	Request RenameRequest
	Err     error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %q to %q: %v", e.Request.OriginalPath, e.Request.NewBasename, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

type CommitterOption func(*Committer)

// WithRefreshOnFailure controls whether the parent folder is refreshed
// after a rename that failed. It is by default.
func WithRefreshOnFailure(refresh bool) CommitterOption {
	return func(c *Committer) {
		c.refreshOnFailure = refresh
	}
}

// WithOnCommitted registers fn to run after every successful rename.
func WithOnCommitted(fn func(oldPath, newPath string)) CommitterOption {
	return func(c *Committer) {
		c.onCommitted = fn
	}
}

// Committer applies an edited name to an entry.
type Committer struct {
	fs               vfs.Renamer
	folders          vfs.FolderUpdater
	refreshOnFailure bool
	onCommitted      func(oldPath, newPath string)
}

// NewCommitter returns a committer renaming through fs. folders may be nil.
func NewCommitter(fs vfs.Renamer, folders vfs.FolderUpdater, opts ...CommitterOption) *Committer {
	c := &Committer{
		fs:               fs,
		folders:          folders,
		refreshOnFailure: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit renames path when editedName differs from the name shown for it.
// An unchanged name is a no-op. renamed reports whether the rename
// succeeded. Names are validated by fs, except that a shortcut's edited
// name must be a valid name on its own before its extension is added.
func (c *Committer) Commit(ctx context.Context, path string, isShortcut bool, editedName string) (renamed bool, err error) {
	if editedName == OriginalBasename(path, isShortcut) {
		return false, nil
	}

	req := RenameRequest{OriginalPath: path, NewBasename: editedName, IsShortcut: isShortcut}
	newPath := req.NewPath()
	logger := logging.WithContext(ctx).With(zap.String("from", path), zap.String("to", newPath))

	var renameErr error
	if isShortcut && !vfs.ValidName(editedName) {
		// the kept extension would turn "" into a hidden file name
		renameErr = &vfs.PathError{Op: "rename", Path: newPath, Err: vfs.ErrInvalidName}
	} else {
		renameErr = c.fs.Rename(ctx, path, newPath)
	}
	if renameErr != nil {
		logger.Warn("rename failed", zap.Error(renameErr))
	} else {
		logger.Info("renamed")
	}

	if c.folders != nil && (renameErr == nil || c.refreshOnFailure) {
		c.folders.UpdateFolder(filepath.Dir(path))
	}

	if renameErr != nil {
		return false, &RenameError{Request: req, Err: renameErr}
	}
	if c.onCommitted != nil {
		c.onCommitted(path, newPath)
	}
	return true, nil
}
