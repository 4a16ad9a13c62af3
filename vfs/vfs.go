// Package vfs declares the file-system capabilities the properties dialog
// consumes, and a local-disk implementation of them.
package vfs

import (
	"context"
	"time"
)

// Entry is a snapshot of one file-system node. It is fetched once and does
// not track later changes.
type Entry struct {
	Path       string
	IsDir      bool
	Size       int64 // files only, 0 for directories
	CreatedAt  time.Time
	ModifiedAt time.Time
	AccessedAt time.Time
}

// Lister returns the child names of a directory.
type Lister interface {
	ReadDir(ctx context.Context, path string) ([]string, error)
}

type Statter interface {
	Stat(ctx context.Context, path string) (Entry, error)
}

type Renamer interface {
	Rename(ctx context.Context, oldPath, newPath string) error
}

// FolderUpdater asks listeners to refresh their view of a directory.
// It never blocks and never fails.
type FolderUpdater interface {
	UpdateFolder(path string)
}

type FS interface {
	Lister
	Statter
	Renamer
}
