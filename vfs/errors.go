package vfs

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound     = errors.New("no such file or directory")
	ErrPermission   = errors.New("permission denied")
	ErrNameConflict = errors.New("target name already exists")
	ErrInvalidName  = errors.New("invalid file name")
)

// PathError records the operation and path that produced one of the
// package's sentinel errors.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// classify maps an os error onto the package sentinels, keeping the original
// as the wrapped cause when it is not one of the known kinds.
func classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		err = fmt.Errorf("%w: %v", ErrPermission, err)
	case errors.Is(err, fs.ErrExist):
		err = fmt.Errorf("%w: %v", ErrNameConflict, err)
	}
	return &PathError{Op: op, Path: path, Err: err}
}
