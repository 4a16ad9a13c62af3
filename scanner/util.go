package scanner

import (
	"fmt"
	"strings"
)

type DevIno struct {
	Dev uint64
	Ino uint64
}

// Totals is one reading of the aggregation counters.
type Totals struct {
	Files   int64
	Folders int64
	Size    int64 // bytes of files only
}

type Progress struct {
	Totals
	Path  string // directory just listed
	State State
	Err   error
	Final bool
}

// Failure is one entry the walk could not read.
type Failure struct {
	Path string
	Err  error
}

// IncompleteError means the totals undercount: some entries could not be
// read and were skipped together with anything below them.
type IncompleteError struct {
	Failures []Failure
}

func (e *IncompleteError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("aggregation incomplete: %s: %v", e.Failures[0].Path, e.Failures[0].Err)
	}
	paths := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		paths = append(paths, f.Path)
	}
	return fmt.Sprintf("aggregation incomplete: %d unreadable entries: %s", len(e.Failures), strings.Join(paths, ", "))
}

func (e *IncompleteError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
