package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
)

// FastCount computes the same totals as an Aggregator for a directory on
// the local disk, walking it with parallel workers. Symlinks are counted
// as files and never followed. Unreadable entries are skipped and
// reported through an *IncompleteError.
func FastCount(ctx context.Context, root string) (Totals, error) {
	return fastCount(ctx, filepath.Clean(root), runtime.NumCPU())
}

func fastCountErr(ctx context.Context, walkErr error, failures []Failure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if walkErr != nil {
		failures = append(failures, Failure{Err: walkErr})
	}
	if len(failures) == 0 {
		return nil
	}
	return &IncompleteError{Failures: failures}
}

// Stamp summarizes the directories of a tree. Creating, removing or
// renaming an entry anywhere below the root changes it. Rewriting a file
// in place does not.
type Stamp struct {
	Folders int64
	Latest  time.Time
}

// TreeStamp lists every directory below root, stats only the directories
// and returns their count and newest modification time.
func TreeStamp(ctx context.Context, root string) (Stamp, error) {
	root = filepath.Clean(root)
	var mu sync.Mutex
	var stamp Stamp
	var failures []Failure

	walk := func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			mu.Lock()
			failures = append(failures, Failure{Path: path, Err: err})
			mu.Unlock()
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		info, err := d.Info()

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
			return nil
		}
		if path != root {
			stamp.Folders++
		}
		if info.ModTime().After(stamp.Latest) {
			stamp.Latest = info.ModTime()
		}
		return nil
	}

	err := fastwalk.Walk(&fastwalk.Config{Follow: false, NumWorkers: runtime.NumCPU()}, root, walk)
	return stamp, fastCountErr(ctx, err, failures)
}
