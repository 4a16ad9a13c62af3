//go:build !linux

package scanner

import (
	"context"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

func fastCount(ctx context.Context, root string, workers int) (Totals, error) {
	var files, folders, size atomic.Int64
	var mu sync.Mutex
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
		if path == root {
			return nil
		}
		if d.IsDir() {
			folders.Add(1)
			return nil
		}
		files.Add(1)
		info, err := d.Info()
		if err != nil {
			mu.Lock()
			failures = append(failures, Failure{Path: path, Err: err})
			mu.Unlock()
			return nil
		}
		size.Add(info.Size())
		return nil
	}

	err := fastwalk.Walk(&fastwalk.Config{Follow: false, NumWorkers: workers}, root, walk)
	return Totals{Files: files.Load(), Folders: folders.Load(), Size: size.Load()}, fastCountErr(ctx, err, failures)
}
