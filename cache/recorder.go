package cache

import (
	"context"
	"time"

	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/vfs"
	"go.uber.org/zap"
)

// Recorder stores finished folder counts, stamped with the tree's
// directory summary so Lookup can tell when they go stale.
type Recorder struct {
	Cache *Cache
	Now   func() time.Time
	// Stamp defaults to scanner.TreeStamp.
	Stamp func(ctx context.Context, root string) (scanner.Stamp, error)
}

// Record stamps the tree after the count finished. Counts whose folder
// total no longer matches the tree are dropped.
func (r Recorder) Record(entry vfs.Entry, totals scanner.Totals) {
	stampFn := r.Stamp
	if stampFn == nil {
		stampFn = scanner.TreeStamp
	}
	stamp, err := stampFn(context.Background(), entry.Path)
	if err != nil {
		logging.L().Debug("not caching folder totals", zap.String("path", entry.Path), zap.Error(err))
		return
	}
	if stamp.Folders != totals.Folders {
		logging.L().Debug("folder changed while counting", zap.String("path", entry.Path))
		return
	}
	r.Store(entry.Path, totals, stamp)
}

// Store saves totals under a stamp taken before the count started.
func (r Recorder) Store(path string, totals scanner.Totals, stamp scanner.Stamp) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	err := r.Cache.Put(&Entry{
		Path:           path,
		Files:          totals.Files,
		Folders:        totals.Folders,
		Size:           totals.Size,
		LastModifiedAt: stamp.Latest,
		ScannedAt:      now(),
	})
	if err != nil {
		// a missing cache row only costs a recount
		logging.L().Warn("failed to cache folder totals", zap.String("path", path), zap.Error(err))
	}
}

// Forget drops path and everything cached below it, typically after path
// was renamed.
func (r Recorder) Forget(path string) {
	if err := r.Cache.DeleteTree(path); err != nil {
		logging.L().Warn("failed to drop cached totals", zap.String("path", path), zap.Error(err))
	}
}
