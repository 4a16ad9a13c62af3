package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/vfs"
	"go.uber.org/zap"
)

// ErrAlreadyStarted is returned by Run when the aggregator has left the idle state.
var ErrAlreadyStarted = errors.New("aggregation already started")

// Source is what the aggregator needs from a file system.
type Source interface {
	vfs.Lister
	vfs.Statter
}

type State int32

const (
	StateIdle State = iota
	StateAggregating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type Option func(*Aggregator)

func WithProgressInterval(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithJoin sets how child names are appended to directory paths.
func WithJoin(join func(elem ...string) string) Option {
	return func(a *Aggregator) {
		a.join = join
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		a.log = logger
	}
}

// Aggregator counts the files, folders and bytes below one directory.
// It runs at most once.
type Aggregator struct {
	root string
	src  Source

	state atomic.Int32 // State

	files   atomic.Int64
	folders atomic.Int64
	size    atomic.Int64

	// Snapshots as we progress through the tree
	progress chan Progress

	// Closed when the run ends, after err is set
	doneChan chan struct{}
	err      error

	mu     sync.Mutex
	cancel context.CancelFunc

	startTime   time.Time
	elapsedTime atomic.Int64

	interval time.Duration
	join     func(elem ...string) string
	log      *zap.Logger
}

const defaultProgressInterval = 150 * time.Millisecond

func NewAggregator(root string, src Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		root:     root,
		src:      src,
		progress: make(chan Progress, 100),
		doneChan: make(chan struct{}),
		interval: defaultProgressInterval,
		join:     filepath.Join,
		log:      logging.L(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start launches the walk in the background. Only the first call does
// anything; later calls return false.
func (a *Aggregator) Start(ctx context.Context) bool {
	if !a.state.CompareAndSwap(int32(StateIdle), int32(StateAggregating)) {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.startTime = time.Now()
	a.mu.Unlock()

	go func() {
		defer cancel()
		defer close(a.doneChan)
		defer close(a.progress)

		a.walk(ctx)

		a.elapsedTime.Store(time.Since(a.startTime).Milliseconds())
	}()
	return true
}

// Run walks synchronously and returns the final totals.
func (a *Aggregator) Run(ctx context.Context) (Totals, error) {
	if !a.Start(ctx) {
		return a.Snapshot(), ErrAlreadyStarted
	}
	<-a.doneChan
	return a.Snapshot(), a.err
}

// Stop cancels an in-flight walk and waits for it to end.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel == nil {
		return // never started
	}
	cancel()
	<-a.doneChan
}

func (a *Aggregator) Root() string {
	return a.root
}

func (a *Aggregator) State() State {
	return State(a.state.Load())
}

func (a *Aggregator) IsRunning() bool {
	return a.State() == StateAggregating
}

func (a *Aggregator) Snapshot() Totals {
	return Totals{
		Files:   a.files.Load(),
		Folders: a.folders.Load(),
		Size:    a.size.Load(),
	}
}

func (a *Aggregator) Progress() <-chan Progress {
	return a.progress
}

func (a *Aggregator) Done() <-chan struct{} {
	return a.doneChan
}

// Err returns why the run failed. It is nil until Done is closed and
// nil after a clean run.
func (a *Aggregator) Err() error {
	select {
	case <-a.doneChan:
		return a.err
	default:
		return nil
	}
}

func (a *Aggregator) ElapsedTime() time.Duration {
	a.mu.Lock()
	start := a.startTime
	a.mu.Unlock()
	if start.IsZero() {
		return 0
	}
	elapsed := a.elapsedTime.Load()
	if elapsed == 0 {
		return time.Since(start)
	}
	return time.Duration(elapsed) * time.Millisecond
}

func (a *Aggregator) walk(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	var failures []Failure
	fail := func(path string, err error) {
		a.log.Warn("aggregation skipped entry", zap.String("path", path), zap.Error(err))
		failures = append(failures, Failure{Path: path, Err: err})
	}

	// Pending directories, popped from the end for a depth-first walk.
	stack := []string{a.root}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := a.src.ReadDir(ctx, dir)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fail(dir, err)
			continue
		}

		for _, name := range names {
			p := a.join(dir, name)
			entry, err := a.src.Stat(ctx, p)
			if ctx.Err() != nil {
				break
			}
			if err != nil {
				fail(p, err)
				continue
			}
			if entry.IsDir {
				a.folders.Add(1)
				stack = append(stack, p)
			} else {
				a.files.Add(1)
				a.size.Add(entry.Size)
			}
		}

		select {
		case <-ticker.C:
			a.trySendProgress(Progress{Totals: a.Snapshot(), Path: dir, State: StateAggregating})
		default:
		}
	}

	a.finish(ctx.Err(), failures)
}

func (a *Aggregator) finish(ctxErr error, failures []Failure) {
	var errs []error
	if ctxErr != nil {
		errs = append(errs, fmt.Errorf("aggregation stopped: %w", ctxErr))
	}
	if len(failures) > 0 {
		errs = append(errs, &IncompleteError{Failures: failures})
	}
	a.err = errors.Join(errs...)

	state := StateDone
	if a.err != nil {
		state = StateFailed
	}
	a.state.Store(int32(state))

	totals := a.Snapshot()
	a.log.Debug("aggregation finished",
		zap.String("root", a.root),
		zap.Stringer("state", state),
		zap.Int64("files", totals.Files),
		zap.Int64("folders", totals.Folders),
		zap.Int64("size", totals.Size),
		zap.Error(a.err),
	)
	a.sendFinal(Progress{Totals: totals, State: state, Err: a.err, Final: true})
}

// sendFinal never blocks. When no reader keeps up it drops the oldest
// snapshot to make room, this goroutine being the only sender.
func (a *Aggregator) sendFinal(p Progress) {
	for {
		select {
		case a.progress <- p:
			return
		default:
		}
		select {
		case <-a.progress:
		default:
		}
	}
}

func (a *Aggregator) trySendProgress(p Progress) {
	select {
	case a.progress <- p:
	default:
	}
}
