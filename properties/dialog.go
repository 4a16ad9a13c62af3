package properties

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/vfs"
	"go.uber.org/zap"
)

// Closer dismisses the dialog window with the given id.
type Closer interface {
	Close(id string)
}

type CloserFunc func(id string)

func (f CloserFunc) Close(id string) { f(id) }

// Notifier shows a failure without blocking the caller.
type Notifier interface {
	Notify(err error)
}

type NotifierFunc func(err error)

func (f NotifierFunc) Notify(err error) { f(err) }

// Recorder receives the totals of a folder whose count finished cleanly.
type Recorder interface {
	Record(entry vfs.Entry, totals scanner.Totals)
}

type DialogOption func(*Dialog)

func WithNotifier(n Notifier) DialogOption {
	return func(d *Dialog) {
		d.notifier = n
	}
}

func WithRecorder(r Recorder) DialogOption {
	return func(d *Dialog) {
		d.recorder = r
	}
}

// Dialog is one open Properties window.
type Dialog struct {
	ID string

	general   *General
	committer *Committer
	closer    Closer
	notifier  Notifier
	recorder  Recorder

	ctx       context.Context
	closeOnce sync.Once
	closed    chan struct{}
}

func NewDialog(general *General, committer *Committer, closer Closer, opts ...DialogOption) *Dialog {
	d := &Dialog{
		ID:        uuid.NewString(),
		general:   general,
		committer: committer,
		closer:    closer,
		ctx:       context.Background(),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dialog) General() *General {
	return d.general
}

// Open starts counting the folder's contents, once per dialog.
func (d *Dialog) Open(ctx context.Context) {
	d.ctx = logging.WithDialogID(ctx, d.ID)
	entry := d.general.Entry()
	logging.WithContext(d.ctx).Debug("dialog opened", zap.String("path", entry.Path))

	if !d.general.StartAggregation(d.ctx) {
		return
	}
	if d.recorder == nil {
		return
	}
	agg := d.general.Aggregator()
	go func() {
		select {
		case <-agg.Done():
		case <-d.closed:
			return
		}
		if agg.State() == scanner.StateDone {
			d.recorder.Record(entry, agg.Snapshot())
		}
	}()
}

// Confirm commits editedName and closes the dialog whatever the outcome.
// A rename failure goes to the notifier and is also returned.
func (d *Dialog) Confirm(editedName string) error {
	entry := d.general.Entry()
	_, err := d.committer.Commit(d.ctx, entry.Path, d.general.IsShortcut(), editedName)
	if err != nil && d.notifier != nil {
		d.notifier.Notify(err)
	}
	d.close()
	return err
}

// Cancel closes without committing.
func (d *Dialog) Cancel() {
	d.close()
}

func (d *Dialog) Closed() <-chan struct{} {
	return d.closed
}

func (d *Dialog) close() {
	d.closeOnce.Do(func() {
		close(d.closed)
		d.general.StopAggregation()
		if d.closer != nil {
			d.closer.Close(d.ID)
		}
		logging.WithContext(d.ctx).Debug("dialog closed")
	})
}
