package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStamp(stamp scanner.Stamp, err error) func(context.Context, string) (scanner.Stamp, error) {
	return func(context.Context, string) (scanner.Stamp, error) {
		return stamp, err
	}
}

func TestRecorder(t *testing.T) {
	c := openTemp(t)
	stamp := scanner.Stamp{Folders: 1, Latest: time.Unix(1_700_000_000, 123)}
	scanned := time.Unix(1_700_000_500, 0)
	r := Recorder{Cache: c, Now: func() time.Time { return scanned }, Stamp: fixedStamp(stamp, nil)}

	r.Record(vfs.Entry{Path: "/d", IsDir: true}, scanner.Totals{Files: 3, Folders: 1, Size: 60})

	got, ok, err := c.Lookup("/d", stamp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Files)
	assert.Equal(t, int64(1), got.Folders)
	assert.Equal(t, int64(60), got.Size)
	assert.True(t, scanned.Equal(got.ScannedAt))

	r.Forget("/d")
	_, err = c.Get("/d")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRecorder_SkipsUntrustedStamps(t *testing.T) {
	c := openTemp(t)
	totals := scanner.Totals{Files: 3, Folders: 1, Size: 60}

	Recorder{Cache: c, Stamp: fixedStamp(scanner.Stamp{}, errors.New("unreadable"))}.
		Record(vfs.Entry{Path: "/a", IsDir: true}, totals)
	_, err := c.Get("/a")
	assert.ErrorIs(t, err, ErrMiss)

	// a folder appeared after the count
	Recorder{Cache: c, Stamp: fixedStamp(scanner.Stamp{Folders: 2}, nil)}.
		Record(vfs.Entry{Path: "/b", IsDir: true}, totals)
	_, err = c.Get("/b")
	assert.ErrorIs(t, err, ErrMiss)
}
