//go:build darwin

package vfs

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	created, accessed = info.ModTime(), info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return created, accessed
	}
	created = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	accessed = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	return created, accessed
}
