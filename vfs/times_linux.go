//go:build linux

package vfs

import (
	"os"
	"syscall"
	"time"
)

// stat(2) carries no birth time on linux, so creation falls back to mtime.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	created, accessed = info.ModTime(), info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return created, accessed
	}
	accessed = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	return created, accessed
}
