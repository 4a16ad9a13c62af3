//go:build windows

package vfs

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	created, accessed = info.ModTime(), info.ModTime()
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return created, accessed
	}
	created = time.Unix(0, data.CreationTime.Nanoseconds())
	accessed = time.Unix(0, data.LastAccessTime.Nanoseconds())
	return created, accessed
}
