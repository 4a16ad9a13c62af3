//go:build !darwin && !windows && !linux

package vfs

import (
	"os"
	"time"
)

// Portable systems don't expose atime/birthtime reliably.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
