package properties

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// long date, medium time
const dateTimeLayout = "January 2, 2006, 3:04:05 PM"

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// FormatSize renders "1.2 kB (1,234 bytes)".
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 bytes"
	}
	return fmt.Sprintf("%s (%s bytes)", humanize.Bytes(uint64(size)), humanize.Comma(size))
}
