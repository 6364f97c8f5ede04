package timekeeper

import (
	"fmt"
	"time"
)

// FormatRemaining renders a duration as zero-padded mm:ss. Minutes do not wrap
// at the hour and negative values render as 00:00.
func FormatRemaining(remaining time.Duration) string {
	return FormatMillis(remaining.Milliseconds())
}

// FormatMillis renders milliseconds as zero-padded mm:ss.
func FormatMillis(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	seconds := millis / 1000
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
