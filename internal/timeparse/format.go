package timeparse

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format Jira expects for worklog start times.
const TimestampLayout = "2006-01-02T15:04:05.000-0700"

// FormatDuration renders d the way Jira writes time spent, e.g. "1d 2h 5m", "12h 7m" or "45m".
// Hours and minutes are always shown once a larger unit is present.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatTimestamp renders t with its own UTC offset, e.g. "2015-09-20T16:40:51.000+0100".
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
