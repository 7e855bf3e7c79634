package logpipe

import (
	"fmt"
	"time"
)

// bucketKey maps a millisecond epoch timestamp to its 15-minute UTC
// interval label, e.g. "5:30-5:45". Hours are unpadded except for the
// midnight wrap, which reads "23:45-00:00" rather than "23:45-24:00".
func bucketKey(millis int64) string {
	t := time.UnixMilli(millis).UTC()
	h, m := t.Hour(), t.Minute()
	switch {
	case m >= 45:
		if h == 23 {
			return "23:45-00:00"
		}
		return fmt.Sprintf("%d:45-%d:00", h, h+1)
	case m >= 30:
		return fmt.Sprintf("%d:30-%d:45", h, h)
	case m >= 15:
		return fmt.Sprintf("%d:15-%d:30", h, h)
	default:
		return fmt.Sprintf("%d:00-%d:15", h, h)
	}
}
