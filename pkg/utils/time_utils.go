package utils

import "time"

// Use explicit "seconds" variant for DB storage
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts an epoch value in seconds to UTC time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// DaysUntil returns the number of whole-or-partial days between now and
// the epoch-seconds deadline, floored at 0. A deadline 1 second away
// still counts as 1 day.
func DaysUntil(deadline int64, now time.Time) int {
	secs := deadline - now.Unix()
	if secs <= 0 {
		return 0
	}
	const day = int64(24 * 60 * 60)
	return int((secs + day - 1) / day)
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
