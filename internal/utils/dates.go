package utils

import (
	"fmt"
	"regexp"
	"time"
)

// ParseDate accepts ISO 8601 dates: YYYY-MM-DD or full RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a timestamp as RFC3339
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClockTime reports whether s is a 24h HH:MM string.
func ValidClockTime(s string) bool {
	return clockRe.MatchString(s)
}
