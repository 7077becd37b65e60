package core

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD string into a time.Time (date only, midnight UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFmt, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s' (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// DayOf truncates an API timestamp (2024-06-01T13:37:00Z) to its date part.
// Returns "" when the timestamp is too short to contain a date.
func DayOf(timestamp string) string {
	if len(timestamp) < len(DateFmt) {
		return ""
	}
	return timestamp[:len(DateFmt)]
}

// IsDate reports whether s is a well-formed YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := time.Parse(DateFmt, s)
	return err == nil
}

// FormatDate formats a time.Time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFmt)
}
