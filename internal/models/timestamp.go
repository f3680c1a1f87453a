package models

import (
	"time"

	"github.com/claude/hkreporter/internal/hkerror"
)

// Layouts of the timestamp strings carried by portable records.
const (
	TimestampLayout = "2006-01-02T15:04:05Z07:00"
	DateLayout      = "2006-01-02"
)

// FormatTimestamp renders t with its UTC offset, truncated to the second.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a string produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, hkerror.InvalidValuef("timestamp %q does not match %s", s, TimestampLayout)
	}
	return t, nil
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date-only string in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, hkerror.InvalidValuef("date %q does not match %s", s, DateLayout)
	}
	return t, nil
}

// parseInterval parses a start/end timestamp pair.
func parseInterval(start, end string) (time.Time, time.Time, error) {
	s, err := ParseTimestamp(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseTimestamp(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}
