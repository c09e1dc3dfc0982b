package utils

import (
	"fmt"
	"time"
)

// ParseFilingDate parses a filing date as reported by the archive.
// The submissions API uses YYYY-MM-DD; older index shards occasionally
// carry full timestamps. Returns the zero time when nothing matches.
func ParseFilingDate(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02",
		"2006-01-02T15:04:05.000Z",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilingQuarter returns the calendar quarter (1-4) of a filing date.
func FilingQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// QuarterLabel formats a filing date's quarter as "Q1".."Q4".
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("Q%d", FilingQuarter(t))
}

// FormatDate renders a time as the archive's YYYY-MM-DD convention.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
