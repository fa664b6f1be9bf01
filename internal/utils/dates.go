package utils

import (
	"time"

	"github.com/subpair/habit-tracker/internal/constants"
)

// Date returns the given calendar day at midnight UTC. All tracker
// arithmetic operates on values normalized this way.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates a time to its calendar day at midnight UTC.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day, normalized.
func Today() time.Time {
	return Normalize(time.Now())
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBetween returns the whole number of days from a to b. Negative when b
// is before a. Inputs are normalized first so DST or clock noise cannot
// shift the count.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)) / (24 * time.Hour))
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
