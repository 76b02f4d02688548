package utils

import "time"

// TruncateToDay returns the calendar date of t as midnight UTC
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date that is days after t
func AddDays(t time.Time, days int) time.Time {
	return TruncateToDay(t).AddDate(0, 0, days)
}

// DaysBetween counts whole calendar days from -> to (negative if to is earlier)
func DaysBetween(from, to time.Time) int {
	duration := TruncateToDay(to).Sub(TruncateToDay(from))
	return int(duration.Hours() / 24)
}

// IsAfterDay reports whether a falls on a later calendar day than b
func IsAfterDay(a, b time.Time) bool {
	return TruncateToDay(a).After(TruncateToDay(b))
}

// Today returns the current calendar date
func Today() time.Time {
	return TruncateToDay(time.Now())
}
