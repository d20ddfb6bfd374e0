package utils

import "time"

// StartOfDay truncates t to midnight in its own location. Due-date
// comparisons are calendar-date granular, never time-of-day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the start of the current calendar day.
func Today() time.Time {
	return StartOfDay(time.Now())
}
