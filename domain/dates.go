package domain

import "time"

// DateLayout is the calendar-date format used in every document
const DateLayout = "2006-01-02"

// NoDate is the sentinel for an unset topic date
const NoDate = "-"

// Date formats t as a calendar date string
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeekStart returns the Monday of the week containing t, at midnight
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
