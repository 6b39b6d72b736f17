package utils

import "time"

const (
	// DayLayout is the calendar-day key stored alongside every log row
	DayLayout = "2006-01-02"
	// LabelLayout renders a day as "Mon 02 Jan"
	LabelLayout = "Mon 02 Jan"
	// WeekDays is the length of the rolling report window
	WeekDays = 7
)

// DayKey formats t as a YYYY-MM-DD key in t's own location
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// DayLabel formats t as a short weekday label
func DayLabel(t time.Time) string {
	return t.Format(LabelLayout)
}

// ParseDay parses a YYYY-MM-DD key as midnight in loc
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DayLayout, s, loc)
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping it at local midnight
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween lists every midnight from start through end inclusive
func DaysBetween(start, end time.Time) []time.Time {
	start = StartOfDay(start)
	end = StartOfDay(end)
	var days []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// WeekWindow returns the first and last day of the 7-day window ending today
func WeekWindow(today time.Time) (time.Time, time.Time) {
	end := StartOfDay(today)
	return AddDays(end, -(WeekDays - 1)), end
}
