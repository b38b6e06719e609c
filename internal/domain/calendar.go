package domain

import "time"

// Date truncates t to midnight of its UTC calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday that opens the ISO week containing t's UTC day.
func WeekStart(t time.Time) time.Time {
	day := Date(t)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -sinceMonday)
}

// SameDay matches events on the UTC calendar day of t.
func SameDay(t time.Time) func(Event) bool {
	want := Date(t)
	return func(e Event) bool {
		return Date(e.Date).Equal(want)
	}
}

// SameWeek matches events in the Monday-start week of t.
func SameWeek(t time.Time) func(Event) bool {
	want := WeekStart(t)
	return func(e Event) bool {
		return WeekStart(e.Date).Equal(want)
	}
}

// SameMonth matches events in the UTC year and month of t.
func SameMonth(t time.Time) func(Event) bool {
	wy, wm, _ := t.UTC().Date()
	return func(e Event) bool {
		y, m, _ := e.Date.UTC().Date()
		return y == wy && m == wm
	}
}
