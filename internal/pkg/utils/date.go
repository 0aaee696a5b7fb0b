package utils

import "time"

const DateLayout = "2006-01-02"

// DateOf strips the clock from t, keeping the calendar day in t's location as a UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now.In(loc))
}

// ParseDate parses YYYY-MM-DD into a UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateOr returns fallback when s is blank or malformed.
func ParseDateOr(s string, fallback time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return fallback
}

// DaysInclusive counts calendar days from start to end, both included. Zero when end < start.
func DaysInclusive(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// EachDay calls fn for every day in [start, end].
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for d := DateOf(start); !d.After(DateOf(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// MondayIndex maps a time.Weekday onto 0=Monday..6=Sunday.
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
