// Package itinerary owns the day-by-day activity model of a trip: the
// calendar range a trip spans, the grouping of activities into
// (date, period) slots and the mutations a planner applies to them.
//
// A Manager works on its own copy of a trip's activity list. Every committed
// mutation pushes the full replacement list to an Updater; nothing is rolled
// back when that push fails.
package itinerary

import (
	"fmt"
	"time"
)

// DateLayout is the wire form of an itinerary date.
const DateLayout = "2006-01-02"

// ParseDate parses a "2006-01-02" string into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("itinerary.ParseDate: %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar day of t (in t's own location) as "2006-01-02".
func FormatDate(t time.Time) string {
	return calendarDay(t).Format(DateLayout)
}

// calendarDay drops the clock and location from t, keeping the wall-clock
// year/month/day. Stepping over UTC days never meets a DST transition.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange returns every calendar day from start to end inclusive.
// It returns an empty, non-nil slice when start falls after end.
func DateRange(start, end time.Time) []string {
	first, last := calendarDay(start), calendarDay(end)
	if first.After(last) {
		return []string{}
	}

	days := int(last.Sub(first)/(24*time.Hour)) + 1
	out := make([]string, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

// GenerateDateRange is DateRange over "2006-01-02" strings.
func GenerateDateRange(start, end string) ([]string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	return DateRange(s, e), nil
}
