// Package stats computes dashboard aggregates from in-memory snapshots.
//
// Every function is pure: it reads its arguments, never the clock or the
// store, and never modifies the slices it is given.
package stats

import (
	"fmt"
	"time"
)

// Period selects a dashboard window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod converts s to a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (want today, week or month)", s)
}

// Window is a closed interval [Start, End] with millisecond resolution.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// span returns the window from start up to the millisecond before next.
func span(start, next time.Time) Window {
	return Window{Start: start, End: next.Add(-time.Millisecond)}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is the calendar day containing now, in now's location.
func Today(now time.Time) Window {
	start := midnight(now)
	return span(start, start.AddDate(0, 0, 1))
}

// ThisWeek runs from Monday 00:00 to Sunday 23:59:59.999 of the week
// containing now, whatever the locale's first weekday.
func ThisWeek(now time.Time) Window {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	start := midnight(now).AddDate(0, 0, offset)
	return span(start, start.AddDate(0, 0, 7))
}

// ThisMonth runs from the first to the last calendar day of now's month.
func ThisMonth(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return span(start, start.AddDate(0, 1, 0))
}

// WindowFor returns the window of p around now. Unknown periods resolve to today.
func WindowFor(p Period, now time.Time) Window {
	switch p {
	case PeriodWeek:
		return ThisWeek(now)
	case PeriodMonth:
		return ThisMonth(now)
	default:
		return Today(now)
	}
}

// InRange reports whether an entity created or updated at the given
// instants counts as activity in w.
func InRange(createdAt, updatedAt time.Time, w Window) bool {
	return w.Contains(createdAt) || w.Contains(updatedAt)
}

// weekdayIndex maps t's weekday to 0=Monday..6=Sunday in loc.
func weekdayIndex(t time.Time, loc *time.Location) int {
	return (int(t.In(loc).Weekday()) + 6) % 7
}
