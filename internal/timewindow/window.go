// Package timewindow computes the civil-day boundaries a digest run covers.
package timewindow

import "time"

const dateLayout = "2006-01-02"

// Window is a half-open interval [Start, End) covering exactly one calendar
// day in a fixed timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

// Yesterday returns the window for the calendar day before now, in loc.
// now is injected so runs can be replayed deterministically.
func Yesterday(loc *time.Location, now time.Time) Window {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: today.AddDate(0, 0, -1), End: today}
}

// Day returns the window covering the calendar day of t, in loc.
func Day(loc *time.Location, t time.Time) Window {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Date returns the window's calendar date as YYYY-MM-DD.
func (w Window) Date() string {
	return w.Start.Format(dateLayout)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
