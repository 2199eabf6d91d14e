package races

import "time"

// Window is one race period's wall-clock boundaries.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CurrentMonthly derives the live monthly race window from the wall clock.
// The window is the calendar month in UTC, ending at the last instant of the
// last day. Windows are always derived from the clock, never from stored race
// status, so a delayed transition job can not break reads.
func CurrentMonthly(now time.Time) Window {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Window{Start: start, End: end}
}

// PreviousMonthly derives the previous month's race window.
func PreviousMonthly(now time.Time) Window {
	current := CurrentMonthly(now)
	start := current.Start.AddDate(0, -1, 0)
	end := current.Start.Add(-time.Second)
	return Window{Start: start, End: end}
}

// NextMonthly derives the upcoming month's race window.
func NextMonthly(now time.Time) Window {
	current := CurrentMonthly(now)
	start := current.Start.AddDate(0, 1, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Window{Start: start, End: end}
}

// IsLastDayOfMonth reports whether the instant falls on the final calendar
// day of its month, used by the scheduler to gate the transition job.
func IsLastDayOfMonth(now time.Time) bool {
	now = now.UTC()
	return now.AddDate(0, 0, 1).Month() != now.Month()
}
