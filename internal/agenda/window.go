package agenda

import (
	"fmt"
	"time"
)

// Mode selects the calendar view.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// ParseMode maps a query-string value onto a Mode, defaulting to day view.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeWeek:
		return ModeWeek
	case ModeMonth:
		return ModeMonth
	default:
		return ModeDay
	}
}

// Window is the inclusive date range fetched from the server for one view.
// Start and End are midnight-truncated dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(dateKeyLayout), w.End.Format(dateKeyLayout))
}

const dateKeyLayout = "2006-01-02"

// DateKey renders the calendar-day bucket key for a timestamp.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// DateOf truncates a timestamp to its calendar date, keeping the location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekStart returns the Sunday on or before the given date. The week begins
// on Sunday throughout the app.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Resolve computes the fetch window for a view mode anchored on a date.
// It is deterministic and never produces Start > End.
func Resolve(mode Mode, anchor time.Time) Window {
	d := DateOf(anchor)
	switch mode {
	case ModeWeek:
		ws := WeekStart(d)
		return Window{Start: ws, End: ws.AddDate(0, 0, 6)}
	case ModeMonth:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		last := first.AddDate(0, 1, -1)
		return Window{Start: first, End: last}
	default:
		return Window{Start: d, End: d}
	}
}

// MonthWindow returns the window for the month enclosing the anchor,
// regardless of mode. Used to precompute month-view dot indicators.
func MonthWindow(anchor time.Time) Window {
	return Resolve(ModeMonth, anchor)
}
