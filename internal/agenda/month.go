package agenda

import (
	"sort"
	"time"
)

// Indicators buckets events into calendar-day keys and exposes the distinct
// set of kinds present per day, in canonical order. The month view renders
// these as up to three colored dots; it never needs counts or hour-of-day
// positions.
func Indicators(events []Event) map[string][]Kind {
	present := make(map[string]map[Kind]bool)
	for _, ev := range events {
		key := DateKey(ev.Timestamp)
		if present[key] == nil {
			present[key] = make(map[Kind]bool)
		}
		present[key][ev.Kind] = true
	}

	out := make(map[string][]Kind, len(present))
	for key, kinds := range present {
		for _, k := range Kinds {
			if kinds[k] {
				out[key] = append(out[key], k)
			}
		}
	}
	return out
}

// MonthCell is one cell of the month grid. Cells outside the anchor month
// pad the first and last week rows.
type MonthCell struct {
	Day     time.Time
	InMonth bool
	Kinds   []Kind
}

// MonthGrid builds week rows covering the anchor's month, padded to full
// Sunday-start weeks, with per-day kind indicators attached.
func MonthGrid(anchor time.Time, indicators map[string][]Kind) [][]MonthCell {
	window := Resolve(ModeMonth, anchor)
	gridStart := WeekStart(window.Start)
	gridEnd := WeekStart(window.End).AddDate(0, 0, 6)

	var rows [][]MonthCell
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 7) {
		row := make([]MonthCell, 7)
		for i := range row {
			d := day.AddDate(0, 0, i)
			row[i] = MonthCell{
				Day:     d,
				InMonth: d.Month() == window.Start.Month() && d.Year() == window.Start.Year(),
				Kinds:   indicators[DateKey(d)],
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// EventsOn lists the events of one calendar day, ascending by timestamp.
// Used by the event list under the month grid.
func EventsOn(events []Event, day time.Time) []Event {
	var out []Event
	for _, ev := range events {
		if SameDay(ev.Timestamp, day) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// RecentFirst returns a copy sorted descending by timestamp, for
// recent-activity lists.
func RecentFirst(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
