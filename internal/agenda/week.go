package agenda

import "time"

// DayColumn is one weekday column of the week grid.
type DayColumn struct {
	Day    time.Time
	Blocks []Block
}

// WeekPolicy controls what the week grid shows. The mobile app only draws
// sessions in week mode, an information-density choice the product has not
// revisited; the flag keeps it adjustable instead of hard-coded.
type WeekPolicy struct {
	IncludeInstantEvents bool
}

// LayoutWeek lays out seven day columns starting at weekStart (a Sunday),
// delegating to LayoutDay per column.
func LayoutWeek(events []Event, weekStart time.Time, grid GridConfig, policy WeekPolicy) []DayColumn {
	shown := events
	if !policy.IncludeInstantEvents {
		shown = make([]Event, 0, len(events))
		for _, ev := range events {
			if ev.Kind == KindSession {
				shown = append(shown, ev)
			}
		}
	}

	start := DateOf(weekStart)
	columns := make([]DayColumn, 7)
	for i := range columns {
		day := start.AddDate(0, 0, i)
		columns[i] = DayColumn{Day: day, Blocks: LayoutDay(shown, day, grid)}
	}
	return columns
}
