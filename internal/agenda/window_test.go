package agenda

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "day mode returns the anchor on both ends",
			mode:      ModeDay,
			anchor:    date(2024, time.March, 13),
			wantStart: date(2024, time.March, 13),
			wantEnd:   date(2024, time.March, 13),
		},
		{
			name:      "day mode truncates the anchor's time of day",
			mode:      ModeDay,
			anchor:    time.Date(2024, time.March, 13, 17, 45, 12, 0, time.UTC),
			wantStart: date(2024, time.March, 13),
			wantEnd:   date(2024, time.March, 13),
		},
		{
			name:      "week mode snaps to the enclosing Sunday-start week",
			mode:      ModeWeek,
			anchor:    date(2024, time.March, 13), // Wednesday
			wantStart: date(2024, time.March, 10), // Sunday
			wantEnd:   date(2024, time.March, 16), // Saturday
		},
		{
			name:      "week mode anchored on Sunday starts there",
			mode:      ModeWeek,
			anchor:    date(2024, time.March, 10),
			wantStart: date(2024, time.March, 10),
			wantEnd:   date(2024, time.March, 16),
		},
		{
			name:      "month mode covers the whole month",
			mode:      ModeMonth,
			anchor:    date(2024, time.March, 13),
			wantStart: date(2024, time.March, 1),
			wantEnd:   date(2024, time.March, 31),
		},
		{
			name:      "month mode handles leap February",
			mode:      ModeMonth,
			anchor:    date(2024, time.February, 15),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
		},
		{
			name:      "month mode handles non-leap February",
			mode:      ModeMonth,
			anchor:    date(2023, time.February, 15),
			wantStart: date(2023, time.February, 1),
			wantEnd:   date(2023, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Resolve(tt.mode, tt.anchor)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("Resolve() start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("Resolve() end = %v, want %v", w.End, tt.wantEnd)
			}
			if w.Start.After(w.End) {
				t.Errorf("Resolve() start %v after end %v", w.Start, w.End)
			}
		})
	}
}

func TestResolveStartNeverAfterEnd(t *testing.T) {
	// Sweep a year of anchors across all modes.
	anchor := date(2024, time.January, 1)
	for day := 0; day < 366; day++ {
		d := anchor.AddDate(0, 0, day)
		for _, mode := range []Mode{ModeDay, ModeWeek, ModeMonth} {
			w := Resolve(mode, d)
			if w.Start.After(w.End) {
				t.Fatalf("Resolve(%s, %s): start %v after end %v", mode, d, w.Start, w.End)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"day", ModeDay},
		{"week", ModeWeek},
		{"month", ModeMonth},
		{"", ModeDay},
		{"bogus", ModeDay},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Resolve(ModeWeek, date(2024, time.March, 13))
	if !w.Contains(time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC)) {
		t.Error("Contains() should include the first day regardless of time")
	}
	if !w.Contains(date(2024, time.March, 16)) {
		t.Error("Contains() should include the last day")
	}
	if w.Contains(date(2024, time.March, 17)) {
		t.Error("Contains() should exclude the day after the window")
	}
}

func TestWeekStartIsAlwaysSunday(t *testing.T) {
	for day := 0; day < 14; day++ {
		d := date(2024, time.March, 1).AddDate(0, 0, day)
		ws := WeekStart(d)
		if ws.Weekday() != time.Sunday {
			t.Errorf("WeekStart(%s) = %s (%s), want a Sunday", d, ws, ws.Weekday())
		}
		if ws.After(d) {
			t.Errorf("WeekStart(%s) = %s is after the input", d, ws)
		}
	}
}
