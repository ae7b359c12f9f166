package agenda

import (
	"testing"
	"time"

	"github.com/cori-saude/cori-web/internal/api"
)

func TestLayoutDaySessionPosition(t *testing.T) {
	grid := GridConfig{StartHour: 7, EndHour: 22, HourHeight: 72, MinBlockHeight: 48, PillHeight: 28, PillNudge: 18}
	day := date(2024, time.March, 13)

	tests := []struct {
		name       string
		start, end string
		wantTop    float64
		wantHeight float64
	}{
		{
			name:  "one hour session at 14:00",
			start: "2024-03-13T14:00:00", end: "2024-03-13T15:00:00",
			wantTop: 504, wantHeight: 72, // (14-7)*72
		},
		{
			name:  "half past offset",
			start: "2024-03-13T09:30:00", end: "2024-03-13T10:30:00",
			wantTop: 180, wantHeight: 72, // (9-7)*72 + 36
		},
		{
			name:  "ninety minute session",
			start: "2024-03-13T07:00:00", end: "2024-03-13T08:30:00",
			wantTop: 0, wantHeight: 108,
		},
		{
			name:  "degenerate zero-duration session gets the floor",
			start: "2024-03-13T14:00:00", end: "2024-03-13T14:00:00",
			wantTop: 504, wantHeight: 48,
		},
		{
			name:  "short session gets the floor",
			start: "2024-03-13T14:00:00", end: "2024-03-13T14:15:00",
			wantTop: 504, wantHeight: 48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _ := Normalize([]api.AgendaEvent{rawSession(1, tt.start, tt.end)})
			blocks := LayoutDay(events, day, grid)
			if len(blocks) != 1 {
				t.Fatalf("LayoutDay() returned %d blocks, want 1", len(blocks))
			}
			b := blocks[0]
			if b.Top != tt.wantTop {
				t.Errorf("Top = %v, want %v", b.Top, tt.wantTop)
			}
			if b.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", b.Height, tt.wantHeight)
			}
			if b.Pill {
				t.Error("session block marked as pill")
			}
		})
	}
}

func TestLayoutDayFiltersOtherDays(t *testing.T) {
	grid := DefaultGrid()
	events, _ := Normalize([]api.AgendaEvent{rawSession(1, "2024-03-14T14:00:00", "2024-03-14T15:00:00")})
	blocks := LayoutDay(events, date(2024, time.March, 13), grid)
	if len(blocks) != 0 {
		t.Fatalf("LayoutDay() returned %d blocks for another day, want 0", len(blocks))
	}
}

func TestLayoutDayOverlappingSessionsBothRender(t *testing.T) {
	// Overlap is drawn as-is: it signals a data problem, not a layout one.
	grid := DefaultGrid()
	raw := []api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawSession(2, "2024-03-13T14:30:00", "2024-03-13T15:30:00"),
	}
	events, _ := Normalize(raw)
	blocks := LayoutDay(events, date(2024, time.March, 13), grid)
	if len(blocks) != 2 {
		t.Fatalf("LayoutDay() returned %d blocks, want 2 overlapping", len(blocks))
	}
	if blocks[0].Top == blocks[1].Top {
		t.Error("overlapping sessions should keep their true, distinct offsets")
	}
}

func TestLayoutDayPillsStackWithNudge(t *testing.T) {
	grid := GridConfig{StartHour: 7, EndHour: 22, HourHeight: 72, MinBlockHeight: 48, PillHeight: 28, PillNudge: 18}
	day := date(2024, time.March, 13)

	raw := []api.AgendaEvent{rawTask(1, "2024-03-13T09:00:00"), rawCheckin(2, "2024-03-13T09:05:00")}
	events, _ := Normalize(raw)
	blocks := LayoutDay(events, day, grid)
	if len(blocks) != 2 {
		t.Fatalf("LayoutDay() returned %d blocks, want 2 pills", len(blocks))
	}
	for i, b := range blocks {
		if !b.Pill {
			t.Errorf("blocks[%d] not marked as pill", i)
		}
	}
	if blocks[1].Top <= blocks[0].Top {
		t.Errorf("second pill (top %v) should be nudged below the first (top %v)",
			blocks[1].Top, blocks[0].Top)
	}
}

func TestLayoutDayBlockIndicesAreSequential(t *testing.T) {
	grid := DefaultGrid()
	raw := []api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawTask(2, "2024-03-13T09:00:00"),
	}
	events, _ := Normalize(raw)
	blocks := LayoutDay(events, date(2024, time.March, 13), grid)
	for i, b := range blocks {
		if b.Index != i {
			t.Errorf("blocks[%d].Index = %d", i, b.Index)
		}
	}
}

func TestLayoutWeekOmitsInstantEventsByDefault(t *testing.T) {
	grid := DefaultGrid()
	raw := []api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawTask(2, "2024-03-13T09:00:00"),
	}
	events, _ := Normalize(raw)

	columns := LayoutWeek(events, WeekStart(date(2024, time.March, 13)), grid, WeekPolicy{})
	if len(columns) != 7 {
		t.Fatalf("LayoutWeek() returned %d columns, want 7", len(columns))
	}

	for _, col := range columns {
		if SameDay(col.Day, date(2024, time.March, 13)) {
			if len(col.Blocks) != 1 {
				t.Errorf("Wednesday column has %d blocks, want 1 (session only)", len(col.Blocks))
			} else if col.Blocks[0].Event.Kind != KindSession {
				t.Errorf("Wednesday block kind = %q, want session", col.Blocks[0].Event.Kind)
			}
		} else if len(col.Blocks) != 0 {
			t.Errorf("column %s has %d blocks, want 0", col.Day.Format("2006-01-02"), len(col.Blocks))
		}
	}
}

func TestLayoutWeekPolicyCanIncludeInstantEvents(t *testing.T) {
	grid := DefaultGrid()
	raw := []api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawTask(2, "2024-03-13T09:00:00"),
	}
	events, _ := Normalize(raw)

	columns := LayoutWeek(events, WeekStart(date(2024, time.March, 13)), grid,
		WeekPolicy{IncludeInstantEvents: true})
	for _, col := range columns {
		if SameDay(col.Day, date(2024, time.March, 13)) && len(col.Blocks) != 2 {
			t.Errorf("Wednesday column has %d blocks, want 2 with the policy on", len(col.Blocks))
		}
	}
}

func TestLayoutWeekColumnsStartOnSunday(t *testing.T) {
	columns := LayoutWeek(nil, WeekStart(date(2024, time.March, 13)), DefaultGrid(), WeekPolicy{})
	if got := columns[0].Day; !got.Equal(date(2024, time.March, 10)) {
		t.Errorf("first column day = %v, want 2024-03-10", got)
	}
	if got := columns[6].Day; !got.Equal(date(2024, time.March, 16)) {
		t.Errorf("last column day = %v, want 2024-03-16", got)
	}
}

func TestGridHours(t *testing.T) {
	grid := DefaultGrid()
	hours := grid.Hours()
	if len(hours) != 16 {
		t.Fatalf("Hours() returned %d entries, want 16 (7..22)", len(hours))
	}
	if hours[0] != 7 || hours[len(hours)-1] != 22 {
		t.Errorf("Hours() range = [%d..%d], want [7..22]", hours[0], hours[len(hours)-1])
	}
	if got, want := grid.Height(), 16*grid.HourHeight; got != want {
		t.Errorf("Height() = %v, want %v", got, want)
	}
}
