package agenda

import (
	"testing"
	"time"

	"github.com/cori-saude/cori-web/internal/api"
)

func TestIndicatorsDistinctKindsPerDay(t *testing.T) {
	raw := []api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawCheckin(2, "2024-03-13T20:30:00"),
		rawSession(3, "2024-03-13T16:00:00", "2024-03-13T17:00:00"),
		rawTask(4, "2024-03-14T09:00:00"),
	}
	events, _ := Normalize(raw)
	ind := Indicators(events)

	wed := ind["2024-03-13"]
	if len(wed) != 2 {
		t.Fatalf("2024-03-13 has %d kinds, want 2 (duplicate sessions collapse)", len(wed))
	}
	if wed[0] != KindSession || wed[1] != KindCheckin {
		t.Errorf("2024-03-13 kinds = %v, want canonical [sessao checkin]", wed)
	}
	if got := ind["2024-03-14"]; len(got) != 1 || got[0] != KindTask {
		t.Errorf("2024-03-14 kinds = %v, want [tarefa]", got)
	}
	if _, ok := ind["2024-03-15"]; ok {
		t.Error("empty day should have no indicator entry")
	}
}

func TestMonthGridShape(t *testing.T) {
	// March 2024: Mar 1 is a Friday, Mar 31 a Sunday; grid spans
	// Feb 25 (Sun) .. Apr 6 (Sat), six full weeks.
	rows := MonthGrid(date(2024, time.March, 13), nil)
	if len(rows) != 6 {
		t.Fatalf("MonthGrid() returned %d rows, want 6", len(rows))
	}
	first := rows[0][0]
	if !first.Day.Equal(date(2024, time.February, 25)) {
		t.Errorf("first cell = %v, want 2024-02-25", first.Day)
	}
	if first.InMonth {
		t.Error("leading February cell flagged as in-month")
	}
	last := rows[5][6]
	if !last.Day.Equal(date(2024, time.April, 6)) {
		t.Errorf("last cell = %v, want 2024-04-06", last.Day)
	}

	for _, row := range rows {
		if len(row) != 7 {
			t.Fatalf("row has %d cells, want 7", len(row))
		}
		if row[0].Day.Weekday() != time.Sunday {
			t.Errorf("row starts on %s, want Sunday", row[0].Day.Weekday())
		}
	}
}

func TestMonthGridAttachesIndicators(t *testing.T) {
	events, _ := Normalize([]api.AgendaEvent{
		rawSession(1, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
	})
	rows := MonthGrid(date(2024, time.March, 1), Indicators(events))

	found := false
	for _, row := range rows {
		for _, cell := range row {
			if SameDay(cell.Day, date(2024, time.March, 13)) {
				found = true
				if len(cell.Kinds) != 1 || cell.Kinds[0] != KindSession {
					t.Errorf("cell kinds = %v, want [sessao]", cell.Kinds)
				}
			} else if len(cell.Kinds) != 0 {
				t.Errorf("cell %s has kinds %v, want none", DateKey(cell.Day), cell.Kinds)
			}
		}
	}
	if !found {
		t.Fatal("grid does not contain 2024-03-13")
	}
}

func TestEventsOnSortsAscending(t *testing.T) {
	raw := []api.AgendaEvent{
		rawCheckin(1, "2024-03-13T20:30:00"),
		rawTask(2, "2024-03-13T09:00:00"),
		rawSession(3, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		rawTask(4, "2024-03-14T09:00:00"),
	}
	events, _ := Normalize(raw)
	day := EventsOn(events, date(2024, time.March, 13))
	if len(day) != 3 {
		t.Fatalf("EventsOn() returned %d events, want 3", len(day))
	}
	for i := 1; i < len(day); i++ {
		if day[i].Timestamp.Before(day[i-1].Timestamp) {
			t.Errorf("events not ascending at %d: %v after %v", i, day[i-1].Timestamp, day[i].Timestamp)
		}
	}
}

func TestRecentFirstSortsDescendingWithoutMutating(t *testing.T) {
	raw := []api.AgendaEvent{
		rawTask(1, "2024-03-13T09:00:00"),
		rawCheckin(2, "2024-03-13T20:30:00"),
	}
	events, _ := Normalize(raw)
	recent := RecentFirst(events)

	if recent[0].Kind != KindCheckin {
		t.Errorf("recent[0].Kind = %q, want checkin (latest first)", recent[0].Kind)
	}
	if events[0].Kind != KindTask {
		t.Error("RecentFirst() mutated its input")
	}
}
