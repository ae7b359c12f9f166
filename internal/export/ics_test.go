package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cori-saude/cori-web/internal/agenda"
	"github.com/cori-saude/cori-web/internal/api"
)

func sessionEvent(t *testing.T, id int64, start, end string) agenda.Event {
	t.Helper()
	data, _ := json.Marshal(map[string]any{
		"id": id, "paciente_id": int64(7),
		"data_hora_inicio": start, "data_hora_fim": end,
		"estado": "confirmada",
	})
	events, drops := agenda.Normalize([]api.AgendaEvent{{
		Type: "sessao", Timestamp: start, Data: data,
		Patient: &api.PatientRef{ID: 7, FullName: "João Pereira"},
	}})
	if len(drops) != 0 || len(events) != 1 {
		t.Fatalf("fixture did not normalize: %d events, %d drops", len(events), len(drops))
	}
	return events[0]
}

func taskEvent(t *testing.T, id int64, due string) agenda.Event {
	t.Helper()
	data, _ := json.Marshal(map[string]any{
		"id": id, "paciente_id": int64(7),
		"titulo": "Diário", "data_vencimento": due, "status": "pendente",
	})
	events, _ := agenda.Normalize([]api.AgendaEvent{{Type: "tarefa", Timestamp: due, Data: data}})
	return events[0]
}

func TestCalendarExportsSessionsOnly(t *testing.T) {
	events := []agenda.Event{
		sessionEvent(t, 9, "2024-03-13T14:00:00", "2024-03-13T15:00:00"),
		taskEvent(t, 2, "2024-03-13T09:00:00"),
	}

	out := Calendar(events)

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("export has %d VEVENTs, want 1 (sessions only)", got)
	}
	if !strings.Contains(out, "sessao-9@cori.app") {
		t.Error("export missing the session UID")
	}
	if !strings.Contains(out, "Sessão: João Pereira") {
		t.Error("export missing the patient summary")
	}
}

func TestCalendarEmptyStillSerializes(t *testing.T) {
	out := Calendar(nil)
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("empty export is not a calendar: %q", out)
	}
}
