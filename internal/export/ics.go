// Package export renders agenda events as an iCalendar feed, so a
// practitioner can mirror their schedule into a regular calendar app.
package export

import (
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/cori-saude/cori-web/internal/agenda"
)

// Calendar serializes the given events as an iCalendar document. Only
// sessions become VEVENTs; tasks and check-ins are point records with no
// duration and stay out of the export.
func Calendar(events []agenda.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Cori//Cori Web//PT")

	for _, ev := range events {
		if ev.Kind != agenda.KindSession || ev.Session == nil {
			continue
		}
		s := ev.Session

		vevent := cal.AddEvent(fmt.Sprintf("sessao-%d@cori.app", s.ID))
		vevent.SetStartAt(ev.Timestamp)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(summary(ev))
		vevent.SetDescription(fmt.Sprintf("Estado: %s", s.State))
	}

	return cal.Serialize()
}

func summary(ev agenda.Event) string {
	if name := ev.PatientName(); name != "" {
		return "Sessão: " + name
	}
	return "Sessão"
}
