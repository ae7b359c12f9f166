// Package agenda turns the flat event list served by the practice API into
// day, week and month schedule views. It is pure: no I/O happens here except
// through the Fetcher the controller is constructed with.
package agenda

import (
	"encoding/json"
	"time"

	"github.com/cori-saude/cori-web/internal/api"
)

// Kind discriminates the event union. The values match the wire discriminator
// used by the practice API.
type Kind string

const (
	KindSession Kind = "sessao"
	KindTask    Kind = "tarefa"
	KindCheckin Kind = "checkin"
)

// Kinds lists every recognized kind in canonical display order.
var Kinds = []Kind{KindSession, KindTask, KindCheckin}

// Event is the normalized agenda event: one timestamp used for bucketing and
// sorting, plus exactly one kind-specific payload. Events are immutable once
// built; edits go through the server and trigger a re-fetch.
type Event struct {
	Kind      Kind
	Timestamp time.Time

	// End is set for sessions only (Timestamp is the session start).
	// Tasks and check-ins are instantaneous.
	End time.Time

	Session *api.Session
	Task    *api.Task
	Checkin *api.Checkin
	Patient *api.PatientRef
}

// PatientID returns the patient the event belongs to.
func (e Event) PatientID() int64 {
	switch e.Kind {
	case KindSession:
		return e.Session.PatientID
	case KindTask:
		return e.Task.PatientID
	case KindCheckin:
		return e.Checkin.PatientID
	}
	return 0
}

// PatientName returns the attached mini-profile name, if the server sent one.
func (e Event) PatientName() string {
	if e.Patient != nil {
		return e.Patient.FullName
	}
	return ""
}

// DropReason classifies records rejected during normalization.
type DropReason string

const (
	DropUnknownKind    DropReason = "unknown_kind"
	DropBadTimestamp   DropReason = "bad_timestamp"
	DropInvalidPayload DropReason = "invalid_payload"
)

// Drop records one rejected raw event.
type Drop struct {
	Index  int
	Kind   string
	Reason DropReason
}

// timestampLayouts accepted from the server. Values without a zone are kept
// as wall-clock times; no timezone conversion is applied either way.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a server timestamp, treating it as a wall-clock
// instant.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize converts raw agenda records into Events, preserving input order.
// Records with an unrecognized discriminator, an unparseable timestamp or an
// undecodable payload are dropped and reported; the view simply does not
// render them. Callers sort if they need chronological order.
func Normalize(raw []api.AgendaEvent) ([]Event, []Drop) {
	events := make([]Event, 0, len(raw))
	var drops []Drop

	reject := func(i int, kind string, reason DropReason) {
		drops = append(drops, Drop{Index: i, Kind: kind, Reason: reason})
	}

	for i, r := range raw {
		ts, ok := ParseTimestamp(r.Timestamp)
		if !ok {
			reject(i, r.Type, DropBadTimestamp)
			continue
		}

		ev := Event{Timestamp: ts, Patient: r.Patient}

		switch Kind(r.Type) {
		case KindSession:
			var s api.Session
			if err := json.Unmarshal(r.Data, &s); err != nil {
				reject(i, r.Type, DropInvalidPayload)
				continue
			}
			start, okStart := ParseTimestamp(s.StartsAt)
			end, okEnd := ParseTimestamp(s.EndsAt)
			if !okStart || !okEnd {
				reject(i, r.Type, DropBadTimestamp)
				continue
			}
			ev.Kind = KindSession
			ev.Timestamp = start
			ev.End = end
			ev.Session = &s
			if ev.Patient == nil {
				ev.Patient = s.Patient
			}

		case KindTask:
			var t api.Task
			if err := json.Unmarshal(r.Data, &t); err != nil {
				reject(i, r.Type, DropInvalidPayload)
				continue
			}
			ev.Kind = KindTask
			ev.Task = &t
			if ev.Patient == nil {
				ev.Patient = t.Patient
			}

		case KindCheckin:
			var c api.Checkin
			if err := json.Unmarshal(r.Data, &c); err != nil {
				reject(i, r.Type, DropInvalidPayload)
				continue
			}
			ev.Kind = KindCheckin
			ev.Checkin = &c
			if ev.Patient == nil {
				ev.Patient = c.Patient
			}

		default:
			reject(i, r.Type, DropUnknownKind)
			continue
		}

		events = append(events, ev)
	}

	return events, drops
}
