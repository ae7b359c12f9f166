package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cori-saude/cori-web/internal/agenda"
	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/auth"
)

const wireTimestamp = "2006-01-02T15:04:05"

// NewSessionForm renders the scheduling form, prefilled from an agenda slot
// tap (?date=...&hour=...).
func (h *Handler) NewSessionForm(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	patients, err := client.ListPatients(r.Context(), api.PatientActive)
	if err != nil {
		h.upstreamError(w, r, err, "/agenda")
		return
	}

	day := h.parseAnchor(r)
	hour := 0
	if parsed, err := strconv.Atoi(r.URL.Query().Get("hour")); err == nil {
		hour = parsed
	}
	intent := agenda.SlotIntent(day, hour)

	data := h.withFlash(r, map[string]any{
		"Title":        "Nova sessão",
		"Practitioner": sess.PractitionerName,
		"Patients":     patients,
		"Date":         agenda.DateKey(intent.Date),
		"StartTime":    fmt.Sprintf("%02d:00", intent.Hour),
		"EndTime":      fmt.Sprintf("%02d:00", intent.Hour+1),
	})
	h.render(w, r, "session_new.html", data)
}

// CreateSession schedules a session from the form.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/sessions/new", map[string]string{"error": "formulário inválido"})
		return
	}

	patientID, err := strconv.ParseInt(r.FormValue("patient_id"), 10, 64)
	if err != nil || patientID <= 0 {
		h.redirect(w, r, "/sessions/new", map[string]string{"error": "selecione um paciente"})
		return
	}

	day := strings.TrimSpace(r.FormValue("date"))
	startsAt, err := combine(day, r.FormValue("start_time"))
	if err != nil {
		h.redirect(w, r, "/sessions/new", map[string]string{"error": "horário de início inválido"})
		return
	}
	endsAt, err := combine(day, r.FormValue("end_time"))
	if err != nil {
		h.redirect(w, r, "/sessions/new", map[string]string{"error": "horário de término inválido"})
		return
	}
	if !endsAt.After(startsAt) {
		h.redirect(w, r, "/sessions/new", map[string]string{"error": "término deve ser após o início"})
		return
	}

	_, err = client.CreateSession(r.Context(), api.CreateSessionRequest{
		PatientID: patientID,
		StartsAt:  startsAt.Format(wireTimestamp),
		EndsAt:    endsAt.Format(wireTimestamp),
	})
	if err != nil {
		h.upstreamError(w, r, err, "/sessions/new")
		return
	}
	h.redirect(w, r, "/agenda", map[string]string{"date": day, "status": "sessão agendada"})
}

// UpdateSessionState requests a state transition from the detail panel. The
// server owns transition legality; a rejection surfaces as a flash error.
func (h *Handler) UpdateSessionState(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/agenda", map[string]string{"error": "sessão inválida"})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/agenda", map[string]string{"error": "formulário inválido"})
		return
	}

	state := api.SessionState(r.FormValue("state"))
	back := r.FormValue("back")
	if back == "" {
		back = "/agenda"
	}

	if _, err := client.UpdateSessionState(r.Context(), id, state); err != nil {
		h.upstreamError(w, r, err, back)
		return
	}
	h.redirect(w, r, back, map[string]string{"status": "estado atualizado"})
}

// ShareSession renders the confirmation message the practitioner copies into
// a chat with the patient.
func (h *Handler) ShareSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/agenda", map[string]string{"error": "sessão inválida"})
		return
	}

	session, err := client.GetSession(r.Context(), id)
	if err != nil {
		h.upstreamError(w, r, err, "/agenda")
		return
	}

	start, end := sessionTimes(session)
	data := h.withFlash(r, map[string]any{
		"Title":        "Compartilhar sessão",
		"Practitioner": sess.PractitionerName,
		"Session":      session,
		"Start":        start,
		"End":          end,
		"Message":      shareMessage(session, start),
	})
	h.render(w, r, "share.html", data)
}

// shareMessage builds the text sent to the patient. The confirmation link only
// appears when the server issued a token for this session.
func shareMessage(s *api.Session, start string) string {
	name := "paciente"
	if s.Patient != nil && s.Patient.FullName != "" {
		name = s.Patient.FullName
	}
	msg := fmt.Sprintf("Olá, %s! Sua sessão está agendada para %s.", name, start)
	if s.ConfirmationToken != "" {
		msg += fmt.Sprintf(" Confirme sua presença: https://cori.app/confirmar/%s", s.ConfirmationToken)
	}
	return msg
}

func combine(day, clock string) (time.Time, error) {
	return time.Parse(wireTimestamp, fmt.Sprintf("%sT%s:00", day, strings.TrimSpace(clock)))
}
