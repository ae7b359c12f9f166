package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cori-saude/cori-web/internal/agenda"
	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/auth"
)

// Patients lists the practitioner's patients, optionally filtered by status.
func (h *Handler) Patients(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	status := r.URL.Query().Get("status")
	patients, err := client.ListPatients(r.Context(), status)
	if err != nil {
		h.upstreamError(w, r, err, "/patients")
		return
	}

	data := h.withFlash(r, map[string]any{
		"Title":        "Pacientes",
		"Practitioner": sess.PractitionerName,
		"Patients":     patients,
		"Status":       status,
	})
	h.render(w, r, "patients.html", data)
}

// ViewPatient shows one patient's profile with tasks, check-ins, and invoices.
func (h *Handler) ViewPatient(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/patients", map[string]string{"error": "paciente inválido"})
		return
	}

	patient, err := client.GetPatient(r.Context(), id)
	if err != nil {
		h.upstreamError(w, r, err, "/patients")
		return
	}

	// The side lists are best-effort: the profile still renders if one of
	// them fails.
	tasks, _ := client.PatientTasks(r.Context(), id)
	checkins, _ := client.PatientCheckins(r.Context(), id)
	invoices, _ := client.PatientInvoices(r.Context(), id)

	data := h.withFlash(r, map[string]any{
		"Title":        patient.FullName,
		"Practitioner": sess.PractitionerName,
		"Patient":      patient,
		"Tasks":        tasks,
		"Checkins":     checkins,
		"Invoices":     invoices,
	})
	h.render(w, r, "patient.html", data)
}

// CreatePatient registers a new patient from the form.
func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/patients", map[string]string{"error": "formulário inválido"})
		return
	}
	name := strings.TrimSpace(r.FormValue("full_name"))
	if name == "" {
		h.redirect(w, r, "/patients", map[string]string{"error": "nome é obrigatório"})
		return
	}

	req := patientRequest(r, name)
	patient, err := client.CreatePatient(r.Context(), req)
	if err != nil {
		h.upstreamError(w, r, err, "/patients")
		return
	}
	h.redirect(w, r, "/patients/"+strconv.FormatInt(patient.ID, 10), map[string]string{"status": "paciente criado"})
}

// CreateTask assigns a task to the patient from their profile page.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/patients", map[string]string{"error": "paciente inválido"})
		return
	}
	back := "/patients/" + strconv.FormatInt(id, 10)

	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, back, map[string]string{"error": "formulário inválido"})
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		h.redirect(w, r, back, map[string]string{"error": "título é obrigatório"})
		return
	}

	due := strings.TrimSpace(r.FormValue("due_at"))
	if due != "" {
		if _, ok := agenda.ParseTimestamp(due); !ok {
			h.redirect(w, r, back, map[string]string{"error": "data de vencimento inválida"})
			return
		}
	}

	_, err = client.CreateTask(r.Context(), buildTaskRequest(id, title, r.FormValue("description"), due))
	if err != nil {
		h.upstreamError(w, r, err, back)
		return
	}
	h.redirect(w, r, back, map[string]string{"status": "tarefa criada"})
}

// CreateCheckin records a mood check-in on the patient's behalf.
func (h *Handler) CreateCheckin(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/patients", map[string]string{"error": "paciente inválido"})
		return
	}
	back := "/patients/" + strconv.FormatInt(id, 10)

	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, back, map[string]string{"error": "formulário inválido"})
		return
	}
	mood, err1 := strconv.Atoi(r.FormValue("mood_level"))
	anxiety, err2 := strconv.Atoi(r.FormValue("anxiety_level"))
	if err1 != nil || err2 != nil || mood < 1 || mood > 5 || anxiety < 1 || anxiety > 10 {
		h.redirect(w, r, back, map[string]string{"error": "humor (1-5) e ansiedade (1-10) são obrigatórios"})
		return
	}

	_, err = client.CreateCheckin(r.Context(), buildCheckinRequest(id, mood, anxiety, r.FormValue("note")))
	if err != nil {
		h.upstreamError(w, r, err, back)
		return
	}
	h.redirect(w, r, back, map[string]string{"status": "check-in registrado"})
}

func patientRequest(r *http.Request, name string) api.CreatePatientRequest {
	req := api.CreatePatientRequest{
		FullName:        name,
		Email:           strings.TrimSpace(r.FormValue("email")),
		ClinicalSummary: strings.TrimSpace(r.FormValue("clinical_summary")),
	}
	if age, err := strconv.Atoi(r.FormValue("age")); err == nil && age > 0 {
		req.Age = &age
	}
	if price := strings.TrimSpace(r.FormValue("session_price")); price != "" {
		req.SessionPrice = &price
	}
	if day, err := strconv.Atoi(r.FormValue("billing_due_day")); err == nil && day >= 1 && day <= 31 {
		req.BillingDueDay = &day
	}
	return req
}

func buildTaskRequest(patientID int64, title, description, due string) api.CreateTaskRequest {
	return api.CreateTaskRequest{
		PatientID:   patientID,
		Title:       title,
		Description: strings.TrimSpace(description),
		DueAt:       due,
	}
}

func buildCheckinRequest(patientID int64, mood, anxiety int, note string) api.CreateCheckinRequest {
	return api.CreateCheckinRequest{
		PatientID:    patientID,
		MoodLevel:    mood,
		AnxietyLevel: anxiety,
		Note:         strings.TrimSpace(note),
	}
}
