package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cori-saude/cori-web/internal/auth"
)

// Billing lists pending invoices across all patients.
func (h *Handler) Billing(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	invoices, err := client.PendingInvoices(r.Context())
	if err != nil {
		h.upstreamError(w, r, err, "/billing")
		return
	}

	now := time.Now()
	data := h.withFlash(r, map[string]any{
		"Title":        "Cobrança",
		"Practitioner": sess.PractitionerName,
		"Invoices":     invoices,
		"Month":        int(now.Month()),
		"Year":         now.Year(),
	})
	h.render(w, r, "billing.html", data)
}

// GenerateInvoice rolls a patient's unbilled sessions into a new invoice for
// the selected reference month.
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	patientID, err := pathID(r, "patientID")
	if err != nil {
		h.redirect(w, r, "/billing", map[string]string{"error": "paciente inválido"})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/billing", map[string]string{"error": "formulário inválido"})
		return
	}

	month, err1 := strconv.Atoi(r.FormValue("month"))
	year, err2 := strconv.Atoi(r.FormValue("year"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 || year < 2000 {
		h.redirect(w, r, "/billing", map[string]string{"error": "mês de referência inválido"})
		return
	}

	if _, err := client.GenerateInvoice(r.Context(), patientID, month, year); err != nil {
		h.upstreamError(w, r, err, "/billing")
		return
	}
	h.redirect(w, r, "/billing", map[string]string{"status": "fatura gerada"})
}

// MarkInvoicePaid settles an invoice.
func (h *Handler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	id, err := pathID(r, "id")
	if err != nil {
		h.redirect(w, r, "/billing", map[string]string{"error": "fatura inválida"})
		return
	}

	if _, err := client.MarkInvoicePaid(r.Context(), id); err != nil {
		h.upstreamError(w, r, err, "/billing")
		return
	}
	h.redirect(w, r, "/billing", map[string]string{"status": "fatura quitada"})
}
