package api

import "encoding/json"

// PatientStatus values as returned by the practice API.
const (
	PatientPendingApproval = "pendente_aprovacao"
	PatientActive          = "ativo"
	PatientInactive        = "inativo"
	PatientDischarged      = "alta"
	PatientPaused          = "pausado"
)

// Patient is the practice API's paciente resource, reduced to the fields the
// web UI consumes.
type Patient struct {
	ID              int64   `json:"id"`
	FullName        string  `json:"nome_completo"`
	PhotoURL        *string `json:"foto_perfil_url"`
	Status          string  `json:"status"`
	Age             *int    `json:"idade,omitempty"`
	ClinicalSummary *string `json:"descricao_clinica,omitempty"`
	SessionPrice    *string `json:"valor_sessao,omitempty"`
	BillingDueDay   *int    `json:"dia_vencimento_pagamento,omitempty"`
}

// PatientRef is the mini-profile the agenda endpoint attaches to every event
// so the client can render without extra lookups.
type PatientRef struct {
	ID       int64   `json:"id"`
	FullName string  `json:"nome_completo"`
	PhotoURL *string `json:"foto_perfil_url"`
}

// SessionState is the finite set of session states. Transitions are requested
// from and validated by the server; the client never enforces them.
type SessionState string

const (
	SessionScheduled          SessionState = "agendada"
	SessionConfirmed          SessionState = "confirmada"
	SessionCompleted          SessionState = "realizada"
	SessionNoShowBilled       SessionState = "falta_cobrada"
	SessionCancelledByPatient SessionState = "cancelada_paciente"
	SessionRescheduled        SessionState = "remarcada"
)

// Session is a scheduled therapy appointment. Timestamps stay as the raw
// strings the server sent; parsing and validation happen at the agenda
// normalization boundary.
type Session struct {
	ID                int64        `json:"id"`
	PatientID         int64        `json:"paciente_id"`
	StartsAt          string       `json:"data_hora_inicio"`
	EndsAt            string       `json:"data_hora_fim"`
	State             SessionState `json:"estado"`
	AmountCharged     *float64     `json:"valor_cobrado,omitempty"`
	InvoiceID         *int64       `json:"fatura_id,omitempty"`
	Billed            bool         `json:"ja_faturada,omitempty"`
	ConfirmationToken string       `json:"token_confirmacao,omitempty"`
	Patient           *PatientRef  `json:"paciente,omitempty"`
}

// TaskStatus values for patient homework items.
const (
	TaskPending   = "pendente"
	TaskCompleted = "concluida"
	TaskNotDone   = "nao_realizada"
)

// Task is an assigned homework/action item for a patient.
type Task struct {
	ID          int64       `json:"id"`
	PatientID   int64       `json:"paciente_id"`
	Title       string      `json:"titulo"`
	Description string      `json:"descricao,omitempty"`
	DueAt       string      `json:"data_vencimento,omitempty"`
	Status      string      `json:"status"`
	Patient     *PatientRef `json:"paciente,omitempty"`
}

// Checkin is a self-reported mood/anxiety log entry from a patient.
// MoodLevel is a 1-5 ordinal, AnxietyLevel 1-10.
type Checkin struct {
	ID           int64       `json:"id"`
	PatientID    int64       `json:"paciente_id"`
	RecordedAt   string      `json:"data_registro"`
	MoodLevel    int         `json:"nivel_humor"`
	AnxietyLevel int         `json:"nivel_ansiedade"`
	Note         string      `json:"anotacao_paciente,omitempty"`
	Patient      *PatientRef `json:"paciente,omitempty"`
}

// AgendaEvent is one heterogeneous record from GET /agenda/geral. The payload
// shape is selected by Type; Data stays raw until normalization.
type AgendaEvent struct {
	Type      string          `json:"tipo_evento"`
	Timestamp string          `json:"data_hora"`
	Patient   *PatientRef     `json:"paciente,omitempty"`
	Data      json.RawMessage `json:"dados_especificos"`
}

// AgendaResponse is the envelope of GET /agenda/geral.
type AgendaResponse struct {
	Start       string        `json:"data_inicio"`
	End         string        `json:"data_fim"`
	TotalEvents int           `json:"total_eventos"`
	Events      []AgendaEvent `json:"eventos"`
}

// InvoiceState values for billing invoices.
const (
	InvoicePending   = "pendente"
	InvoicePaid      = "paga"
	InvoiceOverdue   = "atrasada"
	InvoiceCancelled = "cancelada"
)

// Invoice is a monthly billing invoice for a patient.
type Invoice struct {
	ID             int64       `json:"id"`
	PatientID      int64       `json:"paciente_id"`
	ReferenceMonth int         `json:"mes_referencia"`
	ReferenceYear  int         `json:"ano_referencia"`
	Total          float64     `json:"valor_total"`
	State          string      `json:"estado"`
	DueAt          string      `json:"data_vencimento"`
	PaidAt         *string     `json:"data_pagamento,omitempty"`
	SessionCount   int         `json:"total_sessoes"`
	Patient        *PatientRef `json:"paciente,omitempty"`
}

// Practitioner is the authenticated psychologist profile.
type Practitioner struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"nome_exibicao"`
	PhotoURL    *string `json:"foto_perfil_url"`
	PublicSlug  *string `json:"slug_link_publico"`
}

// LoginResponse is the payload of POST /auth/login.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	Practitioner Practitioner `json:"psicologo"`
}
