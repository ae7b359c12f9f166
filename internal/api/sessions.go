package api

import (
	"context"
	"fmt"
)

// CreateSessionRequest schedules a new appointment. Timestamps use the wire
// layout "2006-01-02T15:04:05".
type CreateSessionRequest struct {
	PatientID int64  `json:"paciente_id"`
	StartsAt  string `json:"data_hora_inicio"`
	EndsAt    string `json:"data_hora_fim"`
}

// CreateSession schedules an appointment. The server validates conflicts and
// returns the session in its initial "agendada" state.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var out Session
	if err := c.post(ctx, "/sessoes/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSession fetches one session with its patient mini-profile.
func (c *Client) GetSession(ctx context.Context, id int64) (*Session, error) {
	var out Session
	if err := c.get(ctx, fmt.Sprintf("/sessoes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updateStateRequest struct {
	State SessionState `json:"estado"`
}

// UpdateSessionState requests a state transition. Legality is the server's
// call; an illegal transition comes back as *Error with the rejection detail.
func (c *Client) UpdateSessionState(ctx context.Context, id int64, state SessionState) (*Session, error) {
	var out Session
	if err := c.patch(ctx, fmt.Sprintf("/sessoes/%d/estado", id), updateStateRequest{State: state}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTaskRequest assigns homework to a patient.
type CreateTaskRequest struct {
	PatientID   int64  `json:"paciente_id"`
	Title       string `json:"titulo"`
	Description string `json:"descricao,omitempty"`
	DueAt       string `json:"data_vencimento,omitempty"`
}

// CreateTask assigns a task to a patient.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var out Task
	if err := c.post(ctx, "/tarefas/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckinRequest records a mood entry on the patient's behalf.
type CreateCheckinRequest struct {
	PatientID    int64  `json:"paciente_id"`
	MoodLevel    int    `json:"nivel_humor"`
	AnxietyLevel int    `json:"nivel_ansiedade"`
	Note         string `json:"anotacao_paciente,omitempty"`
}

// CreateCheckin records a mood check-in for a patient.
func (c *Client) CreateCheckin(ctx context.Context, req CreateCheckinRequest) (*Checkin, error) {
	var out Checkin
	if err := c.post(ctx, "/checkins/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
