package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListPatients returns the practitioner's patients, optionally filtered by
// status ("ativo", "pausado", ...). Empty status returns everyone.
func (c *Client) ListPatients(ctx context.Context, status string) ([]Patient, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out []Patient
	if err := c.get(ctx, "/pacientes/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatient fetches one patient's full profile.
func (c *Client) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	var out Patient
	if err := c.get(ctx, fmt.Sprintf("/pacientes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePatientRequest carries the fields the new-patient form collects.
type CreatePatientRequest struct {
	FullName        string  `json:"nome_completo"`
	Email           string  `json:"email,omitempty"`
	Age             *int    `json:"idade,omitempty"`
	ClinicalSummary string  `json:"descricao_clinica,omitempty"`
	SessionPrice    *string `json:"valor_sessao,omitempty"`
	BillingDueDay   *int    `json:"dia_vencimento_pagamento,omitempty"`
}

// CreatePatient registers a new patient under the practitioner.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	var out Patient
	if err := c.post(ctx, "/pacientes/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatientTasks lists a patient's assigned tasks, most recent first.
func (c *Client) PatientTasks(ctx context.Context, patientID int64) ([]Task, error) {
	var out []Task
	if err := c.get(ctx, fmt.Sprintf("/pacientes/%d/tarefas", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatientCheckins lists a patient's mood check-ins, most recent first.
func (c *Client) PatientCheckins(ctx context.Context, patientID int64) ([]Checkin, error) {
	var out []Checkin
	if err := c.get(ctx, fmt.Sprintf("/pacientes/%d/checkins", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
