package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PendingInvoices lists open invoices across all patients.
func (c *Client) PendingInvoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	if err := c.get(ctx, "/faturas/pendentes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatientInvoices lists a patient's invoices, newest reference month first.
func (c *Client) PatientInvoices(ctx context.Context, patientID int64) ([]Invoice, error) {
	q := url.Values{"paciente_id": {strconv.FormatInt(patientID, 10)}}
	var out []Invoice
	if err := c.get(ctx, "/faturas/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type generateInvoiceRequest struct {
	PatientID      int64 `json:"paciente_id"`
	ReferenceMonth int   `json:"mes_referencia"`
	ReferenceYear  int   `json:"ano_referencia"`
}

// GenerateInvoice rolls a patient's unbilled completed sessions for the
// reference month into a new invoice.
func (c *Client) GenerateInvoice(ctx context.Context, patientID int64, month, year int) (*Invoice, error) {
	var out Invoice
	req := generateInvoiceRequest{PatientID: patientID, ReferenceMonth: month, ReferenceYear: year}
	if err := c.post(ctx, "/faturas/gerar", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkInvoicePaid settles an invoice.
func (c *Client) MarkInvoicePaid(ctx context.Context, id int64) (*Invoice, error) {
	var out Invoice
	if err := c.patch(ctx, fmt.Sprintf("/faturas/%d/pagar", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
