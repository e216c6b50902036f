// ABOUTME: Consultation endpoints of the clinic API
// ABOUTME: Filtered listing, lifecycle updates, payment, and total calculation

package client

import (
	"context"
	"net/http"
)

const consultsURI = "/v1/consults"

// Consult represents a patient consultation
type Consult struct {
	ID            string  `json:"id"`
	Patient       Patient `json:"patient"`
	IsInternado   bool    `json:"isInternado"`
	IsPaid        bool    `json:"isPaid"`
	CostoConsulta float64 `json:"costoConsulta"`
	CostoTotal    float64 `json:"costoTotal"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updateAt"`
}

// ConsultFilter narrows the consult listing. Nil fields are omitted from
// the query string entirely.
type ConsultFilter struct {
	PatientID         *string
	PatientDPI        *string
	PatientFirstnames *string
	PatientLastnames  *string
	EmployeeID        *string
	EmployeeFirstName *string
	EmployeeLastName  *string
	ConsultID         *string
	IsPaid            *bool
	IsInternado       *bool
}

// query serializes the filter, skipping absent fields
func (f ConsultFilter) query() *Query {
	return NewQuery().
		String("patientId", f.PatientID).
		String("patientDpi", f.PatientDPI).
		String("patientFirstnames", f.PatientFirstnames).
		String("patientLastnames", f.PatientLastnames).
		String("employeeId", f.EmployeeID).
		String("employeeFirstName", f.EmployeeFirstName).
		String("employeeLastName", f.EmployeeLastName).
		String("consultId", f.ConsultID).
		Bool("isPaid", f.IsPaid).
		Bool("isInternado", f.IsInternado)
}

// CreateConsultPayload is the request body for opening a consult
type CreateConsultPayload struct {
	PatientID     string  `json:"patientId"`
	CostoConsulta float64 `json:"costoConsulta"`
	EmployeeID    string  `json:"employeeId"`
}

// UpdateConsultPayload is the request body for editing a consult.
// Nil fields are sent as null and left unchanged by the backend.
type UpdateConsultPayload struct {
	IsInternado   *bool    `json:"isInternado"`
	CostoConsulta *float64 `json:"costoConsulta"`
}

// ConsultTotal is the running cost of a consult including surgeries and
// medicine sales billed to it
type ConsultTotal struct {
	ConsultID string  `json:"consultId"`
	TotalCost float64 `json:"totalCost"`
}

// ListConsults returns consults matching the filter
func (c *Client) ListConsults(ctx context.Context, filter ConsultFilter) ([]Consult, error) {
	var consults []Consult
	if err := c.do(ctx, http.MethodGet, consultsURI+"/all", filter.query(), nil, &consults); err != nil {
		return nil, err
	}
	return consults, nil
}

// GetConsult returns one consult by id
func (c *Client) GetConsult(ctx context.Context, id string) (*Consult, error) {
	var consult Consult
	if err := c.do(ctx, http.MethodGet, consultsURI+"/"+id, nil, nil, &consult); err != nil {
		return nil, err
	}
	return &consult, nil
}

// CreateConsult opens a new consult for a patient
func (c *Client) CreateConsult(ctx context.Context, payload CreateConsultPayload) (*Consult, error) {
	var consult Consult
	if err := c.do(ctx, http.MethodPost, consultsURI+"/create", nil, payload, &consult); err != nil {
		return nil, err
	}
	return &consult, nil
}

// UpdateConsult edits an existing consult
func (c *Client) UpdateConsult(ctx context.Context, id string, payload UpdateConsultPayload) (*Consult, error) {
	var consult Consult
	if err := c.do(ctx, http.MethodPatch, consultsURI+"/"+id, nil, payload, &consult); err != nil {
		return nil, err
	}
	return &consult, nil
}

// PayConsult settles a consult and returns the final total
func (c *Client) PayConsult(ctx context.Context, id string) (*ConsultTotal, error) {
	var total ConsultTotal
	if err := c.do(ctx, http.MethodPatch, consultsURI+"/pay/"+id, nil, nil, &total); err != nil {
		return nil, err
	}
	return &total, nil
}

// ConsultTotal calculates the running total of an open consult
func (c *Client) ConsultTotal(ctx context.Context, id string) (*ConsultTotal, error) {
	var total ConsultTotal
	if err := c.do(ctx, http.MethodGet, consultsURI+"/total/"+id, nil, nil, &total); err != nil {
		return nil, err
	}
	return &total, nil
}
