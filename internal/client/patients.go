// ABOUTME: Patient registry endpoints of the clinic API
// ABOUTME: Lookup by id or DPI plus create and update

package client

import (
	"context"
	"net/http"
)

const patientsURI = "/v1/patients"

// Patient represents a registered patient
type Patient struct {
	ID         string `json:"id"`
	Firstnames string `json:"firstnames"`
	Lastnames  string `json:"lastnames"`
	DPI        string `json:"dpi"`
}

// CreatePatientPayload is the request body for registering a patient
type CreatePatientPayload struct {
	Firstnames string `json:"firstnames"`
	Lastnames  string `json:"lastnames"`
	DPI        string `json:"dpi"`
}

// UpdatePatientPayload is the request body for editing a patient.
// Nil fields are sent as null and left unchanged by the backend.
type UpdatePatientPayload struct {
	Firstnames *string `json:"firstnames"`
	Lastnames  *string `json:"lastnames"`
	DPI        *string `json:"dpi"`
}

// ListPatients returns all registered patients
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if err := c.do(ctx, http.MethodGet, patientsURI+"/all", nil, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient returns one patient by id
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodGet, patientsURI+"/id/"+id, nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetPatientByDPI returns one patient by national id number
func (c *Client) GetPatientByDPI(ctx context.Context, dpi string) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodGet, patientsURI+"/dpi/"+dpi, nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreatePatient registers a new patient
func (c *Client) CreatePatient(ctx context.Context, payload CreatePatientPayload) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodPost, patientsURI+"/create", nil, payload, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdatePatient edits an existing patient
func (c *Client) UpdatePatient(ctx context.Context, id string, payload UpdatePatientPayload) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodPatch, patientsURI+"/"+id, nil, payload, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}
