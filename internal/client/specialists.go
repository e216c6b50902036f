// ABOUTME: Specialist doctor registry endpoints of the clinic API
// ABOUTME: External doctors assignable to surgeries, looked up by id or DPI

package client

import (
	"context"
	"net/http"
)

const specialistsURI = "/v1/specialist-employees"

// Specialist represents an external specialist doctor. The backend keeps
// its Spanish field names on the wire.
type Specialist struct {
	ID         string `json:"id"`
	Firstnames string `json:"nombres"`
	Lastnames  string `json:"apellidos"`
	DPI        string `json:"dpi"`
}

// SpecialistPayload is the request body for registering or editing a
// specialist; the backend rejects duplicate DPIs with a 409.
type SpecialistPayload struct {
	Firstnames string `json:"nombres"`
	Lastnames  string `json:"apellidos"`
	DPI        string `json:"dpi"`
}

// ListSpecialists returns specialists, optionally filtered by a name search
func (c *Client) ListSpecialists(ctx context.Context, search *string) ([]Specialist, error) {
	var specialists []Specialist
	query := NewQuery().String("search", search)
	if err := c.do(ctx, http.MethodGet, specialistsURI+"/all", query, nil, &specialists); err != nil {
		return nil, err
	}
	return specialists, nil
}

// GetSpecialist returns one specialist by id
func (c *Client) GetSpecialist(ctx context.Context, id string) (*Specialist, error) {
	var specialist Specialist
	if err := c.do(ctx, http.MethodGet, specialistsURI+"/id/"+id, nil, nil, &specialist); err != nil {
		return nil, err
	}
	return &specialist, nil
}

// GetSpecialistByDPI returns one specialist by national id number
func (c *Client) GetSpecialistByDPI(ctx context.Context, dpi string) (*Specialist, error) {
	var specialist Specialist
	if err := c.do(ctx, http.MethodGet, specialistsURI+"/dpi/"+dpi, nil, nil, &specialist); err != nil {
		return nil, err
	}
	return &specialist, nil
}

// CreateSpecialist registers a new specialist doctor
func (c *Client) CreateSpecialist(ctx context.Context, payload SpecialistPayload) (*Specialist, error) {
	var specialist Specialist
	if err := c.do(ctx, http.MethodPost, specialistsURI+"/create", nil, payload, &specialist); err != nil {
		return nil, err
	}
	return &specialist, nil
}

// UpdateSpecialist edits an existing specialist doctor
func (c *Client) UpdateSpecialist(ctx context.Context, id string, payload SpecialistPayload) (*Specialist, error) {
	var specialist Specialist
	if err := c.do(ctx, http.MethodPatch, specialistsURI+"/"+id, nil, payload, &specialist); err != nil {
		return nil, err
	}
	return &specialist, nil
}
