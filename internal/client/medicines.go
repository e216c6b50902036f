// ABOUTME: Pharmacy inventory endpoints of the clinic API
// ABOUTME: Medicine catalog CRUD used by the farmacia views

package client

import (
	"context"
	"net/http"
)

const medicinesURI = "/v1/medicines"

// Medicine represents one pharmacy inventory item
type Medicine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"minQuantity"`
}

// CreateMedicinePayload is the request body for adding a medicine
type CreateMedicinePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"minQuantity"`
}

// UpdateMedicinePayload is the request body for editing a medicine.
// Nil fields are sent as null and left unchanged by the backend.
type UpdateMedicinePayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	MinQuantity *int     `json:"minQuantity"`
}

// ListMedicines returns the full medicine catalog
func (c *Client) ListMedicines(ctx context.Context) ([]Medicine, error) {
	var medicines []Medicine
	if err := c.do(ctx, http.MethodGet, medicinesURI+"/all", nil, nil, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

// GetMedicine returns one medicine by id
func (c *Client) GetMedicine(ctx context.Context, id string) (*Medicine, error) {
	var medicine Medicine
	if err := c.do(ctx, http.MethodGet, medicinesURI+"/"+id, nil, nil, &medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}

// CreateMedicine adds a medicine to the catalog
func (c *Client) CreateMedicine(ctx context.Context, payload CreateMedicinePayload) (*Medicine, error) {
	var medicine Medicine
	if err := c.do(ctx, http.MethodPost, medicinesURI+"/create", nil, payload, &medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}

// UpdateMedicine edits an existing medicine
func (c *Client) UpdateMedicine(ctx context.Context, id string, payload UpdateMedicinePayload) (*Medicine, error) {
	var medicine Medicine
	if err := c.do(ctx, http.MethodPatch, medicinesURI+"/"+id, nil, payload, &medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}
