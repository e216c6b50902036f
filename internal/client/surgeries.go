// ABOUTME: Surgery scheduling and billing endpoints of the clinic API
// ABOUTME: Surgery CRUD, surgery types, and staff/specialist assignment

package client

import (
	"context"
	"net/http"
)

const surgeriesURI = "/v1/surgeries"

// SurgeryType is a catalog entry describing a kind of surgery and its costs
type SurgeryType struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Description       string  `json:"description"`
	SpecialistPayment float64 `json:"specialistPayment"`
	HospitalCost      float64 `json:"hospitalCost"`
	SurgeryCost       float64 `json:"surgeryCost"`
}

// SurgeryStaff links an employee or external specialist to a surgery
type SurgeryStaff struct {
	SurgeryID            string  `json:"surgeryId"`
	EmployeeID           *string `json:"employeeId,omitempty"`
	SpecialistEmployeeID *string `json:"specialistEmployeeId,omitempty"`
	SpecialistPayment    float64 `json:"specialistPayment"`
}

// Surgery represents a scheduled surgery billed to a consult
type Surgery struct {
	ID           string         `json:"id"`
	ConsultID    string         `json:"consultId"`
	HospitalCost float64        `json:"hospitalCost"`
	SurgeryCost  float64        `json:"surgeryCost"`
	SurgeryType  SurgeryType    `json:"surgeryType"`
	Staff        []SurgeryStaff `json:"surgeryEmployees"`
}

// CreateSurgeryPayload is the request body for scheduling a surgery
type CreateSurgeryPayload struct {
	ConsultID     string `json:"consultId"`
	SurgeryTypeID string `json:"surgeryTypeId"`
}

// CreateSurgeryTypePayload is the request body for adding a surgery type
type CreateSurgeryTypePayload struct {
	Type              string  `json:"type"`
	Description       string  `json:"description"`
	SpecialistPayment float64 `json:"specialistPayment"`
	HospitalCost      float64 `json:"hospitalCost"`
	SurgeryCost       float64 `json:"surgeryCost"`
}

// StaffAssignment names a surgery and the employee to add or remove
type StaffAssignment struct {
	SurgeryID  string `json:"surgeryId"`
	EmployeeID string `json:"employeeId"`
}

// ListSurgeries returns all surgeries
func (c *Client) ListSurgeries(ctx context.Context) ([]Surgery, error) {
	var surgeries []Surgery
	if err := c.do(ctx, http.MethodGet, surgeriesURI+"/all", nil, nil, &surgeries); err != nil {
		return nil, err
	}
	return surgeries, nil
}

// GetSurgery returns one surgery by id
func (c *Client) GetSurgery(ctx context.Context, id string) (*Surgery, error) {
	var surgery Surgery
	if err := c.do(ctx, http.MethodGet, surgeriesURI+"/"+id, nil, nil, &surgery); err != nil {
		return nil, err
	}
	return &surgery, nil
}

// CreateSurgery schedules a surgery against an open consult
func (c *Client) CreateSurgery(ctx context.Context, payload CreateSurgeryPayload) (*Surgery, error) {
	var surgery Surgery
	if err := c.do(ctx, http.MethodPost, surgeriesURI+"/create", nil, payload, &surgery); err != nil {
		return nil, err
	}
	return &surgery, nil
}

// ListSurgeryTypes returns the surgery type catalog, optionally filtered
// by a search term
func (c *Client) ListSurgeryTypes(ctx context.Context, search *string) ([]SurgeryType, error) {
	var types []SurgeryType
	query := NewQuery().String("query", search)
	if err := c.do(ctx, http.MethodGet, surgeriesURI+"/types/all", query, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetSurgeryType returns one surgery type by id
func (c *Client) GetSurgeryType(ctx context.Context, id string) (*SurgeryType, error) {
	var surgeryType SurgeryType
	if err := c.do(ctx, http.MethodGet, surgeriesURI+"/types/"+id, nil, nil, &surgeryType); err != nil {
		return nil, err
	}
	return &surgeryType, nil
}

// CreateSurgeryType adds a surgery type to the catalog
func (c *Client) CreateSurgeryType(ctx context.Context, payload CreateSurgeryTypePayload) (*SurgeryType, error) {
	var surgeryType SurgeryType
	if err := c.do(ctx, http.MethodPost, surgeriesURI+"/types/create", nil, payload, &surgeryType); err != nil {
		return nil, err
	}
	return &surgeryType, nil
}

// AddSurgeryEmployee assigns a staff member to a surgery
func (c *Client) AddSurgeryEmployee(ctx context.Context, assignment StaffAssignment) (*SurgeryStaff, error) {
	var staff SurgeryStaff
	if err := c.do(ctx, http.MethodPost, surgeriesURI+"/add-employee", nil, assignment, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// RemoveSurgeryEmployee unassigns a staff member from a surgery
func (c *Client) RemoveSurgeryEmployee(ctx context.Context, assignment StaffAssignment) (*SurgeryStaff, error) {
	var staff SurgeryStaff
	if err := c.do(ctx, http.MethodDelete, surgeriesURI+"/remove-employee", nil, assignment, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// AddSurgerySpecialist assigns an external specialist to a surgery
func (c *Client) AddSurgerySpecialist(ctx context.Context, assignment StaffAssignment) (*SurgeryStaff, error) {
	var staff SurgeryStaff
	if err := c.do(ctx, http.MethodPost, surgeriesURI+"/add-specialist", nil, assignment, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// RemoveSurgerySpecialist unassigns an external specialist from a surgery
func (c *Client) RemoveSurgerySpecialist(ctx context.Context, assignment StaffAssignment) (*SurgeryStaff, error) {
	var staff SurgeryStaff
	if err := c.do(ctx, http.MethodDelete, surgeriesURI+"/remove-specialist", nil, assignment, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// ListSurgeryStaff returns everyone assigned to a surgery
func (c *Client) ListSurgeryStaff(ctx context.Context, surgeryID string) ([]SurgeryStaff, error) {
	var staff []SurgeryStaff
	if err := c.do(ctx, http.MethodGet, surgeriesURI+"/surgery-employees/"+surgeryID, nil, nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}
