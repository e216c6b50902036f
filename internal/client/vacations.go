// ABOUTME: Vacation planning endpoints of the clinic API
// ABOUTME: Entitled days plus per-employee period registration

package client

import (
	"context"
	"net/http"
	"strconv"
)

const vacationsURI = "/v1/vacations"

// VacationDays is the number of vacation days an employee is entitled to
// per period year
type VacationDays struct {
	Days int `json:"days"`
}

// VacationPeriod is one begin/end date range, wire format YYYY-MM-DD
type VacationPeriod struct {
	BeginDate string `json:"beginDate"`
	EndDate   string `json:"endDate"`
}

// Vacation is one registered vacation range for an employee
type Vacation struct {
	ID         string `json:"id"`
	PeriodYear int    `json:"periodYear"`
	BeginDate  string `json:"beginDate"`
	EndDate    string `json:"endDate"`
	WasUsed    bool   `json:"wasUsed"`
}

// VacationDays returns the days entitlement configured on the backend
func (c *Client) VacationDays(ctx context.Context) (*VacationDays, error) {
	var days VacationDays
	if err := c.do(ctx, http.MethodGet, vacationsURI+"/vacation-days", nil, nil, &days); err != nil {
		return nil, err
	}
	return &days, nil
}

// GetVacations returns the registered vacations of an employee for a period year
func (c *Client) GetVacations(ctx context.Context, employeeID string, periodYear int) ([]Vacation, error) {
	var vacations []Vacation
	path := vacationsURI + "/" + employeeID + "/" + strconv.Itoa(periodYear)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &vacations); err != nil {
		return nil, err
	}
	return vacations, nil
}

// CreateVacations registers vacation periods for an employee. The body is
// the bare array of periods, matching the backend contract.
func (c *Client) CreateVacations(ctx context.Context, employeeID string, periodYear int, periods []VacationPeriod) ([]Vacation, error) {
	var vacations []Vacation
	path := vacationsURI + "/" + employeeID + "/" + strconv.Itoa(periodYear)
	if err := c.do(ctx, http.MethodPost, path, nil, periods, &vacations); err != nil {
		return nil, err
	}
	return vacations, nil
}

// UpdateVacations replaces the vacation periods of an employee for a period year
func (c *Client) UpdateVacations(ctx context.Context, employeeID string, periodYear int, periods []VacationPeriod) ([]Vacation, error) {
	var vacations []Vacation
	path := vacationsURI + "/" + employeeID + "/" + strconv.Itoa(periodYear)
	if err := c.do(ctx, http.MethodPatch, path, nil, periods, &vacations); err != nil {
		return nil, err
	}
	return vacations, nil
}
