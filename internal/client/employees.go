// ABOUTME: Employee and employee-type endpoints of the clinic API
// ABOUTME: Covers staff CRUD, salary changes, activation state, and history

package client

import (
	"context"
	"net/http"
)

const employeesURI = "/v1/employees"

// Employee represents a staff member
type Employee struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Salary          float64 `json:"salary"`
	IGSSPercentage  float64 `json:"igssPercentage"`
	IRTRAPercentage float64 `json:"irtraPercentage"`
	DesactivatedAt  string  `json:"desactivatedAt,omitempty"`
}

// EmployeeType classifies staff members (doctor, nurse, admin, ...)
type EmployeeType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeHistory is one entry in a staff member's lifecycle record
type EmployeeHistory struct {
	HistoryType EmployeeType `json:"historyType"`
	Commentary  string       `json:"commentary"`
	HistoryDate string       `json:"historyDate"`
}

// CompoundEmployee is the detail view of an employee: the record itself,
// the linked account username, and the full lifecycle history
type CompoundEmployee struct {
	Employee  Employee          `json:"employeeResponseDTO"`
	Username  string            `json:"username"`
	Histories []EmployeeHistory `json:"employeeHistories"`
}

// IDRef wraps a bare id for payloads that nest one
type IDRef struct {
	ID string `json:"id"`
}

// CreateUserPayload carries the account credentials created alongside an employee
type CreateUserPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateEmployeePayload is the request body for hiring a new employee
type CreateEmployeePayload struct {
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Salary          float64           `json:"salary"`
	IGSSPercentage  *float64          `json:"igssPercentage"`
	IRTRAPercentage *float64          `json:"irtraPercentage"`
	EmployeeTypeID  IDRef             `json:"employeeTypeId"`
	CreateUser      CreateUserPayload `json:"createUserRequestDTO"`
	HireDate        *DatePayload      `json:"employeeHistoryDateRequestDTO,omitempty"`
}

// DatePayload carries a single date field for history entries
type DatePayload struct {
	HistoryDate string `json:"historyDate"`
}

// UpdateEmployeePayload is the request body for editing an employee.
// Nil fields are sent as null, which the backend treats as "leave unchanged".
type UpdateEmployeePayload struct {
	FirstName       *string  `json:"firstName"`
	LastName        *string  `json:"lastName"`
	Salary          *float64 `json:"salary"`
	IGSSPercentage  *float64 `json:"igssPercentage"`
	IRTRAPercentage *float64 `json:"irtraPercentage"`
	EmployeeTypeID  *IDRef   `json:"employeeTypeId,omitempty"`
}

// SalaryPayload is the request body for a salary change
type SalaryPayload struct {
	Salary     float64 `json:"salary"`
	SalaryDate string  `json:"salaryDate"`
}

// DeactivatePayload is the request body for deactivating an employee
type DeactivatePayload struct {
	DeactivationDate string `json:"deactivationDate"`
	HistoryTypeID    IDRef  `json:"historyTypeId"`
}

// ReactivatePayload is the request body for reactivating an employee
type ReactivatePayload struct {
	ReactivationDate string `json:"reactivationDate"`
}

// ListEmployees returns all employees
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, employeesURI+"/", nil, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployee returns one employee with account and history detail
func (c *Client) GetEmployee(ctx context.Context, id string) (*CompoundEmployee, error) {
	var employee CompoundEmployee
	if err := c.do(ctx, http.MethodGet, employeesURI+"/"+id, nil, nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// CreateEmployee hires a new employee together with their user account
func (c *Client) CreateEmployee(ctx context.Context, payload CreateEmployeePayload) (*Employee, error) {
	var employee Employee
	if err := c.do(ctx, http.MethodPost, employeesURI+"/create-employee", nil, payload, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee edits an existing employee
func (c *Client) UpdateEmployee(ctx context.Context, id string, payload UpdateEmployeePayload) (*Employee, error) {
	var employee Employee
	if err := c.do(ctx, http.MethodPatch, employeesURI+"/"+id, nil, payload, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployeeSalary changes an employee's salary effective on the given date
func (c *Client) UpdateEmployeeSalary(ctx context.Context, id string, payload SalaryPayload) (*Employee, error) {
	var employee Employee
	if err := c.do(ctx, http.MethodPatch, employeesURI+"/"+id+"/salary", nil, payload, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeactivateEmployee marks an employee as no longer active
func (c *Client) DeactivateEmployee(ctx context.Context, id string, payload DeactivatePayload) error {
	return c.do(ctx, http.MethodPatch, employeesURI+"/"+id+"/desactivate", nil, payload, nil)
}

// ReactivateEmployee returns a deactivated employee to active status
func (c *Client) ReactivateEmployee(ctx context.Context, id string, payload ReactivatePayload) error {
	return c.do(ctx, http.MethodPatch, employeesURI+"/"+id+"/reactivate", nil, payload, nil)
}

// ListDoctors returns doctor employees, optionally filtered by a search term
func (c *Client) ListDoctors(ctx context.Context, search *string) ([]Employee, error) {
	var employees []Employee
	query := NewQuery().String("search", search)
	if err := c.do(ctx, http.MethodGet, employeesURI+"/doctors", query, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListNurses returns nurse employees, optionally filtered by a search term
func (c *Client) ListNurses(ctx context.Context, search *string) ([]Employee, error) {
	var employees []Employee
	query := NewQuery().String("search", search)
	if err := c.do(ctx, http.MethodGet, employeesURI+"/nurses", query, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListEmployeeTypes returns all employee types
func (c *Client) ListEmployeeTypes(ctx context.Context) ([]EmployeeType, error) {
	var types []EmployeeType
	if err := c.do(ctx, http.MethodGet, "/v1/employee-types", nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}
