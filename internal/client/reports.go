// ABOUTME: Reporting endpoints of the clinic API
// ABOUTME: Inventory, profit, and staff lifecycle reports with optional filters

package client

import (
	"context"
	"net/http"
	"time"
)

const reportsURI = "/v1/reports"

// FinancialSummary aggregates the money columns of a profit report
type FinancialSummary struct {
	TotalSales  float64 `json:"totalSales"`
	TotalCost   float64 `json:"totalCost"`
	TotalProfit float64 `json:"totalProfit"`
}

// MedicationSales groups the sales of one medication
type MedicationSales struct {
	MedicationName string `json:"medicationName"`
	Sales          []Sale `json:"sales"`
}

// MedicationProfitReport is the profit breakdown per medication
type MedicationProfitReport struct {
	FinancialSummary  FinancialSummary  `json:"financialSummary"`
	SalePerMedication []MedicationSales `json:"salePerMedication"`
}

// EmployeeSales groups the sales attributed to one employee
type EmployeeSales struct {
	EmployeeFullName string  `json:"employeeFullName"`
	CUI              string  `json:"cui"`
	Salary           float64 `json:"salary"`
	EmployeeType     string  `json:"employeeType"`
	Sales            []Sale  `json:"sales"`
}

// EmployeeProfitReport is the profit breakdown per employee
type EmployeeProfitReport struct {
	FinancialSummary FinancialSummary `json:"financialSummary"`
	SalePerEmployee  []EmployeeSales  `json:"salePerEmployee"`
}

// LifecycleFilter narrows the staff lifecycle report. Nil and empty
// fields are omitted from the query string.
type LifecycleFilter struct {
	EmployeeTypeID *string
	StartDate      *time.Time
	EndDate        *time.Time
	HistoryTypeIDs []string
}

// MedicationReport returns catalog medicines, optionally filtered by name
func (c *Client) MedicationReport(ctx context.Context, name *string) ([]Medicine, error) {
	var medicines []Medicine
	query := NewQuery().String("name", name)
	if err := c.do(ctx, http.MethodGet, reportsURI+"/getMedicationReport", query, nil, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

// MedicationProfitReport returns sale profits per medication within an
// optional date range (dates serialized as YYYY-MM-DD)
func (c *Client) MedicationProfitReport(ctx context.Context, name *string, start, end *time.Time) (*MedicationProfitReport, error) {
	var report MedicationProfitReport
	query := NewQuery().
		String("name", name).
		Date("startDate", start).
		Date("endDate", end)
	if err := c.do(ctx, http.MethodGet, reportsURI+"/getMedicationProfitReport", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// EmployeeProfitReport returns sale profits per employee
func (c *Client) EmployeeProfitReport(ctx context.Context, employeeName, employeeCUI *string) (*EmployeeProfitReport, error) {
	var report EmployeeProfitReport
	query := NewQuery().
		String("employeeName", employeeName).
		String("employeeCui", employeeCUI)
	if err := c.do(ctx, http.MethodGet, reportsURI+"/getEmployeeProfitReport", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// EmployeeLifecycleReport returns hire/termination history entries
// matching the filter
func (c *Client) EmployeeLifecycleReport(ctx context.Context, filter LifecycleFilter) ([]EmployeeHistory, error) {
	var histories []EmployeeHistory
	query := NewQuery().
		String("employeTypeId", filter.EmployeeTypeID).
		Date("startDate", filter.StartDate).
		Date("endDate", filter.EndDate).
		Strings("historyTypeIds", filter.HistoryTypeIDs)
	if err := c.do(ctx, http.MethodGet, reportsURI+"/getEmployeeLifecycleReport", query, nil, &histories); err != nil {
		return nil, err
	}
	return histories, nil
}
