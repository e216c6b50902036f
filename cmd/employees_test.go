// ABOUTME: Tests for the employee commands
// ABOUTME: Verifies salary updates and staff output formatting

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinica-gt/clinica-cli/internal/client"
)

func TestRunEmployeesSalary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/v1/employees/e1/salary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload client.SalaryPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("payload did not decode: %v", err)
		}
		if payload.Salary != 6500 || payload.SalaryDate != "2026-03-01" {
			t.Errorf("unexpected payload %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Employee{ID: "e1", FirstName: "Ana", LastName: "Garcia", Salary: 6500})
	}))
	defer server.Close()
	useServer(t, server)

	employeeSalary = 6500
	salaryDate = "2026-03-01"
	defer func() {
		employeeSalary = 0
		salaryDate = ""
	}()

	var buf bytes.Buffer
	exitCode := runEmployeesSalary(context.Background(), &buf, "e1")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "6500.00") {
		t.Errorf("expected new salary in output, got:\n%s", buf.String())
	}
}

func TestFormatEmployeeList_DeactivatedFlag(t *testing.T) {
	output := formatEmployeeList([]client.Employee{
		{ID: "e1", FirstName: "Ana", LastName: "Garcia", Salary: 6500},
		{ID: "e2", FirstName: "Luis", LastName: "Mendez", Salary: 4200, DesactivatedAt: "2026-01-15"},
	})

	lines := strings.Split(output, "\n")
	if strings.Contains(lines[0], "[deactivated]") {
		t.Errorf("did not expect flag on active employee, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[deactivated]") {
		t.Errorf("expected flag on deactivated employee, got %q", lines[1])
	}
}

func TestFormatCompoundEmployee(t *testing.T) {
	output := formatCompoundEmployee(&client.CompoundEmployee{
		Employee: client.Employee{ID: "e1", FirstName: "Ana", LastName: "Garcia", Salary: 6500, IGSSPercentage: 4.83},
		Username: "agarcia",
		Histories: []client.EmployeeHistory{
			{HistoryType: client.EmployeeType{Name: "Hired"}, HistoryDate: "2025-06-01", Commentary: "initial hire"},
		},
	})

	for _, want := range []string{"Ana Garcia", "agarcia", "4.83", "Hired", "initial hire"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}
