// ABOUTME: Tests for the surgery commands
// ABOUTME: Verifies assignment routing, type filters, and output formatting

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

func TestRunSurgeriesList_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/surgeries/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Surgery{
			{
				ID:          "s1",
				ConsultID:   "c1",
				SurgeryCost: 1500,
				SurgeryType: client.SurgeryType{ID: "t1", Type: "Apendicectomia"},
			},
		})
	}))
	defer server.Close()
	useServer(t, server)

	var buf bytes.Buffer
	exitCode := runSurgeriesList(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"Apendicectomia", "consult c1", "1 surgery(ies)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestRunSurgeriesAssign_RoutesSpecialistFlag(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("cannot decode body: %v", err)
		}
		if body["surgeryId"] != "s1" || body["employeeId"] != "e9" {
			t.Errorf("unexpected assignment payload: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.SurgeryStaff{SurgeryID: "s1"})
	}))
	defer server.Close()
	useServer(t, server)

	surgeryEmployeeID = "e9"
	surgeryAsSpecialist = true
	defer func() {
		surgeryEmployeeID = ""
		surgeryAsSpecialist = false
	}()

	var buf bytes.Buffer
	if exitCode := runSurgeriesAssign(context.Background(), &buf, "s1", true); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if gotMethod != http.MethodPost || gotPath != "/v1/surgeries/add-specialist" {
		t.Errorf("expected POST /v1/surgeries/add-specialist, got %s %s", gotMethod, gotPath)
	}

	if exitCode := runSurgeriesAssign(context.Background(), &buf, "s1", false); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if gotMethod != http.MethodDelete || gotPath != "/v1/surgeries/remove-specialist" {
		t.Errorf("expected DELETE /v1/surgeries/remove-specialist, got %s %s", gotMethod, gotPath)
	}
}

func TestRunSurgeriesAssign_DefaultsToEmployee(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.SurgeryStaff{SurgeryID: "s1"})
	}))
	defer server.Close()
	useServer(t, server)

	surgeryEmployeeID = "e9"
	defer func() { surgeryEmployeeID = "" }()

	var buf bytes.Buffer
	if exitCode := runSurgeriesAssign(context.Background(), &buf, "s1", true); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if gotPath != "/v1/surgeries/add-employee" {
		t.Errorf("expected /v1/surgeries/add-employee, got %s", gotPath)
	}
	if !strings.Contains(buf.String(), "Assigned employee e9 on surgery s1") {
		t.Errorf("expected confirmation in output, got:\n%s", buf.String())
	}
}

func TestRunSurgeryTypes_SearchParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/surgeries/types/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "apendice" {
			t.Errorf("expected search=apendice, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.SurgeryType{
			{ID: "t1", Type: "Apendicectomia", SurgeryCost: 1500, HospitalCost: 400, SpecialistPayment: 600},
		})
	}))
	defer server.Close()
	useServer(t, server)

	if err := surgeryTypesCmd.Flags().Set("search", "apendice"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		surgeryTypeSearch = ""
		surgeryTypesCmd.Flags().Lookup("search").Changed = false
	}()

	var buf bytes.Buffer
	exitCode := runSurgeryTypes(context.Background(), &buf, surgeryTypesCmd)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "cost 1500.00 (hospital 400.00, specialist 600.00)") {
		t.Errorf("expected cost breakdown in output, got:\n%s", buf.String())
	}
}

func TestRunSurgeriesCreate_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/surgeries/create" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "consult not found"})
	}))
	defer server.Close()
	useServer(t, server)

	var buf bytes.Buffer
	exitCode := runSurgeriesCreate(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "consult not found") {
		t.Errorf("expected backend message in output, got:\n%s", buf.String())
	}
}

func TestFormatSurgeryStaff_DistinguishesSpecialists(t *testing.T) {
	employeeID := "e1"
	specialistID := "sp1"
	output := formatSurgeryStaff([]client.SurgeryStaff{
		{SurgeryID: "s1", EmployeeID: &employeeID},
		{SurgeryID: "s1", SpecialistEmployeeID: &specialistID, SpecialistPayment: 600},
	})

	if !strings.Contains(output, "employee e1") {
		t.Errorf("expected employee line, got:\n%s", output)
	}
	if !strings.Contains(output, "specialist sp1  payment 600.00") {
		t.Errorf("expected specialist line, got:\n%s", output)
	}
}
