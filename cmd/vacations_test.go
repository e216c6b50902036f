// ABOUTME: Tests for the vacation commands
// ABOUTME: Verifies period parsing and registration requests

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

func TestParsePeriods(t *testing.T) {
	periods, err := parsePeriods([]string{"2026-01-05:2026-01-12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if periods[0].BeginDate != "2026-01-05" || periods[0].EndDate != "2026-01-12" {
		t.Errorf("unexpected period %+v", periods[0])
	}
}

func TestParsePeriods_Invalid(t *testing.T) {
	for _, c := range []string{"2026-01-05", ":2026-01-12", "2026-01-05:"} {
		if _, err := parsePeriods([]string{c}); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestRunVacationsSet_PostsBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/vacations/e1/2026" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var periods []client.VacationPeriod
		if err := json.NewDecoder(r.Body).Decode(&periods); err != nil {
			t.Fatalf("body did not decode as a bare array: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Vacation{
			{ID: "v1", PeriodYear: 2026, BeginDate: "2026-01-05", EndDate: "2026-01-12"},
		})
	}))
	defer server.Close()
	useServer(t, server)

	vacationYear = 2026
	vacationPeriods = []string{"2026-01-05:2026-01-12"}
	defer func() {
		vacationYear = 0
		vacationPeriods = nil
	}()

	var buf bytes.Buffer
	exitCode := runVacationsSet(context.Background(), &buf, "e1", false)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "2026-01-05 to 2026-01-12") {
		t.Errorf("expected period in output, got:\n%s", buf.String())
	}
}
