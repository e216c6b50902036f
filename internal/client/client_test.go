// ABOUTME: Tests for the clinic API client core
// ABOUTME: Uses httptest doubles to observe headers, queries, and error normalization

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticCreds is a credential source double with a fixed token
type staticCreds struct {
	token string
}

func (s *staticCreds) Token() string { return s.token }

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Medicine{})
	}))
	defer server.Close()

	c := New(server.URL, &staticCreds{token: "tok-123"})
	if _, err := c.ListMedicines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected Authorization 'Bearer tok-123', got %q", gotAuth)
	}
}

func TestDo_NoTokenMeansNoHeader(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Medicine{})
	}))
	defer server.Close()

	c := New(server.URL, &staticCreds{token: ""})
	if _, err := c.ListMedicines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Error("expected no Authorization header when no token is stored")
	}
}

func TestDo_ReadsTokenFreshOnEveryCall(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Medicine{})
	}))
	defer server.Close()

	creds := &staticCreds{token: "first"}
	c := New(server.URL, creds)

	if _, err := c.ListMedicines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	creds.token = ""
	if _, err := c.ListMedicines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if headers[0] != "Bearer first" {
		t.Errorf("expected first call to carry the token, got %q", headers[0])
	}
	if headers[1] != "" {
		t.Errorf("expected second call to carry no token after clear, got %q", headers[1])
	}
}

func TestDo_ErrorResponseWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.GetMedicine(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "not found" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestDo_ErrorResponseWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.ListMedicines(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Error("expected a fallback message for a bodyless error response")
	}
}

func TestDo_TransportFailure(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url, nil)
	_, err := c.ListMedicines(context.Background())
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("expected no status code on transport failure, got %d", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Error("expected a fallback message on transport failure")
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListMedicines(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "request canceled" {
		t.Errorf("expected 'request canceled', got %q", apiErr.Message)
	}
}

func TestDo_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ListMedicines(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "request timed out" {
		t.Errorf("expected 'request timed out', got %q", apiErr.Message)
	}
}

func TestDo_EmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.DeactivateEmployee(context.Background(), "e1", DeactivatePayload{
		DeactivationDate: "2025-01-31",
		HistoryTypeID:    IDRef{ID: "despido"},
	})
	if err != nil {
		t.Fatalf("expected 204 with empty body to succeed, got %v", err)
	}
}

func TestDo_BodyPassedThroughVerbatim(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Sale{})
	}))
	defer server.Close()

	cart := []SaleItem{
		{MedicineID: "m1", Quantity: 2},
		{MedicineID: "m2", Quantity: 1},
	}

	c := New(server.URL, nil)
	if _, err := c.SellMedicines(context.Background(), cart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := json.Marshal(cart)
	if string(gotBody) != string(want) {
		t.Errorf("expected body %s, got %s", want, gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %q", gotContentType)
	}
}

func TestDo_NoBodyNoContentType(t *testing.T) {
	var hasContentType bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasContentType = r.Header["Content-Type"]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Medicine{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if _, err := c.ListMedicines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasContentType {
		t.Error("expected no Content-Type header on a bodyless GET")
	}
}
