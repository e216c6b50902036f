// ABOUTME: Tests for the query string builder
// ABOUTME: Verifies absent values never reach the wire

package client

import (
	"strings"
	"testing"
	"time"
)

func TestQuery_OmitsNilValues(t *testing.T) {
	present := "x"
	q := NewQuery().
		String("a", &present).
		String("b", nil).
		Bool("c", nil)

	encoded := q.Encode()
	if encoded != "a=x" {
		t.Errorf("expected 'a=x', got %q", encoded)
	}
}

func TestQuery_BoolValues(t *testing.T) {
	yes := true
	no := false
	q := NewQuery().Bool("paid", &yes).Bool("admitted", &no)

	encoded := q.Encode()
	if !strings.Contains(encoded, "paid=true") {
		t.Errorf("expected paid=true in %q", encoded)
	}
	if !strings.Contains(encoded, "admitted=false") {
		t.Errorf("expected admitted=false in %q", encoded)
	}
}

func TestQuery_DateFormat(t *testing.T) {
	d := time.Date(2025, 3, 7, 15, 30, 0, 0, time.UTC)
	q := NewQuery().Date("startDate", &d).Date("endDate", nil)

	encoded := q.Encode()
	if encoded != "startDate=2025-03-07" {
		t.Errorf("expected date-only serialization, got %q", encoded)
	}
}

func TestQuery_RepeatedValues(t *testing.T) {
	q := NewQuery().Strings("ids", []string{"a", "b"}).Strings("none", nil)

	encoded := q.Encode()
	if encoded != "ids=a&ids=b" {
		t.Errorf("expected repeated ids params, got %q", encoded)
	}
}

func TestQuery_NilEncodesEmpty(t *testing.T) {
	var q *Query
	if q.Encode() != "" {
		t.Error("expected nil query to encode as empty string")
	}
}

func TestConsultFilter_QueryOmission(t *testing.T) {
	dpi := "1234567890101"
	paid := false
	filter := ConsultFilter{
		PatientDPI: &dpi,
		IsPaid:     &paid,
	}

	encoded := filter.query().Encode()
	if !strings.Contains(encoded, "patientDpi=1234567890101") {
		t.Errorf("expected patientDpi in %q", encoded)
	}
	if !strings.Contains(encoded, "isPaid=false") {
		t.Errorf("expected isPaid=false in %q", encoded)
	}
	if strings.Contains(encoded, "patientId") || strings.Contains(encoded, "isInternado") {
		t.Errorf("expected absent filter fields to be omitted, got %q", encoded)
	}
}
