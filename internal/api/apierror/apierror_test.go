package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWriteSetsStatusAndEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/registrations", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, "event_slug and response_data are required", errors.New("boom"))

	if got := res.Result().Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected application/json, got %s", got)
	}
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var body Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "event_slug and response_data are required" {
		t.Fatalf("unexpected error field: %s", body.Error)
	}
	if body.Code != "" {
		t.Fatalf("expected empty code, got %s", body.Code)
	}
}

func TestWriteStoreSurfacesPgDiagnostics(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/registrations", nil)
	res := httptest.NewRecorder()

	pgErr := &pgconn.PgError{Code: "23502", Message: "null value in column \"event_slug\""}
	WriteStore(res, req, "failed to save registration", pgErr)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}

	var body Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != "23502" {
		t.Fatalf("expected SQLSTATE code, got %q", body.Code)
	}
	if body.Message == "" {
		t.Fatal("expected store message to be surfaced")
	}
}

func TestWriteStoreFallsBackToErrorString(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "http://example.com/api/v1/admin/registrations/x", nil)
	res := httptest.NewRecorder()

	WriteStore(res, req, "failed to delete registration", errors.New("connection refused"))

	var body Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "connection refused" {
		t.Fatalf("expected raw error message, got %q", body.Message)
	}
}
