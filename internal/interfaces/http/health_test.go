package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	HandleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", rr.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != "OK" {
		t.Errorf("expected status OK, got %q", resp.Data.Status)
	}
}

func TestHandleHealthMethodNotAllowed(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	HandleHealth(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %v", rr.Code)
	}
}

func TestHandleRootUnknownPath(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/no/such/route", nil)
	rr := httptest.NewRecorder()
	HandleRoot(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", rr.Code)
	}
}
