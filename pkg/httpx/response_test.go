package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/itemvalidation/pkg/httpx"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]int{"id": 3})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if got := w.Body.String(); got != "{\"id\":3}\n" {
		t.Errorf("unexpected body %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
}

func TestSeeOther(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.SeeOther(w, "/validation/v3/items/3?status=true")

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/validation/v3/items/3?status=true" {
		t.Errorf("Location: got %q", loc)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["location"] != "/validation/v3/items/3?status=true" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestPublicMessage(t *testing.T) {
	err := errors.New("pq: connection refused")
	if got := httpx.PublicMessage(err, http.StatusInternalServerError); got != "Internal Server Error" {
		t.Errorf("5xx: got %q", got)
	}
	if got := httpx.PublicMessage(err, http.StatusBadRequest); got != err.Error() {
		t.Errorf("4xx: got %q", got)
	}
}
