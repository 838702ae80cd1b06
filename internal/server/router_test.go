package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ruleofthree/internal/app"
	"ruleofthree/internal/calculator"
	"ruleofthree/internal/history"
	"ruleofthree/internal/observability"
	"ruleofthree/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()

	state := app.New(history.New(storage.NewMemory(), ""))
	h, err := calculator.NewHandler(state)
	if err != nil {
		t.Fatalf("creating calculator handler: %v", err)
	}
	return NewRouter(h)
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterCalculateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newRouter(t)

	body := []byte(`{"a":2,"b":10,"c":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["x"].(float64); !ok || got != 25 {
		t.Fatalf("expected x 25, got %#v", payload["x"])
	}
}

func TestNewRouterErrorBodyCarriesRequestID(t *testing.T) {
	router := newRouter(t)

	body := []byte(`{"a":1,"b":1e300,"c":1e300}`)
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	header := w.Result().Header.Get("X-Request-ID")
	if got := payload["request_id"]; got != header {
		t.Fatalf("expected request_id %q in body, got %#v", header, got)
	}
}

func TestNewRouterServesMetrics(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "ruleofthree_history_entries") {
		t.Fatal("expected history gauge in metrics output")
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if payload["error"] != "not found" {
		t.Fatalf("expected error %q, got %q", "not found", payload["error"])
	}
}

func TestNewRouterMethodNotAllowed(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/history", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
	if ct := w.Result().Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
}
