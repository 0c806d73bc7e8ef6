package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "culvert/internal/log"
	"culvert/internal/services"
	"culvert/internal/sheets/memory"
)

func testServer() http.Handler {
	tracker := services.NewTracker(memory.New(), nil, nil, nil, nil)
	logger := applog.New(applog.DefaultConfig())
	return NewServer(":0", tracker, logger).Handler
}

func TestIngestEndpoint(t *testing.T) {
	h := testServer()

	body := `{"date":"3/1/24","raw":"[{\"Name\":\"Alice\",\"Culvert\":\"100\"}]"}`
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"entries":1`) {
		t.Fatalf("body = %s", rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"date_label":"3/1/24"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestIngestRejectsBadDate(t *testing.T) {
	h := testServer()

	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"date":"02/30/26","raw":"[]"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestIngestRejectsEmptyPayload(t *testing.T) {
	h := testServer()

	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"date":"3/1/24","raw":"no rows"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestHealthz(t *testing.T) {
	h := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
