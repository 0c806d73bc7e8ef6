// Package http exposes the ingest API: a thin boundary that accepts raw
// extraction output or manual JSON and hands it to the tracker.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"culvert/internal/core"
	"culvert/internal/extract"
	applog "culvert/internal/log"
	"culvert/internal/services"
)

type Server struct {
	tracker *services.Tracker
	logger  *applog.Logger
}

// NewServer builds the ingest HTTP server on the given address.
func NewServer(addr string, tracker *services.Tracker, logger *applog.Logger) *http.Server {
	s := &Server{tracker: tracker, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return &http.Server{
		Addr:    addr,
		Handler: applog.Middleware(logger)(mux),
	}
}

type ingestRequest struct {
	Date   string `json:"date"`   // MM/DD/YY
	Raw    string `json:"raw"`    // raw worker output or manual JSON
	Source string `json:"source"` // defaults to "manual"
}

type ingestResponse struct {
	DateLabel string `json:"date_label"`
	Entries   int    `json:"entries"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	key, err := core.ParseCommandDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "manual"
	}

	dateLabel := core.FormatHeaderLabel(key)
	n, err := s.tracker.IngestRaw(r.Context(), source, dateLabel, req.Raw)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, extract.ErrNoEntries) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.WarnContext(r.Context(), "Ingest failed",
			applog.FieldSource, source,
			applog.FieldDateLabel, dateLabel,
			applog.FieldError, err)
		writeError(w, status, err.Error())
		return
	}

	s.logger.InfoContext(r.Context(), "Scores ingested",
		applog.FieldSource, source,
		applog.FieldDateLabel, dateLabel,
		applog.FieldEntries, n)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ingestResponse{DateLabel: dateLabel, Entries: n})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
