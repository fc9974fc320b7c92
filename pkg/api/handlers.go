package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bcallard/smfdump/pkg/archive"
)

// Server holds the API server state.
type Server struct {
	runs    RunStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server over an archive of parse runs.
func NewServer(runs RunStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		runs:    runs,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runs.ListRuns()
	if err != nil {
		s.metrics.RecordArchiveOperation("list_runs", false)
		sendError(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveOperation("list_runs", true)
	sendSuccess(w, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	summary, err := s.runs.LoadSummary(runID)
	if err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			s.metrics.RecordArchiveOperation("load_summary", true)
			sendError(w, "Run not found", http.StatusNotFound)
			return
		}
		s.metrics.RecordArchiveOperation("load_summary", false)
		sendError(w, "Failed to load run", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveOperation("load_summary", true)
	sendSuccess(w, summary)
}

func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	family, ok := parseUint8(chi.URLParam(r, "family"))
	if !ok {
		sendError(w, "Invalid record family", http.StatusBadRequest)
		return
	}
	subtype, ok := parseUint8(chi.URLParam(r, "subtype"))
	if !ok {
		sendError(w, "Invalid subtype", http.StatusBadRequest)
		return
	}

	records, err := s.runs.LoadRecords(runID, family, subtype)
	if err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			s.metrics.RecordArchiveOperation("load_records", true)
			sendError(w, "Run not found", http.StatusNotFound)
			return
		}
		s.metrics.RecordArchiveOperation("load_records", false)
		sendError(w, "Failed to load records", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveOperation("load_records", true)

	if records == nil {
		records = []map[string]any{}
	}
	sendSuccess(w, records)
}

func parseUint8(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
