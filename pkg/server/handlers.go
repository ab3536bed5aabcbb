package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/usage"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/models", s.handleModels)
	mux.HandleFunc("POST /v1/usage/reports", s.handleCreateReport)
	mux.HandleFunc("GET /v1/usage/reports", s.handleListReports)

	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", s.deps.Metrics.Handler())
	}

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleModels serves the cached model snapshot, filling it on first use.
// ?refresh=true forces a live discovery.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models := s.cachedModels()

	if models == nil || r.URL.Query().Get("refresh") == "true" {
		if err := s.RefreshModels(r.Context()); err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		models = s.cachedModels()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": s.deps.Profile.ID,
		"models":   models,
	})
}

// createReportRequest is the POST /v1/usage/reports body.
type createReportRequest struct {
	Task     usage.Task              `json:"task"`
	Model    string                  `json:"model"`
	Usage    providers.TokenUsage    `json:"usage"`
	Metadata *providers.CallMetadata `json:"metadata,omitempty"`
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}

	model := s.lookupModel(req.Model)
	report := usage.BuildReport(req.Task, model, req.Usage, req.Metadata)

	if s.deps.Ledger != nil {
		if err := s.deps.Ledger.Record(r.Context(), &report); err != nil {
			s.logger.Error("failed to record usage report", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to record report")
			return
		}
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordReport(&report)
	}

	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ledger == nil {
		writeError(w, http.StatusNotFound, "no ledger configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	reports, err := s.deps.Ledger.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list usage reports", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	total, err := s.deps.Ledger.TotalCost(r.Context())
	if err != nil {
		s.logger.Error("failed to sum usage costs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to sum costs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":    reports,
		"total_cost": total,
	})
}

// lookupModel resolves a model identifier against the cached snapshot so
// reports pick up discovered pricing metadata. Unknown models still produce
// a report, with zero-rate pricing.
func (s *Server) lookupModel(id string) providers.Model {
	for _, m := range s.cachedModels() {
		if m.ID == id {
			return m
		}
	}
	return providers.Model{ID: id, Provider: s.deps.Profile.ID}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
