package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/pipeline"
	"github.com/jonathan/burnout-insights/internal/server/middleware"
	"github.com/jonathan/burnout-insights/internal/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status string `json:"status"`
	Store  bool   `json:"store"`
	Auth   bool   `json:"auth"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	*types.Analysis
	RecordID string `json:"record_id,omitempty"`
}

// AlertResponse represents the response for /alerts
type AlertResponse struct {
	UserID   int          `json:"user_id"`
	HasAlert bool         `json:"has_alert"`
	Alert    *types.Alert `json:"alert"`
}

// DashboardResponse represents the response for /dashboard
type DashboardResponse struct {
	UserID  int                     `json:"user_id"`
	Summary *types.DashboardSummary `json:"summary"`
}

// InterventionsResponse represents the response for /interventions
type InterventionsResponse struct {
	UserID        int                     `json:"user_id"`
	Interventions *types.InterventionPlan `json:"interventions"`
}

// ListAnalysesResponse represents the response for GET /analyses
type ListAnalysesResponse struct {
	Analyses []db.Record `json:"analyses"`
	Count    int         `json:"count"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Store:  s.analyzer.HasStore(),
		Auth:   s.jwtService != nil,
	})
}

// handleAnalyze runs the full pipeline and persists the result when a store is configured.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := s.authorize(r, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.analyzer.Run(r.Context(), pipeline.RunOptions{Request: &req})
	if err != nil {
		s.writeError(w, validationError(err))
		return
	}

	resp := AnalyzeResponse{Analysis: result.Analysis}
	if result.RecordID != uuid.Nil {
		resp.RecordID = result.RecordID.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAlerts evaluates the alert rules only.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := s.authorize(r, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}

	alert, err := s.analyzer.Alert(&req)
	if err != nil {
		s.writeError(w, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, AlertResponse{
		UserID:   req.UserID,
		HasAlert: alert != nil,
		Alert:    alert,
	})
}

// handleDashboard builds the dashboard summary.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := s.authorize(r, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}

	summary, err := s.analyzer.Summary(&req)
	if err != nil {
		s.writeError(w, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, DashboardResponse{UserID: req.UserID, Summary: summary})
}

// handleInterventions builds an intervention plan, optionally from supplied causes.
func (s *Server) handleInterventions(w http.ResponseWriter, r *http.Request) {
	var req types.InterventionsRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := s.authorize(r, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := s.analyzer.PlanInterventions(&req)
	if err != nil {
		s.writeError(w, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, InterventionsResponse{UserID: req.UserID, Interventions: plan})
}

// handleListAnalyses lists stored analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	store := s.analyzer.Store()
	if store == nil {
		s.writeError(w, &ErrStoreUnavailable{})
		return
	}

	userID, err := queryInt(r, "user_id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Scoped callers only ever see their own history
	if callerID, ok := s.scopedCaller(r); ok {
		if userID != 0 && userID != callerID {
			s.writeError(w, &ErrForbidden{CallerID: callerID, UserID: userID})
			return
		}
		userID = callerID
	}

	records, err := store.ListAnalyses(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListAnalysesResponse{Analyses: records, Count: len(records)})
}

// handleGetAnalysis returns one stored analysis.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	store := s.analyzer.Store()
	if store == nil {
		s.writeError(w, &ErrStoreUnavailable{})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	record, err := store.GetAnalysis(r.Context(), id)
	if err != nil {
		if HTTPStatus(err) == http.StatusNotFound {
			s.writeError(w, &ErrNotFound{ID: idStr})
			return
		}
		s.writeError(w, err)
		return
	}
	if err := s.authorize(r, record.UserID); err != nil {
		// Do not reveal records that belong to someone else
		s.writeError(w, &ErrNotFound{ID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// decodeRequest decodes a JSON body into v, writing a 400 on failure.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			s.errorResponse(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid request body")
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// scopedCaller returns the authenticated caller when its token is limited to one user.
func (s *Server) scopedCaller(r *http.Request) (int, bool) {
	if s.jwtService == nil {
		return 0, false
	}
	callerID, err := middleware.GetCallerID(r)
	if err != nil || callerID == 0 {
		return 0, false
	}
	return callerID, true
}

// authorize rejects scoped callers acting on another user.
func (s *Server) authorize(r *http.Request, userID int) error {
	callerID, ok := s.scopedCaller(r)
	if !ok || callerID == userID {
		return nil
	}
	return &ErrForbidden{CallerID: callerID, UserID: userID}
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: name, Message: fmt.Sprintf("must be a non-negative integer, got %q", raw)}
	}
	return n, nil
}
