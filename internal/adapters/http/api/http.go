// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shiftsync/shiftsync/internal/adapters/payments"
	"github.com/shiftsync/shiftsync/internal/adapters/repository"
	app "github.com/shiftsync/shiftsync/internal/app"
	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AutoFill(ctx context.Context, shiftID string, count int) (app.AutoFillResult, error)

	CreateShift(ctx context.Context, shift model.Shift) (model.Shift, error)
	GetShift(ctx context.Context, id string) (model.Shift, error)
	ListShifts(ctx context.Context, limit int) ([]model.Shift, error)
	ListAssignments(ctx context.Context, shiftID string) ([]model.Assignment, error)

	CreateProfile(ctx context.Context, profile model.TalentProfile) (model.TalentProfile, error)
	GetProfile(ctx context.Context, id string) (model.TalentProfile, error)

	SimulatePayment(ctx context.Context, req payments.Request) (payments.Receipt, error)
	DescribeShift(ctx context.Context, req app.DescribeRequest) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	autofillHandler    *AutofillHandler
	shiftsHandler      *ShiftsHandler
	talentHandler      *TalentHandler
	assignmentsHandler *AssignmentsHandler
	paymentsHandler    *PaymentsHandler
	describeHandler    *DescribeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		autofillHandler:    NewAutofillHandler(deps),
		shiftsHandler:      NewShiftsHandler(deps),
		talentHandler:      NewTalentHandler(deps),
		assignmentsHandler: NewAssignmentsHandler(deps),
		paymentsHandler:    NewPaymentsHandler(deps),
		describeHandler:    NewDescribeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/shifts/autofill", MetricsMiddleware(s.autofillHandler.HandleAutofill, "autofill"))
	mux.HandleFunc("/shifts/describe", MetricsMiddleware(s.describeHandler.HandleDescribe, "describe"))
	mux.HandleFunc("/shifts", MetricsMiddleware(s.shiftsHandler.HandleShifts, "shifts"))
	mux.HandleFunc("/shifts/", MetricsMiddleware(s.handleShiftSubtree, "shift"))
	mux.HandleFunc("/talent", MetricsMiddleware(s.talentHandler.HandleTalent, "talent"))
	mux.HandleFunc("/talent/", MetricsMiddleware(s.talentHandler.HandleTalentByID, "talent_by_id"))
	mux.HandleFunc("/payments/simulate", MetricsMiddleware(s.paymentsHandler.HandleSimulate, "payments"))
}

// handleShiftSubtree splits /shifts/{id} from /shifts/{id}/assignments.
func (s *Server) handleShiftSubtree(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/assignments") {
		s.assignmentsHandler.HandleListAssignments(w, r)
		return
	}
	s.shiftsHandler.HandleShiftByID(w, r)
}

// errorResponse is the wire shape for all failed requests. Clients key off
// the error text; code is a stable machine-readable discriminator.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeServiceError translates upstream sentinel errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, repository.ErrShiftNotFound),
		errors.Is(err, repository.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrAINotConfigured):
		writeError(w, http.StatusServiceUnavailable, "ai_not_configured", err)
	case errors.Is(err, app.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_started", err)
	case errors.Is(err, payments.ErrMissingShift),
		errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, payments.ErrMissingIdempotencyKey):
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
