// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// ShiftDependencies defines the interface for shift CRUD operations.
type ShiftDependencies interface {
	CreateShift(ctx context.Context, shift model.Shift) (model.Shift, error)
	GetShift(ctx context.Context, id string) (model.Shift, error)
	ListShifts(ctx context.Context, limit int) ([]model.Shift, error)
}

// ShiftsHandler handles shift collection and item requests.
type ShiftsHandler struct {
	deps ShiftDependencies
}

// NewShiftsHandler creates a new shifts handler.
func NewShiftsHandler(deps ShiftDependencies) *ShiftsHandler {
	return &ShiftsHandler{deps: deps}
}

const defaultListLimit = 50

// shiftRequest mirrors the OpenAPI schema for POST /shifts.
type shiftRequest struct {
	BusinessID    string  `json:"businessId"`
	RoleType      string  `json:"roleType"`
	HourlyRate    float64 `json:"hourlyRate"`
	WorkersNeeded int     `json:"workersNeeded"`
	Location      string  `json:"location"`
	StartsAt      string  `json:"startsAt"`
	EndsAt        string  `json:"endsAt"`
}

func (s shiftRequest) toModel() (model.Shift, error) {
	if strings.TrimSpace(s.BusinessID) == "" {
		return model.Shift{}, fmt.Errorf("%w: missing businessId", ErrBadRequest)
	}
	shift := model.Shift{
		BusinessID:    s.BusinessID,
		RoleType:      model.RoleType(s.RoleType),
		HourlyRate:    s.HourlyRate,
		WorkersNeeded: s.WorkersNeeded,
		Location:      s.Location,
	}
	if s.StartsAt != "" {
		ts, err := time.Parse(time.RFC3339, s.StartsAt)
		if err != nil {
			return model.Shift{}, fmt.Errorf("%w: invalid startsAt; must be RFC3339", ErrBadRequest)
		}
		shift.StartsAt = ts
	}
	if s.EndsAt != "" {
		ts, err := time.Parse(time.RFC3339, s.EndsAt)
		if err != nil {
			return model.Shift{}, fmt.Errorf("%w: invalid endsAt; must be RFC3339", ErrBadRequest)
		}
		shift.EndsAt = ts
	}
	return shift, nil
}

type shiftResponse struct {
	ID            string  `json:"id"`
	BusinessID    string  `json:"businessId"`
	RoleType      string  `json:"roleType"`
	HourlyRate    float64 `json:"hourlyRate"`
	WorkersNeeded int     `json:"workersNeeded"`
	Location      string  `json:"location,omitempty"`
	StartsAt      string  `json:"startsAt,omitempty"`
	EndsAt        string  `json:"endsAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toShiftResponse(s model.Shift) shiftResponse {
	resp := shiftResponse{
		ID:            s.ID,
		BusinessID:    s.BusinessID,
		RoleType:      string(s.RoleType),
		HourlyRate:    s.HourlyRate,
		WorkersNeeded: s.WorkersNeeded,
		Location:      s.Location,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
	if !s.StartsAt.IsZero() {
		resp.StartsAt = s.StartsAt.Format(time.RFC3339)
	}
	if !s.EndsAt.IsZero() {
		resp.EndsAt = s.EndsAt.Format(time.RFC3339)
	}
	return resp
}

// HandleShifts handles POST /shifts and GET /shifts requests.
func (h *ShiftsHandler) HandleShifts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ShiftsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}
	shift, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	created, err := h.deps.CreateShift(r.Context(), shift)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftResponse(created))
}

func (h *ShiftsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		limit = n
	}
	shifts, err := h.deps.ListShifts(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]shiftResponse, len(shifts))
	for i, s := range shifts {
		resp[i] = toShiftResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleShiftByID handles GET /shifts/{shift_id} requests.
func (h *ShiftsHandler) HandleShiftByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /shifts/
	id := strings.TrimPrefix(r.URL.Path, "/shifts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_argument", ErrBadRequest)
		return
	}
	shift, err := h.deps.GetShift(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftResponse(shift))
}
