// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// TalentDependencies defines the interface for talent profile operations.
type TalentDependencies interface {
	CreateProfile(ctx context.Context, profile model.TalentProfile) (model.TalentProfile, error)
	GetProfile(ctx context.Context, id string) (model.TalentProfile, error)
}

// TalentHandler handles talent profile requests.
type TalentHandler struct {
	deps TalentDependencies
}

// NewTalentHandler creates a new talent handler.
func NewTalentHandler(deps TalentDependencies) *TalentHandler {
	return &TalentHandler{deps: deps}
}

// talentRequest mirrors the OpenAPI schema for POST /talent.
type talentRequest struct {
	DisplayName     string   `json:"displayName"`
	AvailableNow    bool     `json:"availableNow"`
	MinHourlyRate   float64  `json:"minHourlyRate"`
	Rating          float64  `json:"rating"`
	CompletedShifts int      `json:"completedShifts"`
	Skills          []string `json:"skills"`
}

type talentResponse struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"displayName"`
	AvailableNow    bool     `json:"availableNow"`
	MinHourlyRate   float64  `json:"minHourlyRate"`
	Rating          float64  `json:"rating"`
	CompletedShifts int      `json:"completedShifts"`
	Skills          []string `json:"skills"`
	CreatedAt       string   `json:"createdAt"`
}

func toTalentResponse(p model.TalentProfile) talentResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return talentResponse{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		AvailableNow:    p.AvailableNow,
		MinHourlyRate:   p.MinHourlyRate,
		Rating:          p.Rating,
		CompletedShifts: p.CompletedShifts,
		Skills:          skills,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// HandleTalent handles POST /talent requests.
func (h *TalentHandler) HandleTalent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req talentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}
	created, err := h.deps.CreateProfile(r.Context(), model.TalentProfile{
		DisplayName:     req.DisplayName,
		AvailableNow:    req.AvailableNow,
		MinHourlyRate:   req.MinHourlyRate,
		Rating:          req.Rating,
		CompletedShifts: req.CompletedShifts,
		Skills:          req.Skills,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTalentResponse(created))
}

// HandleTalentByID handles GET /talent/{talent_id} requests.
func (h *TalentHandler) HandleTalentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /talent/
	id := strings.TrimPrefix(r.URL.Path, "/talent/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_argument", ErrBadRequest)
		return
	}
	profile, err := h.deps.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTalentResponse(profile))
}
