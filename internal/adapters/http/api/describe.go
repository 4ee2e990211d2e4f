// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	app "github.com/shiftsync/shiftsync/internal/app"
	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// DescribeDependencies defines the interface for AI shift descriptions.
type DescribeDependencies interface {
	DescribeShift(ctx context.Context, req app.DescribeRequest) (string, error)
}

// DescribeHandler handles shift description requests.
type DescribeHandler struct {
	deps DescribeDependencies
}

// NewDescribeHandler creates a new describe handler.
func NewDescribeHandler(deps DescribeDependencies) *DescribeHandler {
	return &DescribeHandler{deps: deps}
}

// describeRequest mirrors the OpenAPI schema for POST /shifts/describe.
type describeRequest struct {
	RoleType   string  `json:"roleType"`
	Location   string  `json:"location"`
	HourlyRate float64 `json:"hourlyRate"`
}

type describeResponse struct {
	Description string `json:"description"`
}

// HandleDescribe handles POST /shifts/describe requests. Returns 503 when no
// AI backend is configured.
func (h *DescribeHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}
	text, err := h.deps.DescribeShift(r.Context(), app.DescribeRequest{
		RoleType:   model.RoleType(req.RoleType),
		Location:   req.Location,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, describeResponse{Description: text})
}
