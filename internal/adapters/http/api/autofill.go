// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	app "github.com/shiftsync/shiftsync/internal/app"
)

// AutofillDependencies defines the interface for auto-fill operations.
type AutofillDependencies interface {
	AutoFill(ctx context.Context, shiftID string, count int) (app.AutoFillResult, error)
}

// AutofillHandler handles auto-fill requests.
type AutofillHandler struct {
	deps AutofillDependencies
}

// NewAutofillHandler creates a new auto-fill handler.
func NewAutofillHandler(deps AutofillDependencies) *AutofillHandler {
	return &AutofillHandler{deps: deps}
}

// autofillRequest mirrors the OpenAPI schema for POST /shifts/autofill.
// Count is a pointer so an absent field is distinguishable from zero; both
// are rejected, but with a message naming the actual problem.
type autofillRequest struct {
	ShiftID string `json:"shiftId"`
	Count   *int   `json:"count"`
}

func (a autofillRequest) validate() error {
	switch {
	case strings.TrimSpace(a.ShiftID) == "":
		return fmt.Errorf("%w: missing shiftId", ErrBadRequest)
	case a.Count == nil:
		return fmt.Errorf("%w: missing count", ErrBadRequest)
	case *a.Count <= 0:
		return fmt.Errorf("%w: count must be a positive integer", ErrBadRequest)
	}
	return nil
}

type invitedTalent struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Score  float64 `json:"score"`
}

type autofillResponse struct {
	Success bool            `json:"success"`
	Invited int             `json:"invited"`
	Talent  []invitedTalent `json:"talent"`
	Message string          `json:"message,omitempty"`
}

// HandleAutofill handles POST /shifts/autofill requests.
func (h *AutofillHandler) HandleAutofill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req autofillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	result, err := h.deps.AutoFill(r.Context(), req.ShiftID, *req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := autofillResponse{
		Success: true,
		Invited: result.Invited,
		Talent:  make([]invitedTalent, len(result.Talent)),
	}
	for i, t := range result.Talent {
		resp.Talent[i] = invitedTalent{ID: t.ID, Name: t.Name, Rating: t.Rating, Score: t.Score}
	}
	if result.Invited == 0 {
		resp.Message = "no matching talent available for this shift"
	}
	writeJSON(w, http.StatusOK, resp)
}
