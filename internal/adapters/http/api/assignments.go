// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// AssignmentDependencies defines the interface for assignment reads.
type AssignmentDependencies interface {
	ListAssignments(ctx context.Context, shiftID string) ([]model.Assignment, error)
}

// AssignmentsHandler handles assignment listing requests.
type AssignmentsHandler struct {
	deps AssignmentDependencies
}

// NewAssignmentsHandler creates a new assignments handler.
func NewAssignmentsHandler(deps AssignmentDependencies) *AssignmentsHandler {
	return &AssignmentsHandler{deps: deps}
}

type assignmentResponse struct {
	ID        string `json:"id"`
	ShiftID   string `json:"shiftId"`
	TalentID  string `json:"talentId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// HandleListAssignments handles GET /shifts/{shift_id}/assignments requests.
func (h *AssignmentsHandler) HandleListAssignments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter between /shifts/ and /assignments
	id := strings.TrimPrefix(r.URL.Path, "/shifts/")
	id = strings.TrimSuffix(id, "/assignments")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_argument", ErrBadRequest)
		return
	}
	rows, err := h.deps.ListAssignments(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]assignmentResponse, len(rows))
	for i, a := range rows {
		resp[i] = assignmentResponse{
			ID:        a.ID,
			ShiftID:   a.ShiftID,
			TalentID:  a.TalentID,
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
