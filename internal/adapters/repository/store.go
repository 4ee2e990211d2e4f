// Package repository defines the marketplace store contracts and errors.
package repository

import (
	"context"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// CandidateQuery describes the candidate-pool fetch used by auto-fill: only
// available-now profiles whose minimum rate does not exceed MaxHourlyRate,
// minus the excluded ids, ordered by rating descending then completed shifts
// descending, capped at Limit rows.
type CandidateQuery struct {
	MaxHourlyRate float64
	Exclude       map[string]struct{}
	Limit         int
}

// ShiftStore provides access to posted shifts.
type ShiftStore interface {
	CreateShift(ctx context.Context, shift model.Shift) (model.Shift, error)
	// GetShift returns ErrShiftNotFound for unknown ids.
	GetShift(ctx context.Context, id string) (model.Shift, error)
	ListShifts(ctx context.Context, limit int) ([]model.Shift, error)
}

// ProfileStore provides read access to talent profiles plus creation for
// bootstrap and tests.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile model.TalentProfile) (model.TalentProfile, error)
	// GetProfile returns ErrProfileNotFound for unknown ids.
	GetProfile(ctx context.Context, id string) (model.TalentProfile, error)
	Candidates(ctx context.Context, q CandidateQuery) ([]model.TalentProfile, error)
}

// AssignmentStore provides access to shift assignments.
type AssignmentStore interface {
	// TalentIDsForShift returns ids of talent linked to the shift through any
	// assignment status. Auto-fill uses this as its exclusion set.
	TalentIDsForShift(ctx context.Context, shiftID string) (map[string]struct{}, error)

	// CreateAssignments inserts the batch all-or-nothing. A duplicate
	// (shift, talent) pair anywhere in the batch fails the whole call with
	// ErrDuplicateAssignment and leaves the store unchanged.
	CreateAssignments(ctx context.Context, assignments []model.Assignment) ([]model.Assignment, error)

	ListAssignments(ctx context.Context, shiftID string) ([]model.Assignment, error)
}

// Counts is a point-in-time row census used by stats and metrics.
type Counts struct {
	Shifts      int
	Profiles    int
	Assignments int
}

// Store bundles the three collaborator contracts behind one backend.
type Store interface {
	ShiftStore
	ProfileStore
	AssignmentStore

	Count(ctx context.Context) Counts
	Close() error
}
