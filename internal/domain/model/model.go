// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RoleType enumerates the staffing roles a business can post.
type RoleType string

const (
	RoleBartender RoleType = "bartender"
	RoleServer    RoleType = "server"
	RoleHost      RoleType = "host"
	RoleSommelier RoleType = "sommelier"
	RoleValet     RoleType = "valet"
	RoleSecurity  RoleType = "security"
	RoleCoatCheck RoleType = "coat_check"
)

// Roles lists every known role type.
func Roles() []RoleType {
	return []RoleType{
		RoleBartender, RoleServer, RoleHost, RoleSommelier,
		RoleValet, RoleSecurity, RoleCoatCheck,
	}
}

// Valid reports whether r is one of the known role types.
func (r RoleType) Valid() bool {
	switch r {
	case RoleBartender, RoleServer, RoleHost, RoleSommelier,
		RoleValet, RoleSecurity, RoleCoatCheck:
		return true
	default:
		return false
	}
}

// AssignmentStatus is the lifecycle state of a shift assignment.
type AssignmentStatus string

const (
	StatusInvited   AssignmentStatus = "invited"
	StatusAccepted  AssignmentStatus = "accepted"
	StatusDeclined  AssignmentStatus = "declined"
	StatusCompleted AssignmentStatus = "completed"
)

// Shift is a single staffing request from a business. Role and rate are
// immutable once posted.
type Shift struct {
	ID            string
	BusinessID    string
	RoleType      RoleType
	HourlyRate    float64
	WorkersNeeded int
	Location      string
	StartsAt      time.Time
	EndsAt        time.Time
	CreatedAt     time.Time
}

// Validate checks the invariants a shift must satisfy before being stored.
func (s Shift) Validate() error {
	var errs []error
	if !s.RoleType.Valid() {
		errs = append(errs, fmt.Errorf("unknown role type %q", s.RoleType))
	}
	if s.HourlyRate <= 0 {
		errs = append(errs, errors.New("hourly rate must be positive"))
	}
	if s.WorkersNeeded <= 0 {
		errs = append(errs, errors.New("workers needed must be positive"))
	}
	if !s.EndsAt.IsZero() && !s.StartsAt.IsZero() && !s.EndsAt.After(s.StartsAt) {
		errs = append(errs, errors.New("shift must end after it starts"))
	}
	return errors.Join(errs...)
}

// TalentProfile is a worker's marketplace profile. Read-only to the matching
// routine.
type TalentProfile struct {
	ID              string
	DisplayName     string
	AvailableNow    bool
	MinHourlyRate   float64
	Rating          float64
	CompletedShifts int
	Skills          []string
	CreatedAt       time.Time
}

// Validate checks profile invariants.
func (p TalentProfile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.DisplayName) == "" {
		errs = append(errs, errors.New("display name is required"))
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs = append(errs, errors.New("rating must be between 0 and 5"))
	}
	if p.CompletedShifts < 0 {
		errs = append(errs, errors.New("completed shifts must not be negative"))
	}
	if p.MinHourlyRate < 0 {
		errs = append(errs, errors.New("minimum hourly rate must not be negative"))
	}
	for _, tag := range p.Skills {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, errors.New("skill tags must be non-empty"))
			break
		}
	}
	return errors.Join(errs...)
}

// Assignment pairs a shift with a talent profile. The matching routine only
// ever creates assignments with StatusInvited; other statuses come from the
// surrounding system.
type Assignment struct {
	ID        string
	ShiftID   string
	TalentID  string
	Status    AssignmentStatus
	CreatedAt time.Time
}

// Notification is the event fanned out after an invitation is created.
type Notification struct {
	ID       string
	TalentID string
	ShiftID  string
	RoleType RoleType
	Message  string
	SentAt   time.Time
}
