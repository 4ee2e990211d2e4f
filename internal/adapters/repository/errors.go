package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrProfileNotFound     = errors.New("talent profile not found")
	ErrDuplicateAssignment = errors.New("assignment already exists for shift and talent")
	ErrInvalidQuery        = errors.New("invalid candidate query")
)
