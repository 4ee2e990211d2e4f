package payments

import "errors"

// Sentinel kinds for payment simulation errors.
var (
	ErrMissingShift          = errors.New("shift id is required")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")
	ErrCorruptCache          = errors.New("idempotency cache returned unexpected value")
)
