package service

import "errors"

// Sentinel kinds for service errors. Storage not-found conditions surface as
// the repository's own sentinels.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAINotConfigured = errors.New("ai description generator is not configured")
	ErrNotStarted      = errors.New("service is not started")
)
