package domain

import "errors"

// Sentinel errors shared across services. The delivery layer maps these to
// HTTP status codes; a kind is never downgraded into another (a missing event
// during an update is reported as not found, not forbidden).
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
