package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to stable
// machine-readable error codes with errors.Is; none of them is retried
// internally.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
