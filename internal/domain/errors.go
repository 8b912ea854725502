package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: session not found")
	ErrInvalidStage = errors.New("domain: operation not valid in current stage")
	ErrConcluded    = errors.New("domain: interview already concluded")
	ErrUnknownStage = errors.New("domain: unknown interview stage")
)
