package services

import "errors"

// Boundary failure kinds. Handlers map these to HTTP statuses; they
// never escape as panics.
var (
	ErrNotFound          = errors.New("not found")
	ErrGenerationFailed  = errors.New("generation failed")
	ErrGenerationTimeout = errors.New("generation timed out")
	ErrParseFailure      = errors.New("generation returned malformed JSON")
)
