package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip, day, or stop does not exist.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing name, unknown travel mode, bad reorder permutation).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
