package domain

import "errors"

// ErrNotFound is returned by repo and service functions when no trip matches
// both the trip ID and the owner email.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. zero travelers, missing destination).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a user already has a planned trip for the
// requested destination. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrGeneration is returned when the generative backend fails or returns
// text that is not valid JSON even after code-fence stripping.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrGeneration = errors.New("itinerary generation failed")
