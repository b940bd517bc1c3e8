package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGeneration is returned by the text generation client when the upstream
// call cannot complete: transport failure, non-success status, or a malformed
// response body. The planner absorbs it per stage.
var ErrGeneration = errors.New("generation error")

// ErrMissingCredential is returned by external API clients that were
// constructed without an access key.
// Handlers should map this to HTTP 503.
var ErrMissingCredential = errors.New("missing credential")

// ErrRequestFailed is returned by external API clients when the upstream
// request did not succeed, after any retries.
// Handlers should map this to HTTP 502.
var ErrRequestFailed = errors.New("request failed")

// ErrInsufficientPoints is returned when a redemption costs more than the
// current balance. Handlers should map this to HTTP 409.
var ErrInsufficientPoints = errors.New("insufficient points")
