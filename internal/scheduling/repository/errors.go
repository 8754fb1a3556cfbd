package repository

import "errors"

// Typed failures of the backing calendar store. The use case layer matches
// on these; delivery translates them to HTTP statuses.
var (
	ErrUnavailable = errors.New("backing calendar store unavailable")
	ErrAuthFailed  = errors.New("backing calendar store authentication failed")
	ErrNotFound    = errors.New("event not found in backing calendar store")
	ErrRateLimited = errors.New("backing calendar store rate limit exceeded")
)
