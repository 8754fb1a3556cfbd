package scheduling

import "fmt"

// ValidationError names the offending field of a malformed request.
// Always recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PartialResolutionError reports a two-step resolution whose first mutation
// was applied but whose second failed. The backing store offers no
// transactions, so the first step cannot be rolled back automatically; the
// caller must surface this so the user can follow up manually.
type PartialResolutionError struct {
	CompletedStep string // "move" or "delete"
	Err           error
}

func (e *PartialResolutionError) Error() string {
	return fmt.Sprintf("resolution partially applied: %s succeeded but the follow-up create failed: %v", e.CompletedStep, e.Err)
}

func (e *PartialResolutionError) Unwrap() error {
	return e.Err
}
