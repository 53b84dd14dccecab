package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNeedNotFound  = errors.New("requested need does not exist")
	ErrEntryNotFound = errors.New("requested entry does not exist")
	ErrUserNotFound  = errors.New("requested user does not exist")

	// ErrNeedClosed: submit attempted against a need that is not open.
	ErrNeedClosed = errors.New("need is no longer accepting entries")

	// ErrSelfBid: the need owner may not bid on their own need.
	ErrSelfBid = errors.New("owner cannot submit an entry on their own need")

	// ErrInvalidTransition: accept/reject on a non-pending entry, or
	// accept while the need is no longer eligible.
	ErrInvalidTransition = errors.New("entry state transition is not allowed")
)

// ValidationError marks malformed input rejected at the boundary before it
// reaches the matching or lifecycle components.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
