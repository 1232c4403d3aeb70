package service

import (
	"errors"
	"fmt"
	"strings"
)

// Session service error types. Handlers map these onto HTTP statuses.
var (
	ErrNotFound          = errors.New("session not found")
	ErrForbidden         = errors.New("invalid code")
	ErrMissingCode       = errors.New("missing attendance code")
	ErrSessionFull       = errors.New("session is full")
	ErrDuplicateAttendee = errors.New("client already joined")
	ErrBusy              = errors.New("too many pending operations for session")
)

// ValidationError reports which required fields are missing and which
// provided fields have unusable values.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) ok() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}
