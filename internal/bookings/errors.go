package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrUnavailable        = errors.New("unavailable")
	ErrCapacityExceeded   = errors.New("service capacity exceeded")
	ErrSchedulingConflict = errors.New("time slot conflicts with an existing booking")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidState       = errors.New("booking can only be modified while pending")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
)

// NotFoundError names the missing resource without saying whether it
// exists for someone else.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type UnavailableError struct {
	Resource string
}

func (e *UnavailableError) Error() string {
	return e.Resource + " is currently unavailable"
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

type CapacityExceededError struct {
	Limit int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("service capacity exceeded. Maximum: %d", e.Limit)
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return ErrValidation }

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
