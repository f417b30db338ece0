package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects empty company lists and malformed descriptors
	// before any task is created.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound signals an unknown job, run, or input file on lookup.
	ErrNotFound = errors.New("not found")

	// ErrResearchFailed signals that the evidence capability produced no
	// usable facts for a company.
	ErrResearchFailed = errors.New("research produced no usable facts")
)

// ValidationError reports a scoring input outside its allowed domain.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ExternalServiceError wraps an LLM or third-party API failure. The
// message is preserved verbatim so task errors stay diagnosable.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
