package models

import "errors"

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports a form field rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
