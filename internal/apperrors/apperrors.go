// Package apperrors defines the error taxonomy surfaced by the API. Every
// failure a handler can return carries one of these kinds, which decides the
// HTTP status class: bad input vs. extraction/model trouble.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	// Client errors.
	UnsupportedFileType Kind = "unsupported_file_type"
	NoCriteriaAvailable Kind = "no_criteria_available"

	// Server errors.
	NoTextExtracted          Kind = "no_text_extracted"
	ExtractionBackendFailure Kind = "extraction_backend_failure"
	InvalidModelOutput       Kind = "invalid_model_output"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the kind onto the two status classes the caller cares
// about: "fix your request" vs "try again / contact support".
func (e *Error) StatusCode() int {
	switch e.Kind {
	case UnsupportedFileType, NoCriteriaAvailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of err if an *Error is in its chain, or "".
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}
