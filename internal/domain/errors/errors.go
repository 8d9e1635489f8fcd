package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrBusy           = errors.New("another request is in progress")
	ErrSuperseded     = errors.New("response superseded by a newer request")
	ErrEmptyToken     = errors.New("empty auth token")
	ErrUnknownProduct = errors.New("unknown product")
	ErrItemIndex      = errors.New("item index out of range")
	ErrEditorClosed   = errors.New("editor is not open")
)

// GenericRequestMessage is reported when a failed response carries no readable message.
const GenericRequestMessage = "Request failed"

// ValidationError reports a client-side field rule violation. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// RequestError is the uniform failure of any backend call: a non-success
// HTTP status (Status > 0) or a transport failure (Status == 0).
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return GenericRequestMessage
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// NotFound reports whether backend answered 404.
func (e *RequestError) NotFound() bool { return e.Status == 404 }

// String is used in logs.
func (e *RequestError) String() string {
	if e.Status == 0 {
		return fmt.Sprintf("transport: %s", e.Error())
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Error())
}

// AsRequestError extracts RequestError from err chain.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
