package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"busy", ErrBusy},
		{"superseded", ErrSuperseded},
		{"empty token", ErrEmptyToken},
		{"unknown product", ErrUnknownProduct},
		{"item index", ErrItemIndex},
		{"editor closed", ErrEditorClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("title", "Title is required"))
	if !IsValidation(err) {
		t.Fatal("expected validation error")
	}
	if err.Error() != "create: Title is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if IsValidation(ErrBusy) {
		t.Fatal("busy is not a validation error")
	}
}

func TestRequestError(t *testing.T) {
	err := fmt.Errorf("delete: %w", &RequestError{Status: 404, Message: "not found"})
	re, ok := AsRequestError(err)
	if !ok {
		t.Fatal("expected request error")
	}
	if !re.NotFound() || re.Error() != "not found" {
		t.Fatalf("unexpected request error %+v", re)
	}
	if re.String() != "status 404: not found" {
		t.Fatalf("unexpected string %q", re.String())
	}

	transport := &RequestError{Err: context.Canceled}
	if transport.Error() != GenericRequestMessage {
		t.Fatalf("expected generic message, got %q", transport.Error())
	}
	if !stdErrors.Is(transport, context.Canceled) {
		t.Fatal("expected unwrap to expose cause")
	}
	if _, ok := AsRequestError(ErrBusy); ok {
		t.Fatal("busy is not a request error")
	}
}
