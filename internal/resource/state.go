package resource

import (
	"errors"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

// OutcomeKind classifies a user-visible notice.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeError   OutcomeKind = "error"
)

const (
	msgSaved   = "Saved successfully"
	msgDeleted = "Deleted successfully"
)

// Outcome is the dismissible notice left by the last mutation.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
}

// FieldError is a validation failure shown inline in the editor.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Editor is the create/edit form of a view.
type Editor[T any] struct {
	Open  bool        `json:"open"`
	ID    model.ID    `json:"id,omitempty"`
	Draft T           `json:"draft"`
	Error *FieldError `json:"error,omitempty"`
}

// State is a snapshot of a resource view.
type State[T any, F any] struct {
	Kind      model.Kind `json:"kind"`
	Items     []T        `json:"items"`
	Filter    F          `json:"filter"`
	Loading   bool       `json:"loading"`
	Saving    bool       `json:"saving"`
	Loaded    bool       `json:"loaded"`
	Mounted   bool       `json:"mounted"`
	LoadError string     `json:"load_error,omitempty"`
	Outcome   *Outcome   `json:"outcome,omitempty"`
	Editor    Editor[T]  `json:"editor"`
}

func fieldError(err error) *FieldError {
	var v *domainErrors.ValidationError
	if errors.As(err, &v) {
		return &FieldError{Field: v.Field, Message: v.Message}
	}
	return &FieldError{Message: err.Error()}
}

func requestMessage(err error) string {
	if re, ok := domainErrors.AsRequestError(err); ok {
		return re.Error()
	}
	return err.Error()
}
