package dto

import "github.com/polkiloo/findash/internal/domain/model"

// ErrorResponse is returned for rejected hook calls.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	// Login is set when the call needs a session.
	Login string `json:"login,omitempty"`
}

// OpenEditorRequest opens the editor blank (empty id) or on an existing row.
type OpenEditorRequest struct {
	ID model.ID `json:"id"`
}

// LineRequest changes one order line. Absent fields are left alone.
type LineRequest struct {
	ProductID *model.ID    `json:"product_id,omitempty"`
	Quantity  *int         `json:"quantity,omitempty"`
	Price     *model.Price `json:"price,omitempty"`
}

// LinesResponse carries the order editor after a line change.
type LinesResponse struct {
	Items []model.OrderItem `json:"items"`
	Total string            `json:"total"`
}
