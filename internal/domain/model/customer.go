package model

// CustomerStatus describes whether customer account is active.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Valid reports a known status.
func (s CustomerStatus) Valid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

// Customer is a backend-owned customer record.
type Customer struct {
	ID     ID             `json:"id,omitempty"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Status CustomerStatus `json:"status"`
}

// CustomerPayload is the body of customer POST/PUT requests.
type CustomerPayload struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Status CustomerStatus `json:"status"`
}

// Payload strips server-owned fields.
func (c Customer) Payload() CustomerPayload {
	return CustomerPayload{Name: c.Name, Email: c.Email, Status: c.Status}
}

// CustomerFilter is the free-text search of the customers view.
type CustomerFilter struct {
	Query string `json:"q"`
}
