package model

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusRefunded OrderStatus = "refunded"
	OrderStatusShipped  OrderStatus = "shipped"
)

// Valid reports a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusPending, OrderStatusRefunded, OrderStatusShipped:
		return true
	}
	return false
}

// OrderItem is an order line. Price is a snapshot of the product price taken
// when the product was selected; it does not follow later product changes.
type OrderItem struct {
	ProductID ID    `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     Price `json:"price"`
}

// Order is a customer purchase with its lines.
type Order struct {
	ID           ID          `json:"id,omitempty"`
	CustomerID   ID          `json:"customer_id"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	OrderDate    string      `json:"order_date,omitempty"`
	CustomerName string      `json:"customer_name,omitempty"`
}

// OrderPayload is the body of order POST/PUT requests.
type OrderPayload struct {
	CustomerID ID          `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	Status     OrderStatus `json:"status"`
}

// Payload strips server-owned and display-only fields.
func (o Order) Payload() OrderPayload {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	return OrderPayload{CustomerID: o.CustomerID, Items: items, Status: o.Status}
}

// Clone copies order including its item slice.
func (o Order) Clone() Order {
	o.Items = append(make([]OrderItem, 0, len(o.Items)), o.Items...)
	return o
}

// OrderFilter selects orders by status.
type OrderFilter struct {
	Status OrderStatus `json:"status"`
}
