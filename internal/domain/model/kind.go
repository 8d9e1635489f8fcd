package model

// Kind names a resource with its own list view and CRUD endpoints.
type Kind string

const (
	KindCustomers Kind = "customers"
	KindProducts  Kind = "products"
	KindOrders    Kind = "orders"
)

// Kinds lists resource kinds in navigation order.
var Kinds = []Kind{KindCustomers, KindOrders, KindProducts}

func (k Kind) String() string { return string(k) }
