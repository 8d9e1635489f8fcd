package model

// ProductCategory groups products in catalog and analytics.
type ProductCategory string

const (
	CategorySubscriptions ProductCategory = "subscriptions"
	CategoryHardware      ProductCategory = "hardware"
	CategoryServices      ProductCategory = "services"
)

// Valid reports a known category.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategorySubscriptions, CategoryHardware, CategoryServices:
		return true
	}
	return false
}

// Product is a catalog entry.
type Product struct {
	ID       ID              `json:"id,omitempty"`
	Title    string          `json:"title"`
	Price    Price           `json:"price"`
	Category ProductCategory `json:"category"`
	InStock  bool            `json:"in_stock"`
}

// ProductPayload is the body of product POST/PUT requests.
type ProductPayload struct {
	Title    string          `json:"title"`
	Price    Price           `json:"price"`
	Category ProductCategory `json:"category"`
	InStock  bool            `json:"in_stock"`
}

// Payload strips server-owned fields.
func (p Product) Payload() ProductPayload {
	return ProductPayload{Title: p.Title, Price: p.Price, Category: p.Category, InStock: p.InStock}
}

// ProductFilter selects products by category.
type ProductFilter struct {
	Category ProductCategory `json:"category"`
}
