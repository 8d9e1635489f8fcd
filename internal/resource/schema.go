package resource

import (
	"net/url"
	"path"
	"strings"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/order"
	"github.com/polkiloo/findash/internal/usecase"
)

// Schema describes one resource kind to the generic controller.
type Schema[T any, F any] struct {
	Kind model.Kind
	// Path is the collection endpoint, e.g. "/customers".
	Path string
	// Query turns a filter into list parameters; empty values are skipped.
	Query     func(F) url.Values
	Normalize func(T) T
	Validate  func(T) error
	// Body is the POST/PUT payload for an entity.
	Body  func(T) any
	ID    func(T) model.ID
	Blank func() T
	// Clone deep-copies entities holding slices; nil means plain assignment.
	Clone func(T) T
}

func (s Schema[T, F]) listPath(f F) string {
	if s.Query == nil {
		return s.Path
	}
	values := url.Values{}
	for k, vs := range s.Query(f) {
		for _, v := range vs {
			if v != "" {
				values.Add(k, v)
			}
		}
	}
	if len(values) == 0 {
		return s.Path
	}
	return s.Path + "?" + values.Encode()
}

// itemPath addresses one entity. Ids made only of dots would resolve to a
// parent path and are rejected.
func (s Schema[T, F]) itemPath(id model.ID) (string, error) {
	if strings.Trim(id.String(), ".") == "" {
		return "", domainErrors.NewValidationError("id", "Invalid id")
	}
	return path.Join(s.Path, url.PathEscape(id.String())), nil
}

func (s Schema[T, F]) normalize(v T) T {
	if s.Normalize == nil {
		return v
	}
	return s.Normalize(v)
}

func (s Schema[T, F]) validate(v T) error {
	if s.Validate == nil {
		return nil
	}
	return s.Validate(v)
}

func (s Schema[T, F]) body(v T) any {
	if s.Body == nil {
		return v
	}
	return s.Body(v)
}

func (s Schema[T, F]) blank() T {
	if s.Blank == nil {
		var zero T
		return zero
	}
	return s.Blank()
}

func (s Schema[T, F]) clone(v T) T {
	if s.Clone == nil {
		return v
	}
	return s.Clone(v)
}

type (
	Customers = Controller[model.Customer, model.CustomerFilter]
	Products  = Controller[model.Product, model.ProductFilter]
	Orders    = Controller[model.Order, model.OrderFilter]
)

// CustomerSchema lists by free text (q) and submits {name, email, status}.
func CustomerSchema() Schema[model.Customer, model.CustomerFilter] {
	return Schema[model.Customer, model.CustomerFilter]{
		Kind: model.KindCustomers,
		Path: "/customers",
		Query: func(f model.CustomerFilter) url.Values {
			return url.Values{"q": {f.Query}}
		},
		Normalize: usecase.NormalizeCustomer,
		Validate:  usecase.ValidateCustomer,
		Body:      func(c model.Customer) any { return c.Payload() },
		ID:        func(c model.Customer) model.ID { return c.ID },
		Blank: func() model.Customer {
			return model.Customer{Status: model.CustomerStatusActive}
		},
	}
}

// ProductSchema lists by category and submits {title, price, category, in_stock}.
func ProductSchema() Schema[model.Product, model.ProductFilter] {
	return Schema[model.Product, model.ProductFilter]{
		Kind: model.KindProducts,
		Path: "/products",
		Query: func(f model.ProductFilter) url.Values {
			return url.Values{"category": {string(f.Category)}}
		},
		Normalize: usecase.NormalizeProduct,
		Validate:  usecase.ValidateProduct,
		Body:      func(p model.Product) any { return p.Payload() },
		ID:        func(p model.Product) model.ID { return p.ID },
		Blank: func() model.Product {
			return model.Product{Category: model.CategorySubscriptions, InStock: true}
		},
	}
}

// OrderSchema lists by status and submits {customer_id, items, status}.
func OrderSchema() Schema[model.Order, model.OrderFilter] {
	return Schema[model.Order, model.OrderFilter]{
		Kind: model.KindOrders,
		Path: "/orders",
		Query: func(f model.OrderFilter) url.Values {
			return url.Values{"status": {string(f.Status)}}
		},
		Normalize: order.Normalize,
		Validate:  order.Validate,
		Body:      func(o model.Order) any { return o.Payload() },
		ID:        func(o model.Order) model.ID { return o.ID },
		Blank: func() model.Order {
			return model.Order{Status: model.OrderStatusPending, Items: []model.OrderItem{}}
		},
		Clone: func(o model.Order) model.Order { return o.Clone() },
	}
}

// NewCustomers creates the customers controller.
func NewCustomers(client Requester, opts Options) *Customers {
	return New(CustomerSchema(), client, opts)
}

// NewProducts creates the products controller.
func NewProducts(client Requester, opts Options) *Products {
	return New(ProductSchema(), client, opts)
}

// NewOrders creates the orders controller.
func NewOrders(client Requester, opts Options) *Orders {
	return New(OrderSchema(), client, opts)
}
