package resource

import (
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/order"
)

// Catalog supplies the product snapshot used when composing order lines.
type Catalog interface {
	Items() []model.Product
}

// OrderLines edits the line items of the open order draft.
type OrderLines struct {
	orders  *Orders
	catalog Catalog
}

// NewOrderLines binds the orders editor to a product catalog.
func NewOrderLines(orders *Orders, catalog Catalog) *OrderLines {
	return &OrderLines{orders: orders, catalog: catalog}
}

func (l *OrderLines) compose(fn func(*order.Composer) error) error {
	products := l.catalog.Items()
	return l.orders.EditDraft(func(o *model.Order) error {
		c := order.NewComposer(products, o.Items)
		if err := fn(c); err != nil {
			return err
		}
		o.Items = c.Items()
		return nil
	})
}

// AddItem appends a line for the first catalog product.
func (l *OrderLines) AddItem() (model.OrderItem, error) {
	var added model.OrderItem
	err := l.compose(func(c *order.Composer) error {
		added = c.AddItem()
		return nil
	})
	return added, err
}

// SetItemProduct selects pid on line i and snapshots its price.
func (l *OrderLines) SetItemProduct(i int, pid model.ID) error {
	return l.compose(func(c *order.Composer) error { return c.SetItemProduct(i, pid) })
}

// SetItemQuantity overrides the quantity of line i.
func (l *OrderLines) SetItemQuantity(i, qty int) error {
	return l.compose(func(c *order.Composer) error { return c.SetItemQuantity(i, qty) })
}

// SetItemPrice overrides the price of line i.
func (l *OrderLines) SetItemPrice(i int, price model.Price) error {
	return l.compose(func(c *order.Composer) error { return c.SetItemPrice(i, price) })
}

// LineChange names the fields of one line to change; nil fields are kept.
type LineChange struct {
	ProductID *model.ID
	Quantity  *int
	Price     *model.Price
}

// ChangeItem applies ch to line i in one draft edit, so either every field
// changes or none does. The product goes first so an explicit price
// overrides the snapshot it takes.
func (l *OrderLines) ChangeItem(i int, ch LineChange) error {
	return l.compose(func(c *order.Composer) error {
		if ch.ProductID != nil {
			if err := c.SetItemProduct(i, *ch.ProductID); err != nil {
				return err
			}
		}
		if ch.Quantity != nil {
			if err := c.SetItemQuantity(i, *ch.Quantity); err != nil {
				return err
			}
		}
		if ch.Price != nil {
			return c.SetItemPrice(i, *ch.Price)
		}
		return nil
	})
}

// RemoveItem drops line i.
func (l *OrderLines) RemoveItem(i int) error {
	return l.compose(func(c *order.Composer) error { return c.RemoveItem(i) })
}

// Total is the draft's order value.
func (l *OrderLines) Total() string {
	draft := l.orders.Editor().Draft
	return order.NewComposer(nil, draft.Items).Total().StringFixed(2)
}
