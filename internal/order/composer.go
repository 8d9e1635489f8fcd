// Package order implements order line composition and order form rules.
package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

// Composer edits the line items of an order draft against a catalog
// snapshot. Lines are addressed by index only.
type Composer struct {
	catalog []model.Product
	items   []model.OrderItem
}

// NewComposer copies products and items.
func NewComposer(products []model.Product, items []model.OrderItem) *Composer {
	return &Composer{
		catalog: append([]model.Product(nil), products...),
		items:   append([]model.OrderItem(nil), items...),
	}
}

// AddItem appends a line for the first catalog product with quantity 1 and
// that product's price. With an empty catalog the line has no product and a
// zero price.
func (c *Composer) AddItem() model.OrderItem {
	item := model.OrderItem{Quantity: 1, Price: model.NewPrice(decimal.Zero)}
	if len(c.catalog) > 0 {
		item.ProductID = c.catalog[0].ID
		item.Price = c.catalog[0].Price
	}
	c.items = append(c.items, item)
	return item
}

// SetItemProduct points line i at pid and re-snapshots its price from the
// catalog, discarding any earlier price.
func (c *Composer) SetItemProduct(i int, pid model.ID) error {
	if err := c.check(i); err != nil {
		return err
	}
	p, ok := c.product(pid)
	if !ok {
		return fmt.Errorf("%w: %s", domainErrors.ErrUnknownProduct, pid)
	}
	c.items[i].ProductID = p.ID
	c.items[i].Price = p.Price
	return nil
}

// SetItemQuantity overrides the quantity of line i.
func (c *Composer) SetItemQuantity(i, qty int) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.items[i].Quantity = qty
	return nil
}

// SetItemPrice overrides the price of line i.
func (c *Composer) SetItemPrice(i int, price model.Price) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.items[i].Price = price
	return nil
}

// RemoveItem deletes line i; later lines shift down by one.
func (c *Composer) RemoveItem(i int) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Items returns a copy of the lines.
func (c *Composer) Items() []model.OrderItem {
	return append([]model.OrderItem(nil), c.items...)
}

// Total sums price times quantity over lines with a set price.
func (c *Composer) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		if d, ok := it.Price.Decimal(); ok {
			total = total.Add(d.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return total
}

func (c *Composer) product(pid model.ID) (model.Product, bool) {
	for _, p := range c.catalog {
		if p.ID == pid {
			return p, true
		}
	}
	return model.Product{}, false
}

func (c *Composer) check(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: %d", domainErrors.ErrItemIndex, i)
	}
	return nil
}

// Normalize defaults an empty status to pending and trims the customer id.
func Normalize(o model.Order) model.Order {
	o = o.Clone()
	o.CustomerID = model.ID(strings.TrimSpace(o.CustomerID.String()))
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	return o
}

// Validate reports the first rule the order breaks.
func Validate(o model.Order) error {
	if o.CustomerID.IsZero() {
		return domainErrors.NewValidationError("customer_id", "Customer is required")
	}
	if len(o.Items) == 0 {
		return domainErrors.NewValidationError("items", "Add at least one item")
	}
	for i, it := range o.Items {
		n := i + 1
		switch {
		case it.ProductID.IsZero():
			return domainErrors.NewValidationError(fmt.Sprintf("items[%d].product_id", i), fmt.Sprintf("Item %d: product is required", n))
		case it.Quantity < 1:
			return domainErrors.NewValidationError(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("Item %d: quantity must be at least 1", n))
		case !it.Price.Valid():
			return domainErrors.NewValidationError(fmt.Sprintf("items[%d].price", i), fmt.Sprintf("Item %d: price must be a non-negative number", n))
		}
	}
	return nil
}
