package app

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/guard"
	"github.com/polkiloo/findash/internal/logger"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/session"
	"github.com/polkiloo/findash/internal/usecase"
	"github.com/polkiloo/findash/internal/worker"
)

// AuthenticationObserver tracks whether a session is held.
type AuthenticationObserver interface {
	SetAuthenticated(bool)
}

// Console ties the session, auth flows and views together.
type Console struct {
	auth      *usecase.AuthUseCase
	sessions  *session.Store
	customers *resource.Customers
	products  *resource.Products
	orders    *resource.Orders
	catalog   *resource.ProductCatalog
	lines     *resource.OrderLines
	dashboard *resource.Dashboard
	logger    *slog.Logger
}

// ConsoleDeps lists what NewConsole needs. Refresher, Observer and Logger
// are optional.
type ConsoleDeps struct {
	Auth      *usecase.AuthUseCase
	Sessions  *session.Store
	Customers *resource.Customers
	Products  *resource.Products
	Orders    *resource.Orders
	Catalog   *resource.ProductCatalog
	Lines     *resource.OrderLines
	Dashboard *resource.Dashboard
	Refresher *worker.Refresher
	Observer  AuthenticationObserver
	Logger    *slog.Logger
}

// NewConsole registers views for auto refresh and unmounts every view as
// soon as the session ends.
func NewConsole(d ConsoleDeps) *Console {
	c := &Console{
		auth:      d.Auth,
		sessions:  d.Sessions,
		customers: d.Customers,
		products:  d.Products,
		orders:    d.Orders,
		catalog:   d.Catalog,
		lines:     d.Lines,
		dashboard: d.Dashboard,
		logger:    d.Logger,
	}
	if c.logger == nil {
		c.logger = logger.Discard()
	}
	if d.Refresher != nil {
		d.Refresher.Register(c.dashboard, c.customers, c.orders, c.products)
	}
	d.Sessions.Subscribe(func(s session.Session) {
		if d.Observer != nil {
			d.Observer.SetAuthenticated(s.Authenticated())
		}
		if !s.Authenticated() {
			c.UnmountAll()
		}
	})
	return c
}

func (c *Console) Login(ctx context.Context, email, password string) (session.Session, error) {
	return c.auth.Login(ctx, email, password)
}

func (c *Console) Signup(ctx context.Context, name, email, password string) (session.Session, error) {
	return c.auth.Signup(ctx, name, email, password)
}

func (c *Console) Logout(ctx context.Context) error {
	return c.auth.Logout(ctx)
}

func (c *Console) Session() session.Session {
	return c.sessions.Current()
}

func (c *Console) Authenticated() bool {
	return c.sessions.Authenticated()
}

// Navigate applies the route guard to path.
func (c *Console) Navigate(path string) guard.Decision {
	return guard.Resolve(c.sessions, path)
}

// MountOrders refreshes the product catalog used by the order editor, then
// mounts the orders view. A catalog failure is logged and leaves the
// previous catalog in place; the orders view mounts and loads regardless.
func (c *Console) MountOrders(ctx context.Context) error {
	if err := c.catalog.Load(ctx); err != nil && !errors.Is(err, domainErrors.ErrSuperseded) {
		c.logger.Warn("product catalog load failed", slog.String("error", err.Error()))
	}
	return c.orders.Mount(ctx)
}

// UnmountAll drops every view.
func (c *Console) UnmountAll() {
	c.dashboard.Unmount()
	c.customers.Unmount()
	c.products.Unmount()
	c.orders.Unmount()
}

func (c *Console) Customers() *resource.Customers { return c.customers }
func (c *Console) Products() *resource.Products   { return c.products }
func (c *Console) Orders() *resource.Orders       { return c.orders }
func (c *Console) Lines() *resource.OrderLines    { return c.lines }
func (c *Console) Dashboard() *resource.Dashboard { return c.dashboard }

// Catalog returns the products currently known to the order editor.
func (c *Console) Catalog() []model.Product {
	return c.catalog.Items()
}
