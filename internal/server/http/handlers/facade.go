package handlers

import (
	"context"

	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/guard"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/session"
)

// AuthFacade describes the session operations exposed over HTTP.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	Signup(ctx context.Context, name, email, password string) (session.Session, error)
	Logout(ctx context.Context) error
	Session() session.Session
	Navigate(path string) guard.Decision
}

// ResourceView is the part of a resource controller driven by HTTP hooks.
type ResourceView[T any, F any] interface {
	Name() string
	State() resource.State[T, F]
	Mount(ctx context.Context) error
	Unmount()
	Reload(ctx context.Context) error
	SetFilter(ctx context.Context, f F) error
	Create(ctx context.Context, entity T) (resource.Outcome, error)
	Update(ctx context.Context, id model.ID, entity T) (resource.Outcome, error)
	Delete(ctx context.Context, id model.ID) (resource.Outcome, error)
	DismissOutcome()
	OpenEditor(id model.ID) error
	ReplaceDraft(draft T) error
	CloseEditor()
	Save(ctx context.Context) (resource.Outcome, error)
}

// LineEditor edits the lines of the order being composed.
type LineEditor interface {
	AddItem() (model.OrderItem, error)
	ChangeItem(i int, ch resource.LineChange) error
	RemoveItem(i int) error
	Total() string
}

// OrderDrafts exposes the order editor whose lines are being changed.
type OrderDrafts interface {
	Editor() resource.Editor[model.Order]
}

// DashboardView is the analytics view driven by HTTP hooks.
type DashboardView interface {
	State() resource.DashboardState
	Mount(ctx context.Context) error
	Unmount()
	Reload(ctx context.Context) error
	SetFilter(ctx context.Context, f model.DashboardFilter) error
}
