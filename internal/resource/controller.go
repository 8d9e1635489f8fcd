// Package resource manages list, filter and CRUD state of the console's
// resource views over the backend API.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

// Requester performs backend calls. backend.Client satisfies it.
type Requester interface {
	Request(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Scheduler runs load tasks off the caller's goroutine.
type Scheduler interface {
	Schedule(name string, fn func(context.Context))
}

// OutcomeObserver counts outcomes per resource.
type OutcomeObserver interface {
	ObserveOutcome(resource, kind string)
}

// Options carries optional collaborators shared by every controller.
type Options struct {
	Scheduler Scheduler
	Observer  OutcomeObserver
	Logger    *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Controller holds the state of one resource view. All methods are safe
// for concurrent use; network calls run outside the lock.
type Controller[T any, F any] struct {
	schema Schema[T, F]
	client Requester
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	view    view
	items   []T
	filter  F
	loading bool
	saving  bool
	loaded  bool
	loadErr string
	outcome *Outcome
	editor  Editor[T]
}

// New creates a controller for schema.
func New[T any, F any](schema Schema[T, F], client Requester, opts Options) *Controller[T, F] {
	return &Controller[T, F]{
		schema: schema,
		client: client,
		opts:   opts,
		logger: opts.logger().With(slog.String("resource", schema.Kind.String())),
		items:  []T{},
		editor: Editor[T]{Draft: schema.blank()},
	}
}

// Name identifies the controller in logs and the refresher.
func (c *Controller[T, F]) Name() string { return c.schema.Kind.String() }

// Kind returns the resource kind.
func (c *Controller[T, F]) Kind() model.Kind { return c.schema.Kind }

// Load fetches the list for the active filter and replaces the items. A
// response to anything but the newest load (or one that arrives after the
// view was unmounted) is dropped with ErrSuperseded.
func (c *Controller[T, F]) Load(ctx context.Context) error {
	c.mu.Lock()
	t := c.view.next()
	filter := c.filter
	c.loading = true
	c.mu.Unlock()

	reqCtx, cancel := bind(ctx, t)
	items, err := c.fetch(reqCtx, filter)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if stale := c.view.check(t); stale != nil {
		c.logger.Debug("dropping stale load", slog.Uint64("seq", t.seq))
		return stale
	}
	c.loading = false
	if err != nil {
		c.loadErr = requestMessage(err)
		return err
	}
	c.items = items
	c.loaded = true
	c.loadErr = ""
	return nil
}

// Reload is Load under the refresher's name.
func (c *Controller[T, F]) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Controller[T, F]) fetch(ctx context.Context, filter F) ([]T, error) {
	raw, err := c.client.Request(ctx, http.MethodGet, c.schema.listPath(filter), nil)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if raw == nil {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SetFilter stores f and enqueues a load. Without a scheduler the load runs
// inline and its error is returned.
func (c *Controller[T, F]) SetFilter(ctx context.Context, f F) error {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()

	if c.opts.Scheduler == nil {
		return c.Load(ctx)
	}
	c.opts.Scheduler.Schedule(c.Name()+" load", func(ctx context.Context) {
		if err := c.Load(ctx); err != nil && !errors.Is(err, domainErrors.ErrSuperseded) {
			c.logger.Warn("scheduled load failed", slog.String("error", err.Error()))
		}
	})
	return nil
}

// Filter returns the active filter.
func (c *Controller[T, F]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Mount starts a new view generation and runs the initial load.
func (c *Controller[T, F]) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.view.mount()
	c.mu.Unlock()
	return c.Load(ctx)
}

// Unmount cancels requests of the current view and drops their responses.
// Items and filter stay cached for the next mount.
func (c *Controller[T, F]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.unmount()
	c.loading = false
	c.saving = false
	c.outcome = nil
	c.editor = Editor[T]{Draft: c.schema.blank()}
}

// Mounted reports whether a view is mounted.
func (c *Controller[T, F]) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.mounted
}

// Create submits a new entity.
func (c *Controller[T, F]) Create(ctx context.Context, entity T) (Outcome, error) {
	return c.submit(ctx, "", entity)
}

// Update replaces the entity with id.
func (c *Controller[T, F]) Update(ctx context.Context, id model.ID, entity T) (Outcome, error) {
	return c.submit(ctx, id, entity)
}

// submit normalizes and validates entity, then POSTs or PUTs it. The
// returned error is a ValidationError or ErrBusy; backend failures become
// the error outcome.
func (c *Controller[T, F]) submit(ctx context.Context, id model.ID, entity T) (Outcome, error) {
	entity = c.schema.normalize(entity)
	if err := c.schema.validate(entity); err != nil {
		c.mu.Lock()
		if c.editor.Open {
			c.editor.Error = fieldError(err)
		}
		c.mu.Unlock()
		return Outcome{}, err
	}

	method, path := http.MethodPost, c.schema.Path
	if !id.IsZero() {
		var err error
		if path, err = c.schema.itemPath(id); err != nil {
			return Outcome{}, err
		}
		method = http.MethodPut
	}

	t, err := c.beginMutation()
	if err != nil {
		return Outcome{}, err
	}
	reqCtx, cancel := bind(ctx, t)
	_, reqErr := c.client.Request(reqCtx, method, path, c.schema.body(entity))
	cancel()

	return c.finishMutation(ctx, t, reqErr, msgSaved, true)
}

// Delete removes the entity with id.
func (c *Controller[T, F]) Delete(ctx context.Context, id model.ID) (Outcome, error) {
	path, err := c.schema.itemPath(id)
	if err != nil {
		return Outcome{}, err
	}
	t, err := c.beginMutation()
	if err != nil {
		return Outcome{}, err
	}

	reqCtx, cancel := bind(ctx, t)
	_, reqErr := c.client.Request(reqCtx, http.MethodDelete, path, nil)
	cancel()

	return c.finishMutation(ctx, t, reqErr, msgDeleted, false)
}

func (c *Controller[T, F]) beginMutation() (ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return ticket{}, domainErrors.ErrBusy
	}
	c.saving = true
	return c.view.peek(), nil
}

func (c *Controller[T, F]) finishMutation(ctx context.Context, t ticket, reqErr error, success string, closeEditor bool) (Outcome, error) {
	out := Outcome{Kind: OutcomeSuccess, Message: success}
	if reqErr != nil {
		out = Outcome{Kind: OutcomeError, Message: requestMessage(reqErr)}
	}

	c.mu.Lock()
	if !c.view.sameMount(t) {
		c.mu.Unlock()
		c.logger.Debug("dropping mutation result of unmounted view")
		return out, nil
	}
	c.saving = false
	c.setOutcome(out)
	if reqErr == nil && closeEditor {
		c.editor = Editor[T]{Draft: c.schema.blank()}
	}
	c.mu.Unlock()

	if reqErr == nil {
		if err := c.Load(ctx); err != nil && !errors.Is(err, domainErrors.ErrSuperseded) {
			c.logger.Warn("reload after mutation failed", slog.String("error", err.Error()))
		}
	}
	return out, nil
}

func (c *Controller[T, F]) setOutcome(out Outcome) {
	c.outcome = &out
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveOutcome(c.Name(), string(out.Kind))
	}
}

// DismissOutcome clears the notice.
func (c *Controller[T, F]) DismissOutcome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcome = nil
}

// OpenEditor opens the form for the listed entity id, or a blank draft when
// id is empty.
func (c *Controller[T, F]) OpenEditor(id model.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id.IsZero() {
		c.editor = Editor[T]{Open: true, Draft: c.schema.blank()}
		return nil
	}
	entity, ok := c.find(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	c.editor = Editor[T]{Open: true, ID: id, Draft: entity}
	return nil
}

// ReplaceDraft swaps the editor draft.
func (c *Controller[T, F]) ReplaceDraft(draft T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editor.Open {
		return domainErrors.ErrEditorClosed
	}
	c.editor.Draft = c.schema.clone(draft)
	c.editor.Error = nil
	return nil
}

// EditDraft mutates the draft in place; an error from fn leaves it unchanged.
func (c *Controller[T, F]) EditDraft(fn func(*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editor.Open {
		return domainErrors.ErrEditorClosed
	}
	draft := c.schema.clone(c.editor.Draft)
	if err := fn(&draft); err != nil {
		return err
	}
	c.editor.Draft = draft
	c.editor.Error = nil
	return nil
}

// CloseEditor discards the draft.
func (c *Controller[T, F]) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor = Editor[T]{Draft: c.schema.blank()}
}

// Editor returns a copy of the form state.
func (c *Controller[T, F]) Editor() Editor[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editorCopy()
}

func (c *Controller[T, F]) editorCopy() Editor[T] {
	e := c.editor
	e.Draft = c.schema.clone(e.Draft)
	if e.Error != nil {
		fe := *e.Error
		e.Error = &fe
	}
	return e
}

// Save submits the draft: a create without id, an update otherwise.
func (c *Controller[T, F]) Save(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if !c.editor.Open {
		c.mu.Unlock()
		return Outcome{}, domainErrors.ErrEditorClosed
	}
	id := c.editor.ID
	draft := c.schema.clone(c.editor.Draft)
	c.mu.Unlock()

	return c.submit(ctx, id, draft)
}

// Find returns the listed entity with id.
func (c *Controller[T, F]) Find(id model.ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(id)
}

func (c *Controller[T, F]) find(id model.ID) (T, bool) {
	for _, it := range c.items {
		if c.schema.ID(it) == id {
			return c.schema.clone(it), true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the list.
func (c *Controller[T, F]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemsCopy()
}

func (c *Controller[T, F]) itemsCopy() []T {
	out := make([]T, len(c.items))
	for i, it := range c.items {
		out[i] = c.schema.clone(it)
	}
	return out
}

// State returns a snapshot of the view.
func (c *Controller[T, F]) State() State[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State[T, F]{
		Kind:      c.schema.Kind,
		Items:     c.itemsCopy(),
		Filter:    c.filter,
		Loading:   c.loading,
		Saving:    c.saving,
		Loaded:    c.loaded,
		Mounted:   c.view.mounted,
		LoadError: c.loadErr,
		Editor:    c.editorCopy(),
	}
	if c.outcome != nil {
		out := *c.outcome
		s.Outcome = &out
	}
	return s
}
