// Package worker runs view load tasks on a small goroutine pool and
// periodically refreshes mounted views.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
)

// Target is a view the refresher can reload.
type Target interface {
	Name() string
	Reload(ctx context.Context) error
	Mounted() bool
}

type job struct {
	name string
	fn   func(context.Context)
}

// Refresher executes scheduled loads concurrently. Before Start and after
// Stop, Schedule runs the task inline.
type Refresher struct {
	interval time.Duration
	workers  int
	logger   *slog.Logger

	jobs chan job
	wg   sync.WaitGroup

	mu      sync.Mutex
	runCtx  context.Context
	cancel  context.CancelFunc
	targets []Target
}

// NewRefresher constructs the pool. interval <= 0 disables auto refresh.
func NewRefresher(workers int, interval time.Duration, logger *slog.Logger) *Refresher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		interval: interval,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan job, workers*4),
	}
}

// Register adds targets for auto refresh.
func (r *Refresher) Register(targets ...Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, targets...)
}

// Schedule queues fn. It blocks while the queue is full.
func (r *Refresher) Schedule(name string, fn func(context.Context)) {
	r.mu.Lock()
	runCtx := r.runCtx
	r.mu.Unlock()

	if runCtx == nil {
		fn(context.Background())
		return
	}
	select {
	case r.jobs <- job{name: name, fn: fn}:
	case <-runCtx.Done():
		r.logger.Debug("refresher stopped, dropping task", slog.String("task", name))
	}
}

// Start launches the workers and, when enabled, the refresh ticker.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runCtx != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.runCtx, r.cancel = runCtx, cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	if r.interval > 0 {
		r.wg.Add(1)
		go r.dispatch(runCtx)
	}
}

// Stop cancels running tasks and waits for the goroutines to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.runCtx, r.cancel = nil, nil
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Refresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshMounted(ctx)
		}
	}
}

func (r *Refresher) refreshMounted(ctx context.Context) {
	r.mu.Lock()
	targets := append([]Target(nil), r.targets...)
	r.mu.Unlock()

	for _, t := range targets {
		if !t.Mounted() {
			continue
		}
		target := t
		select {
		case <-ctx.Done():
			return
		case r.jobs <- job{name: target.Name() + " refresh", fn: func(ctx context.Context) { r.reload(ctx, target) }}:
		}
	}
}

func (r *Refresher) reload(ctx context.Context, t Target) {
	err := t.Reload(ctx)
	if err == nil || errors.Is(err, domainErrors.ErrSuperseded) || errors.Is(err, context.Canceled) {
		return
	}
	r.logger.Warn("auto refresh failed", slog.String("view", t.Name()), slog.String("error", err.Error()))
}

func (r *Refresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.jobs:
			r.logger.Debug("running task", slog.String("task", j.name))
			j.fn(ctx)
		}
	}
}
