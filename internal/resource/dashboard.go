package resource

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

const overviewPath = "/analytics/overview"

// DashboardState is a snapshot of the analytics view.
type DashboardState struct {
	Overview  model.AnalyticsOverview `json:"overview"`
	Filter    model.DashboardFilter   `json:"filter"`
	Loading   bool                    `json:"loading"`
	Loaded    bool                    `json:"loaded"`
	Mounted   bool                    `json:"mounted"`
	LoadError string                  `json:"load_error,omitempty"`
}

// Dashboard loads the analytics overview for a date range and category.
type Dashboard struct {
	client Requester
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	view     view
	overview model.AnalyticsOverview
	filter   model.DashboardFilter
	loading  bool
	loaded   bool
	loadErr  string
}

// NewDashboard creates the analytics view.
func NewDashboard(client Requester, opts Options) *Dashboard {
	return &Dashboard{
		client: client,
		opts:   opts,
		logger: opts.logger().With(slog.String("resource", "dashboard")),
	}
}

func (d *Dashboard) Name() string { return "dashboard" }

func dashboardPath(f model.DashboardFilter) string {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if len(q) == 0 {
		return overviewPath
	}
	return overviewPath + "?" + q.Encode()
}

// Load fetches the overview; only the newest response is applied.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	t := d.view.next()
	filter := d.filter
	d.loading = true
	d.mu.Unlock()

	reqCtx, cancel := bind(ctx, t)
	raw, err := d.client.Request(reqCtx, http.MethodGet, dashboardPath(filter), nil)
	cancel()

	var overview model.AnalyticsOverview
	if err == nil && raw != nil {
		if decodeErr := json.Unmarshal(raw, &overview); decodeErr != nil {
			err = &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: decodeErr}
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if stale := d.view.check(t); stale != nil {
		return stale
	}
	d.loading = false
	if err != nil {
		d.loadErr = requestMessage(err)
		return err
	}
	d.overview = overview
	d.loaded = true
	d.loadErr = ""
	return nil
}

// Reload is Load under the refresher's name.
func (d *Dashboard) Reload(ctx context.Context) error { return d.Load(ctx) }

// SetFilter stores f and enqueues a load, inline without a scheduler.
func (d *Dashboard) SetFilter(ctx context.Context, f model.DashboardFilter) error {
	d.mu.Lock()
	d.filter = f
	d.mu.Unlock()

	if d.opts.Scheduler == nil {
		return d.Load(ctx)
	}
	d.opts.Scheduler.Schedule("dashboard load", func(ctx context.Context) {
		if err := d.Load(ctx); err != nil && !errors.Is(err, domainErrors.ErrSuperseded) {
			d.logger.Warn("scheduled load failed", slog.String("error", err.Error()))
		}
	})
	return nil
}

// Mount starts a new view generation and loads.
func (d *Dashboard) Mount(ctx context.Context) error {
	d.mu.Lock()
	d.view.mount()
	d.mu.Unlock()
	return d.Load(ctx)
}

// Unmount cancels in-flight loads and drops their responses.
func (d *Dashboard) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.unmount()
	d.loading = false
}

func (d *Dashboard) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view.mounted
}

// State returns a snapshot.
func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := DashboardState{
		Overview:  d.overview,
		Filter:    d.filter,
		Loading:   d.loading,
		Loaded:    d.loaded,
		Mounted:   d.view.mounted,
		LoadError: d.loadErr,
	}
	s.Overview.TopCategories = append([]model.CategorySales(nil), d.overview.TopCategories...)
	s.Overview.Trend = append([]model.TrendPoint(nil), d.overview.Trend...)
	return s
}
