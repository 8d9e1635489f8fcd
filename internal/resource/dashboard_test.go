package resource

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	testhelpers "github.com/polkiloo/findash/internal/test"
)

func TestDashboardLoadsOverviewWithFilter(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Seed("orders", model.Order{CustomerID: "1", Status: "paid", Items: []model.OrderItem{{ProductID: "p", Quantity: 2, Price: model.PriceFromFloat(15)}}})
	d := NewDashboard(newRequesterFor(t, fb), testOptions())

	require.NoError(t, d.SetFilter(context.Background(), model.DashboardFilter{StartDate: "2024-01-01", EndDate: "2024-01-31", Category: model.CategoryHardware}))

	s := d.State()
	assert.True(t, s.Loaded)
	assert.Equal(t, 30.0, s.Overview.TotalSales)
	assert.Equal(t, 1, s.Overview.OrdersCount)
	require.Len(t, s.Overview.Trend, 1)
	assert.Equal(t, "2024-01-01", s.Overview.Trend[0].Date)
	require.Len(t, s.Overview.TopCategories, 1)
	assert.Equal(t, model.CategoryHardware, s.Overview.TopCategories[0].Category)

	q, err := url.ParseQuery(fb.Requests()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", q.Get("start_date"))
	assert.Equal(t, "2024-01-31", q.Get("end_date"))
	assert.Equal(t, "hardware", q.Get("category"))
}

func TestDashboardPathSkipsEmptyFields(t *testing.T) {
	assert.Equal(t, "/analytics/overview", dashboardPath(model.DashboardFilter{}))
	assert.Equal(t, "/analytics/overview?end_date=2024-02-01", dashboardPath(model.DashboardFilter{EndDate: "2024-02-01"}))
}

func TestDashboardLoadError(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Fail(http.MethodGet, "/analytics/overview", http.StatusServiceUnavailable, `{"message":"analytics offline"}`)
	d := NewDashboard(newRequesterFor(t, fb), testOptions())

	err := d.Mount(context.Background())
	require.Error(t, err)
	s := d.State()
	assert.Equal(t, "analytics offline", s.LoadError)
	assert.False(t, s.Loading)
	assert.True(t, d.Mounted())
}

func TestDashboardEmptyBodyYieldsZeroOverview(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Fail(http.MethodGet, "/analytics/overview", http.StatusOK, "")
	d := NewDashboard(newRequesterFor(t, fb), testOptions())

	require.NoError(t, d.Load(context.Background()))
	assert.Equal(t, model.AnalyticsOverview{}, d.State().Overview)
}

func TestDashboardUnmountDropsResponse(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	fb.Before(func(*http.Request) {
		arrived <- struct{}{}
		<-release
	})
	d := NewDashboard(newRequesterFor(t, fb), testOptions())

	done := make(chan error, 1)
	go func() { done <- d.Mount(context.Background()) }()
	<-arrived
	d.Unmount()
	err := <-done
	close(release)

	assert.ErrorIs(t, err, domainErrors.ErrSuperseded)
	assert.False(t, d.State().Loaded)
	assert.False(t, d.Mounted())
}

func TestDashboardScheduledLoadLogsFailure(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Fail(http.MethodGet, "/analytics/overview", http.StatusServiceUnavailable, `{"message":"analytics offline"}`)
	var buf bytes.Buffer
	sched := &queuedScheduler{}
	d := NewDashboard(newRequesterFor(t, fb), Options{Scheduler: sched, Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	require.NoError(t, d.SetFilter(context.Background(), model.DashboardFilter{Category: model.CategoryServices}))
	assert.Equal(t, []string{"dashboard load"}, sched.names)
	sched.drain(context.Background())

	assert.Contains(t, buf.String(), "scheduled load failed")
	assert.Contains(t, buf.String(), "analytics offline")
	assert.Equal(t, "analytics offline", d.State().LoadError)
}
