package resource

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/adapter/backend"
	"github.com/polkiloo/findash/internal/metrics"
)

// Module provides the resource controllers, the dashboard, the product
// catalog and the order line editor.
var Module = fx.Provide(
	newOptions,
	newRequester,
	NewCustomers,
	NewProducts,
	NewOrders,
	NewDashboard,
	NewProductCatalog,
	newOrderLines,
)

type optionParams struct {
	fx.In

	Scheduler Scheduler `optional:"true"`
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func newOptions(p optionParams) Options {
	return Options{Scheduler: p.Scheduler, Observer: p.Metrics, Logger: p.Logger}
}

func newRequester(client backend.Client) Requester { return client }

func newOrderLines(orders *Orders, catalog *ProductCatalog) *OrderLines {
	return NewOrderLines(orders, catalog)
}
