package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/config"
)

// Module provides the shared Refresher.
var Module = fx.Provide(newRefresher)

type refresherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newRefresher(p refresherParams) *Refresher {
	return NewRefresher(p.Config.RefreshWorkers, p.Config.AutoRefreshInterval, p.Logger)
}
