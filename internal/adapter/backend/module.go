package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/metrics"
	"github.com/polkiloo/findash/internal/session"
)

// Module exposes the backend client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Session *session.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BackendURL, p.Config.RequestTimeout, p.Session, p.Metrics, p.Logger)
}
