package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/adapter/backend"
	"github.com/polkiloo/findash/internal/app"
	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/logger"
	"github.com/polkiloo/findash/internal/metrics"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/server/http/router"
	"github.com/polkiloo/findash/internal/session"
	"github.com/polkiloo/findash/internal/storage"
	"github.com/polkiloo/findash/internal/usecase"
	"github.com/polkiloo/findash/internal/worker"
)

// Module assembles the console graph. opts are appended last so callers can
// replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		storage.Module,
		session.Module,
		backend.Module,
		usecase.Module,
		worker.Module,
		fx.Provide(func(r *worker.Refresher) resource.Scheduler { return r }),
		resource.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
