package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/metrics"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/session"
	"github.com/polkiloo/findash/internal/usecase"
	"github.com/polkiloo/findash/internal/worker"
)

// Module wires the console facade, the HTTP server and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newConsole,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type consoleParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Sessions  *session.Store
	Customers *resource.Customers
	Products  *resource.Products
	Orders    *resource.Orders
	Catalog   *resource.ProductCatalog
	Lines     *resource.OrderLines
	Dashboard *resource.Dashboard
	Refresher *worker.Refresher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func newConsole(p consoleParams) *Console {
	return NewConsole(ConsoleDeps{
		Auth:      p.Auth,
		Sessions:  p.Sessions,
		Customers: p.Customers,
		Products:  p.Products,
		Orders:    p.Orders,
		Catalog:   p.Catalog,
		Lines:     p.Lines,
		Dashboard: p.Dashboard,
		Refresher: p.Refresher,
		Observer:  p.Metrics,
		Logger:    p.Logger,
	})
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Refresher  *worker.Refresher
	Console    *Console
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting findash console",
				slog.String("addr", p.Server.Addr),
				slog.String("backend", p.Config.BackendURL),
				slog.Bool("authenticated", p.Console.Authenticated()),
			)
			p.Refresher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Console.UnmountAll()
			p.Refresher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("findash console stopped")
			return nil
		},
	})
}
