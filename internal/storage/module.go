// Package storage selects the durable state backend from configuration.
package storage

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/domain/repository"
	"github.com/polkiloo/findash/internal/storage/memory"
	"github.com/polkiloo/findash/internal/storage/postgres"
	"github.com/polkiloo/findash/internal/storage/sqlite"
)

// Driver names a state backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DriverFor infers backend from a state DSN: "memory" (or empty), a
// postgres:// URL, or otherwise a SQLite file path.
func DriverFor(dsn string) Driver {
	switch {
	case dsn == "" || dsn == string(DriverMemory):
		return DriverMemory
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

// Module provides repository.StateRepository and closes it on stop.
var Module = fx.Provide(newStateRepository)

type stateParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStateRepository(p stateParams) (repository.StateRepository, error) {
	repo, closeFn, err := Open(p.Ctx, p.Config.StateDSN, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return repo, nil
}

// Open creates the backend for dsn. The returned func releases it.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (repository.StateRepository, func(), error) {
	driver := DriverFor(dsn)
	logger.Info("opening state storage", slog.String("driver", string(driver)))

	switch driver {
	case DriverPostgres:
		st, err := postgres.New(ctx, dsn, logger)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case DriverSQLite:
		st, err := sqlite.New(dsn)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Warn("close state storage", slog.String("error", err.Error()))
			}
		}, nil
	default:
		return memory.New(), func() {}, nil
	}
}
