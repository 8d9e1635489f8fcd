package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/domain/repository"
	"github.com/polkiloo/findash/internal/storage/memory"
	"github.com/polkiloo/findash/internal/storage/sqlite"
)

func TestDriverFor(t *testing.T) {
	cases := map[string]Driver{
		"":                          DriverMemory,
		"memory":                    DriverMemory,
		"postgres://u:p@host/db":    DriverPostgres,
		"postgresql://u:p@host/db":  DriverPostgres,
		"./data/findash.db":         DriverSQLite,
		"/var/lib/findash/state.db": DriverSQLite,
	}
	for dsn, want := range cases {
		if got := DriverFor(dsn); got != want {
			t.Errorf("DriverFor(%q) = %s, want %s", dsn, got, want)
		}
	}
}

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	repo, closeFn, err := Open(context.Background(), "memory", logger)
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := repo.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", repo)
	}
	closeFn()

	repo, closeFn, err = Open(context.Background(), filepath.Join(t.TempDir(), "state.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, ok := repo.(*sqlite.Storage); !ok {
		t.Fatalf("expected sqlite storage, got %T", repo)
	}
	closeFn()

	if _, _, err := Open(context.Background(), "postgres://:bad", logger); err == nil {
		t.Fatal("expected postgres dsn error")
	}
}

func TestModuleProvidesRepository(t *testing.T) {
	var repo repository.StateRepository
	app := fxtest.New(t,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(&config.Config{StateDSN: "memory"}),
		fx.Supply(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		Module,
		fx.Populate(&repo),
	)
	app.RequireStart()
	if repo == nil {
		t.Fatal("expected repository")
	}
	app.RequireStop()
}
