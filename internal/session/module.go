package session

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/domain/repository"
)

// Module provides the session Store, sealing persisted values when a
// session secret is configured.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Repo   repository.StateRepository
	Logger *slog.Logger
}

func newStore(p storeParams) (*Store, error) {
	repo := p.Repo
	if p.Config.SessionSecret != "" {
		repo = NewSealedRepository(repo, p.Config.SessionSecret, p.Logger)
	}
	return New(p.Ctx, repo, p.Logger)
}
