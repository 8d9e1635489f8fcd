// Package session holds the authenticated console session and keeps a
// durable copy of it in a StateRepository.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/domain/repository"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Session is the current token and profile. User is non-nil iff Token is set.
type Session struct {
	Token string
	User  *model.User
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) clone() Session {
	if s.User == nil {
		return Session{Token: s.Token}
	}
	u := *s.User
	return Session{Token: s.Token, User: &u}
}

// Store is safe for concurrent use.
type Store struct {
	repo   repository.StateRepository
	logger *slog.Logger

	mu      sync.RWMutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

// New restores the persisted session. A missing, unreadable or corrupt copy
// starts the store empty.
func New(ctx context.Context, repo repository.StateRepository, logger *slog.Logger) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("session: state repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		repo:   repo,
		logger: logger,
		subs:   make(map[int]func(Session)),
	}
	s.current = s.restore(ctx)
	return s, nil
}

func (s *Store) restore(ctx context.Context) Session {
	values, err := s.repo.Load(ctx, keyToken, keyUser)
	if err != nil {
		s.logger.Warn("session restore failed", slog.String("error", err.Error()))
		return Session{}
	}
	token := values[keyToken]
	if token == "" {
		return Session{}
	}
	user := &model.User{}
	if raw, ok := values[keyUser]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			s.logger.Warn("persisted session is corrupt", slog.String("error", err.Error()))
			return Session{}
		}
	}
	return Session{Token: token, User: user}
}

// Login persists token and profile, then publishes them. On a persistence
// error the in-memory session is left as it was.
func (s *Store) Login(ctx context.Context, token string, user *model.User) (Session, error) {
	if token == "" {
		return Session{}, domainErrors.ErrEmptyToken
	}
	if user == nil {
		user = &model.User{}
	}
	next := Session{Token: token, User: user}.clone()

	raw, err := json.Marshal(next.User)
	if err != nil {
		return Session{}, fmt.Errorf("encode user: %w", err)
	}
	if err := s.repo.Save(ctx, map[string]string{keyToken: token, keyUser: string(raw)}); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.publish(next)
	return next.clone(), nil
}

// Logout drops the in-memory session before removing the durable copy, so
// access is revoked even when removal fails.
func (s *Store) Logout(ctx context.Context) error {
	s.publish(Session{})
	if err := s.repo.Remove(ctx, keyToken, keyUser); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Token returns the bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Subscribe calls fn with the current session and again after every change.
// The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.current.clone()
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) publish(next Session) {
	s.mu.Lock()
	s.current = next
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
}
