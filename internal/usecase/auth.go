package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/polkiloo/findash/internal/adapter/backend"
	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/session"
)

// SessionStore is the part of session.Store the auth flows need.
type SessionStore interface {
	Login(ctx context.Context, token string, user *model.User) (session.Session, error)
	Logout(ctx context.Context) error
	Current() session.Session
}

// AuthUseCase exchanges credentials with the backend and records the
// resulting session.
type AuthUseCase struct {
	client   backend.Client
	sessions SessionStore
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(client backend.Client, sessions *session.Store) *AuthUseCase {
	return newAuthUseCase(client, sessions)
}

func newAuthUseCase(client backend.Client, sessions SessionStore) *AuthUseCase {
	return &AuthUseCase{client: client, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials to /auth/login and stores the returned session.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return session.Session{}, domainErrors.NewValidationError("email", "Email is required")
	}
	if password == "" {
		return session.Session{}, domainErrors.NewValidationError("password", "Password is required")
	}
	return u.authenticate(ctx, "/auth/login", loginRequest{Email: email, Password: password})
}

// Signup posts a new account to /auth/signup and stores the returned session.
func (u *AuthUseCase) Signup(ctx context.Context, name, email, password string) (session.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return session.Session{}, domainErrors.NewValidationError("name", "Name is required")
	}
	if email == "" {
		return session.Session{}, domainErrors.NewValidationError("email", "Email is required")
	}
	if password == "" {
		return session.Session{}, domainErrors.NewValidationError("password", "Password is required")
	}
	return u.authenticate(ctx, "/auth/signup", signupRequest{Name: name, Email: email, Password: password})
}

func (u *AuthUseCase) authenticate(ctx context.Context, path string, body any) (session.Session, error) {
	var result model.AuthResult
	if err := u.client.Do(ctx, http.MethodPost, path, body, &result); err != nil {
		return session.Session{}, err
	}
	sess, err := u.sessions.Login(ctx, result.Token, result.User)
	if err != nil {
		return session.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Logout ends the local session. The backend keeps no server-side session.
func (u *AuthUseCase) Logout(ctx context.Context) error {
	return u.sessions.Logout(ctx)
}

// Current returns the active session.
func (u *AuthUseCase) Current() session.Session {
	return u.sessions.Current()
}
