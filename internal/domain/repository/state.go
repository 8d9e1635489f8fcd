package repository

import "context"

// StateRepository is durable key-value storage for console state that must
// survive restarts, such as the session token and user profile.
type StateRepository interface {
	// Load returns stored values for keys; missing keys are absent from the result.
	Load(ctx context.Context, keys ...string) (map[string]string, error)
	// Save stores all entries in one unit.
	Save(ctx context.Context, entries map[string]string) error
	// Remove deletes keys; missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error
}
