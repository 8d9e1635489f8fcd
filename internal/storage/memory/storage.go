// Package memory keeps console state in process memory. State is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/polkiloo/findash/internal/domain/repository"
)

var _ repository.StateRepository = (*Storage)(nil)

// Storage is an in-memory StateRepository.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates empty storage.
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

func (s *Storage) Load(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Storage) Save(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.values[k] = v
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
