package test

import (
	"context"
	"sync"
)

// StateRepositoryStub keeps values in a map and returns injected errors.
type StateRepositoryStub struct {
	mu        sync.Mutex
	Values    map[string]string
	LoadErr   error
	SaveErr   error
	RemoveErr error
	Saves     int
}

// NewStateRepositoryStub constructs stub with an initialized map.
func NewStateRepositoryStub() *StateRepositoryStub {
	return &StateRepositoryStub{Values: make(map[string]string)}
}

func (s *StateRepositoryStub) Load(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.Values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *StateRepositoryStub) Save(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	for k, v := range entries {
		s.Values[k] = v
	}
	s.Saves++
	return nil
}

func (s *StateRepositoryStub) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	for _, k := range keys {
		delete(s.Values, k)
	}
	return nil
}

// Fail sets every error at once; nil clears them.
func (s *StateRepositoryStub) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LoadErr, s.SaveErr, s.RemoveErr = err, err, err
}
