package service

import (
	"context"
	"sync"

	"github.com/authshell/authshell/internal/core/domain"
)

// stubKV is an in-memory KeyValueStore with per-key failure injection.
type stubKV struct {
	mu        sync.Mutex
	data      map[string]string
	getErr    map[string]error
	setErr    map[string]error
	removeErr error
	sets      int
}

func newStubKV() *stubKV {
	return &stubKV{
		data:   make(map[string]string),
		getErr: make(map[string]error),
		setErr: make(map[string]error),
	}
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.getErr[key]; err != nil {
		return "", err
	}
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setErr[key]; err != nil {
		return err
	}
	s.sets++
	s.data[key] = value
	return nil
}

func (s *stubKV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.data, key)
	return nil
}

func (s *stubKV) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}
