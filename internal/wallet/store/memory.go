package store

import (
	"context"
	"sync"
)

type memoryKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an in-memory KV for tests.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewMemory() KV {
	return &memoryKV{entries: make(map[string][]byte)}
}

func (s *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	return cp, true, nil
}

func (s *memoryKV) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.entries[key] = cp

	return nil
}

func (s *memoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *memoryKV) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]byte)

	return nil
}

func (s *memoryKV) Close() error {
	return nil
}
