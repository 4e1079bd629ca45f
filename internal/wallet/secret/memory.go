package secret

import (
	"context"
	"sync"
)

// memoryStore is an in-process Store used in tests and on platforms without
// a usable keyring. Values are zeroed on removal.
type memoryStore struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

// NewMemoryStore creates an in-memory Store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewMemoryStore() Store {
	return &memoryStore{secrets: make(map[string][]byte)}
}

func (s *memoryStore) Put(_ context.Context, fingerprint string, mnemonic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeFingerprint(fingerprint)
	s.wipe(key)
	s.secrets[key] = []byte(mnemonic)

	return nil
}

func (s *memoryStore) Get(_ context.Context, fingerprint string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.secrets[normalizeFingerprint(fingerprint)]
	if !ok {
		return "", false, nil
	}

	return string(value), true, nil
}

func (s *memoryStore) Remove(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipe(normalizeFingerprint(fingerprint))

	return nil
}

// wipe overwrites the stored buffer before dropping the entry. Callers must
// hold the write lock.
func (s *memoryStore) wipe(key string) {
	if value, ok := s.secrets[key]; ok {
		for i := range value {
			value[i] = 0
		}
		delete(s.secrets, key)
	}
}
