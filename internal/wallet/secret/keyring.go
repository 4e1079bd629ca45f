package secret

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

// keyringStore stores mnemonics in the OS keychain equivalent, namespaced by
// a service name so unrelated keyring entries are never touched.
type keyringStore struct {
	service string
}

// NewKeyringStore creates a Store backed by the OS secure credential store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewKeyringStore(service string) Store {
	return &keyringStore{service: service}
}

func (s *keyringStore) Put(_ context.Context, fingerprint string, mnemonic string) error {
	if err := keyring.Set(s.service, normalizeFingerprint(fingerprint), mnemonic); err != nil {
		return errors.Wrap(err, "failed to store secret in keyring")
	}

	return nil
}

func (s *keyringStore) Get(_ context.Context, fingerprint string) (string, bool, error) {
	mnemonic, err := keyring.Get(s.service, normalizeFingerprint(fingerprint))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "failed to read secret from keyring")
	}

	return mnemonic, true, nil
}

func (s *keyringStore) Remove(_ context.Context, fingerprint string) error {
	if err := keyring.Delete(s.service, normalizeFingerprint(fingerprint)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return errors.Wrap(err, "failed to delete secret from keyring")
	}

	return nil
}

func normalizeFingerprint(fingerprint string) string {
	return strings.ToLower(strings.TrimSpace(fingerprint))
}
