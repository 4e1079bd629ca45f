// Package secret isolates mnemonic storage from wallet metadata. Secrets are
// keyed by wallet fingerprint (the lowercase address), so wallets on
// different networks with the same address share one secret.
package secret

import "context"

// Store is write-only-by-fingerprint secret storage. No caching layer may
// sit in front of an implementation.
type Store interface {
	// Put stores the mnemonic under the fingerprint, replacing any existing
	// value.
	Put(ctx context.Context, fingerprint string, mnemonic string) error

	// Get returns the mnemonic for the fingerprint. ok is false when no
	// secret is stored.
	Get(ctx context.Context, fingerprint string) (mnemonic string, ok bool, err error)

	// Remove deletes the secret for the fingerprint. Removing an absent
	// secret is not an error.
	Remove(ctx context.Context, fingerprint string) error
}
