package wallet

import "github.com/pkg/errors"

// Typed domain failures. Use cases fail fast and propagate exactly one of
// these; callers compare with errors.Is.
var (
	// ErrInvalidMnemonic marks a phrase that failed validation before any
	// derivation was attempted.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrDuplicateWallet marks an import whose (fingerprint, chain id) pair
	// already exists in the repository.
	ErrDuplicateWallet = errors.New("wallet already imported for this network")

	// ErrSecretNotFound marks repository metadata with no matching secret,
	// which indicates storage desync.
	ErrSecretNotFound = errors.New("secret not found for wallet")

	// ErrWalletNotFound marks an operation against an unknown wallet id.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrRPC marks a chain gateway call that failed or timed out.
	ErrRPC = errors.New("rpc request failed")
)
