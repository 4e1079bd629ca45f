package keys

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultDerivationPath is the standard BIP-44 path for the first Ethereum
// account. Callers may pass an alternate path for multi-account derivation.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// Service derives signing accounts from mnemonic phrases.
type Service interface {
	// Derive turns a mnemonic and BIP-44 path into a scoped Account handle.
	// Deterministic: identical inputs always yield the identical address.
	// The caller owns the returned handle and must Release it.
	Derive(ctx context.Context, mnemonic string, path string) (*Account, error)
}

// Signer is the minimal signing capability an Account exposes.
type Signer interface {
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
