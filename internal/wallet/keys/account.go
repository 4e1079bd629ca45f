package keys

import (
	"encoding/hex"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Account is a scoped handle over a derived private key. It must be held
// only for the duration of building and signing a transaction; Release
// overwrites the backing key buffer before the handle is dropped, regardless
// of exit path.
type Account struct {
	Address string

	mu         sync.Mutex
	privateKey []byte
	released   bool
}

// SignTx signs the transaction with the account's private key for the given
// chain id and returns the signed transaction.
func (a *Account) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return nil, errors.New("account has been released")
	}

	ecdsaKey, err := crypto.ToECDSA(a.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}
	defer ecdsaKey.D.SetInt64(0)

	signer := types.LatestSignerForChainID(chainID)
	signedTx, err := types.SignTx(tx, signer, ecdsaKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signedTx, nil
}

// PrivateKeyHex returns the hex-encoded private key. Exposed for export
// flows only; the caller is responsible for handling the copy safely.
func (a *Account) PrivateKeyHex() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return "", errors.New("account has been released")
	}

	return "0x" + hex.EncodeToString(a.privateKey), nil
}

// Release zeroes the backing private key buffer. Safe to call multiple
// times; any use of the account afterwards fails.
func (a *Account) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return
	}

	for i := range a.privateKey {
		a.privateKey[i] = 0
	}
	a.privateKey = nil
	a.released = true
}
