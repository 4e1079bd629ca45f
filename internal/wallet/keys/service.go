// Package keys derives EVM accounts from BIP-39 mnemonics over the standard
// BIP-32/BIP-44 path scheme.
package keys

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha512"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// BIP-39: seed = PBKDF2(mnemonic, "mnemonic"+passphrase, 2048, 64, SHA512)
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64

	hardenedOffset = 0x80000000
)

type service struct{}

// NewService creates a new key derivation service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Derive turns a mnemonic and BIP-44 path into a scoped Account handle.
func (s *service) Derive(_ context.Context, mnemonic string, path string) (*Account, error) {
	if path == "" {
		path = DefaultDerivationPath
	}

	seed := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parsePath(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse derivation path")
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	// go-bip32 hands out its internal buffer; copy so Release only zeroes ours
	privateKey := make([]byte, len(key.Key))
	copy(privateKey, key.Key)

	address, err := addressFromKey(privateKey)
	if err != nil {
		for i := range privateKey {
			privateKey[i] = 0
		}
		return nil, err
	}

	return &Account{
		Address:    address,
		privateKey: privateKey,
	}, nil
}

func addressFromKey(privateKey []byte) (string, error) {
	ecdsaKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert to ECDSA private key")
	}
	defer ecdsaKey.D.SetInt64(0)

	publicKey, ok := ecdsaKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return "", errors.New("failed to cast public key to ECDSA")
	}

	return crypto.PubkeyToAddress(*publicKey).Hex(), nil
}

// parsePath parses a BIP-44 path string into child key indices, e.g.
// "m/44'/60'/0'/0/0" -> [0x8000002C, 0x8000003C, 0x80000000, 0, 0].
func parsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] != "m" {
		return nil, fmt.Errorf("invalid BIP44 path: %s", path)
	}

	indices := make([]uint32, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		hardened := strings.HasSuffix(segment, "'")
		segment = strings.TrimSuffix(segment, "'")

		index, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment: %s", segment)
		}

		if hardened {
			// the hardened bit leaves 31 bits for the index itself
			if index >= hardenedOffset {
				return nil, fmt.Errorf("invalid path segment: %s'", segment)
			}
			index += hardenedOffset
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}
