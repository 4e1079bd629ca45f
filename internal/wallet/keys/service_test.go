package keys_test

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpocket/wallet-core/internal/wallet/keys"
)

// well-known BIP-39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveKnownVector(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	account, err := service.Derive(ctx, testMnemonic, keys.DefaultDerivationPath)
	require.NoError(t, err)
	defer account.Release()

	assert.Equal(t,
		strings.ToLower("0x9858EfFD232B4033E47d90003D41EC34EcaEda94"),
		strings.ToLower(account.Address),
	)
}

func TestDeriveIsDeterministic(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	first, err := service.Derive(ctx, testMnemonic, "")
	require.NoError(t, err)
	defer first.Release()

	second, err := service.Derive(ctx, testMnemonic, keys.DefaultDerivationPath)
	require.NoError(t, err)
	defer second.Release()

	assert.Equal(t, first.Address, second.Address)

	firstKey, err := first.PrivateKeyHex()
	require.NoError(t, err)
	secondKey, err := second.PrivateKeyHex()
	require.NoError(t, err)
	assert.Equal(t, firstKey, secondKey)
}

func TestDeriveDistinctAccounts(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	first, err := service.Derive(ctx, testMnemonic, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	defer first.Release()

	second, err := service.Derive(ctx, testMnemonic, "m/44'/60'/0'/0/1")
	require.NoError(t, err)
	defer second.Release()

	assert.NotEqual(t, first.Address, second.Address)
}

func TestDeriveRejectsBadPath(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	// 2147483648' would wrap past the hardened bit and derive child 0
	for _, path := range []string{"44'/60'/0'/0/0", "m/44'/x/0", "n/44'/60'", "m/2147483648'/60'/0'/0/0"} {
		_, err := service.Derive(ctx, testMnemonic, path)
		assert.Error(t, err, path)
	}
}

func TestAccountSignTx(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	account, err := service.Derive(ctx, testMnemonic, "")
	require.NoError(t, err)
	defer account.Release()

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	chainID := big.NewInt(11155111)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})

	signedTx, err := account.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signedTx)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(account.Address), strings.ToLower(sender.Hex()))
}

func TestAccountRelease(t *testing.T) {
	ctx := context.Background()
	service := keys.NewService()

	account, err := service.Derive(ctx, testMnemonic, "")
	require.NoError(t, err)

	account.Release()
	account.Release() // idempotent

	_, err = account.PrivateKeyHex()
	require.Error(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	_, err = account.SignTx(types.NewTx(&types.LegacyTx{To: &to}), big.NewInt(1))
	require.Error(t, err)
}
