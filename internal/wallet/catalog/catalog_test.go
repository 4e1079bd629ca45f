package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

func TestNetworkByChainID(t *testing.T) {
	network, err := catalog.NetworkByChainID(11155111)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", network.ID)
	assert.True(t, network.IsTestnet)

	_, err = catalog.NetworkByChainID(999999)
	require.ErrorIs(t, err, catalog.ErrUnknownNetwork)
}

func TestDefaultCurrencies(t *testing.T) {
	for _, network := range catalog.Networks() {
		currencies := catalog.DefaultCurrencies(network)
		require.Len(t, currencies, 3, network.ID)

		assert.Equal(t, "ETH", currencies[0].Symbol)
		assert.True(t, currencies[0].IsNative())
		assert.Equal(t, "USDC", currencies[1].Symbol)
		assert.Equal(t, "USDT", currencies[2].Symbol)

		for _, c := range currencies[1:] {
			assert.False(t, c.IsNative())
			assert.NotEmpty(t, c.ContractAddress)
			assert.Equal(t, c.ContractAddress, c.Key())
		}
	}
}

func TestCurrencyKey(t *testing.T) {
	native := catalog.Currency{Symbol: "ETH", Decimals: 18}
	assert.Equal(t, "ETH", native.Key())

	token := catalog.Currency{Symbol: "USDC", Decimals: 6, ContractAddress: "0xA0b8"}
	assert.Equal(t, "0xA0b8", token.Key())
}

func TestNetworkWireKeys(t *testing.T) {
	b, err := json.Marshal(catalog.Sepolia)
	require.NoError(t, err)

	// catalog types ride inside camelCase API payloads
	assert.Contains(t, string(b), `"chainId":11155111`)
	assert.Contains(t, string(b), `"symbol":"ETH"`)
	assert.NotContains(t, string(b), `"ChainID"`)
}
