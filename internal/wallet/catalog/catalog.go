// Package catalog defines the static set of supported currencies and
// networks. Entries are immutable; callers treat returned values as copies.
package catalog

import "github.com/pkg/errors"

// ErrUnknownNetwork is returned when no catalog entry matches a chain id.
var ErrUnknownNetwork = errors.New("unknown network")

var eth = Currency{
	Symbol:   "ETH",
	Name:     "Ether",
	Decimals: 18,
}

// EthereumMainnet is the Ethereum mainnet catalog entry.
var EthereumMainnet = Network{
	ID:             "ethereum",
	Name:           "Ethereum",
	ChainID:        1,
	RPCURL:         "https://ethereum-rpc.publicnode.com",
	ExplorerAPIURL: "https://api.etherscan.io/api",
	Native:         eth,
	IsTestnet:      false,
}

// Sepolia is the Ethereum Sepolia testnet catalog entry.
var Sepolia = Network{
	ID:             "sepolia",
	Name:           "Sepolia",
	ChainID:        11155111,
	RPCURL:         "https://ethereum-sepolia-rpc.publicnode.com",
	ExplorerAPIURL: "https://api-sepolia.etherscan.io/api",
	Native:         eth,
	IsTestnet:      true,
}

// tokensByChainID holds the stablecoin contract addresses per chain.
var tokensByChainID = map[int64][]Currency{
	1: {
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
		{Symbol: "USDT", Name: "Tether USD", Decimals: 6, ContractAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	},
	11155111: {
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, ContractAddress: "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"},
		{Symbol: "USDT", Name: "Tether USD", Decimals: 6, ContractAddress: "0x7169D38820dfd117C3FA1f22a697dBA58d90BA06"},
	},
}

// Networks returns all supported networks in display order.
func Networks() []Network {
	return []Network{EthereumMainnet, Sepolia}
}

// NetworkByChainID looks up a network by its numeric chain id.
func NetworkByChainID(chainID int64) (Network, error) {
	for _, n := range Networks() {
		if n.ChainID == chainID {
			return n, nil
		}
	}

	return Network{}, errors.Wrapf(ErrUnknownNetwork, "chain_id=%d", chainID)
}

// DefaultCurrencies returns the baseline currency set for a network: the
// native asset followed by the catalog stablecoins. This is the "always
// show these" set balance resolution is guaranteed to include.
func DefaultCurrencies(network Network) []Currency {
	currencies := []Currency{network.Native}
	currencies = append(currencies, tokensByChainID[network.ChainID]...)

	return currencies
}
