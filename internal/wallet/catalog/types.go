package catalog

// Currency describes a fungible asset supported by the wallet. A currency
// without a contract address is the chain's native asset; identity is the
// contract address for tokens and the symbol for native assets.
type Currency struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Decimals        int    `json:"decimals"`
	ContractAddress string `json:"contractAddress,omitempty"`
}

// IsNative reports whether the currency is the chain's native asset.
func (c Currency) IsNative() bool {
	return c.ContractAddress == ""
}

// Key returns the identity key used for de-duplication across currency lists.
func (c Currency) Key() string {
	if c.IsNative() {
		return c.Symbol
	}

	return c.ContractAddress
}

// Network describes an EVM-compatible chain. Identity is the numeric chain id.
type Network struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ChainID        int64    `json:"chainId"`
	RPCURL         string   `json:"rpcUrl"`
	ExplorerAPIURL string   `json:"explorerApiUrl"`
	Native         Currency `json:"native"`
	IsTestnet      bool     `json:"isTestnet"`
}
