package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

// FeeData is the gateway's fee recommendation. Exactly one fee model is
// populated: legacy GasPrice, or the EIP-1559 pair.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// IsEIP1559 reports whether the EIP-1559 fee pair is populated.
func (f *FeeData) IsEIP1559() bool {
	return f.MaxFeePerGas != nil && f.MaxPriorityFeePerGas != nil
}

// Service is the RPC-facing chain gateway. One client is held per distinct
// chain id, constructed lazily and reused.
type Service interface {
	// Balance returns the native balance of the address in wei.
	Balance(ctx context.Context, network catalog.Network, address string) (*big.Int, error)

	// TokenBalance returns the ERC-20 balance of the address in token base
	// units.
	TokenBalance(ctx context.Context, network catalog.Network, contract string, address string) (*big.Int, error)

	// PendingNonce returns the next nonce for the address.
	PendingNonce(ctx context.Context, network catalog.Network, address string) (uint64, error)

	// FeeData returns the current fee recommendation for the network.
	FeeData(ctx context.Context, network catalog.Network) (*FeeData, error)

	// EstimateGas estimates the gas needed to execute the call.
	EstimateGas(ctx context.Context, network catalog.Network, msg ethereum.CallMsg) (uint64, error)

	// Broadcast submits a signed transaction to the network.
	Broadcast(ctx context.Context, network catalog.Network, tx *types.Transaction) error

	// Close releases every cached client connection.
	Close()
}
