// Package chain is the RPC chain gateway: balance, nonce, fee, gas
// estimation and broadcast operations against EVM-compatible endpoints.
package chain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

// eip1559BaseFeeMultiplier sizes MaxFeePerGas at twice the current base fee
// plus the tip, so the recommendation survives short base-fee spikes.
const eip1559BaseFeeMultiplier = 2

type service struct {
	timeout   time.Duration
	clients   map[int64]*RPCClient // chainID -> client
	clientsMu sync.RWMutex
}

// NewService creates the chain gateway. Clients are dialed lazily per chain
// id and cached for reuse.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(timeout time.Duration) Service {
	return &service{
		timeout: timeout,
		clients: make(map[int64]*RPCClient),
	}
}

func (s *service) getOrCreateClient(network catalog.Network) (*RPCClient, error) {
	s.clientsMu.RLock()
	client, exists := s.clients[network.ChainID]
	s.clientsMu.RUnlock()

	if exists && client != nil {
		return client, nil
	}

	client, err := DialRPC(network.RPCURL, s.timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create RPC client for chain_id=%d", network.ChainID)
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if existing, ok := s.clients[network.ChainID]; ok && existing != nil {
		client.Close()
		return existing, nil
	}
	s.clients[network.ChainID] = client

	return client, nil
}

func (s *service) Balance(ctx context.Context, network catalog.Network, address string) (*big.Int, error) {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return nil, err
	}

	return client.BalanceAt(ctx, common.HexToAddress(address))
}

func (s *service) TokenBalance(ctx context.Context, network catalog.Network, contract string, address string) (*big.Int, error) {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return nil, err
	}

	return client.TokenBalance(ctx, common.HexToAddress(contract), common.HexToAddress(address))
}

func (s *service) PendingNonce(ctx context.Context, network catalog.Network, address string) (uint64, error) {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return 0, err
	}

	return client.PendingNonceAt(ctx, common.HexToAddress(address))
}

// FeeData returns the EIP-1559 recommendation when the chain exposes a base
// fee, the legacy gas price otherwise. The two models are never both set.
func (s *service) FeeData(ctx context.Context, network catalog.Network) (*FeeData, error) {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return nil, err
	}

	header, err := client.LatestHeader(ctx)
	if err != nil {
		return nil, err
	}

	if header.BaseFee == nil {
		gasPrice, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}

		return &FeeData{GasPrice: gasPrice}, nil
	}

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, err
	}

	maxFee := new(big.Int).Mul(header.BaseFee, big.NewInt(eip1559BaseFeeMultiplier))
	maxFee.Add(maxFee, tipCap)

	return &FeeData{
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tipCap,
	}, nil
}

func (s *service) EstimateGas(ctx context.Context, network catalog.Network, msg ethereum.CallMsg) (uint64, error) {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return 0, err
	}

	return client.EstimateGas(ctx, msg)
}

func (s *service) Broadcast(ctx context.Context, network catalog.Network, tx *types.Transaction) error {
	client, err := s.getOrCreateClient(network)
	if err != nil {
		return err
	}

	return client.SendTransaction(ctx, tx)
}

func (s *service) Close() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for _, client := range s.clients {
		if client != nil {
			client.Close()
		}
	}
	s.clients = make(map[int64]*RPCClient)
}
