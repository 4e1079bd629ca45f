package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// balanceOf(address)
var balanceOfMethodID = common.Hex2Bytes("70a08231")

const abiPaddedWordLength = 32

// RPCClient wraps a single ethclient connection and bounds every request
// with the configured timeout.
type RPCClient struct {
	client  *ethclient.Client
	timeout time.Duration
}

// DialRPC connects to an RPC endpoint.
func DialRPC(url string, timeout time.Duration) (*RPCClient, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to RPC node %s", url)
	}

	return &RPCClient{client: client, timeout: timeout}, nil
}

// Close closes the underlying connection.
func (c *RPCClient) Close() {
	c.client.Close()
}

func (c *RPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// BalanceAt returns the native balance of an address at the latest block.
func (c *RPCClient) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	balance, err := c.client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// TokenBalance returns the ERC-20 token balance for the given account.
func (c *RPCClient) TokenBalance(ctx context.Context, tokenAddress, account common.Address) (*big.Int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	data := make([]byte, 0, len(balanceOfMethodID)+abiPaddedWordLength)
	data = append(data, balanceOfMethodID...)
	data = append(data, common.LeftPadBytes(account.Bytes(), abiPaddedWordLength)...)

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call balanceOf")
	}

	return new(big.Int).SetBytes(result), nil
}

// PendingNonceAt returns the pending nonce for the given address.
func (c *RPCClient) PendingNonceAt(ctx context.Context, address common.Address) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	nonce, err := c.client.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}

	return nonce, nil
}

// EstimateGas estimates the gas needed to execute the call.
func (c *RPCClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	gas, err := c.client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// SuggestGasPrice returns the legacy gas price recommendation.
func (c *RPCClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas price")
	}

	return gasPrice, nil
}

// SuggestGasTipCap returns the EIP-1559 priority fee recommendation.
func (c *RPCClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	tipCap, err := c.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	return tipCap, nil
}

// LatestHeader returns the latest block header.
func (c *RPCClient) LatestHeader(ctx context.Context) (*types.Header, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}

	return header, nil
}

// SendTransaction broadcasts a signed transaction.
func (c *RPCClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}

	return nil
}
