// Package wallet implements the wallet domain: the metadata repository and
// the use cases for creating, importing, funding-state resolution, fee
// estimation, sending, and history over the chain and explorer gateways.
package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chainpocket/wallet-core/internal/util"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
	"github.com/chainpocket/wallet-core/internal/wallet/chain"
	"github.com/chainpocket/wallet-core/internal/wallet/explorer"
	"github.com/chainpocket/wallet-core/internal/wallet/keys"
	"github.com/chainpocket/wallet-core/internal/wallet/mnemonic"
)

// fallbackGasLimit is the minimum cost of a plain native transfer. It is
// applied whenever a send carries no explicit gas limit, including token
// transfers, matching the behavior of the system this module replaces.
const fallbackGasLimit = 21000

// ExplorerGateway is the explorer capability the use cases need. Satisfied
// by *explorer.Client.
type ExplorerGateway interface {
	EthBalance(ctx context.Context, apiURL string, address string) string
	TokenBalance(ctx context.Context, apiURL string, contract string, address string) string
	Transactions(ctx context.Context, apiURL string, address string, limit int) []explorer.Transaction
}

// Service is the capability set exposed to any presentation layer.
type Service interface {
	// CreateNewWallet generates a fresh mnemonic, derives and persists a
	// wallet on the network, activates it, and returns the wallet together
	// with the plaintext mnemonic exactly once.
	CreateNewWallet(ctx context.Context, network catalog.Network, name string) (*CreatedWallet, error)

	// ImportWallet validates and imports an existing mnemonic on the
	// network. Fails with ErrInvalidMnemonic or ErrDuplicateWallet.
	ImportWallet(ctx context.Context, phrase string, network catalog.Network, name string) (*CreatedWallet, error)

	// ResolveBalances returns balances for the requested currencies,
	// always including the catalog defaults, de-duplicated by identity key.
	ResolveBalances(ctx context.Context, w *Wallet, currencies []catalog.Currency) ([]Balance, error)

	// EstimateGas computes a worst-case fee estimate for a transfer.
	EstimateGas(ctx context.Context, w *Wallet, currency catalog.Currency, to string, rawAmount string) (*GasEstimate, error)

	// SendTransaction signs and broadcasts a transfer, returning the
	// transaction hash. A returned hash means "accepted for broadcast",
	// not "confirmed".
	SendTransaction(ctx context.Context, req *SendRequest) (string, error)

	// TransactionHistory returns up to limit historical transactions for
	// the wallet, newest first.
	TransactionHistory(ctx context.Context, w *Wallet, limit int) ([]Transaction, error)
}

type service struct {
	repo     Repository
	keys     keys.Service
	chain    chain.Service
	explorer ExplorerGateway
}

// NewService creates the wallet use-case service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(repo Repository, keyService keys.Service, chainService chain.Service, explorerGateway ExplorerGateway) Service {
	return &service{
		repo:     repo,
		keys:     keyService,
		chain:    chainService,
		explorer: explorerGateway,
	}
}

func (s *service) CreateNewWallet(ctx context.Context, network catalog.Network, name string) (*CreatedWallet, error) {
	log := util.LogFromContext(ctx)

	phrase, err := mnemonic.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate mnemonic")
	}

	w, err := s.persistWallet(ctx, phrase, network, name, false)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("wallet_id", w.ID).
		Str("address", w.Address).
		Int64("chain_id", network.ChainID).
		Msg("Wallet created")

	return &CreatedWallet{Wallet: w, Mnemonic: phrase}, nil
}

func (s *service) ImportWallet(ctx context.Context, phrase string, network catalog.Network, name string) (*CreatedWallet, error) {
	log := util.LogFromContext(ctx)

	phrase = mnemonic.Normalize(phrase)
	if !mnemonic.IsValid(phrase) {
		return nil, ErrInvalidMnemonic
	}

	w, err := s.persistWallet(ctx, phrase, network, name, true)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("wallet_id", w.ID).
		Str("address", w.Address).
		Int64("chain_id", network.ChainID).
		Msg("Wallet imported")

	return &CreatedWallet{Wallet: w, Mnemonic: phrase}, nil
}

// persistWallet derives, duplicate-checks, saves, and activates a wallet.
// saveWallet must precede setActiveWallet: metadata has to exist before it
// can be made active. A crash in between leaves a wallet persisted but not
// active, which GetActiveWallet recovers from by falling back to list order.
func (s *service) persistWallet(ctx context.Context, phrase string, network catalog.Network, name string, imported bool) (*Wallet, error) {
	account, err := s.keys.Derive(ctx, phrase, keys.DefaultDerivationPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive wallet account")
	}
	defer account.Release()

	fingerprint := strings.ToLower(account.Address)

	existing, err := s.repo.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Fingerprint == fingerprint && other.Network.ChainID == network.ChainID {
			return nil, errors.Wrapf(ErrDuplicateWallet, "fingerprint=%s chain_id=%d", fingerprint, network.ChainID)
		}
	}

	if name == "" {
		name = fmt.Sprintf("Wallet %d", len(existing)+1)
	}

	w := &Wallet{
		ID:          uuid.New().String(),
		Name:        name,
		Address:     account.Address,
		Network:     network,
		CreatedAt:   time.Now().UTC(),
		IsImported:  imported,
		Fingerprint: fingerprint,
	}

	if err := s.repo.SaveWallet(ctx, w, phrase); err != nil {
		return nil, err
	}

	if err := s.repo.SetActiveWallet(ctx, w.ID); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *service) ResolveBalances(ctx context.Context, w *Wallet, currencies []catalog.Currency) ([]Balance, error) {
	merged := mergeCurrencies(currencies, catalog.DefaultCurrencies(w.Network))

	balances := make([]Balance, 0, len(merged))
	now := time.Now().UTC()

	for _, currency := range merged {
		var raw string
		if currency.IsNative() {
			raw = s.explorer.EthBalance(ctx, w.Network.ExplorerAPIURL, w.Address)
		} else {
			amount, err := s.chain.TokenBalance(ctx, w.Network, currency.ContractAddress, w.Address)
			if err != nil {
				return nil, errors.Wrapf(ErrRPC, "token balance for %s: %v", currency.Symbol, err)
			}
			raw = amount.String()
		}

		amount, err := ToDecimalAmount(raw, currency.Decimals)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert %s balance", currency.Symbol)
		}

		balances = append(balances, Balance{
			Currency:  currency,
			Amount:    amount,
			RawAmount: raw,
			UpdatedAt: now,
		})
	}

	return balances, nil
}

// mergeCurrencies appends defaults to the requested set and de-duplicates by
// identity key, keeping the first occurrence. This guarantees the baseline
// set is always present regardless of caller intent.
func mergeCurrencies(requested []catalog.Currency, defaults []catalog.Currency) []catalog.Currency {
	combined := make([]catalog.Currency, 0, len(requested)+len(defaults))
	combined = append(combined, requested...)
	combined = append(combined, defaults...)

	seen := make(map[string]bool, len(combined))
	merged := combined[:0]
	for _, currency := range combined {
		if seen[currency.Key()] {
			continue
		}
		seen[currency.Key()] = true
		merged = append(merged, currency)
	}

	return merged
}

func (s *service) EstimateGas(ctx context.Context, w *Wallet, currency catalog.Currency, to string, rawAmount string) (*GasEstimate, error) {
	amount, ok := new(big.Int).SetString(rawAmount, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, errors.Errorf("invalid raw amount %q", rawAmount)
	}

	feeData, err := s.chain.FeeData(ctx, w.Network)
	if err != nil {
		return nil, errors.Wrapf(ErrRPC, "fee data: %v", err)
	}

	msg := transferCallMsg(w, currency, to, amount)

	gasLimit, err := s.chain.EstimateGas(ctx, w.Network, msg)
	if err != nil {
		return nil, errors.Wrapf(ErrRPC, "estimate gas: %v", err)
	}

	return &GasEstimate{
		GasLimit:             gasLimit,
		GasPrice:             feeData.GasPrice,
		MaxFeePerGas:         feeData.MaxFeePerGas,
		MaxPriorityFeePerGas: feeData.MaxPriorityFeePerGas,
		TotalFee:             totalFee(feeData.GasPrice, feeData.MaxFeePerGas, gasLimit),
	}, nil
}

// totalFee favors maxFeePerGas over gasPrice: a worst-case estimate of the
// cost before signing, not the price eventually paid.
func totalFee(gasPrice, maxFeePerGas *big.Int, gasLimit uint64) *big.Int {
	perGas := maxFeePerGas
	if perGas == nil {
		perGas = gasPrice
	}
	if perGas == nil {
		return big.NewInt(0)
	}

	return new(big.Int).Mul(perGas, new(big.Int).SetUint64(gasLimit))
}

// transferCallMsg builds the gas-estimation call: token transfers target the
// contract with encoded call data and zero native value, native transfers
// target the recipient with the amount as value.
func transferCallMsg(w *Wallet, currency catalog.Currency, to string, amount *big.Int) ethereum.CallMsg {
	from := common.HexToAddress(w.Address)

	if currency.IsNative() {
		toAddress := common.HexToAddress(to)
		return ethereum.CallMsg{
			From:  from,
			To:    &toAddress,
			Value: amount,
		}
	}

	contract := common.HexToAddress(currency.ContractAddress)

	return ethereum.CallMsg{
		From:  from,
		To:    &contract,
		Value: big.NewInt(0),
		Data:  erc20TransferData(common.HexToAddress(to), amount),
	}
}

func (s *service) SendTransaction(ctx context.Context, req *SendRequest) (string, error) {
	log := util.LogFromContext(ctx)
	w := req.Wallet

	// amount.Bytes() in the call data encoding drops the sign, so a negative
	// amount must never reach transaction construction
	amount, ok := new(big.Int).SetString(req.RawAmount, 10)
	if !ok || amount.Sign() <= 0 {
		return "", errors.Errorf("invalid raw amount %q", req.RawAmount)
	}

	phrase, ok, err := s.repo.GetMnemonic(ctx, w)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Wrapf(ErrSecretNotFound, "fingerprint=%s", w.Fingerprint)
	}

	account, err := s.keys.Derive(ctx, phrase, keys.DefaultDerivationPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive signing account")
	}
	defer account.Release()

	// reuse the caller's fee fields when an estimate was computed upstream
	feeData := feeDataFromEstimate(req.Estimate)
	if feeData == nil {
		feeData, err = s.chain.FeeData(ctx, w.Network)
		if err != nil {
			return "", errors.Wrapf(ErrRPC, "fee data: %v", err)
		}
	}

	gasLimit := uint64(fallbackGasLimit)
	if req.Estimate != nil && req.Estimate.GasLimit > 0 {
		gasLimit = req.Estimate.GasLimit
	}

	nonce, err := s.chain.PendingNonce(ctx, w.Network, w.Address)
	if err != nil {
		return "", errors.Wrapf(ErrRPC, "pending nonce: %v", err)
	}

	tx := buildTransferTx(w, req.Currency, req.To, amount, feeData, gasLimit, nonce)

	chainID := big.NewInt(w.Network.ChainID)
	signedTx, err := account.SignTx(tx, chainID)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign transaction")
	}

	if err := s.chain.Broadcast(ctx, w.Network, signedTx); err != nil {
		return "", errors.Wrapf(ErrRPC, "broadcast: %v", err)
	}

	hash := signedTx.Hash().Hex()
	log.Info().
		Str("wallet_id", w.ID).
		Str("tx_hash", hash).
		Str("currency", req.Currency.Symbol).
		Int64("chain_id", w.Network.ChainID).
		Msg("Transaction broadcast")

	return hash, nil
}

// feeDataFromEstimate lifts the fee fields off a caller-supplied estimate,
// or returns nil when a fresh fetch is needed.
func feeDataFromEstimate(estimate *GasEstimate) *chain.FeeData {
	if estimate == nil {
		return nil
	}
	if estimate.MaxFeePerGas == nil && estimate.GasPrice == nil {
		return nil
	}

	return &chain.FeeData{
		GasPrice:             estimate.GasPrice,
		MaxFeePerGas:         estimate.MaxFeePerGas,
		MaxPriorityFeePerGas: estimate.MaxPriorityFeePerGas,
	}
}

// buildTransferTx constructs the unsigned transaction. The EIP-1559 and
// legacy fee models are mutually exclusive on the wire: the dynamic-fee
// shape is used only when both EIP-1559 fields are known.
func buildTransferTx(w *Wallet, currency catalog.Currency, to string, amount *big.Int, feeData *chain.FeeData, gasLimit uint64, nonce uint64) *gethtypes.Transaction {
	toAddress := common.HexToAddress(to)
	value := amount
	var data []byte

	if !currency.IsNative() {
		data = erc20TransferData(toAddress, amount)
		toAddress = common.HexToAddress(currency.ContractAddress)
		value = big.NewInt(0)
	}

	if feeData.IsEIP1559() {
		return gethtypes.NewTx(&gethtypes.DynamicFeeTx{
			ChainID:   big.NewInt(w.Network.ChainID),
			Nonce:     nonce,
			GasTipCap: feeData.MaxPriorityFeePerGas,
			GasFeeCap: feeData.MaxFeePerGas,
			Gas:       gasLimit,
			To:        &toAddress,
			Value:     value,
			Data:      data,
		})
	}

	return gethtypes.NewTx(&gethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: feeData.GasPrice,
		Gas:      gasLimit,
		To:       &toAddress,
		Value:    value,
		Data:     data,
	})
}

func (s *service) TransactionHistory(ctx context.Context, w *Wallet, limit int) ([]Transaction, error) {
	records := s.explorer.Transactions(ctx, w.Network.ExplorerAPIURL, w.Address, limit)

	txs := make([]Transaction, 0, len(records))
	for _, record := range records {
		txs = append(txs, Transaction{
			Hash:        record.Hash,
			From:        record.From,
			To:          record.To,
			Amount:      record.Value,
			Currency:    w.Network.Native,
			GasUsed:     record.GasUsed,
			GasPrice:    record.GasPrice,
			Status:      record.Status,
			Direction:   record.Direction,
			Timestamp:   record.Timestamp,
			BlockNumber: record.BlockNumber,
			Network:     w.Network,
		})
	}

	return txs, nil
}
