package wallet_test

import (
	"context"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpocket/wallet-core/internal/wallet"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
	"github.com/chainpocket/wallet-core/internal/wallet/chain"
	"github.com/chainpocket/wallet-core/internal/wallet/explorer"
	"github.com/chainpocket/wallet-core/internal/wallet/keys"
	"github.com/chainpocket/wallet-core/internal/wallet/secret"
	"github.com/chainpocket/wallet-core/internal/wallet/store"
)

const vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
const vectorAddress = "0x9858effd232b4033e47d90003d41ec34ecaeda94"

type fakeChain struct {
	tokenBalances map[string]*big.Int
	feeData       *chain.FeeData
	feeDataCalls  int
	gasLimit      uint64
	lastEstimate  ethereum.CallMsg
	nonce         uint64
	broadcast     []*gethtypes.Transaction
}

func (f *fakeChain) Balance(_ context.Context, _ catalog.Network, _ string) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (f *fakeChain) TokenBalance(_ context.Context, _ catalog.Network, contract string, _ string) (*big.Int, error) {
	if balance, ok := f.tokenBalances[strings.ToLower(contract)]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeChain) PendingNonce(_ context.Context, _ catalog.Network, _ string) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeChain) FeeData(_ context.Context, _ catalog.Network) (*chain.FeeData, error) {
	f.feeDataCalls++
	return f.feeData, nil
}

func (f *fakeChain) EstimateGas(_ context.Context, _ catalog.Network, msg ethereum.CallMsg) (uint64, error) {
	f.lastEstimate = msg
	return f.gasLimit, nil
}

func (f *fakeChain) Broadcast(_ context.Context, _ catalog.Network, tx *gethtypes.Transaction) error {
	f.broadcast = append(f.broadcast, tx)
	return nil
}

func (f *fakeChain) Close() {}

type fakeExplorer struct {
	ethBalance string
	txs        []explorer.Transaction
}

func (f *fakeExplorer) EthBalance(_ context.Context, _ string, _ string) string {
	return f.ethBalance
}

func (f *fakeExplorer) TokenBalance(_ context.Context, _ string, _ string, _ string) string {
	return "0"
}

func (f *fakeExplorer) Transactions(_ context.Context, _ string, _ string, _ int) []explorer.Transaction {
	return f.txs
}

type testEnv struct {
	repo     wallet.Repository
	service  wallet.Service
	chain    *fakeChain
	explorer *fakeExplorer
}

func newTestEnv() *testEnv {
	fc := &fakeChain{
		tokenBalances: make(map[string]*big.Int),
		feeData: &chain.FeeData{
			MaxFeePerGas:         big.NewInt(40),
			MaxPriorityFeePerGas: big.NewInt(2),
		},
		gasLimit: 21000,
	}
	fe := &fakeExplorer{ethBalance: "0"}
	repo := newTestRepository()

	return &testEnv{
		repo:     repo,
		service:  wallet.NewService(repo, keys.NewService(), fc, fe),
		chain:    fc,
		explorer: fe,
	}
}

func TestCreateNewWallet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.CreateNewWallet(ctx, catalog.Sepolia, "")
	require.NoError(t, err)

	assert.Len(t, strings.Fields(created.Mnemonic), 12)
	assert.Equal(t, strings.ToLower(created.Wallet.Address), created.Wallet.Fingerprint)
	assert.Equal(t, int64(11155111), created.Wallet.Network.ChainID)
	assert.False(t, created.Wallet.IsImported)
	assert.Equal(t, "Wallet 1", created.Wallet.Name)

	// persisted and activated
	active, err := env.repo.GetActiveWallet(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, created.Wallet.ID, active.ID)

	// mnemonic kept only in the secret store
	phrase, ok, err := env.repo.GetMnemonic(ctx, created.Wallet)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.Mnemonic, phrase)
}

func TestImportWallet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.ImportWallet(ctx, "  "+vectorMnemonic+"  ", catalog.Sepolia, "Main")
	require.NoError(t, err)

	assert.Equal(t, vectorAddress, created.Wallet.Fingerprint)
	assert.Equal(t, vectorMnemonic, created.Mnemonic)
	assert.True(t, created.Wallet.IsImported)
	assert.Equal(t, "Main", created.Wallet.Name)
}

func TestImportWalletInvalidMnemonic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.service.ImportWallet(ctx, "definitely not a mnemonic", catalog.Sepolia, "")
	require.ErrorIs(t, err, wallet.ErrInvalidMnemonic)

	wallets, err := env.repo.ListWallets(ctx)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestImportWalletDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	// same mnemonic, same network
	_, err = env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.ErrorIs(t, err, wallet.ErrDuplicateWallet)

	// same mnemonic, different network is fine
	_, err = env.service.ImportWallet(ctx, vectorMnemonic, catalog.EthereumMainnet, "")
	require.NoError(t, err)
}

func TestResolveBalancesAlwaysIncludesDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.explorer.ethBalance = "1500000000000000000"

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	// caller requests an unrelated token only
	unrelated := catalog.Currency{Symbol: "LINK", Name: "Chainlink", Decimals: 18, ContractAddress: "0x0000000000000000000000000000000000000042"}

	balances, err := env.service.ResolveBalances(ctx, created.Wallet, []catalog.Currency{unrelated})
	require.NoError(t, err)
	require.Len(t, balances, 4)

	symbols := make([]string, 0, len(balances))
	seen := make(map[string]bool)
	for _, b := range balances {
		symbols = append(symbols, b.Currency.Symbol)
		assert.False(t, seen[b.Currency.Key()], "duplicate currency %s", b.Currency.Symbol)
		seen[b.Currency.Key()] = true
	}
	assert.Equal(t, []string{"LINK", "ETH", "USDC", "USDT"}, symbols)

	// native balance came from the explorer, converted to decimal form
	assert.Equal(t, "1.5", balances[1].Amount)
	assert.Equal(t, "1500000000000000000", balances[1].RawAmount)
}

func TestResolveBalancesDeduplicates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	defaults := catalog.DefaultCurrencies(catalog.Sepolia)

	// requesting the defaults explicitly must not double them up
	balances, err := env.service.ResolveBalances(ctx, created.Wallet, defaults)
	require.NoError(t, err)
	assert.Len(t, balances, len(defaults))
}

func TestEstimateGasNativeTransfer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.chain.gasLimit = 21000

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	estimate, err := env.service.EstimateGas(ctx, created.Wallet, catalog.Sepolia.Native, "0x000000000000000000000000000000000000dEaD", "1000000000000000000")
	require.NoError(t, err)

	msg := env.chain.lastEstimate
	require.NotNil(t, msg.To)
	assert.Equal(t, common.HexToAddress("0x000000000000000000000000000000000000dEaD"), *msg.To)
	assert.Equal(t, "1000000000000000000", msg.Value.String())
	assert.Empty(t, msg.Data)

	assert.Equal(t, uint64(21000), estimate.GasLimit)
	// worst case: maxFeePerGas * gasLimit
	assert.Equal(t, new(big.Int).Mul(big.NewInt(40), big.NewInt(21000)).String(), estimate.TotalFee.String())
}

func TestEstimateGasTokenTransfer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.chain.gasLimit = 65000

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	usdc := catalog.DefaultCurrencies(catalog.Sepolia)[1]
	recipient := "0x000000000000000000000000000000000000dEaD"

	estimate, err := env.service.EstimateGas(ctx, created.Wallet, usdc, recipient, "2500000")
	require.NoError(t, err)
	assert.Equal(t, uint64(65000), estimate.GasLimit)

	msg := env.chain.lastEstimate
	require.NotNil(t, msg.To)
	// token estimation targets the contract with zero native value
	assert.Equal(t, common.HexToAddress(usdc.ContractAddress), *msg.To)
	assert.Equal(t, "0", msg.Value.String())

	// transfer(to, amount) call data
	require.GreaterOrEqual(t, len(msg.Data), 4+32+32)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(msg.Data[:4]))
	assert.Equal(t, common.HexToAddress(recipient), common.BytesToAddress(msg.Data[4:36]))
	assert.Equal(t, big.NewInt(2500000), new(big.Int).SetBytes(msg.Data[36:68]))
}

func TestEstimateGasLegacyFeeModel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.chain.feeData = &chain.FeeData{GasPrice: big.NewInt(7)}
	env.chain.gasLimit = 21000

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	estimate, err := env.service.EstimateGas(ctx, created.Wallet, catalog.Sepolia.Native, "0x000000000000000000000000000000000000dEaD", "1")
	require.NoError(t, err)

	assert.Nil(t, estimate.MaxFeePerGas)
	assert.Equal(t, "7", estimate.GasPrice.String())
	assert.Equal(t, new(big.Int).Mul(big.NewInt(7), big.NewInt(21000)).String(), estimate.TotalFee.String())
}

func TestSendNativeTransaction(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.chain.nonce = 5

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	estimate := &wallet.GasEstimate{
		GasLimit:             30000,
		MaxFeePerGas:         big.NewInt(50),
		MaxPriorityFeePerGas: big.NewInt(3),
	}

	hash, err := env.service.SendTransaction(ctx, &wallet.SendRequest{
		Wallet:    created.Wallet,
		Currency:  catalog.Sepolia.Native,
		To:        "0x000000000000000000000000000000000000dEaD",
		RawAmount: "1000000000000000000",
		Estimate:  estimate,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "0x"))

	// the upstream estimate's fee fields were reused, no fresh fetch
	assert.Zero(t, env.chain.feeDataCalls)

	require.Len(t, env.chain.broadcast, 1)
	tx := env.chain.broadcast[0]
	assert.Equal(t, uint8(gethtypes.DynamicFeeTxType), tx.Type())
	assert.Equal(t, uint64(5), tx.Nonce())
	assert.Equal(t, uint64(30000), tx.Gas())
	assert.Equal(t, "50", tx.GasFeeCap().String())
	assert.Equal(t, "3", tx.GasTipCap().String())
	assert.Equal(t, "1000000000000000000", tx.Value().String())
	assert.Equal(t, common.HexToAddress("0x000000000000000000000000000000000000dEaD"), *tx.To())

	sender, err := gethtypes.Sender(gethtypes.LatestSignerForChainID(big.NewInt(11155111)), tx)
	require.NoError(t, err)
	assert.Equal(t, vectorAddress, strings.ToLower(sender.Hex()))
}

func TestSendTokenTransaction(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	usdc := catalog.DefaultCurrencies(catalog.Sepolia)[1]
	recipient := "0x000000000000000000000000000000000000dEaD"

	_, err = env.service.SendTransaction(ctx, &wallet.SendRequest{
		Wallet:    created.Wallet,
		Currency:  usdc,
		To:        recipient,
		RawAmount: "2500000",
	})
	require.NoError(t, err)

	// no estimate supplied: fee data fetched fresh, fallback gas limit
	assert.Equal(t, 1, env.chain.feeDataCalls)

	require.Len(t, env.chain.broadcast, 1)
	tx := env.chain.broadcast[0]
	assert.Equal(t, uint64(21000), tx.Gas())
	assert.Equal(t, common.HexToAddress(usdc.ContractAddress), *tx.To())
	assert.Equal(t, "0", tx.Value().String())
	assert.Equal(t, "a9059cbb", hex.EncodeToString(tx.Data()[:4]))
}

func TestSendTransactionRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	usdc := catalog.DefaultCurrencies(catalog.Sepolia)[1]

	// a negative amount would round-trip through the unsigned call data
	// encoding as its absolute value, so it must fail before signing
	for _, raw := range []string{"-2500000", "0", "-1"} {
		_, err = env.service.SendTransaction(ctx, &wallet.SendRequest{
			Wallet:    created.Wallet,
			Currency:  usdc,
			To:        "0x000000000000000000000000000000000000dEaD",
			RawAmount: raw,
		})
		assert.Error(t, err, raw)
	}

	assert.Empty(t, env.chain.broadcast)
	assert.Zero(t, env.chain.feeDataCalls)
}

func TestEstimateGasRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	for _, raw := range []string{"-1000000000000000000", "0"} {
		_, err = env.service.EstimateGas(ctx, created.Wallet, catalog.Sepolia.Native, "0x000000000000000000000000000000000000dEaD", raw)
		assert.Error(t, err, raw)
	}
}

func TestSendTransactionLegacyFeeModel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.chain.feeData = &chain.FeeData{GasPrice: big.NewInt(9)}

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	_, err = env.service.SendTransaction(ctx, &wallet.SendRequest{
		Wallet:    created.Wallet,
		Currency:  catalog.Sepolia.Native,
		To:        "0x000000000000000000000000000000000000dEaD",
		RawAmount: "1",
	})
	require.NoError(t, err)

	require.Len(t, env.chain.broadcast, 1)
	tx := env.chain.broadcast[0]
	assert.Equal(t, uint8(gethtypes.LegacyTxType), tx.Type())
	assert.Equal(t, "9", tx.GasPrice().String())
}

func TestSendTransactionSecretNotFound(t *testing.T) {
	ctx := context.Background()

	fc := &fakeChain{feeData: &chain.FeeData{GasPrice: big.NewInt(1)}}
	secrets := secret.NewMemoryStore()
	repo := wallet.NewRepository(store.NewMemory(), secrets)
	service := wallet.NewService(repo, keys.NewService(), fc, &fakeExplorer{ethBalance: "0"})

	created, err := service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	// simulate storage desync: metadata kept, secret gone
	require.NoError(t, secrets.Remove(ctx, created.Wallet.Fingerprint))

	_, err = service.SendTransaction(ctx, &wallet.SendRequest{
		Wallet:    created.Wallet,
		Currency:  catalog.Sepolia.Native,
		To:        "0x000000000000000000000000000000000000dEaD",
		RawAmount: "1",
	})
	require.ErrorIs(t, err, wallet.ErrSecretNotFound)

	// a failed send never broadcasts or mutates the repository
	assert.Empty(t, fc.broadcast)
	wallets, err := repo.ListWallets(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
}

func TestTransactionHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.explorer.txs = []explorer.Transaction{
		{Hash: "0xh1", From: vectorAddress, To: "0xdead", Value: "10", Direction: explorer.TxDirectionOutbound, Status: explorer.TxStatusSuccess, BlockNumber: 100},
	}

	created, err := env.service.ImportWallet(ctx, vectorMnemonic, catalog.Sepolia, "")
	require.NoError(t, err)

	txs, err := env.service.TransactionHistory(ctx, created.Wallet, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "0xh1", txs[0].Hash)
	assert.Equal(t, explorer.TxDirectionOutbound, txs[0].Direction)
	assert.Equal(t, "ETH", txs[0].Currency.Symbol)
	assert.Equal(t, int64(11155111), txs[0].Network.ChainID)
}
