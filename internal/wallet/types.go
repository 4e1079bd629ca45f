package wallet

import (
	"math/big"
	"time"

	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
	"github.com/chainpocket/wallet-core/internal/wallet/explorer"
)

// Wallet is the metadata record for one account on one network. The secret
// is never embedded here; Fingerprint (the lowercase address) is the join
// key into the secret store.
type Wallet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Network     catalog.Network `json:"network"`
	CreatedAt   time.Time       `json:"createdAt"`
	IsImported  bool            `json:"isImported"`
	Fingerprint string          `json:"fingerprint"`
}

// Balance is a per-currency balance snapshot. Recomputed on every
// resolution; never a persisted source of truth.
type Balance struct {
	Currency  catalog.Currency `json:"currency"`
	Amount    string           `json:"amount"`    // human-readable decimal amount
	RawAmount string           `json:"rawAmount"` // base units, base-10 integer string
	UpdatedAt time.Time        `json:"updatedAt"`
}

// GasEstimate is a worst-case fee estimate computed before signing.
// TotalFee = (MaxFeePerGas if set, else GasPrice) * GasLimit.
type GasEstimate struct {
	GasLimit             uint64   `json:"gasLimit"`
	GasPrice             *big.Int `json:"gasPrice,omitempty"`
	MaxFeePerGas         *big.Int `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int `json:"maxPriorityFeePerGas,omitempty"`
	TotalFee             *big.Int `json:"totalFee"`
}

// Transaction is a read-only projection of one historical transfer.
type Transaction struct {
	Hash        string               `json:"hash"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Amount      string               `json:"amount"` // base units
	Currency    catalog.Currency     `json:"currency"`
	GasUsed     uint64               `json:"gasUsed"`
	GasPrice    string               `json:"gasPrice"`
	Status      explorer.TxStatus    `json:"status"`
	Direction   explorer.TxDirection `json:"direction"`
	Timestamp   time.Time            `json:"timestamp"`
	BlockNumber int64                `json:"blockNumber"`
	Network     catalog.Network      `json:"network"`
}

// CreatedWallet is the result of creating or importing a wallet. Mnemonic is
// the only place the plaintext phrase is ever returned upward; the caller is
// expected to show it once and drop it.
type CreatedWallet struct {
	Wallet   *Wallet
	Mnemonic string
}

// SendRequest describes one outgoing transfer.
type SendRequest struct {
	Wallet    *Wallet
	Currency  catalog.Currency
	To        string
	RawAmount string // base units
	// Estimate carries the fee fields and gas limit computed upstream.
	// Optional: when nil, fee data is fetched fresh and the gas limit falls
	// back to the plain-transfer minimum.
	Estimate *GasEstimate
}
