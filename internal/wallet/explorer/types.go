package explorer

import (
	"encoding/json"
	"time"
)

// TxStatus is the confirmation state of a historical transaction.
type TxStatus string

// TxDirection classifies a transaction relative to the queried address.
type TxDirection string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"

	TxDirectionInbound  TxDirection = "inbound"
	TxDirectionOutbound TxDirection = "outbound"
)

// Transaction is one historical transfer as reported by the explorer, with
// status and direction already resolved against the queried address.
type Transaction struct {
	Hash        string
	From        string
	To          string
	Value       string // base units
	GasUsed     uint64
	GasPrice    string // wei
	Status      TxStatus
	Direction   TxDirection
	Timestamp   time.Time
	BlockNumber int64
}

// apiResponse is the explorer envelope. Status "1" carries a usable result;
// anything else maps to the soft-fail defaults.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// rawTx is the wire shape of one entry in a txlist result.
type rawTx struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	GasUsed         string `json:"gasUsed"`
	GasPrice        string `json:"gasPrice"`
	IsError         string `json:"isError"`
	TxReceiptStatus string `json:"txreceipt_status"`
	Confirmations   string `json:"confirmations"`
}
