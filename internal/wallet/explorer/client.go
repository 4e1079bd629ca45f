// Package explorer is the block-explorer HTTP gateway for historical
// transaction and balance lookups.
//
// The client deliberately soft-fails: a transport error, a malformed
// payload, or an explorer status of "0" yields a zero balance or an empty
// transaction list instead of an error, so aggregation logic downstream
// never special-cases upstream garbage.
package explorer

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ZeroBalance is the soft-fail balance value.
const ZeroBalance = "0"

// Client queries etherscan-compatible explorer APIs. The API key is injected
// into every request as a query parameter by this transport layer.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient creates an explorer client with the given request timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
	}
}

// EthBalance returns the native balance of the address in wei, as a base-10
// string. Soft-fails to "0".
func (c *Client) EthBalance(ctx context.Context, apiURL string, address string) string {
	result := c.call(ctx, apiURL, url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
	})
	if result == nil {
		return ZeroBalance
	}

	return parseBalanceResult(result)
}

// TokenBalance returns the ERC-20 balance of the address in token base
// units, as a base-10 string. Soft-fails to "0".
func (c *Client) TokenBalance(ctx context.Context, apiURL string, contract string, address string) string {
	result := c.call(ctx, apiURL, url.Values{
		"module":          {"account"},
		"action":          {"tokenbalance"},
		"contractaddress": {contract},
		"address":         {address},
		"tag":             {"latest"},
	})
	if result == nil {
		return ZeroBalance
	}

	return parseBalanceResult(result)
}

// Transactions returns up to limit historical transactions for the address,
// newest first, with direction resolved against the address. Soft-fails to
// an empty list.
func (c *Client) Transactions(ctx context.Context, apiURL string, address string, limit int) []Transaction {
	result := c.call(ctx, apiURL, url.Values{
		"module":  {"account"},
		"action":  {"txlist"},
		"address": {address},
		"page":    {"1"},
		"offset":  {strconv.Itoa(limit)},
		"sort":    {"desc"},
	})
	if result == nil {
		return []Transaction{}
	}

	var rawTxs []rawTx
	if err := json.Unmarshal(result, &rawTxs); err != nil {
		log.Debug().Err(err).Msg("Explorer returned malformed txlist result")
		return []Transaction{}
	}

	txs := make([]Transaction, 0, len(rawTxs))
	for _, raw := range rawTxs {
		txs = append(txs, cookTx(raw, address))
	}

	return txs
}

// call performs one explorer request and returns the raw result, or nil on
// any failure.
func (c *Client) call(ctx context.Context, apiURL string, params url.Values) json.RawMessage {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to build explorer request")
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("Explorer request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status_code", resp.StatusCode).Msg("Explorer returned non-200 response")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to read explorer response")
		return nil
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Debug().Err(err).Msg("Explorer returned malformed response")
		return nil
	}

	if envelope.Status != "1" {
		log.Debug().Str("message", envelope.Message).Msg("Explorer returned error status")
		return nil
	}

	return envelope.Result
}

func parseBalanceResult(result json.RawMessage) string {
	var balance string
	if err := json.Unmarshal(result, &balance); err != nil {
		log.Debug().Err(err).Msg("Explorer returned malformed balance result")
		return ZeroBalance
	}

	if _, ok := new(big.Int).SetString(balance, 10); !ok {
		log.Debug().Str("balance", balance).Msg("Explorer returned non-numeric balance")
		return ZeroBalance
	}

	return balance
}

func cookTx(raw rawTx, queriedAddress string) Transaction {
	blockNumber, _ := strconv.ParseInt(raw.BlockNumber, 10, 64)
	gasUsed, _ := strconv.ParseUint(raw.GasUsed, 10, 64)
	unix, _ := strconv.ParseInt(raw.TimeStamp, 10, 64)

	// a failed transaction stays failed regardless of confirmation depth
	status := TxStatusSuccess
	switch {
	case raw.IsError == "1" || raw.TxReceiptStatus == "0":
		status = TxStatusFailed
	case raw.Confirmations == "0" || raw.TxReceiptStatus == "":
		status = TxStatusPending
	}

	direction := TxDirectionInbound
	if strings.EqualFold(raw.From, queriedAddress) {
		direction = TxDirectionOutbound
	}

	return Transaction{
		Hash:        raw.Hash,
		From:        raw.From,
		To:          raw.To,
		Value:       raw.Value,
		GasUsed:     gasUsed,
		GasPrice:    raw.GasPrice,
		Status:      status,
		Direction:   direction,
		Timestamp:   time.Unix(unix, 0).UTC(),
		BlockNumber: blockNumber,
	}
}
