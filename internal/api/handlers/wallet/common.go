package wallet

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chainpocket/wallet-core/internal/wallet"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

// walletByID resolves a path wallet id against the repository.
func walletByID(ctx context.Context, repo wallet.Repository, id string) (*wallet.Wallet, error) {
	wallets, err := repo.ListWallets(ctx)
	if err != nil {
		return nil, err
	}

	for _, w := range wallets {
		if w.ID == id {
			return w, nil
		}
	}

	return nil, errors.Wrapf(wallet.ErrWalletNotFound, "id=%s", id)
}

// currencyForWallet resolves a currency reference (symbol or contract
// address) against the wallet's network catalog defaults.
func currencyForWallet(w *wallet.Wallet, ref string) (catalog.Currency, error) {
	// an empty ref would match the native entry's empty contract address
	if ref == "" {
		return catalog.Currency{}, echo.NewHTTPError(http.StatusBadRequest, "currency is required")
	}

	for _, currency := range catalog.DefaultCurrencies(w.Network) {
		if strings.EqualFold(currency.Symbol, ref) || strings.EqualFold(currency.ContractAddress, ref) {
			return currency, nil
		}
	}

	return catalog.Currency{}, echo.NewHTTPError(http.StatusBadRequest, "unknown currency")
}

// domainError maps typed domain failures onto HTTP status codes.
func domainError(err error) error {
	switch {
	case errors.Is(err, wallet.ErrInvalidMnemonic):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mnemonic")
	case errors.Is(err, wallet.ErrDuplicateWallet):
		return echo.NewHTTPError(http.StatusConflict, "wallet already imported for this network")
	case errors.Is(err, wallet.ErrWalletNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "wallet not found")
	case errors.Is(err, wallet.ErrSecretNotFound):
		return echo.NewHTTPError(http.StatusConflict, "wallet secret is missing")
	case errors.Is(err, wallet.ErrRPC):
		return echo.NewHTTPError(http.StatusBadGateway, "chain request failed")
	case errors.Is(err, catalog.ErrUnknownNetwork):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown network")
	default:
		return err
	}
}
