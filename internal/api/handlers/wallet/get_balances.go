package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

func GetBalancesRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("/:id/balances", getBalancesHandler(s))
}

func getBalancesHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		w, err := walletByID(ctx, s.Repo, c.Param("id"))
		if err != nil {
			return domainError(err)
		}

		// optional ?currency= filters are merged with the defaults anyway
		var requested []catalog.Currency
		for _, ref := range c.QueryParams()["currency"] {
			currency, err := currencyForWallet(w, ref)
			if err != nil {
				return err
			}
			requested = append(requested, currency)
		}

		balances, err := s.Wallet.ResolveBalances(ctx, w, requested)
		if err != nil {
			return domainError(err)
		}

		return c.JSON(http.StatusOK, balances)
	}
}
