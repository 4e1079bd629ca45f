package wallet

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
)

const defaultHistoryLimit = 25

func GetTransactionHistoryRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("/:id/transactions", getTransactionHistoryHandler(s))
}

func getTransactionHistoryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		w, err := walletByID(ctx, s.Repo, c.Param("id"))
		if err != nil {
			return domainError(err)
		}

		limit := defaultHistoryLimit
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
			}
			limit = parsed
		}

		txs, err := s.Wallet.TransactionHistory(ctx, w, limit)
		if err != nil {
			return domainError(err)
		}

		return c.JSON(http.StatusOK, txs)
	}
}
