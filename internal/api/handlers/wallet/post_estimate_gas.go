package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/util"
)

// EstimateGasPayload describes the transfer to estimate. Currency is a
// symbol or contract address from the wallet's network catalog.
type EstimateGasPayload struct {
	Currency  string `json:"currency"`
	To        string `json:"to"`
	RawAmount string `json:"rawAmount"`
}

func PostEstimateGasRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/:id/estimate", postEstimateGasHandler(s))
}

func postEstimateGasHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		w, err := walletByID(ctx, s.Repo, c.Param("id"))
		if err != nil {
			return domainError(err)
		}

		var body EstimateGasPayload
		if err := c.Bind(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if body.To == "" || body.RawAmount == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "to and rawAmount are required")
		}

		currency, err := currencyForWallet(w, body.Currency)
		if err != nil {
			return err
		}

		estimate, err := s.Wallet.EstimateGas(ctx, w, currency, body.To, body.RawAmount)
		if err != nil {
			log.Debug().Err(err).Str("wallet_id", w.ID).Msg("Failed to estimate gas")
			return domainError(err)
		}

		return c.JSON(http.StatusOK, estimate)
	}
}
