package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/util"
	"github.com/chainpocket/wallet-core/internal/wallet"
)

// SendTransactionPayload describes a transfer to sign and broadcast. The
// estimate is optional: when present its gas limit and fee fields are
// reused, otherwise fresh fee data is fetched before signing.
type SendTransactionPayload struct {
	Currency  string              `json:"currency"`
	To        string              `json:"to"`
	RawAmount string              `json:"rawAmount"`
	Estimate  *wallet.GasEstimate `json:"estimate"`
}

// SendTransactionResponse carries the broadcast transaction hash. A hash
// means accepted for broadcast, not confirmed.
type SendTransactionResponse struct {
	TxHash string `json:"txHash"`
}

func PostSendTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/:id/send", postSendTransactionHandler(s))
}

func postSendTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		w, err := walletByID(ctx, s.Repo, c.Param("id"))
		if err != nil {
			return domainError(err)
		}

		var body SendTransactionPayload
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

		txHash, err := s.Wallet.SendTransaction(ctx, &wallet.SendRequest{
			Wallet:    w,
			Currency:  currency,
			To:        body.To,
			RawAmount: body.RawAmount,
			Estimate:  body.Estimate,
		})
		if err != nil {
			log.Debug().Err(err).Str("wallet_id", w.ID).Msg("Failed to send transaction")
			return domainError(err)
		}

		return c.JSON(http.StatusOK, SendTransactionResponse{TxHash: txHash})
	}
}
