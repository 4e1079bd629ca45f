package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/util"
	"github.com/chainpocket/wallet-core/internal/wallet"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

// CreateWalletPayload creates a wallet on the given chain.
type CreateWalletPayload struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
}

// CreatedWalletResponse returns the wallet together with the plaintext
// mnemonic. The mnemonic is handed out exactly once, here.
type CreatedWalletResponse struct {
	Wallet   *wallet.Wallet `json:"wallet"`
	Mnemonic string         `json:"mnemonic"`
}

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("", postCreateWalletHandler(s))
}

func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body CreateWalletPayload
		if err := c.Bind(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		network, err := catalog.NetworkByChainID(body.ChainID)
		if err != nil {
			return domainError(err)
		}

		created, err := s.Wallet.CreateNewWallet(ctx, network, body.Name)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create wallet")
			return domainError(err)
		}

		return c.JSON(http.StatusOK, CreatedWalletResponse{
			Wallet:   created.Wallet,
			Mnemonic: created.Mnemonic,
		})
	}
}
