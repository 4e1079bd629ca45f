package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/util"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
)

// ImportWalletPayload imports an existing mnemonic on the given chain.
type ImportWalletPayload struct {
	Mnemonic string `json:"mnemonic"`
	ChainID  int64  `json:"chainId"`
	Name     string `json:"name"`
}

func PostImportWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/import", postImportWalletHandler(s))
}

func postImportWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body ImportWalletPayload
		if err := c.Bind(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		network, err := catalog.NetworkByChainID(body.ChainID)
		if err != nil {
			return domainError(err)
		}

		created, err := s.Wallet.ImportWallet(ctx, body.Mnemonic, network, body.Name)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to import wallet")
			return domainError(err)
		}

		return c.JSON(http.StatusOK, CreatedWalletResponse{
			Wallet:   created.Wallet,
			Mnemonic: created.Mnemonic,
		})
	}
}
