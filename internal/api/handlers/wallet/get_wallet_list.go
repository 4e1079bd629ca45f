package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/wallet"
)

// WalletListResponse is the wallet collection with the active pointer
// resolved.
type WalletListResponse struct {
	Wallets  []*wallet.Wallet `json:"wallets"`
	ActiveID string           `json:"activeId,omitempty"`
}

func GetWalletListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("", getWalletListHandler(s))
}

func getWalletListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		wallets, err := s.Repo.ListWallets(ctx)
		if err != nil {
			return domainError(err)
		}

		active, err := s.Repo.GetActiveWallet(ctx)
		if err != nil {
			return domainError(err)
		}

		res := WalletListResponse{Wallets: wallets}
		if active != nil {
			res.ActiveID = active.ID
		}

		return c.JSON(http.StatusOK, res)
	}
}
