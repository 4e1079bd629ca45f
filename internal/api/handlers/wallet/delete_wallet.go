package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
)

func DeleteWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.DELETE("/:id", deleteWalletHandler(s))
}

func deleteWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := s.Repo.RemoveWallet(ctx, c.Param("id")); err != nil {
			return domainError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func DeleteAllWalletsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.DELETE("", deleteAllWalletsHandler(s))
}

// deleteAllWalletsHandler is the full logout/reset path: metadata, active
// pointer, and every secret.
func deleteAllWalletsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := s.Repo.ClearAll(ctx); err != nil {
			return domainError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
