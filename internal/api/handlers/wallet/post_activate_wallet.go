package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
)

func PostActivateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/:id/activate", postActivateWalletHandler(s))
}

func postActivateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		// existence check lives here; the repository pointer write itself
		// is unconditional
		w, err := walletByID(ctx, s.Repo, c.Param("id"))
		if err != nil {
			return domainError(err)
		}

		if err := s.Repo.SetActiveWallet(ctx, w.ID); err != nil {
			return domainError(err)
		}

		return c.JSON(http.StatusOK, w)
	}
}

func GetActiveWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("/active", getActiveWalletHandler(s))
}

func getActiveWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		active, err := s.Repo.GetActiveWallet(ctx)
		if err != nil {
			return domainError(err)
		}
		if active == nil {
			return echo.NewHTTPError(http.StatusNotFound, "no wallets")
		}

		return c.JSON(http.StatusOK, active)
	}
}
