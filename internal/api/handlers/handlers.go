// Package handlers attaches every HTTP route to the server's route groups.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/chainpocket/wallet-core/internal/api"
	"github.com/chainpocket/wallet-core/internal/api/handlers/wallet"
)

// AttachAllRoutes initializes the route groups and mounts all handlers.
func AttachAllRoutes(s *api.Server) []*echo.Route {
	s.InitRouter()

	return []*echo.Route{
		wallet.GetWalletListRoute(s),
		wallet.GetActiveWalletRoute(s),
		wallet.PostCreateWalletRoute(s),
		wallet.PostImportWalletRoute(s),
		wallet.PostActivateWalletRoute(s),
		wallet.DeleteWalletRoute(s),
		wallet.DeleteAllWalletsRoute(s),
		wallet.GetBalancesRoute(s),
		wallet.PostEstimateGasRoute(s),
		wallet.PostSendTransactionRoute(s),
		wallet.GetTransactionHistoryRoute(s),
	}
}
