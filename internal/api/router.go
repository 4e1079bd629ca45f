package api

import "github.com/labstack/echo/v4"

// Router holds the route groups handlers attach to.
type Router struct {
	Root         *echo.Group
	APIV1Wallets *echo.Group
}

// InitRouter creates the route groups on the echo instance.
func (s *Server) InitRouter() {
	s.Router = &Router{
		Root:         s.Echo.Group(""),
		APIV1Wallets: s.Echo.Group("/api/v1/wallets"),
	}
}
