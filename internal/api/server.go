// Package api exposes the wallet capability set as a JSON HTTP surface. It
// is one presentation adapter over the domain; nothing here owns state.
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chainpocket/wallet-core/internal/config"
	"github.com/chainpocket/wallet-core/internal/wallet"
	"github.com/chainpocket/wallet-core/internal/wallet/chain"
	"github.com/chainpocket/wallet-core/internal/wallet/explorer"
	"github.com/chainpocket/wallet-core/internal/wallet/keys"
	"github.com/chainpocket/wallet-core/internal/wallet/secret"
	"github.com/chainpocket/wallet-core/internal/wallet/store"
)

// Server bundles the echo instance with the domain services the handlers
// consume.
type Server struct {
	Config config.Server
	Echo   *echo.Echo
	Router *Router

	KV     store.KV
	Repo   wallet.Repository
	Wallet wallet.Service
	Chain  chain.Service
}

// NewServer wires the full service graph from config.
func NewServer(cfg config.Server) (*Server, error) {
	kv, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open metadata store")
	}

	secrets := secret.NewKeyringStore(cfg.Storage.KeyringService)
	repo := wallet.NewRepository(kv, secrets)

	chainService := chain.NewService(cfg.Chain.RequestTimeout)
	explorerClient := explorer.NewClient(cfg.Explorer.APIKey, cfg.Explorer.RequestTimeout)

	walletService := wallet.NewService(repo, keys.NewService(), chainService, explorerClient)

	s := &Server{
		Config: cfg,
		Echo:   echo.New(),
		KV:     kv,
		Repo:   repo,
		Wallet: walletService,
		Chain:  chainService,
	}

	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Debug = !cfg.Echo.HideInternalServerErr
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.RequestID())

	return s, nil
}

// Start binds the listener and serves until Shutdown.
func (s *Server) Start() error {
	log.Info().Str("address", s.Config.Echo.ListenAddress).Msg("Starting server")

	return s.Echo.Start(s.Config.Echo.ListenAddress)
}

// Shutdown stops the listener and releases the chain clients and the
// metadata store.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Warn().Msg("Shutting down server")

	s.Chain.Close()

	if err := s.KV.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close metadata store")
	}

	return s.Echo.Shutdown(ctx)
}
