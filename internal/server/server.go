package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-lite-wallet/internal/config"
	"github.com/MKhiriev/go-lite-wallet/internal/handler"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	var router http.Handler = handlers.HTTP.Init()
	if cfg.RequestTimeout > 0 {
		router = middleware.Timeout(cfg.RequestTimeout)(router)
	}

	return &server{
		httpServer: newHTTPServer(router, cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	if err := s.httpServer.Run(ctx); err != nil {
		s.logger.Err(err).Msg("Error running server")
		return err
	}
	return nil
}
