package server

import (
	"context"
	"net/http"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/config"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/handlers"
	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Health   *handlers.HealthHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Contact  *handlers.ContactHandler
	Product  *handlers.ProductHandler
	Toast    *handlers.ToastHandler
}

type Server struct {
	server   *http.Server
	logger   *logger.Logger
	handlers Handlers
	codeGen  *generator.CodeGenerator
	cfg      config.ServerConfig
}

func NewServer(cfg config.ServerConfig, h Handlers, codeGen *generator.CodeGenerator, logger *logger.Logger) *Server {
	s := &Server{
		logger:   logger,
		handlers: h,
		codeGen:  codeGen,
		cfg:      cfg,
	}

	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
