package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/handler"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/internal/middleware"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Transaction *handler.TransactionHandler
	Deposit     *handler.DepositHandler
	Cashout     *handler.CashoutHandler
	Webhook     *handler.WebhookHandler
	Health      *handler.HealthHandler
}

type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	logger   *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	handlers Handlers
	setup    sync.Once
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	handlers Handlers,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.MustNewValidator()

	return &Server{
		echo:     e,
		cfg:      cfg,
		logger:   log,
		metrics:  m,
		gatherer: gatherer,
		handlers: handlers,
	}
}

func (s *Server) Start() error {
	s.init()

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) init() {
	s.setup.Do(func() {
		s.setupMiddleware()
		s.setupRoutes()
	})
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Metrics(s.metrics))
	s.echo.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.handlers.Health.Check)
	if s.gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := s.echo.Group("/api")

	tx := s.handlers.Transaction
	api.POST("/transactions", tx.Create)
	api.GET("/transactions/:id", tx.Get)
	api.GET("/get-transaction", tx.Get)
	api.POST("/transactions/:id/refund", tx.Refund)
	api.POST("/transfers/:id/cancel", tx.CancelTransfer)
	api.GET("/pix/status/:id", tx.Status)

	api.POST("/deposit", s.handlers.Deposit.Deposit)
	api.POST("/pix/create", s.handlers.Deposit.CreatePix)
	api.POST("/cashout", s.handlers.Cashout.Create)

	api.POST("/webhook/:provider", s.handlers.Webhook.Receive)
}

func (s *Server) Handler() *echo.Echo {
	s.init()
	return s.echo
}
