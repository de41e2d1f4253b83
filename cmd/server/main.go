package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/grachmannico95/pix-relay/internal/audit"
	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/eventbus"
	"github.com/grachmannico95/pix-relay/internal/fallback"
	"github.com/grachmannico95/pix-relay/internal/handler"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/internal/provider"
	"github.com/grachmannico95/pix-relay/internal/server"
	"github.com/grachmannico95/pix-relay/internal/service"
	"github.com/grachmannico95/pix-relay/internal/storage"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

type stores interface {
	domain.StatusStore
	domain.EventLedger
}

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	if err := cfg.Validate(); err != nil {
		log.Fatal(ctx, "Invalid configuration",
			"error", err,
		)
	}

	if !cfg.ProviderConfigured() {
		log.Warn(ctx, "Payment provider credentials are missing, every provider call will report not_configured",
			"provider", cfg.Provider.Name,
			"fallback_enabled", cfg.Fallback.Enabled,
		)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	clk := clock.New()

	var store stores
	switch cfg.StatusCheck.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal(ctx, "Failed to connect to Redis",
				"addr", cfg.Redis.Addr,
				"error", err,
			)
		}
		store = storage.NewRedisStore(client, clk)
	default:
		store = storage.NewMemoryStore(clk)
	}
	log.Info(ctx, "Status store initialized",
		"store", cfg.StatusCheck.Store,
	)

	var recorder audit.Recorder
	switch cfg.Audit.Sink {
	case "mysql":
		db, err := audit.OpenMySQL(ctx, cfg.Audit.MySQLDSN)
		if err != nil {
			log.Fatal(ctx, "Failed to open audit database",
				"error", err,
			)
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)

		sqlRecorder := audit.NewSQLRecorder(db)
		if err := sqlRecorder.EnsureSchema(ctx); err != nil {
			log.Fatal(ctx, "Failed to prepare audit schema",
				"error", err,
			)
		}
		recorder = sqlRecorder
	default:
		recorder = audit.NewLogRecorder(log)
	}
	log.Info(ctx, "Audit sink initialized",
		"sink", cfg.Audit.Sink,
	)

	eventBusCfg := &eventbus.Config{
		ChannelBuffer: cfg.EventBus.ChannelBufferSize,
		MaxRetries:    cfg.Worker.MaxRetries,
	}
	bus := eventbus.New(log, m, eventBusCfg)

	auditConsumer := eventbus.NewAuditConsumer(store, recorder, log, cfg.Worker.PoolSize)
	if err := bus.Subscribe(eventbus.EventTypeWebhookReceived, auditConsumer); err != nil {
		log.Fatal(ctx, "Failed to subscribe consumer",
			"error", err,
		)
	}

	if err := bus.Start(ctx); err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}
	log.Info(ctx, "Event bus initialized",
		"worker_count", cfg.Worker.PoolSize,
	)

	adapter, err := provider.New(cfg.Provider, clk, log, m)
	if err != nil {
		log.Fatal(ctx, "Failed to create payment provider",
			"error", err,
		)
	}
	paymentProvider := fallback.NewProvider(
		adapter,
		fallback.NewRegistry(clk, 0),
		clk,
		fallback.OptionsFromConfig(cfg),
		log,
		m,
	)
	log.Info(ctx, "Payment provider initialized",
		"provider", adapter.Name(),
	)

	transactionService := service.NewTransactionService(paymentProvider, clk, service.TransactionConfig{
		PixExpiry:   cfg.Provider.PixExpiry,
		CallbackURL: cfg.WebhookURL(adapter.Name()),
	}, log)
	statusService := service.NewStatusService(paymentProvider, store, service.StatusConfig{
		CacheTTL:   cfg.StatusCheck.CacheTTL,
		RateWindow: cfg.StatusCheck.RateWindow,
		RateLimit:  cfg.StatusCheck.RateLimit,
	}, log, m)
	webhookService := service.NewWebhookService(bus, clk, log, m)
	log.Info(ctx, "Services initialized")

	handlers := server.Handlers{
		Transaction: handler.NewTransactionHandler(transactionService, statusService, log),
		Deposit:     handler.NewDepositHandler(transactionService, log),
		Cashout:     handler.NewCashoutHandler(transactionService, log),
		Webhook:     handler.NewWebhookHandler(webhookService, log),
		Health:      handler.NewHealthHandler(adapter.Name(), cfg.ProviderConfigured()),
	}
	log.Info(ctx, "Handlers initialized")

	srv := server.New(cfg, log, m, registry, handlers)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then drain the audit workers.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}
