package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appingest "github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/application/onboarding"
	"github.com/shopsync/backend/internal/application/report"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/scheduler"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	dedupStore := cache.NewDedupStore(&cfg.Redis, log)
	defer dedupStore.Close()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	insightsRepo := persistence.NewGormInsightsRepository(db.DB)
	runLock := persistence.NewAdvisoryLock(db.DB, cfg.Sync.LockKey)

	// Upstream client
	client := shopify.NewClient(
		&http.Client{Timeout: cfg.Shopify.RequestTimeout},
		shopify.ClientConfig{
			APIVersion: cfg.Shopify.APIVersion,
			PageSize:   cfg.Shopify.PageSize,
		},
		shopify.NewDelayPacer(cfg.Shopify.PageDelay),
		log.Named("shopify"),
	)

	// Application services
	resolver := appingest.NewIdentityResolver(customerRepo, log.Named("resolver"))
	upserter := appingest.NewRecordUpserter(appingest.RecordUpserterConfig{
		Customers: customerRepo,
		Orders:    orderRepo,
		Products:  productRepo,
		Resolver:  resolver,
		Logger:    log.Named("upserter"),
	})
	webhookService := appingest.NewWebhookService(appingest.WebhookServiceConfig{
		Verifier:     shopify.NewWebhookVerifier(cfg.Webhook.Secret),
		Stores:       storeRepo,
		Upserter:     upserter,
		DedupStore:   dedupStore,
		DedupEnabled: cfg.Webhook.DedupEnabled,
		DedupTTL:     cfg.Webhook.DedupTTL,
		Logger:       log.Named("webhook"),
	})
	backfillService := appingest.NewBackfillService(appingest.BackfillServiceConfig{
		Stores:   storeRepo,
		Fetcher:  client,
		Upserter: upserter,
		Logger:   log.Named("backfill"),
	})
	onboardingService := onboarding.NewService(tenantRepo, storeRepo, log.Named("onboarding"))
	insightsService := report.NewInsightsService(storeRepo, insightsRepo)

	// Scheduled sync
	coordinator := scheduler.NewSyncCoordinator(
		scheduler.SyncCoordinatorConfig{
			Interval:   cfg.Sync.Interval,
			StoreDelay: cfg.Sync.StoreDelay,
		},
		runLock,
		storeRepo,
		backfillService,
		log.Named("coordinator"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sync.Enabled {
		if err := coordinator.Start(ctx); err != nil {
			log.Fatal("Failed to start sync coordinator", zap.Error(err))
		}
	} else {
		log.Info("Scheduled sync disabled")
	}

	// HTTP surface
	r, err := router.New(cfg.App.Env, cfg.HTTP.TrustedProxies, log)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}
	r.Register(handler.NewHealthHandler(db)).
		Register(handler.NewWebhookHandler(webhookService)).
		Register(handler.NewBackfillHandler(backfillService)).
		Register(handler.NewTenantHandler(onboardingService)).
		Register(handler.NewInsightsHandler(insightsService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errCh:
		log.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if cfg.Sync.Enabled {
		if err := coordinator.Stop(shutdownCtx); err != nil {
			log.Error("Sync coordinator shutdown failed", zap.Error(err))
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
