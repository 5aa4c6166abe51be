package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/admin"
	"github.com/anwarshop/storefront/internal/api"
	"github.com/anwarshop/storefront/internal/cart"
	"github.com/anwarshop/storefront/internal/catalog"
	"github.com/anwarshop/storefront/internal/checkout"
	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/internal/coupon"
	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/identity"
	"github.com/anwarshop/storefront/internal/localstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Remote document store client
	client := docstore.NewClient(cfg.Store, logger)

	// Local persistent store
	var local localstore.Store
	switch cfg.Local.Backend {
	case "redis":
		local = localstore.NewRedisStore(cfg.Local.RedisAddr)
	default:
		local, err = localstore.NewFileStore(cfg.Local.Path)
		if err != nil {
			logger.Fatal("Failed to open local store", zap.Error(err))
		}
	}

	// Catalog: one batched load before the storefront serves traffic
	catalogStore := catalog.NewStore(client, logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	catalogStore.Load(loadCtx)
	cancelLoad()

	carts := cart.NewManager(local, logger)
	coupons := coupon.NewResolver(catalogStore.Coupons(), logger)
	checkoutSvc := checkout.NewService(client, carts, coupons, catalogStore, logger)
	sessions := identity.NewWatcher(client, logger)
	adminSvc := admin.NewService(client, logger)

	// Back-office pending-order badge. Owned here: started once, torn
	// down on shutdown.
	pollCtx, cancelPoll := context.WithCancel(context.Background())
	poller := admin.NewPoller(client, admin.DefaultPollInterval, func(count int) {
		logger.Info("Pending orders", zap.Int("count", count))
	}, logger)
	poller.Start(pollCtx)

	router := api.NewRouter(cfg, api.Deps{
		Catalog:  catalogStore,
		Cart:     carts,
		Coupons:  coupons,
		Checkout: checkoutSvc,
		Identity: sessions,
		Admin:    adminSvc,
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	cancelPoll()
	poller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
