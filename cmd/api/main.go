package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/mossxapp/mossx-backend/api/routes"
	"github.com/mossxapp/mossx-backend/internal/cart"
	"github.com/mossxapp/mossx-backend/internal/catalog"
	"github.com/mossxapp/mossx-backend/internal/collections"
	"github.com/mossxapp/mossx-backend/internal/gate"
	"github.com/mossxapp/mossx-backend/internal/profile"
	"github.com/mossxapp/mossx-backend/internal/state"
	"github.com/mossxapp/mossx-backend/internal/wishlist"
	"github.com/mossxapp/mossx-backend/pkg/config"
	"github.com/mossxapp/mossx-backend/pkg/dataset"
	"github.com/mossxapp/mossx-backend/pkg/identity"
	"github.com/mossxapp/mossx-backend/pkg/logger"
	"github.com/mossxapp/mossx-backend/pkg/metrics"
	"github.com/mossxapp/mossx-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ds, err := dataset.Default()
	if err != nil {
		logg.Error(context.Background(), "failed to load storefront dataset", err)
		os.Exit(1)
	}

	verifier, err := identity.NewVerifier(cfg.Auth)
	if err != nil {
		logg.Error(context.Background(), "failed to build token verifier", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Info(context.Background(), "redis not configured, idempotency replay disabled")
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	sessions := state.NewRegistry(state.RegistryParams{
		Dataset:       ds,
		PageSize:      cfg.Catalog.PageSize,
		LoadMoreDelay: cfg.Catalog.LoadMoreDelay,
	})

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Dataset:       ds,
		Sessions:      sessions,
		Metrics:       storeMetrics,
		TrendingLimit: cfg.Catalog.TrendingLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Dataset:  ds,
		Sessions: sessions,
		Metrics:  storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Dataset:  ds,
		Sessions: sessions,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	collectionsService, err := collections.NewService(ds)
	if err != nil {
		logg.Error(context.Background(), "failed to create collections service", err)
		os.Exit(1)
	}

	profileService, err := profile.NewService(profile.ServiceParams{Sessions: sessions})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": len(ds.Products),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			Verifier:    verifier,
			Sessions:    sessions,
			Catalog:     catalogService,
			Cart:        cartService,
			Wishlist:    wishlistService,
			Collections: collectionsService,
			Profile:     profileService,
			Policy:      gate.DefaultPolicy(),
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
			Redis:       redisClient,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
