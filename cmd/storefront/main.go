package main

import (
	"bufio"
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/internal/recent"
	"github.com/next1store/marketoo-down/internal/recommend"
	"github.com/next1store/marketoo-down/internal/storefront"
	"github.com/next1store/marketoo-down/pkg/config"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

const serviceName = "storefront"

func main() {
	os.Exit(run())
}

func run() (code int) {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return 1
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"storage": cfg.Storage.NormalizedBackend(),
	})

	store, err := catalog.LoadFiles(cfg.Catalog.ProductsPath, cfg.Catalog.CollectionsPath)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		return 1
	}

	recentStore, closeStore, err := openRecentStore(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open recently viewed storage", err)
		return 1
	}
	out := bufio.NewWriter(os.Stdout)
	defer func() {
		if err := multierr.Combine(out.Flush(), closeStore()); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			code = 1
		}
	}()

	registry := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(registry)

	tracker := recent.NewTracker(recentStore, cfg.Storefront.RecentMax, logg, m)
	tracker.Load(ctx)

	session, err := storefront.NewSession(storefront.Deps{
		Catalog: store,
		Tracker: tracker,
		Sampler: recommend.NewSampler(nil),
		Logger:  logg,
		Metrics: m,
	}, storefront.OptionsFromConfig(cfg))
	if err != nil {
		logg.Error(ctx, "failed to start session", err)
		return 1
	}

	ctx = session.Context(ctx)
	logg.Info(logg.WithField(ctx, "products", store.Len()), "storefront session started")

	sh := newShell(session, os.Stdin, out, registry)
	if err := sh.Run(ctx); err != nil {
		logg.Error(ctx, "storefront shell stopped unexpectedly", err)
		return 1
	}
	return 0
}
