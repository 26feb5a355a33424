package main

import (
	"context"
	"fmt"

	"github.com/next1store/marketoo-down/internal/recent"
	"github.com/next1store/marketoo-down/pkg/config"
	"github.com/next1store/marketoo-down/pkg/db"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/migrate"
	"github.com/next1store/marketoo-down/pkg/redis"
)

// openRecentStore picks the recently viewed backend named by the storage config.
// The returned closer releases any connection it opened.
func openRecentStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (recent.Store, func() error, error) {
	noop := func() error { return nil }
	backend := cfg.Storage.NormalizedBackend()

	switch backend {
	case config.StorageBackendMemory:
		return recent.NewMemoryStore(), noop, nil

	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		dbCfg := cfg.DB
		dbCfg.Driver = backend
		client, err := db.New(ctx, dbCfg, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap %s: %w", backend, err)
		}
		if err := migrate.MaybeRun(ctx, cfg.DB.AutoMigrate, backend, logg, client); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("migrate %s: %w", backend, err)
		}
		return recent.NewGormStore(client, cfg.Storage.Key), client.Close, nil

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap redis: %w", err)
		}
		return recent.NewRedisStore(client, cfg.Storage.Key, 0), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
