package migrate

import (
	"context"
	"fmt"

	"github.com/next1store/marketoo-down/pkg/db"
	"github.com/next1store/marketoo-down/pkg/logger"
)

// MaybeRun applies pending migrations on the client's connection when enabled.
func MaybeRun(ctx context.Context, enabled bool, driver string, logg *logger.Logger, client *db.Client) error {
	if !enabled {
		return nil
	}
	if logg == nil {
		logg = logger.Nop()
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "driver", driver)
	logg.Info(ctx, "running goose migrations")

	applied, err := Up(ctx, sqlDB, driver)
	if err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(logg.WithField(ctx, "applied", applied), "goose migrations completed")
	return nil
}
