package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/next1store/marketoo-down/pkg/config"
	"github.com/next1store/marketoo-down/pkg/db"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/migrate"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	driver := cfg.Storage.NormalizedBackend()
	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"driver": driver,
	})

	if driver != config.StorageBackendSQLite && driver != config.StorageBackendPostgres {
		fmt.Fprintf(os.Stderr, "storage backend %q has no schema to migrate\n", driver)
		os.Exit(1)
	}

	dbCfg := cfg.DB
	dbCfg.Driver = driver
	dbClient, err := db.New(ctx, dbCfg, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up":
		applied, err := migrate.Up(ctx, sqlDB, driver)
		if err != nil {
			fmt.Fprintf(os.Stderr, "goose up failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("applied %d migration(s)\n", applied)

	case "down":
		if err := migrate.Down(ctx, sqlDB, driver); err != nil {
			fmt.Fprintf(os.Stderr, "goose down failed: %v\n", err)
			os.Exit(1)
		}

	case "status":
		statuses, err := migrate.Status(ctx, sqlDB, driver)
		if err != nil {
			fmt.Fprintf(os.Stderr, "goose status failed: %v\n", err)
			os.Exit(1)
		}
		for _, st := range statuses {
			fmt.Printf("%05d %-8s %s\n", st.Source.Version, st.State, st.Source.Path)
		}

	case "version":
		version, err := migrate.Version(ctx, sqlDB, driver)
		if err != nil {
			fmt.Fprintf(os.Stderr, "goose version failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(version)

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
