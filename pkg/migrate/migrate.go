package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedded embed.FS

const migrationsDir = "migrations"

// Migrations returns the embedded schema migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, migrationsDir)
	if err != nil {
		panic(fmt.Sprintf("migrate: embedded migrations: %v", err))
	}
	return sub
}

// DialectFor maps a database driver name to its goose dialect.
func DialectFor(driver string) (goose.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return goose.DialectSQLite3, nil
	case "postgres", "postgresql":
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB, driver string) (int, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return 0, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}

// Version reports the latest applied migration version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return 0, err
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get db version: %w", err)
	}
	return version, nil
}

// Down rolls back the most recently applied migration.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}
	if _, err := provider.Down(ctx); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Status lists every known migration with its applied state.
func Status(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose status: %w", err)
	}
	return statuses, nil
}
