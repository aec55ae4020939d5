package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/julienmorel/caisse-backend/pkg/config"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

const DefaultDir = "migrations"

func dialectFor(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite3", nil
	case config.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("no goose dialect for driver %q", driver)
	}
}

// Run executes a goose command against the configured database.
func Run(ctx context.Context, db *sql.DB, driver, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		dir = DefaultDir
	}

	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

type sqlDBProvider interface {
	SQLDB() (*sql.DB, error)
}

// MaybeRunDev applies pending migrations at startup when autorun is
// enabled. Production installs run cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client sqlDBProvider) error {
	if cfg == nil || !cfg.Migrate.AutoRun {
		return nil
	}
	if !cfg.App.IsDev() {
		if logg != nil {
			logg.Warn(ctx, "migration autorun requested outside dev; skipping")
		}
		return nil
	}
	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("getting sql handle for migrations: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "applying pending migrations")
	}
	return Run(ctx, sqlDB, cfg.DB.Driver, cfg.Migrate.Dir, "up")
}
