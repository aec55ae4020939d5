package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/julienmorel/caisse-backend/pkg/config"
	"github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.SQLDB()
	if err != nil {
		logg.Error(ctx, "failed to acquire sql connection", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"cmd": *cmd, "dir": *dir})
	logg.Info(ctx, "running migrations")

	if err := migrate.Run(ctx, sqlDB, cfg.DB.Driver, *dir, *cmd, flag.Args()...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "migrations complete")
}
