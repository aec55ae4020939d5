package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julienmorel/caisse-backend/internal/pushqueue"
	"github.com/julienmorel/caisse-backend/pkg/config"
	"github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
	"github.com/julienmorel/caisse-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "push-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "push-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	queueService, err := pushqueue.NewService(pushqueue.ServiceParams{
		Repo:           pushqueue.NewRepository(dbClient.DB()),
		Sender:         &pushqueue.HTTPSender{Endpoint: cfg.Push.Endpoint},
		Logger:         logg,
		Metrics:        metrics.NewQueueMetrics(prometheus.DefaultRegisterer),
		AttemptTimeout: cfg.Push.AttemptTimeout,
		DrainPause:     cfg.Push.DrainPause,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create queue service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting push worker")

	watcher := &pushqueue.ConnectivityWatcher{
		Endpoint: cfg.Push.Endpoint,
		Logger:   logg,
	}
	drainer := pushqueue.NewDrainer(queueService, watcher.Watch(ctx), logg)
	drainer.Run(ctx)

	logg.Info(ctx, "push worker shutting down gracefully")
}
