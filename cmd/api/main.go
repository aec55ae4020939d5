package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julienmorel/caisse-backend/api/routes"
	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/internal/pushqueue"
	"github.com/julienmorel/caisse-backend/internal/recon"
	"github.com/julienmorel/caisse-backend/internal/register"
	"github.com/julienmorel/caisse-backend/internal/scheduler"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/internal/snapshots"
	"github.com/julienmorel/caisse-backend/internal/vendors"
	"github.com/julienmorel/caisse-backend/pkg/config"
	"github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
	"github.com/julienmorel/caisse-backend/pkg/migrate"
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

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)
	queueMetrics := metrics.NewQueueMetrics(prometheus.DefaultRegisterer)

	vendorService, err := vendors.NewService(vendors.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}
	overrideService, err := overrides.NewService(overrides.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create override service", err)
		os.Exit(1)
	}
	snapshotService, err := snapshots.NewService(snapshots.ServiceParams{
		Repo:   snapshots.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot service", err)
		os.Exit(1)
	}
	queueService, err := pushqueue.NewService(pushqueue.ServiceParams{
		Repo:           pushqueue.NewRepository(dbClient.DB()),
		Sender:         &pushqueue.HTTPSender{Endpoint: cfg.Push.Endpoint},
		Logger:         logg,
		Metrics:        queueMetrics,
		AttemptTimeout: cfg.Push.AttemptTimeout,
		DrainPause:     cfg.Push.DrainPause,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create queue service", err)
		os.Exit(1)
	}

	identities, err := vendorService.LoadIdentities(context.Background())
	if err != nil {
		logg.Error(context.Background(), "failed to load vendor identities", err)
		os.Exit(1)
	}
	resolver := vendors.NewResolver(vendors.ResolverParams{
		Identities:      identities,
		DefaultVendorID: cfg.Session.DefaultVendorID,
		Logger:          logg,
		Metrics:         pipelineMetrics,
	})
	normalizer := ingest.NewNormalizer(ingest.NormalizerParams{
		Logger:   logg,
		Metrics:  pipelineMetrics,
		Resolver: resolver,
	})
	sources := ingest.NewFileSource(cfg.Session.SourceDir, normalizer)

	sessionRepo := session.NewRepository(dbClient.DB())
	builder, err := session.NewBuilder(session.BuilderParams{
		Sessions:  sessionRepo,
		Vendors:   vendorService,
		Overrides: overrideService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session builder", err)
		os.Exit(1)
	}

	engine := recon.NewEngine(recon.EngineParams{Logger: logg, Metrics: pipelineMetrics})
	registerService, err := register.NewService(register.ServiceParams{
		Builder:   builder,
		Engine:    engine,
		Sources:   sources,
		Sessions:  sessionRepo,
		Snapshots: snapshotService,
		Queue:     queueService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	refresh, err := scheduler.NewRunner(scheduler.RunnerParams{
		Logger:   logg,
		Interval: cfg.Scheduler.RefreshInterval,
		Tasks: []scheduler.Task{
			scheduler.TaskFunc{TaskName: "recompute", Fn: func(ctx context.Context) error {
				_, err := registerService.Tables(ctx, "timer")
				return err
			}},
		},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create refresh runner", err)
		os.Exit(1)
	}
	refresh.Start(context.Background())
	defer refresh.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			registerService,
			overrideService,
			vendorService,
			queueService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
