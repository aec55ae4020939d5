package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julienmorel/caisse-backend/api/controllers"
	"github.com/julienmorel/caisse-backend/api/middleware"
	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/internal/pushqueue"
	"github.com/julienmorel/caisse-backend/internal/register"
	"github.com/julienmorel/caisse-backend/internal/vendors"
	"github.com/julienmorel/caisse-backend/pkg/config"
	dbpkg "github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP dbpkg.Pinger,
	registerService *register.Service,
	overrideService overrides.Service,
	vendorService vendors.Service,
	queueService *pushqueue.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tables", controllers.TablesFetch(registerService, logg))

		r.Route("/overrides", func(r chi.Router) {
			r.Put("/", controllers.OverrideSet(overrideService, logg))
			r.Delete("/", controllers.OverrideClear(overrideService, logg))
		})

		r.Put("/rules/{vendorId}", controllers.RuleUpdate(vendorService, logg))

		r.Route("/session", func(r chi.Router) {
			r.Post("/reset", controllers.SessionReset(registerService, logg))
			r.Post("/close", controllers.SessionClose(registerService, logg))
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/{tag}", controllers.SnapshotArchive(registerService, logg))
			r.Get("/{tag}", controllers.SnapshotFetch(registerService, logg))
		})

		r.Route("/queue", func(r chi.Router) {
			r.Get("/", controllers.QueueStatus(queueService, logg))
			r.Post("/drain", controllers.QueueDrain(queueService, logg))
		})
	})

	return r
}
