package controllers

import (
	"net/http"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/pkg/config"
	dbpkg "github.com/julienmorel/caisse-backend/pkg/db"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live", "env": cfg.App.Env})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db dbpkg.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "env": cfg.App.Env})
	}
}
