package controllers

import (
	"net/http"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/internal/register"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// SessionReset performs a remise à zéro on the active session.
func SessionReset(svc *register.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}
		resetAt, err := svc.Reset(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"resetAt": resetAt})
	}
}

// SessionClose archives a closing snapshot and buffers the sync
// payloads for delivery.
func SessionClose(svc *register.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}
		result, err := svc.CloseDay(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
